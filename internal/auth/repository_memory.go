package auth

import (
	"errors"

	"github.com/google/uuid"
)

// InMemoryUserRepository backs tests and local development.
type InMemoryUserRepository struct {
	byEmail map[string]*User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{byEmail: make(map[string]*User)}
}

func (r *InMemoryUserRepository) Save(user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return errors.New("email already exists")
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *InMemoryUserRepository) ExistsByEmail(email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *InMemoryUserRepository) FindByEmail(email string) (*User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}
