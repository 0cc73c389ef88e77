package restaurant

import "time"

type Restaurant struct {
	ID               int       `json:"id"`
	OwnerID          string    `json:"owner_id"`
	Name             string    `json:"name"`
	City             string    `json:"city"`
	CuisineType      string    `json:"cuisine_type"`
	ShortDescription string    `json:"short_description"`
	OpensAt          string    `json:"opens_at"`
	ClosesAt         string    `json:"closes_at"`
	Status           string    `json:"status"`
	LogoURL          string    `json:"logo_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
