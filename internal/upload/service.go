package upload

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"feeb/internal/ingredient"
	"feeb/internal/llm"
	"feeb/internal/recipe"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("upload not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Text menu formats the extractor can read directly.
var allowedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".csv": true,
}

type Storage interface {
	UploadMultipartFile(ctx context.Context, key string, file *multipart.FileHeader) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
}

type OwnershipChecker interface {
	IsOwner(ctx context.Context, restaurantID int, userID string) (bool, error)
}

type RecipeStore interface {
	Create(ctx context.Context, r *recipe.Recipe) error
}

// IngredientResolver links extracted ingredient names to the taxonomy
// and tags newly created entries with the extractor's allergen codes.
type IngredientResolver interface {
	Resolve(ctx context.Context, name string) (ingredient.ResolveResult, error)
	ApplyAllergenCodes(ctx context.Context, ingredientID int, codes []string) error
}

type Service struct {
	repo      Repository
	storage   Storage
	owners    OwnershipChecker
	extractor llm.Client
	recipes   RecipeStore
	resolver  IngredientResolver
}

func NewService(
	repo Repository,
	storage Storage,
	owners OwnershipChecker,
	extractor llm.Client,
	recipes RecipeStore,
	resolver IngredientResolver,
) *Service {
	return &Service{
		repo:      repo,
		storage:   storage,
		owners:    owners,
		extractor: extractor,
		recipes:   recipes,
		resolver:  resolver,
	}
}

// --------------------------------------------------
// Submit a menu file
// --------------------------------------------------
func (s *Service) Submit(ctx context.Context, restaurantID int, userID string, file *multipart.FileHeader) (*Upload, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("unsupported menu file type %q", ext)
	}

	key := fmt.Sprintf("restaurants/%d/menus/%s%s", restaurantID, uuid.New().String(), ext)
	if _, err := s.storage.UploadMultipartFile(ctx, key, file); err != nil {
		return nil, err
	}

	u := &Upload{
		RestaurantID: restaurantID,
		ObjectKey:    key,
		Filename:     file.Filename,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// --------------------------------------------------
// Upload status
// --------------------------------------------------
func (s *Service) Status(ctx context.Context, uploadID int, userID string) (*Upload, error) {
	return s.authorized(ctx, uploadID, userID)
}

func (s *Service) List(ctx context.Context, restaurantID int, userID string) ([]Upload, error) {
	if err := s.checkOwner(ctx, restaurantID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// --------------------------------------------------
// Retry a failed upload
// --------------------------------------------------
func (s *Service) Retry(ctx context.Context, uploadID int, userID string) error {
	if _, err := s.authorized(ctx, uploadID, userID); err != nil {
		return err
	}
	return s.repo.Reset(ctx, uploadID)
}

// --------------------------------------------------
// Background worker
// --------------------------------------------------

// RunWorker polls for queued uploads until ctx is cancelled. Run it in
// a goroutine; several workers can run against the same queue.
func (s *Service) RunWorker(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for s.ProcessNext(ctx) {
			}
		}
	}
}

// ProcessNext claims and processes one queued upload. Returns false
// when the queue is empty.
func (s *Service) ProcessNext(ctx context.Context) bool {
	u, err := s.repo.ClaimNext(ctx)
	if err != nil {
		log.Println("❌ Failed to claim menu upload:", err)
		return false
	}
	if u == nil {
		return false
	}

	if err := s.process(ctx, u); err != nil {
		log.Printf("❌ Menu upload %d failed: %v", u.ID, err)
		if dbErr := s.repo.SetError(ctx, u.ID, err.Error()); dbErr != nil {
			log.Println("❌ Failed to record upload error:", dbErr)
		}
	} else {
		log.Printf("✅ Menu upload %d imported", u.ID)
	}
	return true
}

func (s *Service) process(ctx context.Context, u *Upload) error {
	extracted, err := s.runExtract(ctx, u)
	if err != nil {
		return err
	}

	if err := s.repo.SetStatus(ctx, u.ID, StatusImporting); err != nil {
		return err
	}
	if err := s.runImport(ctx, u, extracted); err != nil {
		return err
	}

	return s.repo.SetStatus(ctx, u.ID, StatusCompleted)
}

func (s *Service) runExtract(ctx context.Context, u *Upload) ([]llm.ExtractedRecipe, error) {
	stageID, err := s.repo.StartStage(ctx, u.ID, StageExtract)
	if err != nil {
		return nil, err
	}

	raw, err := s.storage.Download(ctx, u.ObjectKey)
	if err != nil {
		s.repo.FinishStage(ctx, stageID, StageFailed, err.Error())
		return nil, fmt.Errorf("download menu file: %w", err)
	}

	extracted, err := llm.ExtractRecipes(ctx, s.extractor, string(raw))
	if err != nil {
		s.repo.FinishStage(ctx, stageID, StageFailed, err.Error())
		return nil, fmt.Errorf("extract menu: %w", err)
	}

	detail := fmt.Sprintf("%d recipes extracted", len(extracted))
	if err := s.repo.FinishStage(ctx, stageID, StageDone, detail); err != nil {
		return nil, err
	}
	return extracted, nil
}

// runImport writes extracted recipes as unconfirmed suggestions. The
// operator confirms or dismisses them afterwards; nothing imported here
// reaches the public menu on its own.
func (s *Service) runImport(ctx context.Context, u *Upload, extracted []llm.ExtractedRecipe) error {
	stageID, err := s.repo.StartStage(ctx, u.ID, StageImport)
	if err != nil {
		return err
	}

	imported := 0
	for _, ex := range extracted {
		if ex.Name == "" {
			continue
		}

		score := ex.ProminenceScore
		suggestion := recipe.Recipe{
			RestaurantID:    u.RestaurantID,
			Name:            ex.Name,
			Description:     ex.Description,
			MenuCategory:    ex.MenuCategory,
			Price:           ex.Price,
			ProminenceScore: &score,
			Confirmed:       false,
			IsOnMenu:        false,
			Lines:           s.importLines(ctx, ex.Ingredients),
		}

		if err := s.recipes.Create(ctx, &suggestion); err != nil {
			s.repo.FinishStage(ctx, stageID, StageFailed, err.Error())
			return fmt.Errorf("import recipe %q: %w", ex.Name, err)
		}
		imported++
	}

	detail := fmt.Sprintf("%d suggestions created", imported)
	return s.repo.FinishStage(ctx, stageID, StageDone, detail)
}

// importLines resolves extracted ingredients best-effort. Resolution
// failures leave the line unlinked, never fail the import.
func (s *Service) importLines(ctx context.Context, extracted []llm.ExtractedIngredient) []recipe.Line {
	var lines []recipe.Line
	for _, ing := range extracted {
		if ing.Name == "" {
			continue
		}

		line := recipe.Line{Name: ing.Name}
		if result, err := s.resolver.Resolve(ctx, ing.Name); err == nil {
			id := result.Ingredient.ID
			line.IngredientID = &id
			if result.Created && len(ing.Allergens) > 0 {
				if err := s.resolver.ApplyAllergenCodes(ctx, id, ing.Allergens); err != nil {
					log.Println("❌ Failed to tag ingredient allergens:", err)
				}
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// --------------------------------------------------
// Internals
// --------------------------------------------------

func (s *Service) checkOwner(ctx context.Context, restaurantID int, userID string) error {
	isOwner, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) authorized(ctx context.Context, uploadID int, userID string) (*Upload, error) {
	u, err := s.repo.GetByID(ctx, uploadID)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := s.checkOwner(ctx, u.RestaurantID, userID); err != nil {
		return nil, err
	}
	return u, nil
}
