package upload

import "context"

type Repository interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id int) (*Upload, error)
	ListByRestaurant(ctx context.Context, restaurantID int) ([]Upload, error)
	// ClaimNext atomically picks one UPLOADED row and moves it to
	// EXTRACTING. Returns nil when nothing is waiting. Safe to call
	// from multiple workers.
	ClaimNext(ctx context.Context) (*Upload, error)
	SetStatus(ctx context.Context, id int, status string) error
	SetError(ctx context.Context, id int, message string) error
	// Reset re-queues a FAILED upload and clears its error and stages.
	Reset(ctx context.Context, id int) error
	StartStage(ctx context.Context, uploadID int, name string) (int, error)
	FinishStage(ctx context.Context, stageID int, status, detail string) error
}
