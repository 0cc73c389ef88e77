package upload

import "time"

// Upload statuses. The worker moves an upload UPLOADED -> EXTRACTING
// -> IMPORTING -> COMPLETED, or to FAILED with the error recorded.
const (
	StatusUploaded   = "UPLOADED"
	StatusExtracting = "EXTRACTING"
	StatusImporting  = "IMPORTING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Stage names and statuses.
const (
	StageExtract = "extract"
	StageImport  = "import"

	StagePending = "PENDING"
	StageRunning = "RUNNING"
	StageDone    = "DONE"
	StageFailed  = "FAILED"
)

// Upload is one submitted menu file moving through the import pipeline.
type Upload struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	ObjectKey    string    `json:"object_key"`
	Filename     string    `json:"filename"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Stages       []Stage   `json:"stages,omitempty"`
}

// Stage is one step of the pipeline with its own timing and outcome,
// so the operator screen can show where a stuck upload stopped.
type Stage struct {
	ID         int        `json:"id"`
	UploadID   int        `json:"upload_id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Detail     string     `json:"detail,omitempty"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
