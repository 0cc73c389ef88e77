package upload

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uploadColumns = `
	id, restaurant_id, object_key, filename, status,
	COALESCE(error, ''), created_at, updated_at
`

func (r *PostgresRepository) Create(ctx context.Context, u *Upload) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO menu_uploads (restaurant_id, object_key, filename)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`, u.RestaurantID, u.ObjectKey, u.Filename).
		Scan(&u.ID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Upload, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+uploadColumns+`
		FROM menu_uploads
		WHERE id = $1
	`, id)

	u := &Upload{}
	if err := scanUpload(row, u); err != nil {
		return nil, errors.New("upload not found")
	}

	stages, err := r.loadStages(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Stages = stages
	return u, nil
}

func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID int) ([]Upload, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+uploadColumns+`
		FROM menu_uploads
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Upload
	for rows.Next() {
		var u Upload
		if err := scanUpload(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ClaimNext uses SKIP LOCKED so concurrent workers never grab the same
// upload.
func (r *PostgresRepository) ClaimNext(ctx context.Context) (*Upload, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		SELECT `+uploadColumns+`
		FROM menu_uploads
		WHERE status = $1
		ORDER BY created_at
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`, StatusUploaded)

	u := &Upload{}
	if err := scanUpload(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, u.ID, StatusExtracting); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	u.Status = StatusExtracting
	return u, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, id, status)
	return err
}

func (r *PostgresRepository) SetError(ctx context.Context, id int, message string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $2, error = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, id, StatusFailed, message)
	return err
}

func (r *PostgresRepository) Reset(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM menu_upload_stages WHERE upload_id = $1
	`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `
		UPDATE menu_uploads
		SET status = $2, error = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND status = $3
	`, id, StatusUploaded, StatusFailed)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return errors.New("only failed uploads can be retried")
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) StartStage(ctx context.Context, uploadID int, name string) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO menu_upload_stages (upload_id, name, status, started_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id
	`, uploadID, name, StageRunning).Scan(&id)
	return id, err
}

func (r *PostgresRepository) FinishStage(ctx context.Context, stageID int, status, detail string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE menu_upload_stages
		SET status = $2, detail = NULLIF($3, ''), finished_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, stageID, status, detail)
	return err
}

func (r *PostgresRepository) loadStages(ctx context.Context, uploadID int) ([]Stage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, upload_id, name, status, COALESCE(detail, ''), started_at, finished_at
		FROM menu_upload_stages
		WHERE upload_id = $1
		ORDER BY id
	`, uploadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Stage
	for rows.Next() {
		var st Stage
		if err := rows.Scan(
			&st.ID, &st.UploadID, &st.Name, &st.Status, &st.Detail,
			&st.StartedAt, &st.FinishedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanUpload(row interface{ Scan(dest ...any) error }, u *Upload) error {
	return row.Scan(
		&u.ID, &u.RestaurantID, &u.ObjectKey, &u.Filename, &u.Status,
		&u.Error, &u.CreatedAt, &u.UpdatedAt,
	)
}
