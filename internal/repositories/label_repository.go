package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"taskman/internal/apperr"
	"taskman/internal/models"
)

type LabelRepository interface {
	Store(ctx context.Context, label *models.Label) error
	FindByID(ctx context.Context, id int64) (*models.Label, error)
	FindAll(ctx context.Context) ([]models.Label, error)
	Update(ctx context.Context, label *models.Label) error
	Delete(ctx context.Context, id int64) error
}

type labelRepository struct {
	db *sql.DB
}

func NewLabelRepository(db *sql.DB) LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) Store(ctx context.Context, label *models.Label) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO labels (name, created_at)
		VALUES ($1,$2)
		RETURNING id, created_at`,
		label.Name, label.CreatedAt,
	).Scan(&label.ID, &label.CreatedAt)
	return translateUnique(err, "label name already in use")
}

func (r *labelRepository) FindByID(ctx context.Context, id int64) (*models.Label, error) {
	label := &models.Label{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM labels WHERE id = $1`, id,
	).Scan(&label.ID, &label.Name, &label.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return label, nil
}

func (r *labelRepository) FindAll(ctx context.Context) ([]models.Label, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM labels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labels []models.Label
	for rows.Next() {
		var l models.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (r *labelRepository) Update(ctx context.Context, label *models.Label) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE labels SET name=$1 WHERE id=$2`, label.Name, label.ID)
	return translateUnique(err, "label name already in use")
}

func (r *labelRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id=$1`, id)
	return err
}

// translateUnique maps Postgres unique violations (23505) to an integrity
// error so duplicates surface as a client error, not a 500.
func translateUnique(err error, message string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return apperr.Wrap(apperr.CodeIntegrity, message, err)
	}
	return err
}
