package repositories

import (
	"context"
	"database/sql"

	"taskman/internal/models"
)

type StatusRepository interface {
	Store(ctx context.Context, status *models.TaskStatus) error
	FindByID(ctx context.Context, id int64) (*models.TaskStatus, error)
	FindBySlug(ctx context.Context, slug string) (*models.TaskStatus, error)
	FindAll(ctx context.Context) ([]models.TaskStatus, error)
	Update(ctx context.Context, status *models.TaskStatus) error
	Delete(ctx context.Context, id int64) error
}

type statusRepository struct {
	db *sql.DB
}

func NewStatusRepository(db *sql.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Store(ctx context.Context, status *models.TaskStatus) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO task_statuses (name, slug, created_at)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		status.Name, status.Slug, status.CreatedAt,
	).Scan(&status.ID, &status.CreatedAt)
	return translateUnique(err, "task status slug already in use")
}

func (r *statusRepository) FindByID(ctx context.Context, id int64) (*models.TaskStatus, error) {
	return r.findOne(ctx, `SELECT id, name, slug, created_at FROM task_statuses WHERE id = $1`, id)
}

func (r *statusRepository) FindBySlug(ctx context.Context, slug string) (*models.TaskStatus, error) {
	return r.findOne(ctx, `SELECT id, name, slug, created_at FROM task_statuses WHERE slug = $1`, slug)
}

func (r *statusRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.TaskStatus, error) {
	status := &models.TaskStatus{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&status.ID, &status.Name, &status.Slug, &status.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return status, nil
}

func (r *statusRepository) FindAll(ctx context.Context) ([]models.TaskStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at FROM task_statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []models.TaskStatus
	for rows.Next() {
		var s models.TaskStatus
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.CreatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}
	return statuses, rows.Err()
}

func (r *statusRepository) Update(ctx context.Context, status *models.TaskStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE task_statuses SET name=$1, slug=$2 WHERE id=$3`,
		status.Name, status.Slug, status.ID,
	)
	return translateUnique(err, "task status slug already in use")
}

func (r *statusRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_statuses WHERE id=$1`, id)
	return err
}
