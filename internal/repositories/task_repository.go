package repositories

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"

	"taskman/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	// reference-integrity checks used before deleting related entities
	ExistsByStatusID(ctx context.Context, statusID int64) (bool, error)
	ExistsByAssigneeID(ctx context.Context, userID int64) (bool, error)
	ExistsWithLabel(ctx context.Context, labelID int64) (bool, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `t.id, t.title, t.content, t.status_id, s.slug, t.assignee_id, t.created_at`

// Store inserts the task row and its label links in one transaction.
func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (title, content, status_id, assignee_id, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, query,
		task.Title, task.Content, task.StatusID, task.AssigneeID, task.CreatedAt,
	).Scan(&task.ID, &task.CreatedAt); err != nil {
		return err
	}

	if err := insertTaskLabels(ctx, tx, task.ID, task.LabelIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks t
		JOIN task_statuses s ON s.id = t.status_id
		WHERE t.id = $1`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Content, &task.StatusID, &task.StatusSlug,
		&task.AssigneeID, &task.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadLabels(ctx, []*models.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + `
		FROM tasks t
		JOIN task_statuses s ON s.id = t.status_id`

	conditions, args := BuildTaskFilter(filter, 1)
	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY t.id"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Content, &t.StatusID, &t.StatusSlug,
			&t.AssigneeID, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ptrs := make([]*models.Task, len(tasks))
	for i := range tasks {
		ptrs[i] = &tasks[i]
	}
	if err := r.loadLabels(ctx, ptrs); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update rewrites the task row and fully replaces its label set.
func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		UPDATE tasks SET title=$1, content=$2, status_id=$3, assignee_id=$4
		WHERE id=$5`
	if _, err := tx.ExecContext(ctx, query,
		task.Title, task.Content, task.StatusID, task.AssigneeID, task.ID,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_labels WHERE task_id=$1`, task.ID); err != nil {
		return err
	}
	if err := insertTaskLabels(ctx, tx, task.ID, task.LabelIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) ExistsByStatusID(ctx context.Context, statusID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE status_id=$1)`, statusID)
}

func (r *taskRepository) ExistsByAssigneeID(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE assignee_id=$1)`, userID)
}

func (r *taskRepository) ExistsWithLabel(ctx context.Context, labelID int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM task_labels WHERE label_id=$1)`, labelID)
}

func (r *taskRepository) exists(ctx context.Context, query string, arg int64) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&ok)
	return ok, err
}

func insertTaskLabels(ctx context.Context, tx *sql.Tx, taskID int64, labelIDs []int64) error {
	for _, labelID := range labelIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_labels (task_id, label_id) VALUES ($1,$2)`, taskID, labelID,
		); err != nil {
			return err
		}
	}
	return nil
}

// loadLabels fills LabelIDs for the given tasks with a single query.
func (r *taskRepository) loadLabels(ctx context.Context, tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	ids := make([]int64, len(tasks))
	byID := make(map[int64]*models.Task, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
		byID[t.ID] = t
		t.LabelIDs = []int64{}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, label_id FROM task_labels WHERE task_id = ANY($1) ORDER BY label_id`,
		pq.Array(ids),
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID, labelID int64
		if err := rows.Scan(&taskID, &labelID); err != nil {
			return err
		}
		if t, ok := byID[taskID]; ok {
			t.LabelIDs = append(t.LabelIDs, labelID)
		}
	}
	return rows.Err()
}
