package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/model"
)

type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

const taskColumns = "id,user_id,title,description,due_date,priority,category,completed,created_at,updated_at"

// Create inserts a task for its owner, stamping id and timestamps. The
// owner id comes from the verified session, never from client input.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	t.ID = uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second) // DATETIME has second precision
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tasks ("+taskColumns+") VALUES (?,?,?,?,?,?,?,?,?,?)",
		t.ID, t.UserID, t.Title, t.Description, t.DueDate, t.Priority, t.Category,
		t.Completed, t.CreatedAt, t.UpdatedAt)
	return err
}

// GetByIDAndOwner fetches one task, returning ErrTaskNotFound when the id
// does not exist or belongs to a different user. The two cases share one
// error on purpose.
func (r *TaskRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (model.Task, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id=? AND user_id=? LIMIT 1", id, ownerID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return model.Task{}, ErrTaskNotFound
	}
	return t, err
}

// ListByOwner returns every task belonging to ownerID, unordered.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE user_id=?", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Search runs the query engine over the owner's task set and returns the
// filtered, ordered result.
func (r *TaskRepo) Search(ctx context.Context, ownerID string, q TaskQuery) ([]model.Task, error) {
	tasks, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ApplyQuery(tasks, q), nil
}

// Update persists all mutable columns of t and refreshes updated_at.
// Callers load the task through GetByIDAndOwner first, so existence and
// ownership are already settled when this runs.
func (r *TaskRepo) Update(ctx context.Context, t *model.Task) error {
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	_, err := r.DB.ExecContext(ctx,
		`UPDATE tasks SET title=?, description=?, due_date=?, priority=?, category=?,
			completed=?, updated_at=? WHERE id=? AND user_id=?`,
		t.Title, t.Description, t.DueDate, t.Priority, t.Category,
		t.Completed, t.UpdatedAt, t.ID, t.UserID)
	return err
}

// Delete removes a task owned by ownerID. Deleting an id that is missing
// or owned by someone else yields ErrTaskNotFound, so a second delete of
// the same task fails the same way as a delete of a foreign one.
func (r *TaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id=? AND user_id=?", id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Stats aggregates the owner's unfiltered task set in one read pass.
func (r *TaskRepo) Stats(ctx context.Context, ownerID string, now time.Time) (model.TaskStats, error) {
	tasks, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return model.TaskStats{}, err
	}
	return AggregateStats(tasks, now), nil
}

// Categories returns the sorted distinct categories in use by the owner.
func (r *TaskRepo) Categories(ctx context.Context, ownerID string) ([]string, error) {
	tasks, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return DistinctCategories(tasks), nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanTask(rs rowScanner) (model.Task, error) {
	var t model.Task
	var due sql.NullTime
	err := rs.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &due, &t.Priority,
		&t.Category, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Task{}, err
	}
	if due.Valid {
		s := due.Time.Format(model.DueDateLayout)
		t.DueDate = &s
	}
	return t, nil
}
