package handler // handler defines http handlers

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/model"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// dbTimeout bounds every store call made from a handler.
const dbTimeout = 5 * time.Second

// UserStore is the slice of the user repository the handlers depend on.
// *repository.UserRepo satisfies it; tests substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, name, email, password string, cost int) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
}

// TaskStore is the slice of the task repository the handlers depend on.
// *repository.TaskRepo satisfies it.
type TaskStore interface {
	Create(ctx context.Context, t *model.Task) error
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (model.Task, error)
	Search(ctx context.Context, ownerID string, q repository.TaskQuery) ([]model.Task, error)
	Update(ctx context.Context, t *model.Task) error
	Delete(ctx context.Context, id, ownerID string) error
	Stats(ctx context.Context, ownerID string, now time.Time) (model.TaskStats, error)
	Categories(ctx context.Context, ownerID string) ([]string, error)
}

// getUserID extracts the authenticated user id placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (string, error) {
	if uid := middleware.CurrentUserID(c); uid != "" {
		return uid, nil
	}
	return "", errors.New("missing user_id in context")
}

// ----- shared response DTOs -----

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	IsOverdue   bool      `json:"is_overdue"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// toTaskResponse computes the derived is_overdue flag at read time; it is
// never persisted.
func toTaskResponse(t model.Task, now time.Time) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Category:    t.Category,
		Completed:   t.Completed,
		IsOverdue:   t.IsOverdue(now),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
