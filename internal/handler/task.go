package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/model"
	"github.com/taskflow/taskflow-api/internal/queue"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// ActivityPublisher pushes a task lifecycle event to the message broker.
type ActivityPublisher func(ctx context.Context, ev queue.TaskActivityEvent) error

// TaskHandler bundles dependencies for the task endpoints. Publish may be
// nil, in which case no activity events are emitted. Now is injectable so
// tests can pin "today" for overdue computations.
type TaskHandler struct {
	Tasks   TaskStore
	Publish ActivityPublisher
	Now     func() time.Time
}

func NewTaskHandler(tasks TaskStore, publish ActivityPublisher) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Publish: publish, Now: time.Now}
}

// ----- DTOs -----

type createTaskReq struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	Completed   bool    `json:"completed"`
}

type updateTaskReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
}

// Create handles POST /api/tasks. The owner is stamped from the verified
// session; a user_id in the body is ignored.
func (h *TaskHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "priority must be low, medium or high"})
	}
	if req.DueDate != nil {
		if _, err := time.Parse(model.DueDateLayout, *req.DueDate); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid due_date format, expected YYYY-MM-DD"})
		}
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	t := model.Task{
		UserID:      uid,
		Title:       title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		Category:    category,
		Completed:   req.Completed,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Tasks.Create(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	h.publishActivity(queue.ActionCreated, t)

	return c.JSON(http.StatusCreated, toTaskResponse(t, h.Now()))
}

// List handles GET /api/tasks with the filter/sort query parameters. All
// active filters are AND-composed; defaults are created_at desc.
func (h *TaskHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	q := repository.TaskQuery{
		Search:    c.QueryParam("search"),
		Category:  c.QueryParam("category"),
		Priority:  c.QueryParam("priority"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
	}
	if v := c.QueryParam("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "completed must be true or false"})
		}
		q.Completed = &b
	}
	if q.SortBy == "" {
		q.SortBy = repository.SortByCreatedAt
	}
	if q.SortOrder == "" {
		q.SortOrder = repository.SortDesc
	}
	if !repository.ValidSortBy(q.SortBy) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sort_by must be one of created_at, title, due_date, priority"})
	}
	if !repository.ValidSortOrder(q.SortOrder) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sort_order must be asc or desc"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	tasks, err := h.Tasks.Search(ctx, uid, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tasks failed"})
	}

	now := h.Now()
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t, now))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/tasks/:id. A task that does not exist and a task
// owned by someone else are the same 404.
func (h *TaskHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	t, err := h.Tasks.GetByIDAndOwner(ctx, c.Param("id"), uid)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toTaskResponse(t, h.Now()))
}

// Update handles PUT /api/tasks/:id as a partial update: only supplied
// fields change, everything else keeps its prior value and updated_at is
// refreshed. id, user_id and created_at are immutable.
func (h *TaskHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Tasks.GetByIDAndOwner(ctx, c.Param("id"), uid)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
		}
		t.Title = title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DueDate != nil {
		if _, err := time.Parse(model.DueDateLayout, *req.DueDate); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid due_date format, expected YYYY-MM-DD"})
		}
		t.DueDate = req.DueDate
	}
	if req.Priority != nil {
		if !model.ValidPriority(*req.Priority) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "priority must be low, medium or high"})
		}
		t.Priority = *req.Priority
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			category = model.DefaultCategory
		}
		t.Category = category
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}

	if err := h.Tasks.Update(ctx, &t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update task failed"})
	}
	h.publishActivity(queue.ActionUpdated, t)

	return c.JSON(http.StatusOK, toTaskResponse(t, h.Now()))
}

// Delete handles DELETE /api/tasks/:id. Deleting the same id twice yields
// a 404 the second time; the operation is deliberately not idempotent.
func (h *TaskHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	// Load before deleting so the activity event can carry the title.
	t, err := h.Tasks.GetByIDAndOwner(ctx, c.Param("id"), uid)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Tasks.Delete(ctx, t.ID, uid); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete task failed"})
	}
	h.publishActivity(queue.ActionDeleted, t)

	return c.JSON(http.StatusOK, echo.Map{"message": "Task deleted successfully"})
}

// publishActivity emits a task lifecycle event without blocking the
// request. Failures are already logged by the publisher and ignored here.
func (h *TaskHandler) publishActivity(action string, t model.Task) {
	if h.Publish == nil {
		return
	}
	ev := queue.TaskActivityEvent{
		TaskID:     t.ID,
		UserID:     t.UserID,
		Action:     action,
		Title:      t.Title,
		Priority:   t.Priority,
		Category:   t.Category,
		Completed:  t.Completed,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
