package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stats handles GET /api/tasks/stats and returns the aggregate counters
// over the caller's unfiltered task set, computed in a single read pass.
func (h *TaskHandler) Stats(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	stats, err := h.Tasks.Stats(ctx, uid, h.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	return c.JSON(http.StatusOK, stats)
}

// Categories handles GET /api/tasks/categories and returns the sorted
// distinct category names currently in use by the caller's tasks.
func (h *TaskHandler) Categories(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	cats, err := h.Tasks.Categories(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "categories failed"})
	}
	return c.JSON(http.StatusOK, cats)
}
