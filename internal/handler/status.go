package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/repository"
)

// StatusHandler serves the legacy unauthenticated status-check endpoints
// kept for compatibility with early clients.
type StatusHandler struct {
	Statuses *repository.StatusRepo
}

func NewStatusHandler(statuses *repository.StatusRepo) *StatusHandler {
	return &StatusHandler{Statuses: statuses}
}

type statusCheckReq struct {
	ClientName string `json:"client_name"`
}

// Create handles POST /api/status.
func (h *StatusHandler) Create(c echo.Context) error {
	var req statusCheckReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_name is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	sc, err := h.Statuses.Create(ctx, name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create status check failed"})
	}
	return c.JSON(http.StatusCreated, sc)
}

// List handles GET /api/status.
func (h *StatusHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	out, err := h.Statuses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list status checks failed"})
	}
	return c.JSON(http.StatusOK, out)
}
