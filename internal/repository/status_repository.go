package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-api/internal/model"
)

// StatusRepo persists the legacy status-check pings. They predate the task
// endpoints and are kept for compatibility with early clients.
type StatusRepo struct{ DB *sql.DB }

func NewStatusRepo(db *sql.DB) *StatusRepo { return &StatusRepo{DB: db} }

// Create records a status check for the named client.
func (r *StatusRepo) Create(ctx context.Context, clientName string) (model.StatusCheck, error) {
	sc := model.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC().Truncate(time.Second),
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO status_checks (id, client_name, timestamp) VALUES (?,?,?)",
		sc.ID, sc.ClientName, sc.Timestamp)
	if err != nil {
		return model.StatusCheck{}, err
	}
	return sc, nil
}

// List returns all recorded status checks, newest first.
func (r *StatusRepo) List(ctx context.Context) ([]model.StatusCheck, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, client_name, timestamp FROM status_checks ORDER BY timestamp DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.StatusCheck{}
	for rows.Next() {
		var sc model.StatusCheck
		if err := rows.Scan(&sc.ID, &sc.ClientName, &sc.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
