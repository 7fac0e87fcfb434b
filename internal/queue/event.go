// Package queue defines message payloads exchanged over the message broker.
package queue

// Task activity actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TaskActivityEvent is published whenever a task is created, updated or
// deleted. It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type TaskActivityEvent struct {
	TaskID     string `json:"task_id"`
	UserID     string `json:"user_id"`
	Action     string `json:"action"`
	Title      string `json:"title"`
	Priority   string `json:"priority"`
	Category   string `json:"category"`
	Completed  bool   `json:"completed"`
	OccurredAt string `json:"occurred_at"`
}
