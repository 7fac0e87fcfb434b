package model

import "time"

// Task priorities. Rank for sorting purposes is low < medium < high.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DefaultCategory is assigned when a task is created or updated with an
// empty category.
const DefaultCategory = "General"

// DueDateLayout is the wire and storage format for due dates. Due dates
// carry no time of day.
const DueDateLayout = "2006-01-02"

// Task mirrors the `tasks` table. A task belongs to exactly one user and
// is never visible to anyone else. DueDate is kept as a "YYYY-MM-DD"
// string pointer; nil means no due date was set.
//
// Fields:
//  ID          – UUID primary key.
//  UserID      – owning user, immutable after creation.
//  Title       – non-empty task title.
//  Description – optional free text, defaults to "".
//  DueDate     – optional due date (date only, nullable).
//  Priority    – one of low|medium|high.
//  Category    – free-text label, defaults to "General".
//  Completed   – completion flag.
//  CreatedAt   – set once at creation.
//  UpdatedAt   – refreshed on every mutation.
type Task struct {
	ID          string    // tasks.id
	UserID      string    // tasks.user_id
	Title       string    // tasks.title
	Description string    // tasks.description
	DueDate     *string   // tasks.due_date (nullable)
	Priority    string    // tasks.priority
	Category    string    // tasks.category
	Completed   bool      // tasks.completed
	CreatedAt   time.Time // tasks.created_at
	UpdatedAt   time.Time // tasks.updated_at
}

// ValidPriority reports whether p is one of the accepted priority values.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// PriorityRank maps a priority to its sort rank (low=1 .. high=3).
// Unknown values rank below low so they never outrank real priorities.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// IsOverdue reports whether the task is overdue as of the given moment:
// a due date is set, it falls strictly before today, and the task is not
// completed. Computed at read time, never persisted.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	due, err := time.Parse(DueDateLayout, *t.DueDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// TaskStats aggregates counts over a user's full task set.
type TaskStats struct {
	Total        int             `json:"total"`
	Completed    int             `json:"completed"`
	Pending      int             `json:"pending"`
	Overdue      int             `json:"overdue"`
	HighPriority int             `json:"high_priority"`
	Categories   []CategoryCount `json:"categories"`
}

// CategoryCount is one entry of the per-category breakdown in TaskStats.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Color string `json:"color"`
}
