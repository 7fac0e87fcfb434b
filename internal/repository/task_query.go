package repository

import (
	"sort"
	"strings"

	"github.com/taskflow/taskflow-api/internal/model"
)

// Sort fields accepted by the task list endpoint.
const (
	SortByCreatedAt = "created_at"
	SortByTitle     = "title"
	SortByDueDate   = "due_date"
	SortByPriority  = "priority"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// TaskQuery defines the filter and sort options for listing a user's
// tasks. Zero values mean "no filtering": an empty Search applies no text
// match, a nil Completed applies no completion filter, and empty Category
// or Priority apply no exact-match filter. All active filters are
// AND-composed. SortBy and SortOrder must be populated (the handler
// substitutes the created_at/desc defaults before building a query).
type TaskQuery struct {
	Search    string
	Completed *bool
	Category  string
	Priority  string
	SortBy    string
	SortOrder string
}

// ValidSortBy reports whether s is an accepted sort field.
func ValidSortBy(s string) bool {
	switch s {
	case SortByCreatedAt, SortByTitle, SortByDueDate, SortByPriority:
		return true
	}
	return false
}

// ValidSortOrder reports whether s is an accepted sort direction.
func ValidSortOrder(s string) bool {
	return s == SortAsc || s == SortDesc
}

// ApplyQuery evaluates a TaskQuery against a task slice and returns the
// matching tasks in their final order. The input slice is not modified.
// This is the whole of the query engine: the repository fetches the
// owner's tasks and everything else happens here, so the exact same code
// path is exercised in tests without a database.
//
// Ordering: the requested sort key in the requested direction, then
// created_at descending, then id ascending, so equal keys always come
// back in the same order.
func ApplyQuery(tasks []model.Task, q TaskQuery) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, q) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return taskLess(out[i], out[j], q.SortBy, q.SortOrder)
	})
	return out
}

// matches reports whether a task passes every active filter in q.
func matches(t model.Task, q TaskQuery) bool {
	if q.Completed != nil && t.Completed != *q.Completed {
		return false
	}
	if q.Category != "" && t.Category != q.Category {
		return false
	}
	if q.Priority != "" && t.Priority != q.Priority {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) {
			return false
		}
	}
	return true
}

// taskLess orders a before b under the given sort key and direction,
// falling back to created_at desc then id asc for equal keys.
func taskLess(a, b model.Task, sortBy, sortOrder string) bool {
	c := compareKey(a, b, sortBy)
	if sortOrder == SortDesc {
		c = -c
	}
	if c != 0 {
		return c < 0
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}

// compareKey compares the primary sort key ascending: -1 when a sorts
// first, 1 when b does, 0 on a tie. Tasks without a due date compare as
// the lowest possible due_date key, mirroring how the previous document
// store ordered missing fields.
func compareKey(a, b model.Task, sortBy string) int {
	switch sortBy {
	case SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case SortByPriority:
		ra, rb := model.PriorityRank(a.Priority), model.PriorityRank(b.Priority)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	case SortByDueDate:
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return 0
		case a.DueDate == nil:
			return -1
		case b.DueDate == nil:
			return 1
		}
		return strings.Compare(*a.DueDate, *b.DueDate)
	default: // created_at
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
		return 0
	}
}
