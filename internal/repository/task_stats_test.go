package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/model"
)

func TestAggregateStatsEmpty(t *testing.T) {
	stats := AggregateStats(nil, time.Now())
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 0, stats.Overdue)
	assert.Equal(t, 0, stats.HighPriority)
	assert.Empty(t, stats.Categories)
}

func TestAggregateStatsCounts(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{Category: "Work", Priority: model.PriorityHigh},
		{Category: "Work", Priority: model.PriorityHigh, Completed: true},
		{Category: "Work", Priority: model.PriorityLow, DueDate: strptr("2026-03-01")},
		{Category: "Personal", Priority: model.PriorityMedium, DueDate: strptr("2026-03-01"), Completed: true},
		{Category: "Hobby", Priority: model.PriorityLow, DueDate: strptr("2026-12-31")},
	}
	stats := AggregateStats(tasks, now)

	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 3, stats.Pending)
	// Only the pending task with a past due date counts as overdue.
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 2, stats.HighPriority)

	require.Len(t, stats.Categories, 3)
	// Sorted by name, known names carry their palette color.
	assert.Equal(t, model.CategoryCount{Name: "Hobby", Count: 1, Color: "#6B7280"}, stats.Categories[0])
	assert.Equal(t, model.CategoryCount{Name: "Personal", Count: 1, Color: "#059669"}, stats.Categories[1])
	assert.Equal(t, model.CategoryCount{Name: "Work", Count: 3, Color: "#DC2626"}, stats.Categories[2])
}

func TestDistinctCategories(t *testing.T) {
	tasks := []model.Task{
		{Category: "Work"},
		{Category: "Personal"},
		{Category: "Work"},
		{Category: "Health"},
		{Category: ""},
	}
	assert.Equal(t, []string{"Health", "Personal", "Work"}, DistinctCategories(tasks))
	assert.Empty(t, DistinctCategories(nil))
}
