package repository

import (
	"sort"
	"time"

	"github.com/taskflow/taskflow-api/internal/model"
)

// categoryColors assigns the dashboard palette to the well-known category
// names. Anything else falls back to the neutral grey.
var categoryColors = map[string]string{
	"General":  "#6B7280",
	"Work":     "#DC2626",
	"Personal": "#059669",
	"Health":   "#7C3AED",
	"Learning": "#EA580C",
	"Shopping": "#0891B2",
}

const defaultCategoryColor = "#6B7280"

// AggregateStats computes the aggregate counters for a user's unfiltered
// task set in a single pass. The counts are consistent for the snapshot
// of tasks handed in; no atomicity beyond that one read is promised.
// Category entries come back sorted by name so the breakdown is stable.
func AggregateStats(tasks []model.Task, now time.Time) model.TaskStats {
	stats := model.TaskStats{Total: len(tasks)}
	byCategory := map[string]int{}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		}
		if t.Priority == model.PriorityHigh {
			stats.HighPriority++
		}
		if t.IsOverdue(now) {
			stats.Overdue++
		}
		byCategory[t.Category]++
	}
	stats.Pending = stats.Total - stats.Completed

	stats.Categories = make([]model.CategoryCount, 0, len(byCategory))
	for name, count := range byCategory {
		color, ok := categoryColors[name]
		if !ok {
			color = defaultCategoryColor
		}
		stats.Categories = append(stats.Categories, model.CategoryCount{
			Name:  name,
			Count: count,
			Color: color,
		})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		return stats.Categories[i].Name < stats.Categories[j].Name
	})
	return stats
}

// DistinctCategories returns the sorted set of category names currently in
// use across the given tasks. Empty names are skipped.
func DistinctCategories(tasks []model.Task) []string {
	seen := map[string]bool{}
	for _, t := range tasks {
		if t.Category != "" {
			seen[t.Category] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
