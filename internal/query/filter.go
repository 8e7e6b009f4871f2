// Package query provides filtering, sorting, and aggregation over task collections.
package query

import (
	"sort"

	"github.com/mertens-software-gmbh/todo/internal/task"
)

// FilterAll is the pass-through value for either filter dimension.
const FilterAll = "all"

// Status filter values beyond FilterAll.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// StatusFilters lists the valid status filter values.
var StatusFilters = []string{FilterAll, StatusActive, StatusCompleted}

// Options defines which tasks a view includes.
type Options struct {
	Category string // exact category match, or FilterAll
	Status   string // FilterAll, StatusActive, or StatusCompleted
}

// ValidStatusFilter reports whether s is a recognized status filter value.
func ValidStatusFilter(s string) bool {
	for _, v := range StatusFilters {
		if v == s {
			return true
		}
	}
	return false
}

// Filter returns the tasks matching all specified criteria (AND logic).
// The input slice is never mutated.
func Filter(tasks []*task.Task, opts Options) []*task.Task {
	result := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matches(t *task.Task, opts Options) bool {
	if opts.Category != "" && opts.Category != FilterAll && t.Category != opts.Category {
		return false
	}
	switch opts.Status {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// Categories returns the distinct categories present across tasks,
// sorted lexicographically with duplicates removed.
func Categories(tasks []*task.Task) []string {
	seen := make(map[string]bool, len(tasks))
	categories := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)
	return categories
}
