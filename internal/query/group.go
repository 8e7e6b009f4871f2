package query

import (
	"sort"

	"github.com/mertens-software-gmbh/todo/internal/task"
)

// GroupedSummary holds task counts grouped by a field.
type GroupedSummary struct {
	Groups []GroupSummary `json:"groups"`
}

// GroupSummary is one group within a grouped view.
type GroupSummary struct {
	Key       string `json:"key"`
	Active    int    `json:"active"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// GroupBy groups tasks by the given field and returns per-group counts.
func GroupBy(tasks []*task.Task, field string) GroupedSummary {
	groups := make(map[string][]*task.Task)
	for _, t := range tasks {
		key := groupKey(t, field)
		groups[key] = append(groups[key], t)
	}

	keys := sortedGroupKeys(groups, field)

	result := GroupedSummary{Groups: make([]GroupSummary, 0, len(keys))}
	for _, key := range keys {
		g := GroupSummary{Key: key, Total: len(groups[key])}
		for _, t := range groups[key] {
			if t.Completed {
				g.Completed++
			} else {
				g.Active++
			}
		}
		result.Groups = append(result.Groups, g)
	}
	return result
}

func groupKey(t *task.Task, field string) string {
	switch field {
	case "priority":
		return string(t.Priority)
	case "status":
		if t.Completed {
			return StatusCompleted
		}
		return StatusActive
	default: // category
		return t.Category
	}
}

func sortedGroupKeys(groups map[string][]*task.Task, field string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	switch field {
	case "priority":
		sort.SliceStable(keys, func(i, j int) bool {
			return task.Priority(keys[i]).Rank() < task.Priority(keys[j]).Rank()
		})
	default:
		// Lexicographic covers categories and status groups alike:
		// "active" sorts before "completed".
		sort.Strings(keys)
	}
	return keys
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{"category", "priority", "status"}
}
