package query

import (
	"sort"

	"github.com/mertens-software-gmbh/todo/internal/task"
)

// Sort keys.
const (
	SortCreated  = "created"
	SortPriority = "priority"
	SortDueDate  = "duedate"
)

// SortKeys lists the valid sort keys.
var SortKeys = []string{SortCreated, SortPriority, SortDueDate}

// ValidSortKey reports whether key is a recognized sort key.
func ValidSortKey(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Sort orders tasks in place by the given key:
//   - created: most recently created first
//   - priority: by rank, high before medium before low
//   - duedate: earliest due first; tasks without a due date sort after
//     all tasks that have one
//
// Unknown keys fall back to created.
func Sort(tasks []*task.Task, key string) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return less(tasks[i], tasks[j], key)
	})
}

func less(a, b *task.Task, key string) bool {
	switch key {
	case SortPriority:
		return a.Priority.Rank() < b.Priority.Rank()
	case SortDueDate:
		return lessDue(a, b)
	default:
		return a.CreatedAt.After(b.CreatedAt)
	}
}

func lessDue(a, b *task.Task) bool {
	if a.Due == nil && b.Due == nil {
		return false
	}
	if a.Due == nil {
		return false // absent due dates sort last
	}
	if b.Due == nil {
		return true
	}
	return a.Due.Compare(*b.Due) < 0
}
