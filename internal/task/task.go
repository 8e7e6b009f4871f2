// Package task defines the task record and its field defaults.
package task

import (
	"time"

	"github.com/mertens-software-gmbh/todo/internal/date"
)

// DefaultCategory is the sentinel category applied when none is given.
const DefaultCategory = "uncategorized"

// Priority is a task priority level.
type Priority string

// Priority levels, ordered from most to least urgent.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the valid priority levels in rank order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank returns the sort rank of a priority: high=0, medium=1, low=2.
// Unknown priorities rank after all known ones.
func (p Priority) Rank() int {
	for i, known := range Priorities {
		if p == known {
			return i
		}
	}
	return len(Priorities)
}

// Valid reports whether p is a known priority level.
func (p Priority) Valid() bool {
	return p.Rank() < len(Priorities)
}

// Task represents a single to-do record.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    Priority   `json:"priority"`
	Due         *date.Date `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Fields holds the caller-supplied mutable fields of a task.
// Omitted fields resolve to defaults, both on create and on update:
// an update replaces every mutable field, it does not merge.
type Fields struct {
	Title       string
	Description string
	Category    string
	Priority    Priority
	Due         *date.Date
}

// withDefaults returns a copy of f with defaults applied to empty fields.
// Title is passed through as-is; an empty title is accepted.
func (f Fields) withDefaults() Fields {
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	return f
}

// New creates a Task from the given fields with a fresh id,
// defaults applied, completed=false, and createdAt set to now.
func New(f Fields, now time.Time) *Task {
	f = f.withDefaults()
	return &Task{
		ID:          NewID(),
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Priority:    f.Priority,
		Due:         f.Due,
		CreatedAt:   now,
	}
}

// Apply overwrites the task's mutable fields with f, defaults re-applied.
// ID, Completed, and CreatedAt are left untouched.
func (t *Task) Apply(f Fields) {
	f = f.withDefaults()
	t.Title = f.Title
	t.Description = f.Description
	t.Category = f.Category
	t.Priority = f.Priority
	t.Due = f.Due
}

// FieldsOf returns the task's current mutable fields. Callers that want
// merge-style edits build on this before invoking the overwriting update.
func (t *Task) FieldsOf() Fields {
	return Fields{
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		Due:         t.Due,
	}
}

// Overdue reports whether the task has a due date before today and is
// not yet completed.
func (t *Task) Overdue(today date.Date) bool {
	return t.Due != nil && !t.Completed && t.Due.Before(today.Time)
}
