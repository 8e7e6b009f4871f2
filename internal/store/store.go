// Package store owns the task collection, its filter/sort state, and
// persistence of the whole collection to a single JSON file.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/query"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

const fileMode = 0o600

// Store holds the ordered task sequence and the current view state.
// A Store is constructed with Open and passed by reference; it is not
// safe for concurrent use.
type Store struct {
	cfg     *config.Config
	tasks   []*task.Task
	filter  query.Options
	sortKey string
	now     func() time.Time
}

// Open loads the task collection from the config's tasks file. An
// absent or unreadable file yields an empty collection; a write error
// on a later mutation is reported by that mutation.
func Open(cfg *config.Config) (*Store, error) {
	s := &Store{
		cfg:     cfg,
		filter:  query.Options{Category: query.FilterAll, Status: query.FilterAll},
		sortKey: cfg.DefaultSortKey(),
		now:     time.Now,
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the todo directory the store persists into.
func (s *Store) Dir() string {
	return s.cfg.Dir()
}

// SetNow overrides the clock used for creation timestamps (for testing).
func (s *Store) SetNow(fn func() time.Time) {
	s.now = fn
}

// Reload re-reads the tasks file, replacing the in-memory sequence.
// Filter and sort state are kept. Absent or corrupt data is treated as
// an empty collection, not an error.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.cfg.TasksPath()) //nolint:gosec // tasks path from trusted config
	if err != nil {
		if os.IsNotExist(err) {
			s.tasks = nil
			return nil
		}
		return fmt.Errorf("reading tasks file: %w", err)
	}

	var tasks []*task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		// Corrupt stored data counts as "no saved data".
		s.tasks = nil
		return nil
	}
	s.tasks = tasks
	return nil
}

// persist serializes the entire sequence to the tasks file. Called
// after every mutation; there is no incremental persistence.
func (s *Store) persist() error {
	tasks := s.tasks
	if tasks == nil {
		tasks = []*task.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling tasks: %w", err)
	}
	if err := os.WriteFile(s.cfg.TasksPath(), append(data, '\n'), fileMode); err != nil {
		return fmt.Errorf("writing tasks file: %w", err)
	}
	return nil
}

// Add creates a task from the given fields with defaults applied,
// appends it to the sequence, and persists. The created task is
// returned. Title is not validated; an empty title is accepted.
func (s *Store) Add(f task.Fields) (*task.Task, error) {
	t := task.New(f, s.now())
	s.tasks = append(s.tasks, t)
	if err := s.persist(); err != nil {
		return nil, err
	}
	logMutation(s.cfg.Dir(), "add", t.ID, t.Title)
	return t, nil
}

// Update overwrites the mutable fields of the task with the given id,
// re-applying defaults for omitted fields, and persists. It returns
// (nil, nil) when no task matches: an unknown id is a recoverable
// absence, not an error.
func (s *Store) Update(id string, f task.Fields) (*task.Task, error) {
	t := s.Get(id)
	if t == nil {
		return nil, nil
	}
	t.Apply(f)
	if err := s.persist(); err != nil {
		return nil, err
	}
	logMutation(s.cfg.Dir(), "update", t.ID, t.Title)
	return t, nil
}

// Delete removes the first task matching id and persists. The boolean
// reports whether a removal occurred.
func (s *Store) Delete(id string) (bool, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			title := t.Title
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			if err := s.persist(); err != nil {
				return false, err
			}
			logMutation(s.cfg.Dir(), "delete", id, title)
			return true, nil
		}
	}
	return false, nil
}

// ToggleComplete flips the completed flag of the task with the given
// id and persists. Returns (nil, nil) when no task matches.
func (s *Store) ToggleComplete(id string) (*task.Task, error) {
	t := s.Get(id)
	if t == nil {
		return nil, nil
	}
	t.Completed = !t.Completed
	if err := s.persist(); err != nil {
		return nil, err
	}
	action := "reopen"
	if t.Completed {
		action = "complete"
	}
	logMutation(s.cfg.Dir(), action, t.ID, t.Title)
	return t, nil
}

// Get returns the task with the given id, or nil. No side effects.
func (s *Store) Get(id string) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Tasks returns the full sequence in insertion order as a fresh slice.
func (s *Store) Tasks() []*task.Task {
	out := make([]*task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Categories returns the distinct categories present across all tasks,
// sorted lexicographically.
func (s *Store) Categories() []string {
	return query.Categories(s.tasks)
}

// SetCategoryFilter sets the category restriction for View. The value
// query.FilterAll passes every category. Filter state is not persisted.
func (s *Store) SetCategoryFilter(category string) {
	s.filter.Category = category
}

// SetStatusFilter sets the completion-status restriction for View.
func (s *Store) SetStatusFilter(status string) {
	s.filter.Status = status
}

// SetSort sets the active sort key for View.
func (s *Store) SetSort(key string) {
	s.sortKey = key
}

// Filter returns the current filter state.
func (s *Store) Filter() query.Options {
	return s.filter
}

// SortKey returns the active sort key.
func (s *Store) SortKey() string {
	return s.sortKey
}

// View applies the current filter and sort to the collection and
// returns a fresh slice. The underlying store order is never mutated.
func (s *Store) View() []*task.Task {
	result := query.Filter(s.tasks, s.filter)
	query.Sort(result, s.sortKey)
	return result
}
