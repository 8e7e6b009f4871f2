package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/config"
	"github.com/mertens-software-gmbh/todo/internal/date"
	"github.com/mertens-software-gmbh/todo/internal/query"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

func newTestStore(t *testing.T) (*config.Config, *Store) {
	t.Helper()
	cfg, err := config.Init(filepath.Join(t.TempDir(), "todo"), "test-list")
	if err != nil {
		t.Fatalf("init config: %v", err)
	}
	st, err := Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return cfg, st
}

func TestOpenAbsentFile(t *testing.T) {
	_, st := newTestStore(t)
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for a fresh list", st.Len())
	}
}

func TestAddAppliesDefaults(t *testing.T) {
	_, st := newTestStore(t)

	got, err := st.Add(task.Fields{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if got.Category != task.DefaultCategory {
		t.Errorf("Category = %q, want %q", got.Category, task.DefaultCategory)
	}
	if got.Priority != task.PriorityMedium {
		t.Errorf("Priority = %q, want medium", got.Priority)
	}
	if got.Completed {
		t.Error("new task should not be completed")
	}
	if got.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	cfg, st := newTestStore(t)

	due := date.New(2026, time.September, 15)
	added, err := st.Add(task.Fields{
		Title:       "Renew passport",
		Description: "bring photos",
		Category:    "errands",
		Priority:    task.PriorityHigh,
		Due:         &due,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// A fresh store over the same file must see the identical record.
	st2, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := st2.Get(added.ID)
	if got == nil {
		t.Fatal("task missing after reopen")
	}
	if got.Title != added.Title || got.Description != added.Description ||
		got.Category != added.Category || got.Priority != added.Priority {
		t.Errorf("reloaded task %+v differs from %+v", got, added)
	}
	if got.Due == nil || !got.Due.Equal(due) {
		t.Errorf("Due = %v, want %v", got.Due, due)
	}
	if !got.CreatedAt.Equal(added.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, added.CreatedAt)
	}
}

func TestCorruptFileYieldsEmptyCollection(t *testing.T) {
	cfg, st := newTestStore(t)
	if _, err := st.Add(task.Fields{Title: "will vanish"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := os.WriteFile(cfg.TasksPath(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	st2, err := Open(cfg)
	if err != nil {
		t.Fatalf("open over corrupt file: %v", err)
	}
	if st2.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for corrupt data", st2.Len())
	}
}

func TestUpdateOverwrites(t *testing.T) {
	_, st := newTestStore(t)

	due := date.New(2026, time.October, 1)
	added, err := st.Add(task.Fields{
		Title:       "Plan trip",
		Description: "book hotel",
		Category:    "travel",
		Priority:    task.PriorityHigh,
		Due:         &due,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := st.ToggleComplete(added.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	got, err := st.Update(added.ID, task.Fields{Title: "Plan trip v2"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got.ID != added.ID {
		t.Errorf("ID changed to %q", got.ID)
	}
	if !got.Completed {
		t.Error("Completed must survive an update")
	}
	if !got.CreatedAt.Equal(added.CreatedAt) {
		t.Error("CreatedAt must survive an update")
	}
	if got.Description != "" || got.Category != task.DefaultCategory ||
		got.Priority != task.PriorityMedium || got.Due != nil {
		t.Errorf("omitted fields not reset to defaults: %+v", got)
	}
}

func TestUpdateUnknownIDIsAbsence(t *testing.T) {
	_, st := newTestStore(t)

	got, err := st.Update("no-such-id", task.Fields{Title: "x"})
	if err != nil {
		t.Fatalf("Update: unexpected error %v", err)
	}
	if got != nil {
		t.Errorf("Update of unknown id = %+v, want nil", got)
	}
}

func TestDelete(t *testing.T) {
	cfg, st := newTestStore(t)
	added, err := st.Add(task.Fields{Title: "remove me"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	removed, err := st.Delete(added.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Error("Delete reported no removal")
	}
	if st.Get(added.ID) != nil {
		t.Error("task still present after delete")
	}

	removed, err = st.Delete(added.ID)
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if removed {
		t.Error("second delete of same id reported a removal")
	}

	// Deletion must be durable.
	st2, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if st2.Len() != 0 {
		t.Errorf("Len() after reopen = %d, want 0", st2.Len())
	}
}

func TestToggleComplete(t *testing.T) {
	_, st := newTestStore(t)
	added, err := st.Add(task.Fields{Title: "toggle me"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := st.ToggleComplete(added.ID)
	if err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}
	if !got.Completed {
		t.Error("first toggle should complete the task")
	}

	got, err = st.ToggleComplete(added.ID)
	if err != nil {
		t.Fatalf("second ToggleComplete: %v", err)
	}
	if got.Completed {
		t.Error("second toggle should reopen the task")
	}

	got, err = st.ToggleComplete("no-such-id")
	if err != nil {
		t.Fatalf("ToggleComplete unknown id: %v", err)
	}
	if got != nil {
		t.Errorf("toggle of unknown id = %+v, want nil", got)
	}
}

func TestGetUnknownIDReturnsNil(t *testing.T) {
	_, st := newTestStore(t)
	if got := st.Get("missing"); got != nil {
		t.Errorf("Get(missing) = %+v, want nil", got)
	}
}

func TestCategories(t *testing.T) {
	_, st := newTestStore(t)
	for _, c := range []string{"work", "home", "work", ""} {
		if _, err := st.Add(task.Fields{Title: "t", Category: c}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	want := []string{"home", task.DefaultCategory, "work"}
	if got := st.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestViewFilterAndSort(t *testing.T) {
	_, st := newTestStore(t)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	st.SetNow(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	early := date.New(2024, time.January, 15)
	late := date.New(2024, time.March, 1)

	mustAdd := func(f task.Fields) *task.Task {
		t.Helper()
		tk, err := st.Add(f)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		return tk
	}

	first := mustAdd(task.Fields{Title: "first", Category: "work", Due: &late})
	mustAdd(task.Fields{Title: "second", Category: "home", Due: &early})
	mustAdd(task.Fields{Title: "third", Category: "work"})
	if _, err := st.ToggleComplete(first.ID); err != nil {
		t.Fatalf("ToggleComplete: %v", err)
	}

	// Default view: everything, most recent first.
	got := viewTitles(st)
	if !reflect.DeepEqual(got, []string{"third", "second", "first"}) {
		t.Errorf("default view = %v", got)
	}

	st.SetCategoryFilter("work")
	got = viewTitles(st)
	if !reflect.DeepEqual(got, []string{"third", "first"}) {
		t.Errorf("work view = %v", got)
	}

	st.SetStatusFilter(query.StatusActive)
	got = viewTitles(st)
	if !reflect.DeepEqual(got, []string{"third"}) {
		t.Errorf("work+active view = %v", got)
	}

	st.SetCategoryFilter(query.FilterAll)
	st.SetStatusFilter(query.FilterAll)
	st.SetSort(query.SortDueDate)
	got = viewTitles(st)
	if !reflect.DeepEqual(got, []string{"second", "first", "third"}) {
		t.Errorf("duedate view = %v, want earliest first with no-due last", got)
	}

	// View never reorders the underlying collection.
	if ids := taskTitles(st.Tasks()); !reflect.DeepEqual(ids, []string{"first", "second", "third"}) {
		t.Errorf("store order mutated by View: %v", ids)
	}
}

func viewTitles(st *Store) []string {
	return taskTitles(st.View())
}

func taskTitles(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.Title
	}
	return out
}

func TestFindByPrefix(t *testing.T) {
	_, st := newTestStore(t)
	added, err := st.Add(task.Fields{Title: "findable"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := st.Find(added.ID)
	if err != nil || got == nil || got.ID != added.ID {
		t.Fatalf("Find(full id) = %v, %v", got, err)
	}

	got, err = st.Find(added.ID[:8])
	if err != nil || got == nil || got.ID != added.ID {
		t.Fatalf("Find(prefix) = %v, %v", got, err)
	}
}

func TestFindNotFound(t *testing.T) {
	_, st := newTestStore(t)

	_, err := st.Find("zzz")
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.TaskNotFound {
		t.Fatalf("Find(zzz) error = %v, want TASK_NOT_FOUND", err)
	}
}

func TestFindAmbiguous(t *testing.T) {
	_, st := newTestStore(t)

	// Add tasks until two ids share their first hex character; with 16
	// possible values the pigeonhole guarantees a collision by task 17.
	var prefix string
	seen := make(map[byte]bool)
	for i := 0; i < 20 && prefix == ""; i++ {
		tk, err := st.Add(task.Fields{Title: "filler"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		c := tk.ID[0]
		if seen[c] {
			prefix = string(c)
		}
		seen[c] = true
	}
	if prefix == "" {
		t.Fatal("no shared id prefix after 20 tasks")
	}

	_, err := st.Find(prefix)
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.AmbiguousTaskRef {
		t.Fatalf("Find(%q) error = %v, want AMBIGUOUS_TASK_REF", prefix, err)
	}
}

func TestParseRefs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a", []string{"a"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,a,b", []string{"a", "b"}},
		{",,", []string{}},
	}
	for _, tt := range tests {
		if got := ParseRefs(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseRefs(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPersistedFieldNames(t *testing.T) {
	cfg, st := newTestStore(t)
	due := date.New(2026, time.November, 5)
	if _, err := st.Add(task.Fields{Title: "wire check", Due: &due}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	data, err := os.ReadFile(cfg.TasksPath())
	if err != nil {
		t.Fatalf("read tasks file: %v", err)
	}
	for _, field := range []string{`"id"`, `"title"`, `"description"`, `"category"`, `"priority"`, `"dueDate"`, `"completed"`, `"createdAt"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("tasks file missing field %s:\n%s", field, data)
		}
	}
}
