package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

func TestInitAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "todo")

	cfg, err := Init(dir, "groceries")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if cfg.List.Name != "groceries" {
		t.Errorf("List.Name = %q", cfg.List.Name)
	}
	if cfg.TasksFile != DefaultTasksFile {
		t.Errorf("TasksFile = %q", cfg.TasksFile)
	}
	if cfg.Defaults.Priority != DefaultPriority || cfg.Defaults.Category != DefaultCategory {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.List.Name != "groceries" {
		t.Errorf("loaded List.Name = %q", loaded.List.Name)
	}
	if loaded.Dir() != cfg.Dir() {
		t.Errorf("Dir() = %q, want %q", loaded.Dir(), cfg.Dir())
	}
}

func TestInitRefusesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "todo")
	if _, err := Init(dir, "first"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	_, err := Init(dir, "second")
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.ListAlreadyExists {
		t.Fatalf("second Init error = %v, want LIST_ALREADY_EXISTS", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nowhere"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load error = %v, want ErrNotFound", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("list: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default is valid", func(c *Config) {}, true},
		{"bad version", func(c *Config) { c.Version = 99 }, false},
		{"missing name", func(c *Config) { c.List.Name = "" }, false},
		{"missing tasks file", func(c *Config) { c.TasksFile = "" }, false},
		{"bad priority", func(c *Config) { c.Defaults.Priority = "whenever" }, false},
		{"missing category", func(c *Config) { c.Defaults.Category = "" }, false},
		{"bad sort", func(c *Config) { c.Defaults.Sort = "alphabetical" }, false},
		{"empty sort falls back", func(c *Config) { c.Defaults.Sort = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault("test")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestApplyTaskDefaults(t *testing.T) {
	cfg := NewDefault("test")
	cfg.Defaults.Priority = "high"
	cfg.Defaults.Category = "chores"

	got := cfg.ApplyTaskDefaults(task.Fields{Title: "empty fields"})
	if got.Category != "chores" {
		t.Errorf("Category = %q, want chores", got.Category)
	}
	if got.Priority != task.PriorityHigh {
		t.Errorf("Priority = %q, want high", got.Priority)
	}

	// Explicit values always win over configured defaults.
	got = cfg.ApplyTaskDefaults(task.Fields{Category: "work", Priority: task.PriorityLow})
	if got.Category != "work" || got.Priority != task.PriorityLow {
		t.Errorf("explicit fields overridden: %+v", got)
	}

	// An invalid configured priority is ignored rather than propagated.
	cfg.Defaults.Priority = "whenever"
	got = cfg.ApplyTaskDefaults(task.Fields{})
	if got.Priority != "" {
		t.Errorf("Priority = %q, want empty for invalid default", got.Priority)
	}
}

func TestDefaultSortKey(t *testing.T) {
	cfg := NewDefault("test")
	if got := cfg.DefaultSortKey(); got != DefaultSort {
		t.Errorf("DefaultSortKey() = %q, want %q", got, DefaultSort)
	}
	cfg.Defaults.Sort = "priority"
	if got := cfg.DefaultSortKey(); got != "priority" {
		t.Errorf("DefaultSortKey() = %q, want priority", got)
	}
	cfg.Defaults.Sort = ""
	if got := cfg.DefaultSortKey(); got != DefaultSort {
		t.Errorf("DefaultSortKey() with empty sort = %q, want %q", got, DefaultSort)
	}
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	todoDir := filepath.Join(root, DefaultDir)
	if _, err := Init(todoDir, "test"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	// From a nested directory, the walk finds the list at the root.
	got, err := FindDir(nested)
	if err != nil {
		t.Fatalf("FindDir: %v", err)
	}
	if got != todoDir {
		t.Errorf("FindDir(nested) = %q, want %q", got, todoDir)
	}

	// From inside the todo directory itself.
	got, err = FindDir(todoDir)
	if err != nil {
		t.Fatalf("FindDir: %v", err)
	}
	if got != todoDir {
		t.Errorf("FindDir(todoDir) = %q, want %q", got, todoDir)
	}
}

func TestFindDirNotFound(t *testing.T) {
	_, err := FindDir(t.TempDir())
	var ce *clierr.Error
	if !errors.As(err, &ce) || ce.Code != clierr.ListNotFound {
		t.Fatalf("FindDir error = %v, want LIST_NOT_FOUND", err)
	}
}
