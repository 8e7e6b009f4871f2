package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/mertens-software-gmbh/todo/internal/clierr"
	"github.com/mertens-software-gmbh/todo/internal/query"
	"github.com/mertens-software-gmbh/todo/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no todo list found (run 'todo init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the todo list configuration.
type Config struct {
	Version   int            `yaml:"version"`
	List      ListConfig     `yaml:"list"`
	TasksFile string         `yaml:"tasks_file"`
	Defaults  DefaultsConfig `yaml:"defaults"`
	TUI       TUIConfig      `yaml:"tui,omitempty"`

	// dir is the absolute path to the todo directory (not serialized).
	dir string `yaml:"-"`
}

// ListConfig holds list metadata.
type ListConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks and views.
type DefaultsConfig struct {
	Priority string `yaml:"priority"`
	Category string `yaml:"category"`
	Sort     string `yaml:"sort,omitempty"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	ShowDescriptions bool `yaml:"show_descriptions,omitempty"`
}

// Dir returns the absolute path to the todo directory.
func (c *Config) Dir() string {
	return c.dir
}

// TasksPath returns the absolute path to the tasks file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.dir, c.TasksFile)
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// SetDir sets the todo directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version:   CurrentVersion,
		List:      ListConfig{Name: name},
		TasksFile: DefaultTasksFile,
		Defaults: DefaultsConfig{
			Priority: DefaultPriority,
			Category: DefaultCategory,
			Sort:     DefaultSort,
		},
	}
}

// DefaultSortKey returns the configured default sort key, falling back
// to created when unset.
func (c *Config) DefaultSortKey() string {
	if c.Defaults.Sort == "" {
		return DefaultSort
	}
	return c.Defaults.Sort
}

// ApplyTaskDefaults fills the category and priority of f from the
// configured defaults when the caller left them empty. The store's own
// defaulting still backstops anything left blank here.
func (c *Config) ApplyTaskDefaults(f task.Fields) task.Fields {
	if f.Category == "" {
		f.Category = c.Defaults.Category
	}
	if f.Priority == "" && task.Priority(c.Defaults.Priority).Valid() {
		f.Priority = task.Priority(c.Defaults.Priority)
	}
	return f
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.List.Name == "" {
		return fmt.Errorf("%w: list.name is required", ErrInvalid)
	}
	if c.TasksFile == "" {
		return fmt.Errorf("%w: tasks_file is required", ErrInvalid)
	}
	if !task.Priority(c.Defaults.Priority).Valid() {
		return fmt.Errorf("%w: default priority %q is not a valid priority", ErrInvalid, c.Defaults.Priority)
	}
	if c.Defaults.Category == "" {
		return fmt.Errorf("%w: defaults.category is required", ErrInvalid)
	}
	if c.Defaults.Sort != "" && !query.ValidSortKey(c.Defaults.Sort) {
		return fmt.Errorf("%w: default sort %q is not a valid sort key", ErrInvalid, c.Defaults.Sort)
	}
	return nil
}

// Init creates a new todo list in the given directory with default settings.
func Init(dir, name string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.ListAlreadyExists, "a todo list already exists in %s", absDir)
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating todo directory: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given todo directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindDir walks upward from startDir looking for a todo directory
// containing config.yml. Returns the absolute path to the todo directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the todo directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.ListNotFound,
				"no todo list found (run 'todo init' to create one)")
		}
		dir = parent
	}
}
