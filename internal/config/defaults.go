// Package config handles todo list configuration.
package config

const (
	// DefaultDir is the default todo directory name.
	DefaultDir = "todo"
	// DefaultTasksFile is the default tasks file name within the todo directory.
	DefaultTasksFile = "tasks.json"
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = "medium"
	// DefaultCategory is the default category for new tasks.
	DefaultCategory = "uncategorized"
	// DefaultSort is the default sort key for views.
	DefaultSort = "created"

	// ConfigFileName is the name of the config file within the todo directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)
