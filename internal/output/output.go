// Package output renders CLI results as a table, JSON, or compact lines.
package output

import "os"

// Format selects how command output is rendered.
type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCompact Format = "compact"
)

// envVar overrides the default format when no flag is set.
const envVar = "TODO_OUTPUT"

// Detect resolves the output format. Explicit flags win, then the
// TODO_OUTPUT environment variable, then the table default.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := fromEnv(); ok {
		return f
	}
	return FormatTable
}

func fromEnv() (Format, bool) {
	switch os.Getenv(envVar) {
	case "json":
		return FormatJSON, true
	case "table":
		return FormatTable, true
	case "compact", "oneline":
		return FormatCompact, true
	}
	return FormatTable, false
}
