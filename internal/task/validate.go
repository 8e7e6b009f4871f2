package task

import (
	"github.com/mertens-software-gmbh/todo/internal/clierr"
)

// ValidatePriority checks that a priority string names a known level.
func ValidatePriority(p string) error {
	if Priority(p).Valid() {
		return nil
	}
	allowed := make([]string, len(Priorities))
	for i, known := range Priorities {
		allowed[i] = string(known)
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", p).
		WithDetails(map[string]any{
			"priority": p,
			"allowed":  allowed,
		})
}

// ValidateDate returns a coded error for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// NotFound returns a coded error for a task reference that matched nothing.
func NotFound(ref string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", ref).
		WithDetails(map[string]any{"ref": ref})
}

// AmbiguousRef returns a coded error for an id prefix that matched
// more than one task.
func AmbiguousRef(ref string, matches []string) *clierr.Error {
	return clierr.Newf(clierr.AmbiguousTaskRef, "task reference %q is ambiguous (%d matches)", ref, len(matches)).
		WithDetails(map[string]any{
			"ref":     ref,
			"matches": matches,
		})
}
