package store

import (
	"strings"

	"github.com/mertens-software-gmbh/todo/internal/task"
)

// Find resolves a task reference to a task. A reference is either a
// full id or a unique id prefix. A prefix matching more than one task
// is an ambiguity error; no match is a not-found error.
//
// Unlike Get, Find reports absence as a coded error because it serves
// user-typed references at the CLI surface.
func (s *Store) Find(ref string) (*task.Task, error) {
	if t := s.Get(ref); t != nil {
		return t, nil
	}

	var matches []*task.Task
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return nil, task.NotFound(ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, t := range matches {
			ids[i] = t.ID
		}
		return nil, task.AmbiguousRef(ref, ids)
	}
}

// ParseRefs splits a comma-separated reference list into deduplicated,
// trimmed references.
func ParseRefs(arg string) []string {
	parts := strings.Split(arg, ",")
	seen := make(map[string]bool, len(parts))
	refs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		refs = append(refs, p)
		seen[p] = true
	}
	return refs
}
