package engine

import (
	"fmt"
	"strings"
)

// NoSolutionsError is returned when the root configuration declares no
// solutions.
type NoSolutionsError struct{}

func (NoSolutionsError) Error() string {
	return "No solution specified"
}

// ConflictingRevisionError is returned when one path is pinned to two
// different revisions.
type ConflictingRevisionError struct {
	Path      string
	Revisions []string
}

func (e *ConflictingRevisionError) Error() string {
	return "Conflicting revision numbers specified."
}

// Detail names the path and the revisions that clashed.
func (e *ConflictingRevisionError) Detail() string {
	return fmt.Sprintf("%s pinned to %s", e.Path, strings.Join(e.Revisions, " and "))
}

// HookError reports a hook action that failed. Status is the exit status
// the process should end with.
type HookError struct {
	Action []string
	Status int
	Err    error
}

func (e *HookError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("hook '%s' failed with status %d", strings.Join(e.Action, " "), e.Status)
	}
	return fmt.Sprintf("hook '%s' failed: %v", strings.Join(e.Action, " "), e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
