package pathutils

import (
	"path/filepath"
	"strings"
)

// PathListSanitizer normalizes file arguments collected from the command line.
type PathListSanitizer struct {
	homeExpander *HomeExpander
}

// NewPathListSanitizer constructs a sanitizer that expands home shortcuts with the provided expander.
// A nil expander falls back to the operating system home directory.
func NewPathListSanitizer(homeExpander *HomeExpander) *PathListSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &PathListSanitizer{homeExpander: homeExpander}
}

// Sanitize trims whitespace, expands "~", cleans each path, and drops empty or repeated entries while keeping order.
func (sanitizer *PathListSanitizer) Sanitize(candidatePaths []string) []string {
	expander := NewHomeExpander()
	if sanitizer != nil {
		expander = sanitizer.homeExpander
	}

	sanitizedPaths := make([]string, 0, len(candidatePaths))
	seenPaths := make(map[string]struct{}, len(candidatePaths))
	for _, candidatePath := range candidatePaths {
		trimmedCandidate := strings.TrimSpace(candidatePath)
		if len(trimmedCandidate) == 0 {
			continue
		}

		cleanedPath := filepath.Clean(expander.Expand(trimmedCandidate))
		if _, seen := seenPaths[cleanedPath]; seen {
			continue
		}
		seenPaths[cleanedPath] = struct{}{}
		sanitizedPaths = append(sanitizedPaths, cleanedPath)
	}

	if len(sanitizedPaths) == 0 {
		return nil
	}
	return sanitizedPaths
}
