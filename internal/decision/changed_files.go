package decision

import (
	"sort"
	"strings"
)

// ChangedFiles is the set of paths touched by the triggering commit.
type ChangedFiles map[string]struct{}

// ParseChangedFiles splits a newline-separated file list into a set.
// Blank lines and carriage returns are dropped.
func ParseChangedFiles(list string) ChangedFiles {
	files := make(ChangedFiles)
	for _, line := range strings.Split(list, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		files[line] = struct{}{}
	}
	return files
}

// NewChangedFiles builds a set from explicit paths.
func NewChangedFiles(paths ...string) ChangedFiles {
	files := make(ChangedFiles, len(paths))
	for _, p := range paths {
		files[p] = struct{}{}
	}
	return files
}

// Contains reports whether path was changed.
func (c ChangedFiles) Contains(path string) bool {
	_, ok := c[path]
	return ok
}

// Sorted lists the changed paths in lexical order.
func (c ChangedFiles) Sorted() []string {
	paths := make([]string, 0, len(c))
	for p := range c {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
