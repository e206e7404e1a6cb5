package project

import (
	"os"
	"path/filepath"
)

// MemoryFileNames are the recognized project-memory filenames, in
// lookup order.
var MemoryFileNames = []string{
	"CLAUDE.md",
	"CLAUDE.local.md",
	"AGENTS.md",
	"GEMINI.md",
}

type rootMarker struct {
	name string
	dir  bool
}

// rootMarkers are checked in order at each directory level. The memory
// filenames come first, then the archive directory, then the
// version-control marker.
var rootMarkers = []rootMarker{
	{"CLAUDE.md", false},
	{"CLAUDE.local.md", false},
	{"AGENTS.md", false},
	{"GEMINI.md", false},
	{"CC-Session-Logs", true},
	{".git", true},
}

// ResolveRoot walks upward from startDir and returns the first
// ancestor (startDir included) containing a root marker. When no
// ancestor qualifies it returns startDir itself, so an archive
// location is always resolvable. ResolveRoot never fails.
func ResolveRoot(startDir string) string {
	dir := filepath.Clean(startDir)
	for {
		if hasRootMarker(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Clean(startDir)
		}
		dir = parent
	}
}

func hasRootMarker(dir string) bool {
	for _, m := range rootMarkers {
		info, err := os.Stat(filepath.Join(dir, m.name))
		if err != nil {
			continue
		}
		if info.IsDir() == m.dir {
			return true
		}
	}
	return false
}
