package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoMemory is returned by LoadMemory when none of the recognized
// memory filenames exist at the root. It marks a distinct empty state,
// not a failure: retrieval proceeds without memory.
var ErrNoMemory = errors.New("project: no memory file found")

// Section is one "## " heading and its body inside a memory document.
type Section struct {
	Heading string
	Body    string
}

// Memory is a read-only snapshot of the project memory document.
type Memory struct {
	Path     string
	Name     string
	Content  string
	Sections []Section
}

// LoadMemory reads the first existing memory file at the root, trying
// MemoryFileNames in order. The error wraps ErrNoMemory when none
// exists.
func LoadMemory(root string) (*Memory, error) {
	for _, name := range MemoryFileNames {
		path := filepath.Join(root, name)
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("project: read memory %s: %w", path, err)
		}
		content := string(b)
		return &Memory{
			Path:     path,
			Name:     name,
			Content:  content,
			Sections: parseSections(content),
		}, nil
	}
	return nil, fmt.Errorf("project: %s: %w", root, ErrNoMemory)
}

// parseSections splits a memory document into its "## " sections.
// Text before the first heading is not a section; deeper headings stay
// inside their parent section's body.
func parseSections(content string) []Section {
	var sections []Section
	var current *Section
	var body strings.Builder
	flush := func() {
		if current != nil {
			current.Body = strings.TrimSpace(body.String())
			sections = append(sections, *current)
		}
		body.Reset()
	}
	for _, line := range strings.Split(content, "\n") {
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			flush()
			current = &Section{Heading: strings.TrimSpace(heading)}
			continue
		}
		if current != nil {
			body.WriteString(line)
			body.WriteString("\n")
		}
	}
	flush()
	return sections
}
