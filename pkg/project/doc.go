// Package project locates the project root and loads the project
// memory document. The root is the nearest ancestor directory holding
// a recognized marker; the memory document is a single long-lived
// markdown file (CLAUDE.md or a fallback name) read here as a
// snapshot and mutated elsewhere.
package project
