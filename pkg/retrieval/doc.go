// Package retrieval orchestrates the read path: resolve the project
// root, snapshot the project memory, load the most recent session
// summaries, run the optional topic search, and assemble everything
// into one structured report. Raw transcript regions are discarded the
// moment a summary is split off; they are never held for listing.
package retrieval
