// Package sessionlog implements the on-disk session archive: canonical
// log naming, the markdown document format with its summary/raw split,
// an atomic file store under {root}/CC-Session-Logs/, and keyword
// search with a size-dependent scan strategy.
//
// A session log is a single markdown file. Everything before the
// "## Raw Session Log" heading is the summary region, intended for
// cheap repeated reads; everything from the heading onward is the raw
// archived transcript, loaded only on demand.
package sessionlog
