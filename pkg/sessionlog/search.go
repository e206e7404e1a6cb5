package sessionlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// DefaultScanThreshold is the archive size at which search stops
	// loading every summary and switches to a raw line scan.
	DefaultScanThreshold = 100

	// DefaultMaxScanMatches caps how many line-scan hits are loaded
	// for reason classification in large-archive mode.
	DefaultMaxScanMatches = 5
)

// MatchReason identifies which field of a log matched the keyword.
type MatchReason string

const (
	ReasonTopic     MatchReason = "topic"
	ReasonKeywords  MatchReason = "keywords"
	ReasonSummary   MatchReason = "summary"
	ReasonRawRegion MatchReason = "raw"
)

// Match is one search hit: the log's listing metadata plus the
// highest-priority reason it matched.
type Match struct {
	Ref
	Reason MatchReason
}

// SearchEngine finds logs matching a keyword. Matching is
// case-insensitive substring throughout; the scan strategy depends on
// archive size.
type SearchEngine struct {
	store          *Store
	scanThreshold  int
	maxScanMatches int
}

// SearchOption configures a SearchEngine.
type SearchOption func(*SearchEngine)

// WithScanThreshold overrides the archive size at which search
// switches to the raw line scan. Intended for policy tests.
func WithScanThreshold(n int) SearchOption {
	return func(e *SearchEngine) {
		if n > 0 {
			e.scanThreshold = n
		}
	}
}

// WithMaxScanMatches overrides how many line-scan hits are classified
// in large-archive mode.
func WithMaxScanMatches(n int) SearchOption {
	return func(e *SearchEngine) {
		if n > 0 {
			e.maxScanMatches = n
		}
	}
}

// NewSearchEngine creates a SearchEngine over the given store.
func NewSearchEngine(store *Store, opts ...SearchOption) *SearchEngine {
	e := &SearchEngine{
		store:          store,
		scanThreshold:  DefaultScanThreshold,
		maxScanMatches: DefaultMaxScanMatches,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search returns the logs whose topic, Quick Reference keywords,
// summary body, or (in large-archive mode) raw region contain the
// keyword, newest first, excluding the given paths. Each match carries
// the single highest-priority reason (topic > keywords > summary >
// raw). Logs that vanish or turn unreadable mid-search are skipped,
// never fatal: one bad file must not empty the result set.
//
// Below the scan threshold every candidate's summary region is loaded
// and tested field by field. At or above it the engine line-scans raw
// file bytes across the archive, keeps at most the first
// maxScanMatches non-excluded hits, and loads only those for
// classification; raw archives are never all pulled into memory.
func (e *SearchEngine) Search(ctx context.Context, root, keyword string, exclude []string) ([]Match, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	refs, err := e.store.List(ctx, root)
	if err != nil {
		return nil, err
	}
	excluded := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		excluded[p] = struct{}{}
	}
	if len(refs) < e.scanThreshold {
		return e.searchSummaries(ctx, refs, keyword, excluded)
	}
	return e.searchLineScan(ctx, refs, keyword, excluded)
}

// searchSummaries is the small-archive strategy: load each candidate's
// summary region and test fields in priority order.
func (e *SearchEngine) searchSummaries(ctx context.Context, refs []Ref, keyword string, excluded map[string]struct{}) ([]Match, error) {
	var matches []Match
	for _, ref := range refs {
		if _, skip := excluded[ref.Path]; skip {
			continue
		}
		content, err := e.store.Read(ctx, ref.Path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			slog.Warn("sessionlog: skipping unreadable log during search", "path", ref.Path, "err", err)
			continue
		}
		summary, _, _ := Split(content)
		if reason, ok := classify(ref, summary, keyword); ok {
			matches = append(matches, Match{Ref: ref, Reason: reason})
		}
	}
	return matches, nil
}

// searchLineScan is the large-archive strategy: a grep-equivalent
// line scan over raw file bytes, classifying only the capped hits.
func (e *SearchEngine) searchLineScan(ctx context.Context, refs []Ref, keyword string, excluded map[string]struct{}) ([]Match, error) {
	var matches []Match
	for _, ref := range refs {
		if len(matches) == e.maxScanMatches {
			break
		}
		if _, skip := excluded[ref.Path]; skip {
			continue
		}
		hit, err := fileContains(ref.Path, keyword)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			// A file the scanner cannot get through may still match on
			// its topic, so degrade rather than skip outright.
			slog.Warn("sessionlog: scan failed, matching on topic only", "path", ref.Path, "err", err)
			hit = false
		}
		if !hit && !containsFold(ref.Topic, keyword) {
			continue
		}
		content, err := e.store.Read(ctx, ref.Path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			slog.Warn("sessionlog: skipping unreadable log during search", "path", ref.Path, "err", err)
			continue
		}
		summary, _, _ := Split(content)
		reason, ok := classify(ref, summary, keyword)
		if !ok {
			// Hit came from the raw region, past the summary boundary.
			reason = ReasonRawRegion
		}
		matches = append(matches, Match{Ref: ref, Reason: reason})
	}
	return matches, nil
}

// classify reports the highest-priority summary-region reason a log
// matches the keyword: topic, then Quick Reference keywords, then the
// summary body.
func classify(ref Ref, summary, keyword string) (MatchReason, bool) {
	if containsFold(ref.Topic, keyword) {
		return ReasonTopic, true
	}
	for _, kw := range ParseQuickRef(summary).Keywords {
		if containsFold(kw, keyword) {
			return ReasonKeywords, true
		}
	}
	if containsFold(summary, keyword) {
		return ReasonSummary, true
	}
	return "", false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// fileContains scans a file for a case-insensitive substring in
// fixed-size chunks, carrying an overlap so matches straddling a chunk
// boundary are still found. Chunking keeps memory bounded regardless
// of line length; raw transcripts with megabyte-long minified lines
// are valid input.
func fileContains(path, keyword string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	needle := []byte(strings.ToLower(keyword))
	overlap := len(needle) - 1
	chunk := make([]byte, 64*1024)
	var window []byte
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			window = append(window, bytes.ToLower(chunk[:n])...)
			if bytes.Contains(window, needle) {
				return true, nil
			}
			if len(window) > overlap {
				copy(window, window[len(window)-overlap:])
				window = window[:overlap]
			}
		}
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("sessionlog: scan %s: %w", path, err)
		}
	}
}
