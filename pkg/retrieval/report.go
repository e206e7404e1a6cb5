package retrieval

import (
	"time"

	"github.com/EliaAlberti/superbeads/pkg/project"
	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
)

const (
	// DefaultRecentCount is the conventional recent-session window.
	// Callers apply it when the user left the count unset; Normalize
	// never substitutes it, so an explicit zero stays zero.
	DefaultRecentCount = 3

	// MaxRecentCount caps how many recent sessions one query may load.
	MaxRecentCount = 50
)

// Query is the caller's retrieval request.
type Query struct {
	// RecentCount is the number of recent sessions to load. Zero loads
	// none; callers wanting the usual window pass DefaultRecentCount
	// (or their configured value) themselves.
	RecentCount int

	// Topic is an optional keyword for the related-sessions search.
	Topic string
}

// Normalize clamps RecentCount into [0, MaxRecentCount]. Zero is a
// valid request, not a stand-in for unset.
func (q *Query) Normalize() {
	if q.RecentCount < 0 {
		q.RecentCount = 0
	}
	if q.RecentCount > MaxRecentCount {
		q.RecentCount = MaxRecentCount
	}
}

// LogBrief is the one-line view of a session log: date and topic from
// the filename, outcome from the Quick Reference block.
type LogBrief struct {
	Path    string
	Date    time.Time
	Topic   string
	Outcome string
}

// LatestLog is the most recent session, shown in full summary detail.
type LatestLog struct {
	LogBrief
	Summary  string
	Keywords []string
	Projects []string
}

// RelatedLog is a topic-search hit outside the recent window.
type RelatedLog struct {
	Path   string
	Date   time.Time
	Topic  string
	Reason sessionlog.MatchReason
}

// Report is the assembled retrieval result. Nil Memory means no
// project-memory file was found; nil Latest with Found == 0 means the
// archive has no history yet. Renderers must omit, not empty-render,
// the sections those states disable.
type Report struct {
	Root string

	Memory *project.Memory

	Latest  *LatestLog
	Recent  []LogBrief
	Related []RelatedLog

	// Requested and Found state honestly how many recent sessions the
	// caller asked for versus how many the archive could supply.
	Requested int
	Found     int

	// SummaryTokens is the token footprint of the loaded summaries,
	// zero when the tokenizer is unavailable.
	SummaryTokens int
}

// HasMemory reports whether a project-memory file was found.
func (r *Report) HasMemory() bool {
	return r.Memory != nil
}

// HasHistory reports whether the archive held any sessions.
func (r *Report) HasHistory() bool {
	return r.Latest != nil
}

// LoadedLog is one recent session with its summary region split off
// and Quick Reference parsed. The raw region is never carried here.
type LoadedLog struct {
	Ref      sessionlog.Ref
	Summary  string
	QuickRef sessionlog.QuickRef
}

// Assemble composes the final report from its already-loaded parts.
// Related entries are the topic matches minus anything in the recent
// window (set difference by path), populated only when the query
// carried a topic.
func Assemble(root string, memory *project.Memory, recents []LoadedLog, matches []sessionlog.Match, query Query) *Report {
	report := &Report{
		Root:      root,
		Memory:    memory,
		Requested: query.RecentCount,
		Found:     len(recents),
	}
	recentPaths := make(map[string]struct{}, len(recents))
	for _, r := range recents {
		recentPaths[r.Ref.Path] = struct{}{}
	}
	if len(recents) > 0 {
		latest := recents[0]
		report.Latest = &LatestLog{
			LogBrief: LogBrief{
				Path:    latest.Ref.Path,
				Date:    latest.Ref.CreatedAt,
				Topic:   latest.Ref.Topic,
				Outcome: latest.QuickRef.Outcome,
			},
			Summary:  latest.Summary,
			Keywords: latest.QuickRef.Keywords,
			Projects: latest.QuickRef.Projects,
		}
		for _, r := range recents[1:] {
			report.Recent = append(report.Recent, LogBrief{
				Path:    r.Ref.Path,
				Date:    r.Ref.CreatedAt,
				Topic:   r.Ref.Topic,
				Outcome: r.QuickRef.Outcome,
			})
		}
	}
	if query.Topic != "" {
		for _, m := range matches {
			if _, recent := recentPaths[m.Path]; recent {
				continue
			}
			report.Related = append(report.Related, RelatedLog{
				Path:   m.Path,
				Date:   m.CreatedAt,
				Topic:  m.Topic,
				Reason: m.Reason,
			})
		}
	}
	return report
}
