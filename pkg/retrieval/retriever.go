package retrieval

import (
	"context"
	"errors"
	"fmt"

	"github.com/EliaAlberti/superbeads/pkg/project"
	"github.com/EliaAlberti/superbeads/pkg/sessionlog"
	"github.com/EliaAlberti/superbeads/pkg/tokenizer"
)

// Retriever runs the full read path against one archive. The
// tokenizer may be nil; the report then carries no token counts.
type Retriever struct {
	store  *sessionlog.Store
	engine *sessionlog.SearchEngine
	tok    *tokenizer.Tokenizer
}

// NewRetriever creates a Retriever.
func NewRetriever(store *sessionlog.Store, engine *sessionlog.SearchEngine, tok *tokenizer.Tokenizer) *Retriever {
	return &Retriever{store: store, engine: engine, tok: tok}
}

// Retrieve resolves the project root from startDir and assembles the
// retrieval report for the query. No single missing piece aborts the
// whole operation: absent memory, an empty archive, and logs deleted
// mid-flight all degrade to partial results.
func (r *Retriever) Retrieve(ctx context.Context, startDir string, query Query) (*Report, error) {
	query.Normalize()
	root := project.ResolveRoot(startDir)

	memory, err := project.LoadMemory(root)
	if err != nil && !errors.Is(err, project.ErrNoMemory) {
		return nil, fmt.Errorf("retrieval: load project memory: %w", err)
	}

	refs, err := r.store.List(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("retrieval: list archive: %w", err)
	}

	recents, err := r.loadRecent(ctx, refs, query.RecentCount)
	if err != nil {
		return nil, err
	}

	var matches []sessionlog.Match
	if query.Topic != "" {
		exclude := make([]string, 0, len(recents))
		for _, rec := range recents {
			exclude = append(exclude, rec.Ref.Path)
		}
		matches, err = r.engine.Search(ctx, root, query.Topic, exclude)
		if err != nil {
			return nil, fmt.Errorf("retrieval: topic search: %w", err)
		}
	}

	report := Assemble(root, memory, recents, matches, query)
	for _, rec := range recents {
		report.SummaryTokens += r.tok.CountTokens(rec.Summary)
	}
	return report, nil
}

// loadRecent loads the summary regions of the newest n logs. Raw
// regions are discarded as soon as Split returns. Logs that vanished
// between List and Read are skipped.
func (r *Retriever) loadRecent(ctx context.Context, refs []sessionlog.Ref, n int) ([]LoadedLog, error) {
	var out []LoadedLog
	for _, ref := range refs {
		if len(out) == n {
			break
		}
		content, err := r.store.Read(ctx, ref.Path)
		if errors.Is(err, sessionlog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("retrieval: load recent log: %w", err)
		}
		summary, _, _ := sessionlog.Split(content)
		out = append(out, LoadedLog{
			Ref:      ref,
			Summary:  summary,
			QuickRef: sessionlog.ParseQuickRef(summary),
		})
	}
	return out, nil
}
