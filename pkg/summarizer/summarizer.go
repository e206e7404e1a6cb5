package summarizer

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Draft is the structured output of a summarization pass, ready to be
// composed into a canonical session-log document.
type Draft struct {
	Topic    string
	Keywords []string
	Projects []string
	Outcome  string
	Summary  string
}

// Summarizer drafts a session summary from a raw transcript.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (*Draft, error)
}

// Heuristic is an offline Summarizer. It derives the topic from the
// transcript's opening line, keywords from word frequency, and the
// outcome from the closing line. Deterministic, no network.
type Heuristic struct{}

// maxHeuristicKeywords caps the frequency-derived keyword list.
const maxHeuristicKeywords = 6

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "that": {}, "this": {}, "with": {}, "from": {},
	"have": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"about": {}, "into": {}, "then": {}, "them": {}, "they": {},
	"there": {}, "here": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "your": {}, "just": {}, "like": {}, "been": {},
	"were": {}, "assistant": {}, "user": {},
}

// Summarize implements Summarizer.
func (Heuristic) Summarize(_ context.Context, transcript string) (*Draft, error) {
	lines := significantLines(transcript)
	if len(lines) == 0 {
		return nil, fmt.Errorf("summarizer: empty transcript")
	}
	first := lines[0]
	last := lines[len(lines)-1]
	return &Draft{
		Topic:    topicFromLine(first),
		Keywords: frequentWords(transcript),
		Outcome:  truncate(last, 120),
		Summary:  heuristicBody(lines),
	}, nil
}

func significantLines(transcript string) []string {
	var out []string
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "user:")
		line = strings.TrimPrefix(line, "assistant:")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// topicFromLine keeps the first few significant words of a line as the
// topic. Slugification happens at the store layer.
func topicFromLine(line string) string {
	words := strings.Fields(line)
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

// frequentWords returns the most frequent non-stopword terms, ties
// broken alphabetically so the output is stable.
func frequentWords(transcript string) []string {
	counts := map[string]int{}
	for _, word := range strings.Fields(strings.ToLower(transcript)) {
		word = strings.Trim(word, ".,;:!?\"'()[]{}`")
		if len(word) < 4 {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		counts[word]++
	}
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > maxHeuristicKeywords {
		words = words[:maxHeuristicKeywords]
	}
	return words
}

func heuristicBody(lines []string) string {
	if len(lines) > 5 {
		lines = lines[:5]
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("- ")
		b.WriteString(truncate(line, 160))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
