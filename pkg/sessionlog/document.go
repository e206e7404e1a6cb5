package sessionlog

import (
	"fmt"
	"strings"
)

// RawLogMarker is the heading that separates the summary region from
// the raw archived transcript. The marker line belongs to the raw
// region.
const RawLogMarker = "## Raw Session Log"

// Quick Reference field labels, matched at the start of a line inside
// the summary region.
const (
	labelKeywords = "**Confidence keywords:**"
	labelProjects = "**Projects:**"
	labelOutcome  = "**Outcome:**"
)

// QuickRef holds the fields parsed from a log's Quick Reference block.
type QuickRef struct {
	Keywords []string
	Projects []string
	Outcome  string
}

// Split divides a log document into its summary and raw regions at the
// first RawLogMarker found at the start of a line. When the marker is
// present, summary+raw reassembles the input exactly and raw begins
// with the marker. When absent, the whole content is summary and
// hasRaw is false. Split only slices the input; it never copies.
func Split(content string) (summary, raw string, hasRaw bool) {
	idx := markerIndex(content)
	if idx < 0 {
		return content, "", false
	}
	return content[:idx], content[idx:], true
}

// markerIndex returns the byte offset of the first RawLogMarker that
// occupies a whole line, or -1.
func markerIndex(content string) int {
	offset := 0
	for {
		idx := strings.Index(content[offset:], RawLogMarker)
		if idx < 0 {
			return -1
		}
		idx += offset
		atLineStart := idx == 0 || content[idx-1] == '\n'
		end := idx + len(RawLogMarker)
		atLineEnd := end == len(content) || content[end] == '\n' || content[end] == '\r'
		if atLineStart && atLineEnd {
			return idx
		}
		offset = end
	}
}

// ParseQuickRef extracts the Quick Reference fields from a summary
// region. Labels are fixed literals matched at the start of a line
// (leading list bullets and whitespace tolerated). Missing labels
// leave their fields zero; list fields preserve source order.
func ParseQuickRef(summary string) QuickRef {
	var qr QuickRef
	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		switch {
		case strings.HasPrefix(line, labelKeywords):
			qr.Keywords = splitCommaList(strings.TrimPrefix(line, labelKeywords))
		case strings.HasPrefix(line, labelProjects):
			qr.Projects = splitCommaList(strings.TrimPrefix(line, labelProjects))
		case strings.HasPrefix(line, labelOutcome):
			qr.Outcome = strings.TrimSpace(strings.TrimPrefix(line, labelOutcome))
		}
	}
	return qr
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Document is the input to Compose: the pieces of a canonical session
// log before rendering.
type Document struct {
	Title    string
	Keywords []string
	Projects []string
	Outcome  string
	Summary  string
	Raw      string // raw transcript; empty means no raw region
}

// Compose renders the canonical markdown document: a title, the Quick
// Reference block with its three fixed labels, the summary body, and,
// when a raw transcript is present, the RawLogMarker followed by the
// transcript. Compose and Split are inverses at the region level.
func Compose(d Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Session Summary: %s\n\n", d.Title)
	b.WriteString("## Quick Reference\n")
	fmt.Fprintf(&b, "%s %s\n", labelKeywords, strings.Join(d.Keywords, ", "))
	fmt.Fprintf(&b, "%s %s\n", labelProjects, strings.Join(d.Projects, ", "))
	fmt.Fprintf(&b, "%s %s\n", labelOutcome, d.Outcome)
	b.WriteString("\n## Summary\n\n")
	b.WriteString(strings.TrimRight(d.Summary, "\n"))
	b.WriteString("\n")
	if d.Raw != "" {
		b.WriteString("\n" + RawLogMarker + "\n\n")
		b.WriteString(strings.TrimRight(d.Raw, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}
