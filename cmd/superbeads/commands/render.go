package commands

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/EliaAlberti/superbeads/pkg/retrieval"
)

// RenderReport renders a retrieval report to markdown text. Absent
// states (no memory, no history) become explicit notes, never empty
// sections. With colorize, fenced code blocks inside summaries get
// terminal syntax highlighting.
func RenderReport(r *retrieval.Report, colorize bool) string {
	var b strings.Builder

	b.WriteString("# Session Context\n\n")

	if r.HasMemory() {
		fmt.Fprintf(&b, "## Project Memory (%s)\n\n", r.Memory.Name)
		b.WriteString(strings.TrimSpace(r.Memory.Content))
		b.WriteString("\n\n")
	} else {
		b.WriteString("No project memory file found (CLAUDE.md or fallback). This looks like a fresh project.\n\n")
	}

	// A zero-session request legitimately carries no history sections;
	// the empty-archive note is only truthful when sessions were asked
	// for and none existed.
	if !r.HasHistory() && r.Requested > 0 {
		b.WriteString("No session history yet: the archive is empty.\n")
		return b.String()
	}

	if r.HasHistory() {
		fmt.Fprintf(&b, "## Latest Session: %s (%s)\n\n", r.Latest.Topic, r.Latest.Date.Format("02-01-2006 15:04"))
		if r.Latest.Outcome != "" {
			fmt.Fprintf(&b, "**Outcome:** %s\n", r.Latest.Outcome)
		}
		if len(r.Latest.Keywords) > 0 {
			fmt.Fprintf(&b, "**Keywords:** %s\n", strings.Join(r.Latest.Keywords, ", "))
		}
		if len(r.Latest.Projects) > 0 {
			fmt.Fprintf(&b, "**Projects:** %s\n", strings.Join(r.Latest.Projects, ", "))
		}
		b.WriteString("\n")
		summary := strings.TrimSpace(r.Latest.Summary)
		if colorize {
			summary = highlightCodeBlocks(summary)
		}
		b.WriteString(summary)
		b.WriteString("\n\n")
	}

	if len(r.Recent) > 0 {
		b.WriteString("## Recent Sessions\n\n")
		for _, rec := range r.Recent {
			line := fmt.Sprintf("- %s — %s", rec.Date.Format("02-01-2006"), rec.Topic)
			if rec.Outcome != "" {
				line += ": " + rec.Outcome
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(r.Related) > 0 {
		b.WriteString("## Related Sessions\n\n")
		for _, rel := range r.Related {
			fmt.Fprintf(&b, "- %s — %s (matched on %s)\n",
				rel.Date.Format("02-01-2006"), rel.Topic, rel.Reason)
		}
		b.WriteString("\n")
	}

	if r.Found < r.Requested {
		fmt.Fprintf(&b, "Found %d recent sessions, requested %d.\n", r.Found, r.Requested)
	}
	if r.SummaryTokens > 0 {
		fmt.Fprintf(&b, "Loaded summaries span about %d tokens.\n", r.SummaryTokens)
	}
	return b.String()
}

// highlightCodeBlocks replaces fenced code blocks with terminal-
// highlighted renditions. Blocks chroma cannot handle pass through
// unchanged.
func highlightCodeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	var code []string
	lang := ""
	inBlock := false
	for _, line := range lines {
		switch {
		case !inBlock && strings.HasPrefix(line, "```"):
			inBlock = true
			lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
			code = code[:0]
		case inBlock && strings.HasPrefix(line, "```"):
			inBlock = false
			out = append(out, highlight(strings.Join(code, "\n"), lang))
		case inBlock:
			code = append(code, line)
		default:
			out = append(out, line)
		}
	}
	if inBlock {
		// Unterminated fence: emit what we collected, unhighlighted.
		out = append(out, "```"+lang)
		out = append(out, code...)
	}
	return strings.Join(out, "\n")
}

func highlight(code, lang string) string {
	if lang == "" {
		lang = "text"
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, code, lang, "terminal256", "monokai"); err != nil {
		return "```" + lang + "\n" + code + "\n```"
	}
	return strings.TrimRight(buf.String(), "\n")
}
