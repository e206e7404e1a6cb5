package sessionlog

import (
	"strings"
	"testing"
)

const sampleLog = `# Session Summary: fix auth token refresh

## Quick Reference
**Confidence keywords:** auth, jwt, refresh-token
**Projects:** api-gateway
**Outcome:** Token refresh race fixed and covered by tests

## Summary

Fixed the refresh race by serializing renewals.

## Raw Session Log

user: the token keeps expiring mid-request
assistant: looking at the refresh path now
`

func TestSplitWithMarker(t *testing.T) {
	summary, raw, hasRaw := Split(sampleLog)
	if !hasRaw {
		t.Fatal("expected raw region")
	}
	if summary+raw != sampleLog {
		t.Error("summary+raw must reassemble the input exactly")
	}
	if !strings.HasPrefix(raw, RawLogMarker) {
		t.Errorf("raw region must start with the marker, got %q", raw[:30])
	}
	if strings.Contains(summary, RawLogMarker) {
		t.Error("summary region must not contain the marker")
	}
}

func TestSplitWithoutMarker(t *testing.T) {
	content := "# Session Summary: minimal\n\nJust a summary, no transcript.\n"
	summary, raw, hasRaw := Split(content)
	if hasRaw {
		t.Fatal("expected no raw region")
	}
	if summary != content {
		t.Error("summary must be the entire content")
	}
	if raw != "" {
		t.Errorf("raw = %q, want empty", raw)
	}
}

func TestSplitIgnoresMarkerMidLine(t *testing.T) {
	content := "The heading ## Raw Session Log appears mid-line here.\n"
	if _, _, hasRaw := Split(content); hasRaw {
		t.Error("mid-line marker text must not split the document")
	}
	content = RawLogMarker + " with trailing words\nbody\n"
	if _, _, hasRaw := Split(content); hasRaw {
		t.Error("marker with trailing words on the line must not split")
	}
}

func TestSplitMarkerAtStart(t *testing.T) {
	content := RawLogMarker + "\n\ntranscript only\n"
	summary, raw, hasRaw := Split(content)
	if !hasRaw {
		t.Fatal("expected raw region")
	}
	if summary != "" {
		t.Errorf("summary = %q, want empty", summary)
	}
	if raw != content {
		t.Error("raw must be the entire content")
	}
}

func TestParseQuickRef(t *testing.T) {
	summary, _, _ := Split(sampleLog)
	qr := ParseQuickRef(summary)
	wantKeywords := []string{"auth", "jwt", "refresh-token"}
	if len(qr.Keywords) != len(wantKeywords) {
		t.Fatalf("keywords = %v, want %v", qr.Keywords, wantKeywords)
	}
	for i, kw := range wantKeywords {
		if qr.Keywords[i] != kw {
			t.Errorf("keywords[%d] = %q, want %q", i, qr.Keywords[i], kw)
		}
	}
	if len(qr.Projects) != 1 || qr.Projects[0] != "api-gateway" {
		t.Errorf("projects = %v, want [api-gateway]", qr.Projects)
	}
	if qr.Outcome != "Token refresh race fixed and covered by tests" {
		t.Errorf("outcome = %q", qr.Outcome)
	}
}

func TestParseQuickRefMissingLabels(t *testing.T) {
	qr := ParseQuickRef("# Session Summary: bare\n\nNo quick reference block at all.\n")
	if qr.Keywords != nil || qr.Projects != nil || qr.Outcome != "" {
		t.Errorf("expected zero QuickRef, got %+v", qr)
	}
}

func TestComposeSplitInverse(t *testing.T) {
	doc := Document{
		Title:    "fix auth token refresh",
		Keywords: []string{"auth", "jwt"},
		Projects: []string{"api-gateway"},
		Outcome:  "shipped",
		Summary:  "Serialized token renewals.",
		Raw:      "user: hello\nassistant: hi",
	}
	content := Compose(doc)
	summary, raw, hasRaw := Split(content)
	if !hasRaw {
		t.Fatal("composed document with raw transcript must split")
	}
	if summary+raw != content {
		t.Error("split regions must reassemble the composed document")
	}
	qr := ParseQuickRef(summary)
	if qr.Outcome != "shipped" {
		t.Errorf("outcome = %q, want shipped", qr.Outcome)
	}
	if len(qr.Keywords) != 2 || qr.Keywords[0] != "auth" {
		t.Errorf("keywords did not round-trip: %v", qr.Keywords)
	}
	if !strings.Contains(raw, "user: hello") {
		t.Error("raw region must contain the transcript")
	}
}

func TestComposeWithoutRaw(t *testing.T) {
	content := Compose(Document{Title: "minimal", Outcome: "done", Summary: "short"})
	if _, _, hasRaw := Split(content); hasRaw {
		t.Error("document without transcript must have no raw region")
	}
}
