package sessionlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestWriteCreatesArchive(t *testing.T) {
	root := t.TempDir()
	s := newTestStore(t)
	ts := time.Date(2026, 1, 16, 18, 5, 0, 0, time.Local)

	path, err := s.Write(context.Background(), root, ts, "fix auth", "content here")
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(root, ArchiveDirName) {
		t.Errorf("log written outside archive dir: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written log: %v", err)
	}
	if string(b) != "content here" {
		t.Errorf("content = %q", b)
	}
	if filepath.Base(path) != "16-01-2026-18_05-fix-auth.md" {
		t.Errorf("unexpected name %s", filepath.Base(path))
	}
}

func TestWriteCollisionDisambiguates(t *testing.T) {
	root := t.TempDir()
	s := newTestStore(t)
	ctx := context.Background()
	ts := time.Date(2026, 1, 16, 18, 5, 0, 0, time.Local)

	first, err := s.Write(ctx, root, ts, "same-topic", "first")
	if err != nil {
		t.Fatalf("first Write failed: %v", err)
	}
	second, err := s.Write(ctx, root, ts, "same-topic", "second")
	if err != nil {
		t.Fatalf("second Write failed: %v", err)
	}
	if first == second {
		t.Fatal("second write must not reuse the first name")
	}
	if filepath.Base(second) != "16-01-2026-18_05-same-topic-2.md" {
		t.Errorf("second name = %s, want numeric disambiguator", filepath.Base(second))
	}
	for path, want := range map[string]string{first: "first", second: "second"} {
		got, err := s.Read(ctx, path)
		if err != nil {
			t.Fatalf("Read(%s) failed: %v", path, err)
		}
		if got != want {
			t.Errorf("Read(%s) = %q, want %q", path, got, want)
		}
	}
	third, err := s.Write(ctx, root, ts, "same-topic", "third")
	if err != nil {
		t.Fatalf("third Write failed: %v", err)
	}
	if filepath.Base(third) != "16-01-2026-18_05-same-topic-3.md" {
		t.Errorf("third name = %s", filepath.Base(third))
	}
}

func TestListNewestFirst(t *testing.T) {
	root := t.TempDir()
	s := newTestStore(t)
	ctx := context.Background()

	days := []struct {
		ts    time.Time
		topic string
	}{
		{time.Date(2026, 1, 11, 9, 0, 0, 0, time.Local), "b"},
		{time.Date(2026, 1, 12, 9, 0, 0, 0, time.Local), "c"},
		{time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local), "a"},
	}
	for _, d := range days {
		if _, err := s.Write(ctx, root, d.ts, d.topic, "x"); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	refs, err := s.List(ctx, root)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 3 {
		t.Fatalf("len(refs) = %d, want 3", len(refs))
	}
	wantTopics := []string{"c", "b", "a"}
	for i, want := range wantTopics {
		if refs[i].Topic != want {
			t.Errorf("refs[%d].Topic = %q, want %q", i, refs[i].Topic, want)
		}
	}

	again, err := s.List(ctx, root)
	if err != nil {
		t.Fatalf("second List failed: %v", err)
	}
	for i := range refs {
		if refs[i].Path != again[i].Path {
			t.Error("List order must be stable across calls")
			break
		}
	}
}

func TestListSkipsMalformedAndForeign(t *testing.T) {
	root := t.TempDir()
	s := newTestStore(t)
	ctx := context.Background()
	dir := filepath.Join(root, ArchiveDirName)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	files := []string{
		"10-01-2026-09_00-good.md",
		"not-a-session-log.md",
		"README.txt",
	}
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "subdir"), 0o750); err != nil {
		t.Fatal(err)
	}

	refs, err := s.List(ctx, root)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Topic != "good" {
		t.Errorf("refs = %+v, want only the well-formed log", refs)
	}
}

func TestListMissingArchiveDir(t *testing.T) {
	s := newTestStore(t)
	refs, err := s.List(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("List on missing archive failed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("refs = %+v, want empty", refs)
	}
}

func TestListExcludePatterns(t *testing.T) {
	root := t.TempDir()
	s, err := NewStore(WithExcludePatterns("*-scratch*.md"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	ctx := context.Background()
	if _, err := s.Write(ctx, root, time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local), "scratch-pad", "x"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Write(ctx, root, time.Date(2026, 1, 10, 9, 0, 0, 0, time.Local), "real-work", "x"); err != nil {
		t.Fatal(err)
	}
	refs, err := s.List(ctx, root)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(refs) != 1 || refs[0].Topic != "real-work" {
		t.Errorf("refs = %+v, want only real-work", refs)
	}
}

func TestReadNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Read(context.Background(), filepath.Join(t.TempDir(), "gone.md"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestWriteInvalidExcludePattern(t *testing.T) {
	if _, err := NewStore(WithExcludePatterns("[")); err == nil {
		t.Error("expected error for invalid glob pattern")
	}
}
