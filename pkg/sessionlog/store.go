package sessionlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// ErrNotFound is returned by Read when a log vanished between List and
// Read. It is non-fatal to retrieval: callers skip the entry.
var ErrNotFound = errors.New("sessionlog: log not found")

// ArchiveDirName is the archive directory created under the project
// root. The name is part of the on-disk contract.
const ArchiveDirName = "CC-Session-Logs"

// maxNameCollisions bounds the numeric disambiguator search so a
// pathological archive cannot loop forever.
const maxNameCollisions = 10000

// Ref is the listing metadata for one session log. Content is never
// loaded during listing; CreatedAt and Topic are decoded from the
// filename, which is the source of truth for both.
type Ref struct {
	Path      string
	Name      string
	CreatedAt time.Time
	Topic     string
}

// Store reads and writes session logs under a project root. The zero
// of options is usable; exclude patterns filter listing by filename.
type Store struct {
	exclude []glob.Glob
}

// StoreOption configures a Store.
type StoreOption func(*Store) error

// WithExcludePatterns adds glob patterns (matched against bare
// filenames) whose logs are hidden from List, Count, and search.
func WithExcludePatterns(patterns ...string) StoreOption {
	return func(s *Store) error {
		for _, p := range patterns {
			g, err := glob.Compile(p)
			if err != nil {
				return fmt.Errorf("sessionlog: compile exclude pattern %q: %w", p, err)
			}
			s.exclude = append(s.exclude, g)
		}
		return nil
	}
}

// NewStore creates a Store with the given options.
func NewStore(opts ...StoreOption) (*Store, error) {
	s := &Store{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ArchiveDir returns the archive directory for a project root.
func ArchiveDir(root string) string {
	return filepath.Join(root, ArchiveDirName)
}

func (s *Store) excluded(name string) bool {
	for _, g := range s.exclude {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Write persists a new session log and returns its path. The archive
// directory is created if missing. An existing file with the same
// encoded name is never overwritten: the topic gains a numeric
// disambiguator (-2, -3, ...) until a free name is found. The file
// appears atomically via a temporary file and rename.
func (s *Store) Write(_ context.Context, root string, ts time.Time, topic, content string) (string, error) {
	dir := ArchiveDir(root)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("sessionlog: init archive directory %s: %w", dir, err)
	}
	slug := Slugify(topic)
	path := ""
	for n := 1; ; n++ {
		if n > maxNameCollisions {
			return "", fmt.Errorf("sessionlog: no free name for %s after %d attempts", EncodeName(ts, slug), maxNameCollisions)
		}
		candidate := slug
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", slug, n)
		}
		path = filepath.Join(dir, EncodeName(ts, candidate))
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			break
		} else if err != nil {
			return "", fmt.Errorf("sessionlog: stat %s: %w", path, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("sessionlog: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return "", fmt.Errorf("sessionlog: atomic rename %s: %w", path, err)
	}
	return path, nil
}

// List returns metadata for every log in the archive, newest first
// (filename descending). Content is not loaded. Directories, non-.md
// entries, excluded names, and malformed names are skipped; malformed
// names are logged rather than failing the listing. A missing archive
// directory yields an empty list, not an error.
func (s *Store) List(_ context.Context, root string) ([]Ref, error) {
	dir := ArchiveDir(root)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sessionlog: list %s: %w", dir, err)
	}
	var refs []Ref
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, logExt) || s.excluded(name) {
			continue
		}
		ts, topic, err := DecodeName(name)
		if err != nil {
			slog.Warn("sessionlog: skipping malformed log name", "path", filepath.Join(dir, name), "err", err)
			continue
		}
		refs = append(refs, Ref{
			Path:      filepath.Join(dir, name),
			Name:      name,
			CreatedAt: ts,
			Topic:     topic,
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name > refs[j].Name })
	return refs, nil
}

// Count returns the number of listable logs in the archive.
func (s *Store) Count(ctx context.Context, root string) (int, error) {
	refs, err := s.List(ctx, root)
	if err != nil {
		return 0, err
	}
	return len(refs), nil
}

// Read returns a log's full content. The error wraps ErrNotFound when
// the file no longer exists.
func (s *Store) Read(_ context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("sessionlog: read %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("sessionlog: read %s: %w", path, err)
	}
	return string(b), nil
}
