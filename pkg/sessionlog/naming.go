package sessionlog

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// ErrMalformedName is returned by DecodeName when a filename does not
// carry the canonical DD-MM-YYYY-HH_MM prefix or the .md extension.
var ErrMalformedName = errors.New("sessionlog: malformed log name")

const (
	// namePrefixLayout is the Go time layout for the DD-MM-YYYY-HH_MM
	// filename prefix.
	namePrefixLayout = "02-01-2006-15_04"

	logExt = ".md"

	// fallbackSlug names a log whose topic slugifies to nothing.
	fallbackSlug = "session"
)

// Slugify converts a free-form topic into a filename-safe slug:
// lowercase, runs of non-alphanumeric characters collapsed to single
// hyphens, leading and trailing hyphens trimmed.
func Slugify(topic string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	slug := b.String()
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// EncodeName builds the canonical log filename for a timestamp and
// topic: DD-MM-YYYY-HH_MM-{topic-slug}.md. The topic is slugified
// before encoding.
func EncodeName(ts time.Time, topic string) string {
	return fmt.Sprintf("%s-%s%s", ts.Format(namePrefixLayout), Slugify(topic), logExt)
}

// DecodeName parses a log filename back into its timestamp and topic.
// It is tolerant about the topic portion: everything after the fixed
// date/time prefix and its separating hyphen is topic, additional
// hyphens included. The error wraps ErrMalformedName when the prefix
// does not parse or the extension is missing; callers listing a
// directory should skip such files rather than abort.
func DecodeName(name string) (time.Time, string, error) {
	if !strings.HasSuffix(name, logExt) {
		return time.Time{}, "", fmt.Errorf("%w: %q missing %s extension", ErrMalformedName, name, logExt)
	}
	base := strings.TrimSuffix(name, logExt)
	if len(base) < len(namePrefixLayout) {
		return time.Time{}, "", fmt.Errorf("%w: %q shorter than date/time prefix", ErrMalformedName, name)
	}
	ts, err := time.ParseInLocation(namePrefixLayout, base[:len(namePrefixLayout)], time.Local)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q: %v", ErrMalformedName, name, err)
	}
	topic := ""
	if len(base) > len(namePrefixLayout) {
		rest := base[len(namePrefixLayout):]
		if rest[0] != '-' {
			return time.Time{}, "", fmt.Errorf("%w: %q has trailing characters after date/time prefix", ErrMalformedName, name)
		}
		topic = rest[1:]
	}
	return ts, topic, nil
}
