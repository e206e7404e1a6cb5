// Package tokenizer wraps tiktoken for client-side token counting.
// Counts feed the retrieval report's summary footprint and the
// tokens-saved figure printed after a compress. Callers treat a nil
// Tokenizer as "counting unavailable" and fall back to zero.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// encodingName is the BPE used for counting. Exact model alignment is
// not required; the counts are advisory.
const encodingName = "cl100k_base"

// Tokenizer counts tokens in text.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New creates a Tokenizer. Initialization can fail when the encoding
// data is unavailable (e.g. offline first run); callers should treat
// that as non-fatal and proceed without counts.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: init encoding %s: %w", encodingName, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// CountTokens returns the token count for the given text.
func (t *Tokenizer) CountTokens(text string) int {
	if t == nil || t.enc == nil || text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}
