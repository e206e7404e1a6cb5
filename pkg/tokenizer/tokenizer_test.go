package tokenizer

import "testing"

// mustNewTokenizer creates a tokenizer or skips the test if the
// encoding data cannot be initialized (e.g. offline environments).
func mustNewTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	tok, err := New()
	if err != nil {
		t.Skipf("tokenizer unavailable: %v", err)
	}
	return tok
}

func TestCountTokens(t *testing.T) {
	tok := mustNewTokenizer(t)
	if got := tok.CountTokens(""); got != 0 {
		t.Errorf("CountTokens(\"\") = %d, want 0", got)
	}
	short := tok.CountTokens("fix auth token refresh")
	if short <= 0 {
		t.Errorf("CountTokens(short) = %d, want > 0", short)
	}
	long := tok.CountTokens("fix auth token refresh and then some considerably longer trailing text about the session")
	if long <= short {
		t.Errorf("longer text should count more tokens: %d <= %d", long, short)
	}
}

func TestCountTokensNilReceiver(t *testing.T) {
	var tok *Tokenizer
	if got := tok.CountTokens("anything"); got != 0 {
		t.Errorf("nil tokenizer must count 0, got %d", got)
	}
}
