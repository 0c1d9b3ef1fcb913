package suggest

import "strings"

// Normalize returns the form used to compare candidates for exclusion and
// uniqueness: trimmed, lowercased, with any trailing run of '.', '!', '?' and
// spaces removed. "Please." and "please" are equivalent.
func Normalize(word string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(word)), ".!? ")
}

// Mode selects the vocabulary and prompt used for a generation.
type Mode int

const (
	// ModeContinuation predicts the next word of a sentence in progress.
	ModeContinuation Mode = iota
	// ModeSentenceStart predicts the first word of a new sentence.
	ModeSentenceStart
)

// ModeFor maps the request flag onto a Mode.
func ModeFor(sentenceStart bool) Mode {
	if sentenceStart {
		return ModeSentenceStart
	}
	return ModeContinuation
}

func (m Mode) String() string {
	if m == ModeSentenceStart {
		return "sentence_start"
	}
	return "continuation"
}

// wordSet is a set of normalized words.
type wordSet map[string]struct{}

func (s wordSet) has(normalized string) bool {
	_, ok := s[normalized]
	return ok
}

func (s wordSet) clone() wordSet {
	out := make(wordSet, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	return out
}

// addNormalized inserts the normalized form of each word, skipping blanks.
func (s wordSet) addNormalized(words ...string) {
	for _, w := range words {
		if n := Normalize(w); n != "" {
			s[n] = struct{}{}
		}
	}
}

func union(sets ...map[string]struct{}) map[string]struct{} {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make(map[string]struct{}, n)
	for _, s := range sets {
		for w := range s {
			out[w] = struct{}{}
		}
	}
	return out
}
