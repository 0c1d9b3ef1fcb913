package suggest

import "slices"

// Cache is a speculatively generated alternative candidate set, tagged with
// the sentence it was generated for.
type Cache struct {
	Words []string
	// Context is the sentence tokens at generation time.
	Context       []string
	SentenceStart bool
}

// FreshFor reports whether the cache may be served for the given sentence:
// it must be non-empty, match the sentence tokens and mode exactly, and hold
// no word that is currently excluded.
func (c Cache) FreshFor(sentence []string, sentenceStart bool, exclude map[string]struct{}) bool {
	if len(c.Words) == 0 || c.SentenceStart != sentenceStart {
		return false
	}
	if !slices.Equal(c.Context, sentence) {
		return false
	}
	for _, w := range c.Words {
		if _, ok := exclude[Normalize(w)]; ok {
			return false
		}
	}
	return true
}

func (c Cache) clone() Cache {
	return Cache{
		Words:         append([]string(nil), c.Words...),
		Context:       append([]string(nil), c.Context...),
		SentenceStart: c.SentenceStart,
	}
}

// CacheResult is the outcome of Session.GenerateCache.
type CacheResult struct {
	Words []string
	// Started is true when this call ran a generation to completion. It is
	// false when another generation was already running, or when the caller
	// gave up before the new set was stored; the previously stored cache is
	// returned instead.
	Started bool
}
