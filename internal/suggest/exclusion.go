package suggest

import "sort"

// LayerBound is the largest layer scope kept before it is force-cleared.
const LayerBound = 30

// Exclusions holds the two exclusion scopes of a session:
//
//   - used: every normalized word displayed since the current sentence began;
//   - layer: words displayed since the last word was committed.
//
// Exclusions is not safe for concurrent use; Session guards it with its mutex.
type Exclusions struct {
	used  wordSet
	layer wordSet
	bound int
}

// NewExclusions returns empty scopes with the default LayerBound.
func NewExclusions() *Exclusions {
	return &Exclusions{used: wordSet{}, layer: wordSet{}, bound: LayerBound}
}

// ClearSentence empties both scopes. Called when a new sentence begins.
func (e *Exclusions) ClearSentence() {
	e.used = wordSet{}
	e.layer = wordSet{}
}

// ClearLayer empties the layer scope only. Called when a word is committed.
func (e *Exclusions) ClearLayer() {
	e.layer = wordSet{}
}

// RecordShown adds the normalized words to the layer scope and, for display
// sets (primary), to the sentence scope as well.
func (e *Exclusions) RecordShown(words []string, primary bool) {
	e.layer.addNormalized(words...)
	if primary {
		e.used.addNormalized(words...)
	}
}

// Active returns a copy of the exclusion set for a foreground query: the layer
// scope only. A layer grown past the bound is cleared first; overflowed
// reports whether that happened.
func (e *Exclusions) Active() (set map[string]struct{}, overflowed bool) {
	if len(e.layer) > e.bound {
		e.layer = wordSet{}
		overflowed = true
	}
	return e.layer.clone(), overflowed
}

// Used returns the sentence scope, sorted.
func (e *Exclusions) Used() []string {
	out := make([]string, 0, len(e.used))
	for w := range e.used {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func (e *Exclusions) usedSet() map[string]struct{} { return e.used.clone() }

// Combined returns used ∪ layer, the exclusion applied to background caches.
func (e *Exclusions) Combined() map[string]struct{} { return union(e.used, e.layer) }

// LayerSize reports the number of words in the layer scope.
func (e *Exclusions) LayerSize() int { return len(e.layer) }

// UsedSize reports the number of words in the sentence scope.
func (e *Exclusions) UsedSize() int { return len(e.used) }
