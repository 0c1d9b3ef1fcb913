package suggest

import "sort"

// branchTree is the two-level lookahead structure of a sentence. Keys are the
// first words as supplied by the caller.
type branchTree struct {
	level1   []string
	level2   map[string][]string
	excluded map[string]wordSet
}

func newBranchTree() *branchTree {
	return &branchTree{level2: map[string][]string{}, excluded: map[string]wordSet{}}
}

// exclusionFor is used ∪ {first} ∪ every word ever shown on first's branch.
func (t *branchTree) exclusionFor(first string, used map[string]struct{}) map[string]struct{} {
	out := union(used, t.excluded[first])
	if n := Normalize(first); n != "" {
		out[n] = struct{}{}
	}
	return out
}

// latestFor is {first} ∪ the words of first's most recent set. These stay
// excluded from the next set even when the rest of the history is relaxed.
func (t *branchTree) latestFor(first string) map[string]struct{} {
	out := wordSet{}
	out.addNormalized(t.level2[first]...)
	if n := Normalize(first); n != "" {
		out[n] = struct{}{}
	}
	return out
}

func (t *branchTree) record(first string, words []string) {
	t.level2[first] = append([]string(nil), words...)
	ex, ok := t.excluded[first]
	if !ok {
		ex = wordSet{}
		t.excluded[first] = ex
	}
	ex.addNormalized(words...)
	for _, w := range t.level1 {
		if w == first {
			return
		}
	}
	t.level1 = append(t.level1, first)
}

func (t *branchTree) clear() {
	t.level1 = nil
	t.level2 = map[string][]string{}
	t.excluded = map[string]wordSet{}
}

// Branches is a read-only copy of a session's lookahead tree.
type Branches struct {
	// Level1 lists first words in the order their branches were created.
	Level1 []string
	// Level2 holds the latest next-word set of each branch.
	Level2 map[string][]string
	// Excluded holds, per branch, every normalized word it has shown (sorted).
	Excluded map[string][]string
}

func (t *branchTree) snapshot() Branches {
	b := Branches{
		Level1:   append([]string(nil), t.level1...),
		Level2:   make(map[string][]string, len(t.level2)),
		Excluded: make(map[string][]string, len(t.excluded)),
	}
	for k, v := range t.level2 {
		b.Level2[k] = append([]string(nil), v...)
	}
	for k, set := range t.excluded {
		words := make([]string, 0, len(set))
		for w := range set {
			words = append(words, w)
		}
		sort.Strings(words)
		b.Excluded[k] = words
	}
	return b
}
