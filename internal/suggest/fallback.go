package suggest

import "strings"

// Tier identifies the cascade stage that contributed a word.
type Tier int

const (
	// TierPredictor words came from the predictor reply.
	TierPredictor Tier = iota
	// TierPrimary words came from the mode's primary list.
	TierPrimary
	// TierExtended words came from the mode's extended list.
	TierExtended
	// TierRelaxed words came from the mode's lists with exclusions lifted.
	TierRelaxed
	// TierPunctuation words are short punctuated phrases.
	TierPunctuation
	// TierEmergency words are suffixed variants of a fixed base list.
	TierEmergency
	numTiers
)

var tierNames = [numTiers]string{"predictor", "primary", "extended", "relaxed", "punctuation", "emergency"}

func (t Tier) String() string {
	if t < 0 || t >= numTiers {
		return "unknown"
	}
	return tierNames[t]
}

// FillReport counts the words each tier contributed to one result.
type FillReport [numTiers]int

// Fallback is the number of words that did not come from the predictor.
func (r FillReport) Fallback() int {
	n := 0
	for t := TierPrimary; t < numTiers; t++ {
		n += r[t]
	}
	return n
}

// Cascade turns a possibly empty or malformed predictor result into exactly
// count candidates (count is clamped to 1..MaxWordCount), no two of them
// equivalent under Normalize. Predicted words come first, in their order;
// the shortfall is filled from the curated lists of mode, relaxing exclude
// only when the lists are exhausted. Cascade is deterministic and never fails.
func Cascade(predicted []string, exclude map[string]struct{}, mode Mode, count int) ([]string, FillReport) {
	return defaultVocabulary.cascade(predicted, exclude, nil, mode, clampCount(count))
}

func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxWordCount {
		return MaxWordCount
	}
	return n
}

// cascade fills count words as Cascade does. Words in hard stay excluded in
// every tier, including the relaxed ones; only when even the emergency
// variants cannot complete the set is hard ignored.
func (v vocabulary) cascade(predicted []string, exclude, hard map[string]struct{}, mode Mode, count int) ([]string, FillReport) {
	f := &filler{
		count:   count,
		exclude: exclude,
		hard:    hard,
		out:     make([]string, 0, count),
		seen:    make(map[string]struct{}, count),
		exact:   make(map[string]struct{}, count),
	}
	f.fill(TierPredictor, predicted, true)
	f.fill(TierPrimary, v.primary[mode], true)
	f.fill(TierExtended, v.extended[mode], true)
	f.fill(TierRelaxed, v.primary[mode], false)
	f.fill(TierRelaxed, v.extended[mode], false)
	f.fill(TierPunctuation, v.punctuation, false)

	if !f.full() {
		combos := make([]string, 0, len(v.emergency)*len(emergencySuffixes))
		for _, base := range v.emergency {
			for _, suffix := range emergencySuffixes {
				combos = append(combos, base+suffix)
			}
		}
		f.fill(TierEmergency, combos, false)
		f.fillExact(TierEmergency, combos, true)
		f.fillExact(TierEmergency, combos, false)
	}
	return f.out, f.report
}

// filler accumulates a cascade result.
type filler struct {
	count   int
	exclude map[string]struct{}
	hard    map[string]struct{}
	out     []string
	seen    map[string]struct{}
	exact   map[string]struct{}
	report  FillReport
}

func (f *filler) full() bool { return len(f.out) >= f.count }

func (f *filler) fill(tier Tier, words []string, honourExclude bool) {
	for _, w := range words {
		if f.full() {
			return
		}
		w = strings.TrimSpace(w)
		n := Normalize(w)
		if n == "" {
			continue
		}
		if _, dup := f.seen[n]; dup {
			continue
		}
		if _, excluded := f.hard[n]; excluded {
			continue
		}
		if honourExclude {
			if _, excluded := f.exclude[n]; excluded {
				continue
			}
		}
		f.push(tier, w, n)
	}
}

// fillExact appends words that are not already present as identical strings,
// so normalized duplicates are allowed.
func (f *filler) fillExact(tier Tier, words []string, honourHard bool) {
	for _, w := range words {
		if f.full() {
			return
		}
		if _, dup := f.exact[w]; dup {
			continue
		}
		n := Normalize(w)
		if honourHard {
			if _, excluded := f.hard[n]; excluded {
				continue
			}
		}
		f.push(tier, w, n)
	}
}

func (f *filler) push(tier Tier, w, normalized string) {
	f.out = append(f.out, w)
	f.seen[normalized] = struct{}{}
	f.exact[w] = struct{}{}
	f.report[tier]++
}
