package suggest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCascade_EmptyPredictionFillsFromPrimaryList(t *testing.T) {
	words, report := Cascade(nil, nil, ModeSentenceStart, DefaultWordCount)
	if diff := cmp.Diff(sentenceStarters[:DefaultWordCount], words); diff != "" {
		t.Fatalf("unexpected fallback (-want +got):\n%s", diff)
	}
	if report[TierPrimary] != DefaultWordCount || report.Fallback() != DefaultWordCount {
		t.Fatalf("report=%v", report)
	}
}

func TestCascade_Deterministic(t *testing.T) {
	exclude := map[string]struct{}{"want": {}, "need": {}, "go": {}}
	first, _ := Cascade(nil, exclude, ModeContinuation, DefaultWordCount)
	for i := 0; i < 10; i++ {
		again, _ := Cascade(nil, exclude, ModeContinuation, DefaultWordCount)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs:\n%s", i, diff)
		}
	}
	for _, w := range first {
		if _, ok := exclude[Normalize(w)]; ok {
			t.Fatalf("excluded word %q returned", w)
		}
	}
}

func TestCascade_DedupKeepsFirstSurfaceForm(t *testing.T) {
	words, report := Cascade([]string{"go", "go", "GO.", "eat"}, map[string]struct{}{}, ModeContinuation, DefaultWordCount)
	if len(words) != DefaultWordCount {
		t.Fatalf("len=%d", len(words))
	}
	if words[0] != "go" || words[1] != "eat" {
		t.Fatalf("predictor words not first: %v", words[:2])
	}
	goCount := 0
	for _, w := range words {
		if Normalize(w) == "go" {
			goCount++
		}
	}
	if goCount != 1 {
		t.Fatalf("normalized go appears %d times: %v", goCount, words)
	}
	if report[TierPredictor] != 2 {
		t.Fatalf("report=%v", report)
	}
}

func TestCascade_PredictorWordsFiltered(t *testing.T) {
	words, _ := Cascade([]string{"  ", "Tea.", "tea", "coffee"}, map[string]struct{}{"coffee": {}}, ModeContinuation, 3)
	want := []string{"Tea.", "want", "need"}
	if diff := cmp.Diff(want, words); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestCascade_RelaxesExclusionWhenListsExhausted(t *testing.T) {
	for _, mode := range []Mode{ModeSentenceStart, ModeContinuation} {
		exclude := wordSet{}
		exclude.addNormalized(defaultVocabulary.primary[mode]...)
		exclude.addNormalized(defaultVocabulary.extended[mode]...)
		words, report := Cascade(nil, exclude, mode, MaxWordCount)
		if len(words) != MaxWordCount {
			t.Fatalf("%s: len=%d", mode, len(words))
		}
		if dup, ok := assertUnique(words); !ok {
			t.Fatalf("%s: duplicate %q in %v", mode, dup, words)
		}
		if report[TierRelaxed] != MaxWordCount {
			t.Fatalf("%s: report=%v", mode, report)
		}
	}
}

func TestCascade_VocabularyCoversMaxWordCount(t *testing.T) {
	for _, mode := range []Mode{ModeSentenceStart, ModeContinuation} {
		distinct := wordSet{}
		distinct.addNormalized(defaultVocabulary.primary[mode]...)
		distinct.addNormalized(defaultVocabulary.extended[mode]...)
		if len(distinct) <= MaxWordCount {
			t.Fatalf("%s vocabulary has only %d distinct words", mode, len(distinct))
		}
	}
}

func TestCascade_ClampsCount(t *testing.T) {
	if words, _ := Cascade(nil, nil, ModeContinuation, 0); len(words) != 1 {
		t.Fatalf("count 0 -> len %d", len(words))
	}
	if words, _ := Cascade(nil, nil, ModeContinuation, 1000); len(words) != MaxWordCount {
		t.Fatalf("count 1000 -> len %d", len(words))
	}
}

func TestCascade_PunctuationAndEmergencyTiers(t *testing.T) {
	v := vocabulary{
		primary:     map[Mode][]string{ModeContinuation: {"a"}},
		extended:    map[Mode][]string{ModeContinuation: {"b"}},
		punctuation: []string{"yes.", "a!"},
		emergency:   []string{"yes", "no"},
	}
	words, report := v.cascade(nil, nil, nil, ModeContinuation, 6)
	want := []string{"a", "b", "yes.", "no", "yes", "yes!"}
	if diff := cmp.Diff(want, words); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if report[TierPunctuation] != 1 || report[TierEmergency] != 3 {
		t.Fatalf("report=%v", report)
	}
}

func TestCascade_HardExclusionSurvivesRelaxation(t *testing.T) {
	v := vocabulary{
		primary:     map[Mode][]string{ModeContinuation: {"a", "b", "c"}},
		extended:    map[Mode][]string{ModeContinuation: {"d"}},
		punctuation: []string{"a!", "e."},
		emergency:   []string{"f"},
	}
	exclude := map[string]struct{}{"a": {}, "b": {}, "c": {}, "d": {}}
	hard := map[string]struct{}{"a": {}, "b": {}}
	words, report := v.cascade(nil, exclude, hard, ModeContinuation, 4)
	want := []string{"c", "d", "e.", "f"}
	if diff := cmp.Diff(want, words); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if report[TierRelaxed] != 2 || report[TierPunctuation] != 1 || report[TierEmergency] != 1 {
		t.Fatalf("report=%v", report)
	}
}

func TestCascade_CountWinsOverHardExclusion(t *testing.T) {
	v := vocabulary{
		primary:   map[Mode][]string{ModeContinuation: {"a"}},
		extended:  map[Mode][]string{ModeContinuation: {}},
		emergency: []string{"a"},
	}
	words, _ := v.cascade(nil, nil, map[string]struct{}{"a": {}}, ModeContinuation, 2)
	if diff := cmp.Diff([]string{"a", "a."}, words); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestTierString(t *testing.T) {
	if TierRelaxed.String() != "relaxed" || Tier(99).String() != "unknown" {
		t.Fatalf("unexpected tier names")
	}
}
