package suggest

import (
	"fmt"
	"sort"
	"strings"
)

// ExcludePromptCap bounds how many excluded words are listed in a prompt.
const ExcludePromptCap = 50

type promptKind int

const (
	promptDisplay promptKind = iota
	promptAlternative
)

func (k promptKind) String() string {
	if k == promptAlternative {
		return "alternative"
	}
	return "display"
}

func buildPrompt(kind promptKind, mode Mode, contextText string, count int, exclude []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a word prediction assistant for an AAC (Augmentative and Alternative Communication) device.\n")
	fmt.Fprintf(&b, "Your task is to predict the most likely next words a user might want to say.\n")
	fmt.Fprintf(&b, "Always respond with ONLY a JSON array of exactly %d single words, ordered from most likely to least likely.\n", count)
	b.WriteString("Words should be common, useful for daily communication, and contextually appropriate.\n")
	b.WriteString("Do not include any explanation, just the JSON array.\n\n")

	switch {
	case kind == promptDisplay && mode == ModeSentenceStart:
		fmt.Fprintf(&b, "Based on this conversation context, predict the %d most likely words to START a new sentence.\n", count)
	case kind == promptDisplay:
		fmt.Fprintf(&b, "Based on this context, predict the %d most likely NEXT words to continue the sentence.\n", count)
		b.WriteString("The user is building a sentence word by word. Predict what comes next.\n")
		b.WriteString("Include some words with ending punctuation (. ! ?) for sentence completion.\n")
	case mode == ModeSentenceStart:
		fmt.Fprintf(&b, "Based on this conversation context, predict %d alternative words to start a new sentence.\n", count)
		b.WriteString("These should be less common but still useful sentence starters.\n")
	default:
		fmt.Fprintf(&b, "Based on this context, predict %d alternative next words to continue the sentence.\n", count)
		b.WriteString("These should be less common but contextually appropriate alternatives.\n")
		b.WriteString("Include some words with ending punctuation (. ! ?) for sentence completion.\n")
	}
	b.WriteString("Order from most likely (first) to least likely (last).\n")

	if len(exclude) > 0 {
		fmt.Fprintf(&b, "\nIMPORTANT: Do NOT include any of these words (already used): %s\n", strings.Join(exclude, ", "))
	}
	if contextText != "" {
		b.WriteString("\n")
		b.WriteString(contextText)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nRespond with ONLY a JSON array of %d words.", count)
	return b.String()
}

// promptExclusions lists the words obtained by earlier attempts first, then
// the remaining excluded words sorted, capped at ExcludePromptCap.
func promptExclusions(obtained []string, exclude map[string]struct{}) []string {
	out := make([]string, 0, ExcludePromptCap)
	listed := make(map[string]struct{}, len(obtained))
	for _, w := range obtained {
		if len(out) == ExcludePromptCap {
			return out
		}
		n := Normalize(w)
		if _, dup := listed[n]; dup || n == "" {
			continue
		}
		listed[n] = struct{}{}
		out = append(out, n)
	}
	rest := make([]string, 0, len(exclude))
	for w := range exclude {
		if _, dup := listed[w]; !dup {
			rest = append(rest, w)
		}
	}
	sort.Strings(rest)
	for _, w := range rest {
		if len(out) == ExcludePromptCap {
			break
		}
		out = append(out, w)
	}
	return out
}
