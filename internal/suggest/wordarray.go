package suggest

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ParseWordArray extracts the first word array embedded in a model reply.
// A word array is a JSON array whose elements are all strings or numbers and
// which holds at least one non-blank string; blank elements are dropped.
// Arrays of numbers only, such as citation markers, and empty arrays are
// skipped. Text around the array (explanations, code fences) is ignored. ok is
// false when the reply holds no such array.
func ParseWordArray(reply string) (words []string, ok bool) {
	for start := strings.IndexByte(reply, '['); start >= 0; {
		if end := matchBracket(reply, start); end > start {
			if words, ok := wordArray(reply[start : end+1]); ok {
				return words, true
			}
		}
		next := strings.IndexByte(reply[start+1:], '[')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, false
}

// matchBracket returns the index of the ']' closing the '[' at start, honouring
// JSON string literals, or -1 when the array is unterminated.
func matchBracket(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func wordArray(raw string) ([]string, bool) {
	if !gjson.Valid(raw) {
		return nil, false
	}
	res := gjson.Parse(raw)
	if !res.IsArray() {
		return nil, false
	}
	words := make([]string, 0, 16)
	valid, hasString := true, false
	res.ForEach(func(_, v gjson.Result) bool {
		switch v.Type {
		case gjson.String, gjson.Number:
			if w := strings.TrimSpace(v.String()); w != "" {
				words = append(words, w)
				hasString = hasString || v.Type == gjson.String
			}
			return true
		case gjson.Null:
			return true
		default:
			valid = false
			return false
		}
	})
	if !valid || !hasString {
		return nil, false
	}
	return words, true
}
