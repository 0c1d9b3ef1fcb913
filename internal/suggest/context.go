package suggest

import (
	"strings"

	"wordgrid/pkg/types"
)

// DefaultHistoryWindow is the number of most recent chat messages included in
// the model context.
const DefaultHistoryWindow = 10

// BuildContext renders the chat history tail and the sentence being built into
// the context text embedded in prompts. It is pure: equal inputs always yield
// the same string. A window <= 0 selects DefaultHistoryWindow.
func BuildContext(history []types.ChatMessage, sentence []string, window int) string {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	var parts []string
	if len(history) > 0 {
		parts = append(parts, "Previous conversation:")
		if len(history) > window {
			history = history[len(history)-window:]
		}
		for _, msg := range history {
			speaker := "Assistant"
			if msg.IsUser {
				speaker = "User"
			}
			parts = append(parts, speaker+": "+msg.Text)
		}
	}
	if len(sentence) > 0 {
		parts = append(parts, "\nCurrent sentence being built: "+strings.Join(sentence, " "))
	}
	return strings.Join(parts, "\n")
}
