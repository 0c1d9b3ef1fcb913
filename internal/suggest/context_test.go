package suggest

import (
	"fmt"
	"strings"
	"testing"

	"wordgrid/pkg/types"
)

func TestBuildContext_Format(t *testing.T) {
	history := []types.ChatMessage{
		{Text: "Do you want some tea?", IsUser: false},
		{Text: "Yes please", IsUser: true},
	}
	got := BuildContext(history, []string{"I", "want"}, 10)
	want := "Previous conversation:\nAssistant: Do you want some tea?\nUser: Yes please\n\nCurrent sentence being built: I want"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if got := BuildContext(nil, nil, 10); got != "" {
		t.Fatalf("expected empty context, got %q", got)
	}
	if got := BuildContext(nil, []string{"Hi"}, 10); got != "\nCurrent sentence being built: Hi" {
		t.Fatalf("sentence only: %q", got)
	}
}

func TestBuildContext_KeepsLastWindowMessages(t *testing.T) {
	var history []types.ChatMessage
	for i := 0; i < 14; i++ {
		history = append(history, types.ChatMessage{Text: fmt.Sprintf("m%d", i), IsUser: i%2 == 0})
	}
	got := BuildContext(history, nil, 0)
	if strings.Contains(got, "m3\n") || strings.Contains(got, ": m3") {
		t.Fatalf("message outside the window leaked: %q", got)
	}
	if !strings.Contains(got, "User: m4") || !strings.HasSuffix(got, "Assistant: m13") {
		t.Fatalf("expected messages m4..m13, got %q", got)
	}
	if n := strings.Count(got, "\n"); n != DefaultHistoryWindow {
		t.Fatalf("expected %d lines after the header, got %d", DefaultHistoryWindow, n)
	}
}

func TestBuildContext_Pure(t *testing.T) {
	history := []types.ChatMessage{{Text: "hello", IsUser: true}}
	sentence := []string{"I"}
	first := BuildContext(history, sentence, 10)
	for i := 0; i < 5; i++ {
		if got := BuildContext(history, sentence, 10); got != first {
			t.Fatalf("call %d differs: %q vs %q", i, got, first)
		}
	}
	if history[0].Text != "hello" || sentence[0] != "I" {
		t.Fatalf("inputs mutated")
	}
}
