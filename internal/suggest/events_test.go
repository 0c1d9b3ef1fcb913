package suggest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogPublisher_WritesEventFields(t *testing.T) {
	var buf bytes.Buffer
	p := LogPublisher{Log: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	p.Publish(Event{Name: EventBranchReset, SessionID: "s1", Fields: map[string]any{"first_word": "Help"}})
	out := buf.String()
	for _, want := range []string{`"event":"branch_reset"`, `"session":"s1"`, `"first_word":"Help"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}

func TestMemoryPublisher_EventsIsCopy(t *testing.T) {
	p := NewMemoryPublisher()
	p.Publish(Event{Name: "a"})
	evs := p.Events()
	evs[0].Name = "b"
	if p.Events()[0].Name != "a" {
		t.Fatalf("Events must return a copy")
	}
}
