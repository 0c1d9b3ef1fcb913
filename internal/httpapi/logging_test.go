package httpapi

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":      LevelOff,
		"off":   LevelOff,
		"error": LevelError,
		"info":  LevelInfo,
		"debug": LevelDebug,
		"weird": LevelInfo, // default
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestLogLevel_Overrides(t *testing.T) {
	// query param ?log=debug
	r := httptest.NewRequest("GET", "/x?log=debug", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("query override failed: %v", got)
	}
	// shorthand ?log=1
	r = httptest.NewRequest("GET", "/x?log=1", nil)
	if got := requestLogLevel(r); got != LevelDebug {
		t.Fatalf("shorthand query override failed: %v", got)
	}
	// header X-Log-Level
	r = httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override failed: %v", got)
	}
}

func TestRequestLogLevel_DefaultFromSetter(t *testing.T) {
	orig := defaultLogLevel
	defer func() { defaultLogLevel = orig }()
	SetDefaultLogLevel("info")
	if got := requestLogLevel(httptest.NewRequest("GET", "/x", nil)); got != LevelInfo {
		t.Fatalf("default level=%v", got)
	}
}

func TestLogEnd_WritesWordsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	orig := zlog
	defer func() { zlog = orig }()
	SetLogger(zerolog.New(&buf))

	r := httptest.NewRequest("POST", "/api/words", nil)
	logEnd(r, LevelDebug, "words", 200, time.Now(), nil, []string{"want", "need"})
	out := buf.String()
	if !strings.Contains(out, `"op":"words"`) || !strings.Contains(out, `"want"`) {
		t.Fatalf("unexpected log line: %q", out)
	}

	buf.Reset()
	logEnd(r, LevelInfo, "words", 200, time.Now(), nil, []string{"want"})
	if strings.Contains(buf.String(), `"words"`) {
		t.Fatalf("words logged at info: %q", buf.String())
	}
}

func TestLogEnd_OffAndErrorLevels(t *testing.T) {
	var buf bytes.Buffer
	orig := zlog
	defer func() { zlog = orig }()
	SetLogger(zerolog.New(&buf))

	r := httptest.NewRequest("POST", "/api/words", nil)
	logEnd(r, LevelOff, "words", 500, time.Now(), errors.New("boom"), nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output at off, got %q", buf.String())
	}
	logEnd(r, LevelError, "words", 200, time.Now(), nil, nil)
	if buf.Len() != 0 {
		t.Fatalf("success logged at error level: %q", buf.String())
	}
	logEnd(r, LevelError, "words", 500, time.Now(), errors.New("boom"), nil)
	if !strings.Contains(buf.String(), `"level":"error"`) || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("unexpected error line: %q", buf.String())
	}
}
