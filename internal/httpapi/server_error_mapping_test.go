package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wordgrid/internal/manager"
	"wordgrid/internal/suggest"
)

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", manager.ErrSessionNotFound("nope"), http.StatusNotFound},
		{"too busy", manager.ErrTooBusy("generation queue full"), http.StatusTooManyRequests},
		{"closed", suggest.ErrSessionClosed, http.StatusGone},
		{"invalid", suggest.ErrInvalidRequest("first_word is required"), http.StatusBadRequest},
		{"http error", mockHTTPError{msg: "teapot", code: http.StatusTeapot}, http.StatusTeapot},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewMux(&mockService{err: tc.err})
			w := postJSON(t, r, "/api/words", `{}`)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestDeleteSession_NotFound(t *testing.T) {
	r := NewMux(&mockService{err: manager.ErrSessionNotFound("x")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/sessions/x", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCache_UnknownSession(t *testing.T) {
	r := NewMux(&mockService{err: manager.ErrSessionNotFound("x")})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cache?session_id=x", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestWords_BodyTooLarge(t *testing.T) {
	SetMaxBodyBytes(16)
	defer SetMaxBodyBytes(0)
	r := NewMux(&mockService{})
	w := postJSON(t, r, "/api/words", `{"current_sentence":["a","very","long","sentence"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
