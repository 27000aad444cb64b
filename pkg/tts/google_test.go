package tts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGoogle_Synthesize(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":      r.URL.Query().Get("q"),
			"tl":     r.URL.Query().Get("tl"),
			"client": r.URL.Query().Get("client"),
		}
		w.Write([]byte("fake-mp3-bytes"))
	}))
	defer srv.Close()

	g, err := NewGoogle(WithBaseURL(srv.URL), WithLanguage("en"))
	if err != nil {
		t.Fatalf("NewGoogle: %v", err)
	}
	defer g.Close()

	result, err := g.Synthesize(context.Background(), "Hey, why so angry?")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(result.Audio) != "fake-mp3-bytes" {
		t.Errorf("Audio: got %q", result.Audio)
	}
	if result.Format != EncodingMP3 {
		t.Errorf("Format: got %q, want %q", result.Format, EncodingMP3)
	}
	if gotQuery["q"] != "Hey, why so angry?" {
		t.Errorf("Query text: got %q", gotQuery["q"])
	}
	if gotQuery["tl"] != "en" || gotQuery["client"] != "tw-ob" {
		t.Errorf("Query params: got %v", gotQuery)
	}
}

func TestGoogle_EmptyText(t *testing.T) {
	g, err := NewGoogle()
	if err != nil {
		t.Fatalf("NewGoogle: %v", err)
	}
	if _, err := g.Synthesize(context.Background(), "   "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Got %v, want ErrEmptyText", err)
	}
}

func TestGoogle_TruncatesLongText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if n := len(r.URL.Query().Get("q")); n > maxPhraseLen {
			t.Errorf("Request text length %d exceeds limit %d", n, maxPhraseLen)
		}
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	g, _ := NewGoogle(WithBaseURL(srv.URL))
	long := strings.Repeat("a", maxPhraseLen*2)
	if _, err := g.Synthesize(context.Background(), long); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
}

func TestGoogle_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g, _ := NewGoogle(WithBaseURL(srv.URL))
	_, err := g.Synthesize(context.Background(), "hello")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Got %v, want *APIError", err)
	}
	if !apiErr.IsRateLimited() {
		t.Errorf("StatusCode: got %d, want 429", apiErr.StatusCode)
	}
}

func TestGoogle_RequiresBaseURL(t *testing.T) {
	if _, err := NewGoogle(WithBaseURL("")); !errors.Is(err, ErrNoBaseURL) {
		t.Errorf("Got %v, want ErrNoBaseURL", err)
	}
}
