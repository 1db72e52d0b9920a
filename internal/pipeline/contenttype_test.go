package pipeline

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestContentTypeStage(t *testing.T) {
	tests := []struct {
		name     string
		resolved string
		want     string // matched as a prefix; "text/css" also matches "text/css; charset=utf-8"
	}{
		{"css", "/srv/www/assets/app.css", "text/css"},
		{"html", "/srv/www/index.html", "text/html"},
		{"png", "/srv/www/logo.png", "image/png"},
		{"json", "/srv/www/data.json", "application/json"},
		{"unknown extension falls back", "/srv/www/readme.unknownext", "text/html"},
		{"no extension falls back", "/srv/www/Makefile", "text/html"},
		{"no resolved path falls back", "", "text/html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &Exchange{Status: http.StatusOK, Header: http.Header{}, ResolvedPath: tt.resolved}

			s := &contentTypeStage{fallback: DefaultContentType}
			if err := s.Process(context.Background(), ex); err != nil {
				t.Fatalf("Process: %v", err)
			}

			got := ex.Header.Get("Content-Type")
			if got == "" {
				t.Fatal("Content-Type must always be set")
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Content-Type = %q, want prefix %q", got, tt.want)
			}
			if len(ex.Header.Values("Content-Type")) != 1 {
				t.Errorf("expected exactly one Content-Type, got %v", ex.Header.Values("Content-Type"))
			}
		})
	}
}

func TestContentTypeStagePreservesExisting(t *testing.T) {
	ex := &Exchange{Status: http.StatusOK, Header: http.Header{}, ResolvedPath: "/srv/www/docs"}
	ex.Header.Set("Content-Type", "text/html; charset=utf-8")

	s := &contentTypeStage{fallback: DefaultContentType}
	if err := s.Process(context.Background(), ex); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if got := ex.Header.Get("Content-Type"); got != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q, want the pre-set value", got)
	}
}
