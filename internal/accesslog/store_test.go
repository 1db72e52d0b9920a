package accesslog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "access.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ID: "a", Method: "GET", Path: "/index.html", Status: 200, Bytes: 512, Duration: 3 * time.Millisecond, RemoteAddr: "10.0.0.1:4444", CreatedAt: base},
		{ID: "b", Method: "GET", Path: "/missing", Status: 404, Bytes: 9, Duration: time.Millisecond, RemoteAddr: "10.0.0.2:4445", CreatedAt: base.Add(time.Second)},
		{ID: "c", Method: "HEAD", Path: "/index.html", Status: 200, Bytes: 0, Duration: time.Millisecond, RemoteAddr: "10.0.0.3:4446", CreatedAt: base.Add(2 * time.Second)},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record(%s): %v", e.ID, err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("Recent order = %s, %s; want c, b", got[0].ID, got[1].ID)
	}
	if got[1].Status != 404 || got[1].Path != "/missing" {
		t.Errorf("entry b = %+v", got[1])
	}
	if got[0].Duration != time.Millisecond {
		t.Errorf("duration = %v, want 1ms", got[0].Duration)
	}
}

func TestRecordFillsCreatedAt(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, Entry{ID: "x", Method: "GET", Path: "/", Status: 200}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].CreatedAt.IsZero() {
		t.Errorf("expected a created_at timestamp, got %+v", got)
	}
}
