package pipeline

import (
	"context"
	"mime"
	"path/filepath"
)

// DefaultContentType is applied when the resolved file's extension has
// no entry in the platform MIME table.
const DefaultContentType = "text/html"

// contentTypeStage guesses the MIME type from the resolved file's
// extension. Every response leaves this stage with exactly one
// Content-Type header; stages that rendered their own body (the
// directory listing) have already set it and are left alone.
type contentTypeStage struct {
	fallback string
}

func (s *contentTypeStage) Name() string { return "content-type" }

func (s *contentTypeStage) Process(_ context.Context, ex *Exchange) error {
	if ex.Header.Get("Content-Type") != "" {
		return nil
	}

	ct := ""
	if ex.ResolvedPath != "" {
		if ext := filepath.Ext(ex.ResolvedPath); ext != "" {
			ct = mime.TypeByExtension(ext)
		}
	}
	if ct == "" {
		ct = s.fallback
	}

	ex.Header.Set("Content-Type", ct)
	return nil
}
