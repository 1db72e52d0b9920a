package pipeline

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/serveur-http/serveur/internal/fsroot"
)

const indexFile = "index.html"

// lookupStage maps the request path to a file under the canonical root.
// Directories serve their index file when present; otherwise they either
// render a listing (when enabled) or miss. Escape attempts are reported
// exactly like a miss so traversal probing learns nothing.
type lookupStage struct {
	roots   *fsroot.Roots
	listing bool
}

func (s *lookupStage) Name() string { return "lookup" }

func (s *lookupStage) Process(ctx context.Context, ex *Exchange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resolved, info, err := s.roots.Lookup(ex.Path)
	switch {
	case errors.Is(err, fsroot.ErrNotFound), errors.Is(err, fsroot.ErrEscapesRoot):
		ex.Status = http.StatusNotFound
		return nil
	case err != nil:
		return err
	}

	if !info.IsDir() {
		return s.serveFile(ctx, ex, resolved)
	}

	index := filepath.Join(resolved, indexFile)
	if fi, err := os.Stat(index); err == nil && !fi.IsDir() {
		return s.serveFile(ctx, ex, index)
	}

	if !s.listing {
		ex.Status = http.StatusNotFound
		return nil
	}

	body, err := renderListing(ex.Path, resolved)
	if err != nil {
		return err
	}

	ex.Status = http.StatusOK
	ex.Body = body
	ex.ResolvedPath = resolved
	ex.Header.Set("Content-Type", "text/html; charset=utf-8")
	return nil
}

func (s *lookupStage) serveFile(ctx context.Context, ex *Exchange, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		// The file can disappear between stat and read.
		if os.IsNotExist(err) {
			ex.Status = http.StatusNotFound
			return nil
		}
		return err
	}

	ex.Status = http.StatusOK
	ex.Body = body
	ex.ResolvedPath = path
	return nil
}
