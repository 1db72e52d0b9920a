// Package fsroot anchors all file access to a canonical root directory.
//
// The root and assets directories are resolved exactly once at startup;
// every request path is then re-validated against the canonical root so
// that traversal segments or symlinks inside the tree can never reach
// outside it.
package fsroot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidDirectory is returned when a configured directory does not
	// exist, is not a directory, or cannot be resolved.
	ErrInvalidDirectory = errors.New("invalid directory")

	// ErrNotFound is returned when a request path has no file under the root.
	ErrNotFound = errors.New("not found")

	// ErrEscapesRoot is returned when a request path resolves outside the
	// canonical root. Callers must surface it exactly like ErrNotFound.
	ErrEscapesRoot = errors.New("path escapes root")
)

// Roots holds the canonical serving directories. Immutable after Resolve.
type Roots struct {
	// Root is the canonical root directory all lookups are anchored to.
	Root string

	// Assets is the canonical assets directory.
	Assets string

	// AssetsBase is the final path component of Assets, used as the
	// string token for cache-policy prefix matching.
	AssetsBase string
}

// Resolve canonicalizes the root and assets directories. Both must exist
// and be directories; each is validated independently (the assets
// directory is not required to nest under the root).
func Resolve(rootDir, assetsDir string) (*Roots, error) {
	root, err := canonicalDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("root directory %q: %w", rootDir, err)
	}

	assets, err := canonicalDir(assetsDir)
	if err != nil {
		return nil, fmt.Errorf("assets directory %q: %w", assetsDir, err)
	}

	return &Roots{
		Root:       root,
		Assets:     assets,
		AssetsBase: filepath.Base(assets),
	}, nil
}

func canonicalDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidDirectory)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: not a directory", ErrInvalidDirectory)
	}

	return resolved, nil
}

// Lookup maps a request path to a filesystem path under the root.
// The returned FileInfo distinguishes files from directories.
//
// Request paths are untrusted: the path is cleaned, joined under the
// root, symlink-resolved, and the result checked for containment.
// Escapes return ErrEscapesRoot, missing files return ErrNotFound, and
// any other stat failure (permissions and the like) is returned as-is.
func (r *Roots) Lookup(requestPath string) (string, fs.FileInfo, error) {
	clean := path.Clean("/" + strings.TrimPrefix(requestPath, "/"))
	full := filepath.Join(r.Root, filepath.FromSlash(clean))

	// Join+Clean already collapses ".." segments, but symlinks inside the
	// tree can still point anywhere. Resolve and re-check containment.
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}

	if !r.Contains(resolved) {
		return "", nil, ErrEscapesRoot
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}

	return resolved, info, nil
}

// Contains reports whether the given canonical path is the root itself or
// a descendant of it.
func (r *Roots) Contains(p string) bool {
	if p == r.Root {
		return true
	}
	return strings.HasPrefix(p, r.Root+string(filepath.Separator))
}
