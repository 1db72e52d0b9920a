package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	oneDay  = 24 * time.Hour
	oneYear = 365 * 24 * time.Hour
)

// cacheStage attaches Cache-Control to 2xx responses: one year when the
// first request-path segment equals the assets directory's base name,
// one day otherwise. The match is a string token comparison, not a
// filesystem check; two top-level directories sharing the assets base
// name fall under the same policy.
type cacheStage struct {
	assetsBase string
}

func (s *cacheStage) Name() string { return "cache" }

func (s *cacheStage) Process(_ context.Context, ex *Exchange) error {
	if ex.Status < 200 || ex.Status > 299 {
		return nil
	}

	maxAge := oneDay
	if firstSegment(ex.Path) == s.assetsBase {
		maxAge = oneYear
	}
	ex.Header.Set("Cache-Control", fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))
	return nil
}

// firstSegment returns the first path segment of a rooted request path,
// or "" for the root itself.
func firstSegment(p string) string {
	p = strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return p
}
