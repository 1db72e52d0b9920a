package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"
)

// Exchange carries the request/response state mutated in place by each
// stage. It is created per inbound request and never retained.
type Exchange struct {
	Method     string
	Path       string // cleaned request URL path, rooted at "/"
	ReqHeader  http.Header
	RemoteAddr string
	RequestID  string
	Start      time.Time

	Status int
	Header http.Header
	Body   []byte

	// ResolvedPath is the filesystem path of the served file, empty when
	// nothing resolved. Later stages must not clear it.
	ResolvedPath string

	// Err records a stage failure for the access log. The client only
	// ever sees the mapped status code.
	Err error
}

// NewExchange builds the per-request state from an inbound request. The
// URL path is cleaned up front so every stage, cache-policy matching
// included, sees the same canonical request path.
func NewExchange(r *http.Request) *Exchange {
	return &Exchange{
		Method:     r.Method,
		Path:       path.Clean("/" + strings.TrimPrefix(r.URL.Path, "/")),
		ReqHeader:  r.Header,
		RemoteAddr: r.RemoteAddr,
		Start:      time.Now(),
		Status:     http.StatusOK,
		Header:     make(http.Header),
	}
}

// Stage is one transformation step in the pipeline.
type Stage interface {
	Name() string
	Process(ctx context.Context, ex *Exchange) error
}

// Pipeline is the immutable, ordered stage sequence. Build one with New
// at startup and share it across all requests.
type Pipeline struct {
	stages []Stage // halt on error
	tail   []Stage // always run
	logger *slog.Logger
}

// Run executes all stages for one request. A stage error converts the
// response to a 500 and skips the remaining ordinary stages; the tail
// stages (access log, error page) run regardless, and their own errors
// are swallowed after logging.
func (p *Pipeline) Run(ctx context.Context, ex *Exchange) {
	for _, s := range p.stages {
		if err := s.Process(ctx, ex); err != nil {
			ex.Err = fmt.Errorf("stage %s: %w", s.Name(), err)
			if ex.Status < 500 || ex.Status > 599 {
				ex.Status = http.StatusInternalServerError
			}
			break
		}
	}

	for _, s := range p.tail {
		if err := s.Process(ctx, ex); err != nil {
			p.logger.Warn("pipeline tail stage failed",
				slog.String("stage", s.Name()),
				slog.String("error", err.Error()),
			)
		}
	}
}
