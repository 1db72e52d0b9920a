package pipeline

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Handler adapts the pipeline to net/http. Only GET and HEAD reach the
// stages; a HEAD response carries the same headers a GET would,
// including the Content-Length of the suppressed body.
type Handler struct {
	pipeline *Pipeline
}

// NewHandler wraps a pipeline for mounting on a router.
func NewHandler(p *Pipeline) *Handler {
	return &Handler{pipeline: p}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ex := NewExchange(r)
	ex.RequestID = w.Header().Get("X-Request-ID")
	if ex.RequestID == "" {
		ex.RequestID = uuid.New().String()
	}

	h.pipeline.Run(r.Context(), ex)

	headers := w.Header()
	for key, values := range ex.Header {
		headers[key] = values
	}
	headers.Set("Content-Length", strconv.Itoa(len(ex.Body)))

	w.WriteHeader(ex.Status)
	if r.Method != http.MethodHead && len(ex.Body) > 0 {
		w.Write(ex.Body)
	}
}
