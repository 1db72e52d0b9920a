package pipeline

import (
	"bytes"
	"compress/gzip"
	"context"
	"strings"
)

// compressTypes lists non-text MIME types worth compressing. Anything
// under text/ is compressible by default.
var compressTypes = map[string]struct{}{
	"application/json":       {},
	"application/javascript": {},
	"application/xml":        {},
	"application/xhtml+xml":  {},
	"application/rss+xml":    {},
	"application/atom+xml":   {},
	"application/wasm":       {},
	"image/svg+xml":          {},
}

// compressStage gzips eligible response bodies. It must run after the
// content-type stage (eligibility depends on the resolved type) and
// before CORS and logging (they observe the final byte length). A
// failed compression delivers the original body unchanged.
type compressStage struct{}

func (s *compressStage) Name() string { return "compress" }

func (s *compressStage) Process(_ context.Context, ex *Exchange) error {
	if ex.Status < 200 || ex.Status > 299 || len(ex.Body) == 0 {
		return nil
	}
	if ex.Header.Get("Content-Encoding") != "" {
		return nil
	}
	if !acceptsGzip(ex.ReqHeader.Get("Accept-Encoding")) {
		return nil
	}
	if !compressible(ex.Header.Get("Content-Type")) {
		return nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(ex.Body); err != nil {
		return nil
	}
	if err := zw.Close(); err != nil {
		return nil
	}

	ex.Body = buf.Bytes()
	ex.Header.Set("Content-Encoding", "gzip")
	ex.Header.Add("Vary", "Accept-Encoding")
	return nil
}

func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		enc := strings.TrimSpace(part)
		if enc == "gzip" || strings.HasPrefix(enc, "gzip;") {
			// Reject an explicit zero qvalue.
			if strings.Contains(enc, "q=0") && !strings.Contains(enc, "q=0.") {
				return false
			}
			return true
		}
	}
	return false
}

func compressible(contentType string) bool {
	ct := contentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(strings.ToLower(ct))

	if strings.HasPrefix(ct, "text/") {
		return true
	}
	_, ok := compressTypes[ct]
	return ok
}
