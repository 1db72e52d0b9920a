package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

// errorPageStage substitutes configured static pages for 404 and 5xx
// bodies while preserving the status code and headers set by earlier
// stages. Pages are read lazily on each failing response so they can be
// edited without a restart; a missing or unreadable page falls back to
// a minimal built-in body.
type errorPageStage struct {
	page404 string
	page50x string
}

func (s *errorPageStage) Name() string { return "error-page" }

func (s *errorPageStage) Process(_ context.Context, ex *Exchange) error {
	var page string
	switch {
	case ex.Status == http.StatusNotFound:
		page = s.page404
	case ex.Status >= 500 && ex.Status <= 599:
		page = s.page50x
	default:
		return nil
	}

	body, err := os.ReadFile(page)
	if err != nil {
		body = builtinErrorBody(ex.Status)
	}

	ex.Body = body
	ex.Header.Set("Content-Type", "text/html; charset=utf-8")
	// The substituted body is identity-coded.
	ex.Header.Del("Content-Encoding")
	ex.Header.Del("Content-Length")
	return nil
}

func builtinErrorBody(status int) []byte {
	return []byte(fmt.Sprintf(
		"<html><head><title>%d %s</title></head><body><h1>%d %s</h1></body></html>\n",
		status, http.StatusText(status), status, http.StatusText(status),
	))
}
