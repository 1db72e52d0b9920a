package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/serveur-http/serveur/internal/accesslog"
)

// accessLogStage records every response: structured log line always,
// SQLite row when a store is configured. It never alters the response
// and its failures never reach the client.
type accessLogStage struct {
	logger *slog.Logger
	store  *accesslog.Store
}

func (s *accessLogStage) Name() string { return "access-log" }

func (s *accessLogStage) Process(ctx context.Context, ex *Exchange) error {
	duration := time.Since(ex.Start)

	attrs := []slog.Attr{
		slog.String("request_id", ex.RequestID),
		slog.String("method", ex.Method),
		slog.String("path", ex.Path),
		slog.Int("status", ex.Status),
		slog.Int("bytes", len(ex.Body)),
		slog.Duration("duration", duration),
		slog.String("remote_addr", ex.RemoteAddr),
	}
	if ex.ResolvedPath != "" {
		attrs = append(attrs, slog.String("file", ex.ResolvedPath))
	}
	if ex.Err != nil {
		attrs = append(attrs, slog.String("error", ex.Err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)

	if s.store != nil {
		err := s.store.Record(ctx, accesslog.Entry{
			ID:         ex.RequestID,
			Method:     ex.Method,
			Path:       ex.Path,
			Status:     ex.Status,
			Bytes:      len(ex.Body),
			Duration:   duration,
			RemoteAddr: ex.RemoteAddr,
		})
		if err != nil {
			s.logger.Warn("access log record failed", slog.String("error", err.Error()))
		}
	}

	return nil
}
