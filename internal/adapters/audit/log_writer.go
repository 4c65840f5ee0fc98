// Package audit contains the audit trail adapter.
package audit

import (
	"context"
	"log/slog"

	"github.com/example/fleet/internal/ctxutil"
	"github.com/example/fleet/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter on top of a structured logger.
type LogWriterAdapter struct {
	logger *slog.Logger
}

// NewLogWriterAdapter creates a new LogWriterAdapter writing to logger.
func NewLogWriterAdapter(logger *slog.Logger) *LogWriterAdapter {
	return &LogWriterAdapter{logger: logger.With("component", "audit")}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "create")
}

// writeLog writes a log entry with common logic.
func (w *LogWriterAdapter) writeLog(ctx context.Context, entityType, entityID, action string) error {
	attrs := []slog.Attr{
		slog.String("entity_type", entityType),
		slog.String("entity_id", entityID),
		slog.String("action", action),
	}
	// Operations outside a session (tests, tooling) are logged without one
	if sessionID := ctxutil.SessionFromContext(ctx); sessionID != "" {
		attrs = append(attrs, slog.String("session", sessionID))
	}

	w.logger.LogAttrs(ctx, slog.LevelInfo, "audit", attrs...)
	return nil
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
