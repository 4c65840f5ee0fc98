package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the session from context.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error
}
