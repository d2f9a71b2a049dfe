package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldImageID is the standardized structured logging key for staged image identifiers.
	FieldImageID = "image_id"
	// FieldObjectID is the standardized structured logging key for blob store object identifiers.
	FieldObjectID = "object_id"
	// FieldFileName is the standardized structured logging key for user-supplied file names.
	FieldFileName = "file_name"
	// FieldBatchSize is the standardized structured logging key for batch item counts.
	FieldBatchSize = "batch_size"
)

type contextKey string

const imageIDKey contextKey = "lightbox.image_id"

// WithImageID attaches a staged image identifier to the context for log enrichment.
func WithImageID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, imageIDKey, id)
}

// ImageIDFromContext extracts a staged image identifier previously stored with WithImageID.
func ImageIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(imageIDKey).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 1)
	if id, ok := ImageIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldImageID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
