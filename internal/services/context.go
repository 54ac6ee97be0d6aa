package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	sectionKey contextKey = "section"
)

// WithRunID annotates context with the render run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the render run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSection annotates context with the scene section being processed.
func WithSection(ctx context.Context, section string) context.Context {
	if section == "" {
		return ctx
	}
	return context.WithValue(ctx, sectionKey, section)
}

// SectionFromContext returns the section name if present.
func SectionFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sectionKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
