package logger

import (
	"context"
	"unicode/utf8"
)

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every record logged with a context that carries them.
// Set them once at the edge of a delivery and every downstream log line picks them up.
type LogFields struct {
	DeliveryID *string // Webhook delivery id (X-GitHub-Delivery or generated)
	Translator *string // Translator selected for the delivery
	EventType  *string // Upstream event type header value (e.g., "push")
	Repository *string // Repository name once decoded
	Component  string  // Component name (OTel semantic convention style, e.g., "commitrelay.translator.github")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.DeliveryID != nil {
		result.DeliveryID = new.DeliveryID
	}
	if new.Translator != nil {
		result.Translator = new.Translator
	}
	if new.EventType != nil {
		result.EventType = new.EventType
	}
	if new.Repository != nil {
		result.Repository = new.Repository
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{DeliveryID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate cuts s to at most maxLen bytes, appending "..." if truncated.
// The cut backs off to a rune boundary so the result stays valid UTF-8.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
