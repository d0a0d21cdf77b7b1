package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Fields flow through context enrichment so request-scoped values
// (user_id, org_id, ...) show up in every log statement without threading them
// through call sites.
type LogFields struct {
	UserID    *int64 // authenticated actor
	OrgID     *int64 // resolved active organization
	SessionID *int64 // session backing the request
	Component string // component name, e.g. "parley.sso.broker"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking
// precedence. Context timeouts and cancellation are preserved.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.OrgID != nil {
		result.OrgID = next.OrgID
	}
	if next.SessionID != nil {
		result.SessionID = next.SessionID
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{OrgID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
