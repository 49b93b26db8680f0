package trace_info

import "context"

type logIdKey struct{}

// WithLogId attaches the request's trace id to ctx; GetLogId reads it
// back, returning "" for contexts that never went through the trace
// middleware.
func WithLogId(ctx context.Context, logId string) context.Context {
	return context.WithValue(ctx, logIdKey{}, logId)
}

func GetLogId(ctx context.Context) string {
	if logId, ok := ctx.Value(logIdKey{}).(string); ok {
		return logId
	}
	return ""
}
