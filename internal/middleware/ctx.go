package middleware

import "context"

type ctxKey string

const (
	ContextUserID    ctxKey = "user_id"
	ContextRole      ctxKey = "role"
	ContextRequestID ctxKey = "request_id"

	// Флаг ставится админам, чтобы пропускать все role-проверки.
	ContextSkipGuards ctxKey = "skip_guards"
)

func WithSkipGuards(ctx context.Context) context.Context {
	return context.WithValue(ctx, ContextSkipGuards, true)
}

func SkipGuards(ctx context.Context) bool {
	v := ctx.Value(ContextSkipGuards)
	b, _ := v.(bool)
	return b
}

// CallerID возвращает user_id из контекста ("" — аноним).
func CallerID(ctx context.Context) string {
	v, _ := ctx.Value(ContextUserID).(string)
	return v
}

// CallerRole возвращает роль из контекста ("" — аноним).
func CallerRole(ctx context.Context) string {
	v, _ := ctx.Value(ContextRole).(string)
	return v
}
