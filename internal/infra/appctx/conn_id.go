package appctx

import "context"

type ctxKey string

const connIDKey ctxKey = "connID"

// WithConnID добавляет id websocket соединения в контекст
func WithConnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, connIDKey, id)
}

// ConnID извлекает id соединения из контекста
func ConnID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(connIDKey).(string)
	return id, ok && id != ""
}
