package session

import "context"

type ctxKey struct{}

func WithData(ctx context.Context, d *Data) context.Context {
	return context.WithValue(ctx, ctxKey{}, d)
}

// FromContext devuelve la sesión cargada por el middleware (nil si no pasó por él).
func FromContext(ctx context.Context) *Data {
	d, _ := ctx.Value(ctxKey{}).(*Data)
	return d
}
