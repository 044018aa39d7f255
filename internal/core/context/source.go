package context

import "context"

// Source identifies the inbound channel a command arrived from
// (whatsapp, telegram, email, api). Used for log enrichment and for
// tagging notes and automation log rows.
type sourceKey struct{}

// WithSource adds the command source channel to context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// GetSource returns the command source from context, or "api" when unset.
func GetSource(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok && s != "" {
		return s
	}
	return "api"
}
