// Package requestid carries a per-request correlation id through contexts.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header used to propagate request ids.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh request id.
func New() string {
	return uuid.NewString()
}

// WithContext stores id in ctx.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored in ctx, or "" if none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// FromRequest returns the caller supplied id when it is a valid UUID,
// otherwise a new one.
func FromRequest(r *http.Request) string {
	if id := r.Header.Get(Header); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	return New()
}
