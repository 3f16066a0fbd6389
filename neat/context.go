package neat

import (
	"context"

	"github.com/pkg/errors"
)

// ErrOptionsNotFound is the error value for a context that carries no
// Options. FromContext does not return it; it reports that case through
// its boolean result.
var ErrOptionsNotFound = errors.New("NEAT options not found in context")

type optionsKey struct{}

// NewContext returns a new Context carrying the given Options.
func NewContext(ctx context.Context, opts *Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// FromContext returns the Options previously attached with NewContext.
func FromContext(ctx context.Context) (*Options, bool) {
	o, ok := ctx.Value(optionsKey{}).(*Options)
	return o, ok
}
