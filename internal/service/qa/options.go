package qa

import (
	"context"

	docqa "github.com/m-v-r/docqa"
	"github.com/m-v-r/docqa/sites"
)

type Option func(*Options)

type Options struct {
	Builder func(ctx context.Context, sources []sites.Source, params docqa.Params) (*docqa.Agent, error)
	Context context.Context
}

// WithBuilder overrides how agents are constructed. Tests use this to avoid
// reaching the remote platform.
func WithBuilder(b func(ctx context.Context, sources []sites.Source, params docqa.Params) (*docqa.Agent, error)) Option {
	return func(o *Options) {
		o.Builder = b
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
