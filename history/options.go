package history

import "context"

type Option func(*Options)

type Options struct {
	Location string
	ApiKey   string
	Model    string
	Window   int
	Context  context.Context
}

func WithLocation(location string) Option {
	return func(o *Options) {
		o.Location = location
	}
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithWindow(window int) Option {
	return func(o *Options) {
		o.Window = window
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Window:  8,
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
