package fbx

import "github.com/ardnew/fbxtree/log"

// Option configures a parse.
type Option func(options) options

type options struct {
	name   string
	logger log.Logger
}

func makeOptions(opts ...Option) options {
	o := options{logger: log.Default()}

	for _, opt := range opts {
		if opt != nil {
			o = opt(o)
		}
	}

	return o
}

// WithLogger sets the logger that receives parse diagnostics. The package
// logger is used by default.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// WithName sets the document name. [ParseFile] derives a default name from
// the file path.
func WithName(name string) Option {
	return func(o options) options {
		o.name = name

		return o
	}
}
