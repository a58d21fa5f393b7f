package esconv

type (
	options struct {
		exactDecimals bool
	}

	//Option represents conversions option
	Option func(o *options)
)

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithExactDecimals reads float64 as the exact decimal expansion of its binary value
func WithExactDecimals() Option {
	return func(o *options) {
		o.exactDecimals = true
	}
}
