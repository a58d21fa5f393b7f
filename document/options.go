package document

import (
	"time"

	"github.com/viant/esconv/conv"
	"github.com/viant/tagly/format/text"
)

type (
	options struct {
		caseFormat text.CaseFormat
		timeLayout string
		dateLayout string
	}

	//Option represents mapper option
	Option func(o *options)
)

func newOptions(opts []Option) *options {
	ret := &options{
		caseFormat: text.CaseFormatLowerCamel,
		timeLayout: time.RFC3339Nano,
		dateLayout: conv.DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// WithCaseFormat sets document key case format for fields without explicit name
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(o *options) {
		o.caseFormat = caseFormat
	}
}

// WithTimeLayout sets layout used to write time fields without format tag layout
func WithTimeLayout(layout string) Option {
	return func(o *options) {
		o.timeLayout = layout
	}
}

// WithDateLayout sets preferred layout used to read time fields
func WithDateLayout(layout string) Option {
	return func(o *options) {
		o.dateLayout = layout
	}
}
