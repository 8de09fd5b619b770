package syntax

import (
	"errors"

	"github.com/charmbracelet/log"
)

// ErrNoMatch is returned when no parser in a layer accepts the input.
var ErrNoMatch = errors.New("no parser matched")

// ErrNilElement is returned when a parser finalizes to a nil element.
var ErrNilElement = errors.New("parser returned nil element")

// Layer is an ordered set of competing parsers. Order is precedence:
// the first parser to complete a construct wins.
//
// A Layer is not safe for concurrent use; neither is the stream it reads.
type Layer struct {
	name    string
	parsers []Parser
	inner   *Layer
	strict  bool
	logger  *log.Logger
}

// Option configures a Layer.
type Option func(*Layer)

// WithInner nests another layer: before each symbol is fed to a parser,
// the inner layer is tried at that point and its element offered through
// Subparse.
func WithInner(inner *Layer) Option {
	return func(l *Layer) {
		l.inner = inner
	}
}

// WithStrictSpans makes the layer verify every finalized element's span
// against its raw text.
func WithStrictSpans(strict bool) Option {
	return func(l *Layer) {
		l.strict = strict
	}
}

// WithLogger sets the logger for dispatch tracing. By default the logger
// is taken from the context passed to Next.
func WithLogger(logger *log.Logger) Option {
	return func(l *Layer) {
		l.logger = logger
	}
}

// NewLayer creates a layer trying parsers in the given order.
func NewLayer(name string, parsers []Parser, opts ...Option) *Layer {
	layer := &Layer{
		name:    name,
		parsers: append([]Parser(nil), parsers...),
	}
	for _, opt := range opts {
		opt(layer)
	}
	return layer
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// Parsers returns the parsers in precedence order.
func (l *Layer) Parsers() []Parser {
	return append([]Parser(nil), l.parsers...)
}

// Len returns the number of parsers.
func (l *Layer) Len() int {
	return len(l.parsers)
}

// Inner returns the nested layer, if any.
func (l *Layer) Inner() *Layer {
	return l.inner
}
