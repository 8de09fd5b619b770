package syntax

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/kumark/internal/logging"
	"github.com/yaklabco/kumark/pkg/element"
	"github.com/yaklabco/kumark/pkg/symbol"
)

// errRejected fails a transaction so the stream rolls back.
var errRejected = errors.New("rejected")

// errEndOfInput fails a feed that found the stream exhausted.
var errEndOfInput = errors.New("end of input")

// Next recognizes one element at the stream's current position.
//
// Parsers are tried in order, each inside its own transaction. A parser
// that breaks, or runs out of input without finishing, leaves the stream
// untouched and the next parser is tried. If none matches, Next returns an
// error wrapping ErrNoMatch and the stream is unchanged.
func (l *Layer) Next(ctx context.Context, stream *symbol.Stream) (element.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("layer %s: %w", l.name, err)
	}

	logger := l.loggerFor(ctx)
	misses := make(innerMisses)

	for _, parser := range l.parsers {
		if resetter, ok := parser.(Resetter); ok {
			resetter.Reset()
		}

		elem, err := symbol.TryRun(stream, func(s *symbol.Stream) (element.Element, error) {
			return l.attempt(ctx, s, parser, misses)
		})
		if err == nil {
			logger.Debug("element parsed",
				logging.FieldLayer, l.name,
				logging.FieldClass, elem.Class(),
				logging.FieldSpan, elem.Data().Span(),
			)
			return elem, nil
		}
		if !errors.Is(err, errRejected) {
			return nil, err
		}

		logger.Debug("parser rejected input",
			logging.FieldLayer, l.name,
			logging.FieldParser, fmt.Sprintf("%T", parser),
			logging.FieldPosition, stream.Pos(),
		)
	}

	return nil, fmt.Errorf("layer %s at %s: %w", l.name, stream.Pos(), ErrNoMatch)
}

// Parse recognizes elements until the stream is exhausted.
// On error the elements recognized so far are returned with it.
func (l *Layer) Parse(ctx context.Context, stream *symbol.Stream) ([]element.Element, error) {
	var elems []element.Element

	for !stream.Done() {
		elem, err := l.Next(ctx, stream)
		if err != nil {
			return elems, err
		}
		elems = append(elems, elem)
	}

	return elems, nil
}

// ending is the outcome of feeding a parser.
type ending uint8

const (
	endParsed ending = iota // the parser completed the construct
	endBreak                // the parser rejected the next input
	endInput                // the input ran out
	endHeld                 // the parser stopped while holding input, which was given back
	endMore                 // the input was accepted and the parser wants more
)

// attempt feeds input to one parser until it completes or gives up.
func (l *Layer) attempt(ctx context.Context, stream *symbol.Stream, parser Parser, misses innerMisses) (element.Element, error) {
	var acc run

	for {
		var (
			end ending
			err error
		)
		if tentative(parser) && acc.units > 0 {
			end, err = l.hold(ctx, stream, parser, &acc, misses)
		} else {
			end, err = l.feed(ctx, stream, parser, &acc, misses)
		}
		if err != nil {
			return nil, err
		}

		switch end {
		case endParsed:
			return l.finalize(parser, &acc)
		case endBreak, endInput, endHeld:
			if !finished(parser, &acc, end == endInput) {
				return nil, errRejected
			}
			return l.finalize(parser, &acc)
		}
	}
}

// feed gives the parser one unit of input.
func (l *Layer) feed(ctx context.Context, stream *symbol.Stream, parser Parser, acc *run, misses innerMisses) (ending, error) {
	res, err := l.step(ctx, stream, parser, acc, misses)
	switch {
	case errors.Is(err, errRejected):
		return endBreak, nil
	case errors.Is(err, errEndOfInput):
		return endInput, nil
	case err != nil:
		return endBreak, err
	case res == Parsed:
		return endParsed, nil
	}
	return endMore, nil
}

// hold feeds a tentative parser inside a transaction of its own. If the
// parser stops before it commits, the held input goes back to the stream
// and acc is cut back to where holding began.
func (l *Layer) hold(ctx context.Context, stream *symbol.Stream, parser Parser, acc *run, misses innerMisses) (ending, error) {
	mark := acc.mark()

	end, err := symbol.TryRun(stream, func(s *symbol.Stream) (ending, error) {
		for {
			end, err := l.feed(ctx, s, parser, acc, misses)
			switch {
			case err != nil:
				return end, err
			case end == endBreak, end == endInput:
				return endHeld, errRejected
			case end == endParsed, !tentative(parser):
				return end, nil
			}
		}
	})
	if errors.Is(err, errRejected) {
		acc.restore(mark)
		return endHeld, nil
	}
	return end, err
}

func tentative(parser Parser) bool {
	t, ok := parser.(Tentative)
	return ok && t.Tentative()
}

func nests(parser Parser) bool {
	n, ok := parser.(Nester)
	return !ok || n.Nests()
}

// missKey identifies a stream state.
type missKey struct {
	offset int
	done   bool
}

// innerMisses records the stream states at which the inner layer matched
// nothing during one Next call. The inner layer's outcome depends only on
// the input ahead, so a miss stays a miss for every candidate.
type innerMisses map[missKey]struct{}

func keyOf(stream *symbol.Stream) missKey {
	return missKey{offset: stream.Pos().Offset, done: stream.Done()}
}

// step offers the parser either an element from the inner layer or the
// next raw symbol. A rejected offer leaves the stream where it was.
func (l *Layer) step(ctx context.Context, stream *symbol.Stream, parser Parser, acc *run, misses innerMisses) (Result, error) {
	if l.inner != nil && nests(parser) {
		key := keyOf(stream)
		if _, missed := misses[key]; !missed {
			res, err := symbol.TryRun(stream, func(s *symbol.Stream) (Result, error) {
				child, err := l.inner.Next(ctx, s)
				if err != nil {
					return Break, err
				}
				res := parser.Subparse(child)
				if res == Break {
					return Break, errRejected
				}
				acc.addElement(child)
				return res, nil
			})
			switch {
			case err == nil:
				return res, nil
			case errors.Is(err, ErrNoMatch):
				misses[key] = struct{}{}
			case errors.Is(err, errRejected):
				// Fall back to the raw symbol.
			default:
				return Break, err
			}
		}
	}

	return symbol.TryRun(stream, func(s *symbol.Stream) (Result, error) {
		sym, ok := s.Next()
		if !ok {
			return Break, errEndOfInput
		}
		res := parser.Parse(sym)
		if res == Break {
			return Break, errRejected
		}
		acc.addSymbol(sym)
		return res, nil
	})
}

// finished reports whether a parser that stopped receiving input has
// completed a non-empty construct.
func finished(parser Parser, acc *run, eof bool) bool {
	finisher, ok := parser.(Finisher)
	return ok && acc.units > 0 && finisher.Finish(eof) == Parsed
}

func (l *Layer) finalize(parser Parser, acc *run) (element.Element, error) {
	elem := parser.Element(string(acc.raw), acc.span)
	if elem == nil {
		return nil, fmt.Errorf("layer %s: %T: %w", l.name, parser, ErrNilElement)
	}

	if l.strict {
		if err := element.Verify(elem.Data()); err != nil {
			return nil, fmt.Errorf("layer %s: %s element: %w", l.name, elem.Class(), err)
		}
	}

	return elem, nil
}

func (l *Layer) loggerFor(ctx context.Context) *log.Logger {
	if l.logger != nil {
		return l.logger
	}
	return logging.FromContext(ctx)
}
