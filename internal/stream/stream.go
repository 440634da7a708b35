// Package stream parses markdown that arrives in pieces, such as LLM output.
// It buffers input and parses complete blocks as soon as they can no longer
// change, so consumers can render them while the rest is still streaming.
package stream

import (
	"bytes"
	"errors"

	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/ir"
	"github.com/samsaffron/mdir/internal/parser"
)

// ErrClosed is returned by Write and Close after Close has been called.
var ErrClosed = errors.New("stream: parser closed")

// Parser incrementally parses markdown written to it. The document it
// produces is equal to parsing all written text in one call. It is not safe
// for concurrent use.
type Parser struct {
	parser *parser.Parser
	log    *zap.Logger

	// Text received but not yet parsed; it starts at a safe boundary.
	pending bytes.Buffer

	blocks    []ir.Element
	footnotes map[string]ir.FootnoteDefinition

	// How many blocks have been handed to onElement. The last parsed block
	// is held back because the next chunk may still trim it.
	delivered int
	onElement func(ir.Element)

	closed bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithParser sets the block parser used for each chunk.
func WithParser(p *parser.Parser) Option {
	return func(sp *Parser) {
		sp.parser = p
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(sp *Parser) {
		sp.log = log
	}
}

// OnElement registers a callback invoked once for every top-level element,
// in document order, as soon as the element is final.
func OnElement(fn func(ir.Element)) Option {
	return func(sp *Parser) {
		sp.onElement = fn
	}
}

// New creates a streaming parser.
func New(opts ...Option) *Parser {
	sp := &Parser{footnotes: make(map[string]ir.FootnoteDefinition)}
	for _, opt := range opts {
		opt(sp)
	}
	if sp.log == nil {
		sp.log = zap.NewNop()
	}
	sp.log = sp.log.Named("stream")
	if sp.parser == nil {
		sp.parser = parser.New(parser.WithLogger(sp.log))
	}
	return sp
}

// Write accepts markdown chunks and parses complete blocks immediately.
// It implements io.Writer.
func (sp *Parser) Write(p []byte) (int, error) {
	if sp.closed {
		return 0, ErrClosed
	}
	sp.pending.Write(p)

	cut := parser.SafeBoundary(sp.pending.String())
	if cut < 0 {
		return len(p), nil
	}
	sp.absorb(string(sp.pending.Next(cut)))
	sp.deliver(len(sp.blocks) - 1)
	return len(p), nil
}

// Close parses whatever is still buffered, delivers the remaining elements
// and returns the complete document.
func (sp *Parser) Close() (ir.Document, error) {
	if sp.closed {
		return ir.Document{}, ErrClosed
	}
	sp.closed = true

	sp.absorb(sp.pending.String())
	sp.pending.Reset()
	sp.deliver(len(sp.blocks))

	children := make([]ir.Element, len(sp.blocks))
	copy(children, sp.blocks)
	if len(children) == 0 {
		children = nil
	}
	return ir.Document{Children: children, Footnotes: sp.footnotes}, nil
}

// Buffered returns the number of bytes waiting for a safe boundary.
func (sp *Parser) Buffered() int {
	return sp.pending.Len()
}

func (sp *Parser) absorb(chunk string) {
	if chunk == "" {
		return
	}
	doc := sp.parser.Parse(chunk)
	sp.blocks = parser.AppendBlocks(sp.blocks, doc.Children)
	for id, def := range doc.Footnotes {
		if _, dup := sp.footnotes[id]; dup {
			sp.log.Debug("duplicate footnote definition ignored", zap.String("id", id))
			continue
		}
		sp.footnotes[id] = def
	}
	sp.log.Debug("chunk parsed",
		zap.Int("bytes", len(chunk)),
		zap.Int("blocks", len(doc.Children)),
		zap.Int("total", len(sp.blocks)))
}

// deliver hands blocks[delivered:upto] to the callback.
func (sp *Parser) deliver(upto int) {
	for ; sp.delivered < upto; sp.delivered++ {
		if sp.onElement != nil {
			sp.onElement(sp.blocks[sp.delivered])
		}
	}
}
