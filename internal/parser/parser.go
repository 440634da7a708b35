// Package parser turns markdown source into an ir.Document.
//
// Parsing never fails: constructs that do not validate degrade to the next
// interpretation down the priority list and finally to plain paragraph
// text. A Parser carries only immutable options and may be shared between
// goroutines.
package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/ir"
)

// Parser converts markdown to IR.
type Parser struct {
	log *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for best-effort diagnostics such as
// dropped table cells or ignored duplicate footnotes.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	p.log = p.log.Named("parser")
	return p
}

var defaultParser = New()

// Parse parses src with a default parser.
func Parse(src string) ir.Document {
	return defaultParser.Parse(src)
}

// Parse segments src into blocks and returns the document together with
// its footnote definitions.
func (p *Parser) Parse(src string) ir.Document {
	s := &segmenter{
		log:       p.log,
		lines:     splitLines(src),
		footnotes: make(map[string]ir.FootnoteDefinition),
	}
	s.run()
	return ir.Document{Children: s.out, Footnotes: s.footnotes}
}

// splitLines splits on line feeds; a carriage return ending a line is
// dropped.
func splitLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// isBlankLine returns true if the line contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
