package parser

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/ir"
)

var footnoteDefPattern = regexp.MustCompile(`^\s*\[\^([^\]\s]+)\]:\s?(.*)$`)

// matchFootnoteDefinition matches a single-line "[^id]: text" definition.
func matchFootnoteDefinition(line string) (id, content string, ok bool) {
	m := footnoteDefPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// addFootnote records a definition; the first one for an id wins.
func (s *segmenter) addFootnote(id, content string, idx int) {
	if _, dup := s.footnotes[id]; dup {
		s.log.Debug("duplicate footnote definition ignored",
			zap.String("id", id), zap.Int("line", idx+1))
		return
	}
	s.footnotes[id] = ir.FootnoteDefinition{ID: id, Children: parseInline(content)}
}
