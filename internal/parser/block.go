package parser

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/ir"
)

var headerPattern = regexp.MustCompile(`^\s*(#{1,6})[ \t]+(.*\S)\s*$`)

// segmenter holds the state of one Parse call.
type segmenter struct {
	log       *zap.Logger
	lines     []string
	out       []ir.Element
	footnotes map[string]ir.FootnoteDefinition
}

func (s *segmenter) run() {
	for i := 0; i < len(s.lines); {
		i += s.step(i)
	}
}

// step consumes the block starting at line i and returns the number of
// lines it used (always at least one).
func (s *segmenter) step(i int) int {
	line := s.lines[i]

	if isBlankLine(line) {
		return 1
	}

	if tbl, n, ok := s.parseTable(i); ok {
		s.emit(tbl)
		return n
	}

	if code, n, ok := parseFence(s.lines, i); ok {
		s.emit(code)
		return n
	} else if _, open := parseFenceOpen(line); open {
		s.log.Debug("unclosed code fence treated as text", zap.Int("line", i+1))
	}

	if id, content, ok := matchFootnoteDefinition(line); ok {
		s.addFootnote(id, content, i)
		return 1
	}

	if item, ok := s.classifyListItem(line, i); ok {
		s.emit(item)
		return 1
	}

	if h, ok := parseHeader(line); ok {
		s.emit(h)
		return 1
	}

	if q, ok := parseBlockQuote(line); ok {
		s.emit(q)
		return 1
	}

	if isHorizontalRule(line) {
		s.out = trimTrailingBreak(s.out)
		s.emit(ir.HorizontalRule{})
		return 1
	}

	if dl, n, ok := parseDefinitionList(s.lines, i); ok {
		s.emit(dl)
		return n
	}

	return s.paragraph(i)
}

func (s *segmenter) emit(e ir.Element) {
	s.out = append(s.out, e)
}

// paragraph collects lines up to the next blank line or block start and
// parses them as one inline run.
func (s *segmenter) paragraph(start int) int {
	end := start + 1
	for end < len(s.lines) && !isBlankLine(s.lines[end]) && !startsBlock(s.lines, end) {
		end++
	}
	s.emit(ir.Paragraph{Children: parseInline(joinParagraph(s.lines[start:end]))})
	return end - start
}

// joinParagraph joins lines with single spaces. A line ending in two spaces
// or a backslash keeps a hard break, encoded as "\n" for the inline scanner.
// The last line never breaks; its trailing backslash stays literal.
func joinParagraph(lines []string) string {
	var sb strings.Builder
	last := len(lines) - 1
	for i, raw := range lines {
		text := strings.TrimSpace(raw)
		if i == last {
			sb.WriteString(text)
			break
		}
		switch {
		case strings.HasSuffix(strings.TrimRight(raw, "\t"), "  "):
			sb.WriteString(text)
			sb.WriteByte('\n')
		case endsWithBackslash(text):
			sb.WriteString(text[:len(text)-1])
			sb.WriteByte('\n')
		default:
			sb.WriteString(text)
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// endsWithBackslash reports an odd run of trailing backslashes.
func endsWithBackslash(s string) bool {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// startsBlock reports whether line i begins any block other than a
// paragraph. It is the lookahead used to end paragraph accumulation.
func startsBlock(lines []string, i int) bool {
	return startsSingleBlock(lines, i) || startsDefinitionList(lines, i)
}

func startsSingleBlock(lines []string, i int) bool {
	line := lines[i]
	if isTableStart(lines, i) {
		return true
	}
	if _, _, ok := parseFence(lines, i); ok {
		return true
	}
	if _, _, ok := matchFootnoteDefinition(line); ok {
		return true
	}
	if _, ok := matchListItem(line); ok {
		return true
	}
	if _, ok := parseHeader(line); ok {
		return true
	}
	if isBlockQuoteLine(line) {
		return true
	}
	return isHorizontalRule(line)
}

func parseHeader(line string) (ir.Header, bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return ir.Header{}, false
	}
	return ir.Header{
		Level:    len(m[1]),
		Children: parseInline(stripClosingHashes(m[2])),
	}, true
}

// stripClosingHashes removes an optional closing "###" sequence.
func stripClosingHashes(content string) string {
	trimmed := strings.TrimRight(content, "#")
	if trimmed == content {
		return content
	}
	if trimmed == "" {
		return ""
	}
	if last := trimmed[len(trimmed)-1]; last != ' ' && last != '\t' {
		return content
	}
	return strings.TrimSpace(trimmed)
}

func isBlockQuoteLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return len(trimmed) > 0 && trimmed[0] == '>'
}

// parseBlockQuote handles a single quoted line.
func parseBlockQuote(line string) (ir.BlockQuote, bool) {
	if !isBlockQuoteLine(line) {
		return ir.BlockQuote{}, false
	}
	content := strings.TrimLeft(line, " \t")[1:]
	content = strings.TrimPrefix(content, " ")
	return ir.BlockQuote{Children: parseInline(strings.TrimSpace(content))}, true
}

// isHorizontalRule returns true if the line is a thematic break (---, ***, ___).
func isHorizontalRule(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}

	char := trimmed[0]
	if char != '-' && char != '*' && char != '_' {
		return false
	}

	count := 0
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == char {
			count++
		} else if c != ' ' && c != '\t' {
			return false
		}
	}
	return count >= 3
}

// trimTrailingBreak drops a line break marker that ends the last emitted
// element, either a bare LineBreak or the final child of a paragraph.
func trimTrailingBreak(out []ir.Element) []ir.Element {
	if len(out) == 0 {
		return out
	}
	switch last := out[len(out)-1].(type) {
	case ir.LineBreak:
		return out[:len(out)-1]
	case ir.Paragraph:
		n := len(last.Children)
		if n == 0 {
			return out
		}
		if _, ok := last.Children[n-1].(ir.LineBreak); !ok {
			return out
		}
		children := make([]ir.Element, n-1)
		copy(children, last.Children)
		if len(children) == 0 {
			children = nil
		}
		trimmed := make([]ir.Element, len(out))
		copy(trimmed, out)
		trimmed[len(trimmed)-1] = ir.Paragraph{Children: children}
		return trimmed
	}
	return out
}

// AppendBlocks appends src to dst the way the segmenter would have emitted
// them had both come from one parse: a leading rule in src trims the
// trailing line break of dst. dst is not modified.
func AppendBlocks(dst, src []ir.Element) []ir.Element {
	out := make([]ir.Element, len(dst), len(dst)+len(src))
	copy(out, dst)
	if len(src) > 0 {
		if _, ok := src[0].(ir.HorizontalRule); ok {
			out = trimTrailingBreak(out)
		}
	}
	return append(out, src...)
}
