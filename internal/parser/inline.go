package parser

import (
	"strings"

	"github.com/samsaffron/mdir/internal/ir"
)

// inlineScanner resolves inline markup in one run of text. Plain text is
// accumulated in text and flushed as a single Text node whenever another
// node is emitted.
type inlineScanner struct {
	src  string
	pos  int
	text strings.Builder
	out  []ir.Element
}

func parseInline(src string) []ir.Element {
	if src == "" {
		return nil
	}
	sc := &inlineScanner{src: src}
	sc.run()
	return sc.out
}

func (sc *inlineScanner) run() {
	for sc.pos < len(sc.src) {
		if !sc.step() {
			sc.text.WriteByte(sc.src[sc.pos])
			sc.pos++
		}
	}
	sc.flush()
}

// step tries the productions that can start at the current byte, first
// match wins.
func (sc *inlineScanner) step() bool {
	switch sc.src[sc.pos] {
	case '\\':
		return sc.escape()
	case '`':
		return sc.codeSpan()
	case '[':
		return sc.footnoteRef() || sc.link()
	case '!':
		return sc.image()
	case '~':
		if strings.HasPrefix(sc.src[sc.pos:], "~~") {
			return sc.delimited("~~", func(c []ir.Element) ir.Element { return ir.Strikethrough{Children: c} })
		}
	case '*', '_':
		return sc.emphasis()
	case '\n':
		sc.emit(ir.LineBreak{})
		sc.pos++
		return true
	}
	return false
}

func (sc *inlineScanner) flush() {
	if sc.text.Len() == 0 {
		return
	}
	sc.out = append(sc.out, ir.Text{Content: sc.text.String()})
	sc.text.Reset()
}

func (sc *inlineScanner) emit(e ir.Element) {
	sc.flush()
	sc.out = append(sc.out, e)
}

func (sc *inlineScanner) escape() bool {
	if sc.pos+1 >= len(sc.src) {
		return false
	}
	next := sc.src[sc.pos+1]
	switch {
	case next == '\n':
		sc.emit(ir.LineBreak{})
	case isEscapable(next):
		sc.text.WriteByte(next)
	default:
		return false
	}
	sc.pos += 2
	return true
}

func (sc *inlineScanner) codeSpan() bool {
	end := codeSpanEnd(sc.src, sc.pos)
	if end < 0 {
		return false
	}
	sc.emit(ir.Code{Content: strings.TrimSpace(sc.src[sc.pos+1 : end-1])})
	sc.pos = end
	return true
}

func (sc *inlineScanner) footnoteRef() bool {
	rest := sc.src[sc.pos:]
	if !strings.HasPrefix(rest, "[^") {
		return false
	}
	end := strings.IndexByte(rest, ']')
	if end < 3 {
		return false
	}
	id := rest[2:end]
	if strings.ContainsAny(id, " \t\n[") {
		return false
	}
	sc.emit(ir.FootnoteReference{ID: id})
	sc.pos += end + 1
	return true
}

func (sc *inlineScanner) link() bool {
	closeLabel := matchBracket(sc.src, sc.pos, '[', ']')
	if closeLabel < 0 || closeLabel+1 >= len(sc.src) || sc.src[closeLabel+1] != '(' {
		return false
	}
	closeDest := matchBracket(sc.src, closeLabel+1, '(', ')')
	if closeDest < 0 {
		return false
	}

	label := sc.src[sc.pos+1 : closeLabel]
	dest := linkDestination(sc.src[closeLabel+2 : closeDest])
	if img, end, ok := matchImage(label, 0); ok && end == len(label) {
		sc.emit(ir.ImageLink{ImageURL: img.URL, Alt: img.Alt, LinkURL: dest})
	} else {
		sc.emit(ir.Link{URL: dest, Children: parseInline(label)})
	}
	sc.pos = closeDest + 1
	return true
}

func (sc *inlineScanner) image() bool {
	img, end, ok := matchImage(sc.src, sc.pos)
	if !ok {
		return false
	}
	sc.emit(img)
	sc.pos = end
	return true
}

// matchImage matches ![alt](url) at s[i] and returns the index just past it.
func matchImage(s string, i int) (ir.Image, int, bool) {
	if !strings.HasPrefix(s[i:], "![") {
		return ir.Image{}, 0, false
	}
	closeAlt := matchBracket(s, i+1, '[', ']')
	if closeAlt < 0 || closeAlt+1 >= len(s) || s[closeAlt+1] != '(' {
		return ir.Image{}, 0, false
	}
	closeURL := matchBracket(s, closeAlt+1, '(', ')')
	if closeURL < 0 {
		return ir.Image{}, 0, false
	}
	url := linkDestination(s[closeAlt+2 : closeURL])
	if url == "" {
		return ir.Image{}, 0, false
	}
	alt := ir.PlainText(parseInline(s[i+2 : closeAlt]))
	return ir.Image{URL: url, Alt: alt}, closeURL + 1, true
}

// linkDestination takes the first token of a (dest "title") group and
// drops angle brackets around it.
func linkDestination(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "<") {
		if end := strings.IndexByte(raw, '>'); end > 0 {
			return unescape(raw[1:end])
		}
	}
	if fields := strings.Fields(raw); len(fields) > 0 {
		return unescape(fields[0])
	}
	return ""
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isEscapable(s[i+1]) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func (sc *inlineScanner) emphasis() bool {
	c := sc.src[sc.pos]
	if c == '_' && sc.pos > 0 && isAlnum(sc.src[sc.pos-1]) {
		n := runLength(sc.src, sc.pos, '_')
		sc.text.WriteString(sc.src[sc.pos : sc.pos+n])
		sc.pos += n
		return true
	}
	if sc.pos+1 < len(sc.src) && sc.src[sc.pos+1] == c {
		return sc.delimited(string([]byte{c, c}), func(ch []ir.Element) ir.Element { return ir.Bold{Children: ch} })
	}
	return sc.delimited(string(c), func(ch []ir.Element) ir.Element { return ir.Italic{Children: ch} })
}

// delimited wraps the text up to the matching closer of delim. Without a
// closer the opener is literal and scanning resumes just past it.
func (sc *inlineScanner) delimited(delim string, wrap func([]ir.Element) ir.Element) bool {
	from := sc.pos + len(delim)
	end := findCloser(sc.src, from, delim)
	if end < 0 {
		sc.text.WriteString(delim)
		sc.pos = from
		return true
	}
	sc.emit(wrap(parseInline(sc.src[from:end])))
	sc.pos = end + len(delim)
	return true
}

// findCloser returns the index of the closing delimiter for content
// starting at from, or -1. Escapes and code spans are skipped. A closer
// inside a longer run of the same character is taken from the end of the
// run.
func findCloser(s string, from int, delim string) int {
	c := delim[0]
	single := len(delim) == 1
	for j := from; j < len(s); {
		switch s[j] {
		case '\\':
			j += 2
			continue
		case '`':
			if end := codeSpanEnd(s, j); end >= 0 {
				j = end
			} else {
				j++
			}
			continue
		}
		if s[j] != c {
			j++
			continue
		}

		r := runLength(s, j, c)
		candidate := -1
		switch {
		case single && r%2 == 1:
			candidate = j + r - 1
		case !single && r >= len(delim):
			candidate = j + r - len(delim)
		}
		if candidate > from && validCloser(s, candidate, delim) {
			return candidate
		}
		j += r
	}
	return -1
}

// validCloser applies the flanking rule to single delimiters: a closer
// with whitespace on both sides is rejected, end of text counting as
// whitespace. An underscore closer followed by a letter or digit is
// intraword and rejected too.
func validCloser(s string, at int, delim string) bool {
	if len(delim) != 1 {
		return true
	}
	after := at + 1
	if delim == "_" && after < len(s) && isAlnum(s[after]) {
		return false
	}
	spaceBefore := isSpace(s[at-1])
	spaceAfter := after >= len(s) || isSpace(s[after])
	return !(spaceBefore && spaceAfter)
}

// matchBracket returns the index of the bracket closing s[open], or -1.
// Escapes are skipped and code spans are opaque.
func matchBracket(s string, open int, o, c byte) int {
	depth := 0
	for j := open; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '`':
			if end := codeSpanEnd(s, j); end >= 0 {
				j = end - 1
			}
		case o:
			depth++
		case c:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// codeSpanEnd returns the index just past the backtick closing the code
// span opened at s[i], or -1 if it is unterminated. Spans do not nest: the
// first following backtick closes.
func codeSpanEnd(s string, i int) int {
	j := strings.IndexByte(s[i+1:], '`')
	if j < 0 {
		return -1
	}
	return i + 1 + j + 1
}

func runLength(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// isEscapable reports ASCII punctuation.
func isEscapable(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}

func isAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
