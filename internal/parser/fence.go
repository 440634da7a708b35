package parser

import (
	"strings"

	"github.com/samsaffron/mdir/internal/ir"
)

// fence describes an opening code fence line.
type fence struct {
	char   byte
	length int
	info   string
}

// parseFenceOpen extracts fence info from a fence opening line.
func parseFenceOpen(line string) (fence, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 3 {
		return fence{}, false
	}

	char := trimmed[0]
	if char != '`' && char != '~' {
		return fence{}, false
	}

	length := 0
	for length < len(trimmed) && trimmed[length] == char {
		length++
	}
	if length < 3 {
		return fence{}, false
	}

	info := strings.TrimSpace(trimmed[length:])
	// A backtick info string cannot contain backticks, otherwise the line
	// is an inline code span.
	if char == '`' && strings.Contains(info, "`") {
		return fence{}, false
	}
	return fence{char: char, length: length, info: info}, true
}

// isFenceClose returns true if the line is a valid closing fence for f.
func (f fence) isFenceClose(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < f.length {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != f.char {
			return false
		}
	}
	return true
}

// language is the first word of the info string.
func (f fence) language() string {
	if fields := strings.Fields(f.info); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// isFenceLine reports whether a line looks like a fence marker at all.
func isFenceLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// parseFence consumes a fenced code block starting at lines[start]. It
// returns the block and the number of lines used, fences included. A fence
// without a closer is no match.
func parseFence(lines []string, start int) (ir.Code, int, bool) {
	f, ok := parseFenceOpen(lines[start])
	if !ok {
		return ir.Code{}, 0, false
	}
	for j := start + 1; j < len(lines); j++ {
		if f.isFenceClose(lines[j]) {
			return ir.Code{
				Content:  strings.Join(lines[start+1:j], "\n"),
				Language: f.language(),
				IsBlock:  true,
			}, j - start + 1, true
		}
	}
	return ir.Code{}, 0, false
}
