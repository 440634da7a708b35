package parser

import "strings"

// SafeBoundary finds the last byte position where text can be cut so that
// parsing both halves separately and joining them with AppendBlocks gives
// the same blocks as parsing the whole. Returns -1 if no safe boundary
// exists.
//
// Safe positions are the ends of blank lines outside code fences. Only
// complete lines are considered; an opening fence whose closer has not
// arrived yet hides everything after it.
func SafeBoundary(text string) int {
	var lines []string
	for off := 0; off < len(text); {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			break
		}
		lines = append(lines, text[off:off+nl+1])
		off += nl + 1
	}

	best := -1
	pos := 0
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r\n")
		if f, ok := parseFenceOpen(line); ok {
			closer := -1
			skipped := len(lines[i])
			for j := i + 1; j < len(lines); j++ {
				skipped += len(lines[j])
				if f.isFenceClose(strings.TrimRight(lines[j], "\r\n")) {
					closer = j
					break
				}
			}
			if closer < 0 {
				return best
			}
			pos += skipped
			i = closer
			continue
		}

		pos += len(lines[i])
		if isBlankLine(line) {
			best = pos
		}
	}
	return best
}
