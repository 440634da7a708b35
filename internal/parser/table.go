package parser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/ir"
)

// isTableStart reports whether lines[i] and lines[i+1] form a table header
// and separator.
func isTableStart(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	return strings.Contains(lines[i], "|") && isSeparatorLine(lines[i+1])
}

// isSeparatorLine matches |---|:--:|--:| style lines.
func isSeparatorLine(line string) bool {
	if !strings.Contains(line, "|") || !strings.Contains(line, "-") {
		return false
	}
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '|', '-', ':', ' ', '\t':
		default:
			return false
		}
	}
	return true
}

func parseAlignments(separator string) []ir.Alignment {
	cells := splitRow(separator)
	aligns := make([]ir.Alignment, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":") && len(cell) > 1
		switch {
		case left && right:
			aligns[i] = ir.AlignCenter
		case right:
			aligns[i] = ir.AlignRight
		default:
			aligns[i] = ir.AlignLeft
		}
	}
	return aligns
}

// splitRow splits a table row on unescaped pipes, dropping one empty field
// at either end when the row starts or ends with a pipe.
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	if strings.HasSuffix(trimmed, "|") && !endsWithBackslash(trimmed[:len(trimmed)-1]) {
		trimmed = trimmed[:len(trimmed)-1]
	}

	var cells []string
	var cell strings.Builder
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c == '\\' && i+1 < len(trimmed) {
			cell.WriteByte(c)
			cell.WriteByte(trimmed[i+1])
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, cell.String())
			cell.Reset()
			continue
		}
		cell.WriteByte(c)
	}
	return append(cells, cell.String())
}

// parseTable recognizes a table at lines[start] and returns it with the
// number of lines it spans.
func (s *segmenter) parseTable(start int) (tbl ir.Table, n int, ok bool) {
	if !isTableStart(s.lines, start) {
		return ir.Table{}, 0, false
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Debug("table abandoned",
				zap.Int("line", start+1),
				zap.String("reason", fmt.Sprint(r)))
			tbl, n, ok = ir.Table{}, 0, false
		}
	}()

	aligns := parseAlignments(s.lines[start+1])
	tbl = ir.Table{Alignments: aligns}
	tbl.Rows = append(tbl.Rows, s.tableRow(s.lines[start], start, len(aligns), true))

	end := start + 2
	for end < len(s.lines) {
		line := s.lines[end]
		if !strings.Contains(line, "|") || isFenceLine(line) || isSeparatorLine(line) || isTableStart(s.lines, end) {
			break
		}
		tbl.Rows = append(tbl.Rows, s.tableRow(line, end, len(aligns), false))
		end++
	}
	return tbl, end - start, true
}

// parseCell parses the text of one table cell.
var parseCell = parseInline

// tableRow normalizes one row to cols cells.
func (s *segmenter) tableRow(line string, idx, cols int, header bool) ir.TableRow {
	fields := splitRow(line)
	if len(fields) > cols {
		s.log.Debug("extra table cells dropped",
			zap.Int("line", idx+1),
			zap.Int("cells", len(fields)),
			zap.Int("columns", cols))
		fields = fields[:cols]
	}

	row := ir.TableRow{IsHeader: header, Cells: make([]ir.TableCell, cols)}
	for i := range row.Cells {
		row.Cells[i].IsHeader = header
		if i < len(fields) {
			row.Cells[i].Children = parseCell(strings.TrimSpace(fields[i]))
		}
	}
	return row
}
