package term

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/samsaffron/mdir/internal/ir"
)

const (
	columnSeparator = " │ "
	centerSeparator = "─┼─"
)

func (p *pass) table(t ir.Table, width int) string {
	cols := len(t.Alignments)
	if cols == 0 {
		return ""
	}

	cells := make([][]string, len(t.Rows))
	widths := make([]int, cols)
	for ri, row := range t.Rows {
		cells[ri] = make([]string, cols)
		for ci, cell := range row.Cells {
			if ci >= cols {
				break
			}
			s := strings.ReplaceAll(p.inline(cell.Children), "\n", " ")
			if cell.IsHeader {
				s = p.st.tableHeader.Render(s)
			}
			cells[ri][ci] = s
			widths[ci] = max(widths[ci], ansi.StringWidth(s))
		}
	}
	if width > 0 {
		fitColumns(widths, width-(cols-1)*ansi.StringWidth(columnSeparator))
	}

	sep := p.st.border.Render(columnSeparator)
	var lines []string
	for ri, row := range t.Rows {
		parts := make([]string, cols)
		for ci := range parts {
			parts[ci] = pad(cells[ri][ci], widths[ci], t.Alignments[ci])
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, sep), " "))
		if row.IsHeader {
			rules := make([]string, cols)
			for ci, w := range widths {
				rules[ci] = strings.Repeat("─", w)
			}
			lines = append(lines, p.st.border.Render(strings.Join(rules, centerSeparator)))
		}
	}
	return strings.Join(lines, "\n")
}

// fitColumns shrinks the widest columns until the total fits avail.
func fitColumns(widths []int, avail int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > avail {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			return
		}
		widths[widest]--
		total--
	}
}

// pad fits s into width w, truncating with an ellipsis when too wide.
func pad(s string, w int, align ir.Alignment) string {
	if ansi.StringWidth(s) > w {
		s = ansi.Truncate(s, w, "…")
	}
	gap := w - ansi.StringWidth(s)
	switch align {
	case ir.AlignRight:
		return strings.Repeat(" ", gap) + s
	case ir.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}
