package parser

import (
	"strings"

	"github.com/samsaffron/mdir/internal/ir"
)

func isDetailLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ":")
}

// isTerm reports whether lines[i] can be a definition term.
func isTerm(lines []string, i int) bool {
	line := lines[i]
	return !isBlankLine(line) && !isDetailLine(line) && !startsSingleBlock(lines, i)
}

func startsDefinitionList(lines []string, i int) bool {
	return i+1 < len(lines) && isTerm(lines, i) && isDetailLine(lines[i+1])
}

// parseDefinitionList consumes term/detail groups:
//
//	Term
//	: first detail
//	: second detail
func parseDefinitionList(lines []string, start int) (ir.DefinitionList, int, bool) {
	var dl ir.DefinitionList
	i := start
	for startsDefinitionList(lines, i) {
		item := ir.DefinitionItem{Term: parseInline(strings.TrimSpace(lines[i]))}
		i++
		for i < len(lines) && isDetailLine(lines[i]) {
			detail := strings.TrimSpace(strings.TrimSpace(lines[i])[1:])
			item.Details = append(item.Details, parseInline(detail))
			i++
		}
		dl.Items = append(dl.Items, item)
	}
	if len(dl.Items) == 0 {
		return ir.DefinitionList{}, 0, false
	}
	return dl, i - start, true
}
