package parser

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/samsaffron/mdir/internal/ir"
)

var (
	taskItemPattern      = regexp.MustCompile(`^([ \t]*)[-*+][ \t]+\[([ xX])\](?:[ \t]+(.*))?$`)
	orderedItemPattern   = regexp.MustCompile(`^([ \t]*)(\d+)\.[ \t]+(.*)$`)
	unorderedItemPattern = regexp.MustCompile(`^([ \t]*)[-*+][ \t]+(.*)$`)
)

type listKind int

const (
	listTask listKind = iota + 1
	listOrdered
	listUnordered
)

// listMatch is the surface match of a list item line.
type listMatch struct {
	kind    listKind
	indent  int
	checked bool
	number  string
	content string
}

// matchListItem applies the list patterns in priority order: task, ordered,
// unordered. Rule lines such as "- - -" are never items.
func matchListItem(line string) (listMatch, bool) {
	if isHorizontalRule(line) {
		return listMatch{}, false
	}
	if m := taskItemPattern.FindStringSubmatch(line); m != nil {
		return listMatch{
			kind:    listTask,
			indent:  len(m[1]),
			checked: m[2] != " ",
			content: strings.TrimSpace(m[3]),
		}, true
	}
	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		if _, err := strconv.Atoi(m[2]); err != nil {
			return listMatch{kind: listOrdered, number: m[2]}, false
		}
		return listMatch{
			kind:    listOrdered,
			indent:  len(m[1]),
			number:  m[2],
			content: strings.TrimSpace(m[3]),
		}, true
	}
	if m := unorderedItemPattern.FindStringSubmatch(line); m != nil {
		return listMatch{
			kind:    listUnordered,
			indent:  len(m[1]),
			content: strings.TrimSpace(m[2]),
		}, true
	}
	return listMatch{}, false
}

// classifyListItem turns a list line into a TaskListItem or ListItem node.
func (s *segmenter) classifyListItem(line string, idx int) (ir.Element, bool) {
	m, ok := matchListItem(line)
	if !ok {
		if m.kind == listOrdered {
			s.log.Debug("ordered item number out of range",
				zap.Int("line", idx+1), zap.String("number", m.number))
		}
		return nil, false
	}
	children := parseInline(m.content)
	switch m.kind {
	case listTask:
		return ir.TaskListItem{Checked: m.checked, Indent: m.indent, Children: children}, true
	case listOrdered:
		n, _ := strconv.Atoi(m.number)
		return ir.ListItem{Ordered: true, Number: n, Indent: m.indent, Children: children}, true
	default:
		return ir.ListItem{Indent: m.indent, Children: children}, true
	}
}
