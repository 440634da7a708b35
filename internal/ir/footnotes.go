package ir

import "sort"

// FootnoteNumbers is the display numbering of a document's footnotes.
type FootnoteNumbers struct {
	ByID  map[string]int
	Order []string // ids in display order; Order[n-1] has number n
	// Unreferenced lists defined footnotes nobody cites, sorted by id.
	Unreferenced []string
}

// Number returns the display number for id, or 0 if it was never cited.
func (fn FootnoteNumbers) Number(id string) int {
	return fn.ByID[id]
}

// NumberFootnotes assigns sequential numbers, starting at 1, to footnote
// identifiers in the order their first reference appears in the document.
// References inside cited definitions are numbered after the body, in the
// order the definitions are displayed. The same id always maps to the same
// number within one result.
func NumberFootnotes(doc Document) FootnoteNumbers {
	fn := FootnoteNumbers{ByID: make(map[string]int)}

	visit := func(e Element) bool {
		if ref, ok := e.(FootnoteReference); ok {
			if _, seen := fn.ByID[ref.ID]; !seen {
				fn.Order = append(fn.Order, ref.ID)
				fn.ByID[ref.ID] = len(fn.Order)
			}
		}
		return true
	}

	Walk(doc.Children, visit)
	// Order grows while definitions are walked.
	for i := 0; i < len(fn.Order); i++ {
		if def, ok := doc.Footnotes[fn.Order[i]]; ok {
			Walk(def.Children, visit)
		}
	}

	for id := range doc.Footnotes {
		if _, ok := fn.ByID[id]; !ok {
			fn.Unreferenced = append(fn.Unreferenced, id)
		}
	}
	sort.Strings(fn.Unreferenced)
	return fn
}
