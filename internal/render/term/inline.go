package term

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/samsaffron/mdir/internal/ir"
)

func (p *pass) inline(elems []ir.Element) string {
	var sb strings.Builder
	for _, e := range elems {
		switch n := e.(type) {
		case ir.Text:
			sb.WriteString(n.Content)
		case ir.LineBreak:
			sb.WriteByte('\n')
		case ir.Bold:
			sb.WriteString(p.st.strong.Render(p.inline(n.Children)))
		case ir.Italic:
			sb.WriteString(p.st.emphasis.Render(p.inline(n.Children)))
		case ir.Strikethrough:
			sb.WriteString(p.st.strike.Render(p.inline(n.Children)))
		case ir.Code:
			sb.WriteString(p.st.code.Render(n.Content))
		case ir.Link:
			sb.WriteString(p.link(n.URL, p.inline(n.Children)))
		case ir.Image:
			sb.WriteString(p.image(n.Alt, n.URL))
		case ir.ImageLink:
			sb.WriteString(p.link(n.LinkURL, p.image(n.Alt, n.ImageURL)))
		case ir.FootnoteReference:
			if num := p.notes.Number(n.ID); num > 0 {
				sb.WriteString(p.st.muted.Render(fmt.Sprintf("[%d]", num)))
			} else {
				sb.WriteString(p.st.muted.Render("[^" + n.ID + "]"))
			}
		default:
			panic(fmt.Sprintf("term: unexpected inline element %T", e))
		}
	}
	return sb.String()
}

func (p *pass) link(url, text string) string {
	if p.r.hyperlinks {
		return termenv.Hyperlink(url, p.st.link.Render(text))
	}
	styled := p.st.link.Render(text)
	if url == "" || text == url {
		return styled
	}
	return styled + " " + p.st.muted.Render("("+url+")")
}

func (p *pass) image(alt, url string) string {
	caption := "Image"
	if alt != "" {
		caption += ": " + alt
	}
	return p.st.muted.Render(caption) + " → " + p.st.link.Render(url)
}
