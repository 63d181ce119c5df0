package layout

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML parses source as HTML and renders its block structure through
// the same wrap/pagination pipeline as Render. Only headings, paragraphs,
// lists and horizontal rules are recognized; inline markup is flattened.
func (e *Engine) RenderHTML(source string) error {
	doc, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return err
	}
	var blocks []block
	e.collectHTML(doc, &blocks)
	return e.renderBlocks(blocks)
}

func (e *Engine) collectHTML(n *html.Node, blocks *[]block) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			level := int(n.Data[1] - '0')
			e.appendSpaced(blocks, e.headingBlock(nodeText(n), level))
			return
		case atom.P:
			if txt := nodeText(n); txt != "" {
				e.appendSpaced(blocks, e.paragraphBlock(txt))
			}
			return
		case atom.Hr:
			e.appendSpaced(blocks, e.ruleBlock())
			return
		case atom.Ul, atom.Ol:
			e.collectHTMLList(n, blocks)
			return
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		e.collectHTML(child, blocks)
	}
}

// appendSpaced appends b with a blank separator after previous content.
func (e *Engine) appendSpaced(blocks *[]block, b block) {
	if len(*blocks) > 0 {
		*blocks = append(*blocks, e.blankBlock())
	}
	*blocks = append(*blocks, b)
}

func (e *Engine) collectHTMLList(list *html.Node, blocks *[]block) {
	ordered := list.DataAtom == atom.Ol
	n := 1
	for child := list.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.DataAtom != atom.Li {
			continue
		}
		txt := nodeText(child)
		if ordered {
			*blocks = append(*blocks, e.numberedBlock(n, txt))
			n++
		} else {
			*blocks = append(*blocks, e.bulletBlock(txt))
		}
	}
}

// nodeText concatenates all text descendants, collapsing runs of
// whitespace to single spaces.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
