package layout

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// RenderMarkdown parses source as CommonMark with goldmark and renders the
// document through the same wrap/pagination pipeline as Render. Inline
// styling is flattened to plain text; block structure (headings, lists,
// thematic breaks, paragraphs) is preserved.
func (e *Engine) RenderMarkdown(source string) error {
	md := goldmark.New()
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []block
	e.collectMarkdown(doc, src, &blocks, true)
	return e.renderBlocks(blocks)
}

func (e *Engine) collectMarkdown(node ast.Node, src []byte, blocks *[]block, topLevel bool) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if topLevel && len(*blocks) > 0 {
			*blocks = append(*blocks, e.blankBlock())
		}
		switch n := child.(type) {
		case *ast.Heading:
			*blocks = append(*blocks, e.headingBlock(string(n.Text(src)), n.Level))
		case *ast.Paragraph:
			*blocks = append(*blocks, e.paragraphBlock(inlineText(n, src)))
		case *ast.ThematicBreak:
			*blocks = append(*blocks, e.ruleBlock())
		case *ast.List:
			e.collectList(n, src, blocks)
		default:
			if txt := strings.TrimSpace(string(child.Text(src))); txt != "" {
				*blocks = append(*blocks, e.paragraphBlock(txt))
			}
		}
	}
}

func (e *Engine) collectList(list *ast.List, src []byte, blocks *[]block) {
	n := list.Start
	if n == 0 {
		n = 1
	}
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		txt := listItemText(item, src)
		if list.IsOrdered() {
			*blocks = append(*blocks, e.numberedBlock(n, txt))
			n++
		} else {
			*blocks = append(*blocks, e.bulletBlock(txt))
		}
	}
}

// listItemText extracts the plain text of a list item's first block child;
// nested structure beyond that is flattened.
func listItemText(item *ast.ListItem, src []byte) string {
	child := item.FirstChild()
	if child == nil {
		return ""
	}
	if p, ok := child.(*ast.Paragraph); ok {
		return inlineText(p, src)
	}
	return strings.TrimSpace(string(child.Text(src)))
}

// inlineText concatenates a block node's inline children, turning soft and
// hard line breaks into single spaces.
func inlineText(node ast.Node, src []byte) string {
	var sb strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(child.Text(src))
	}
	return strings.TrimSpace(sb.String())
}
