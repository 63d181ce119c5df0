package layout

import (
	"fmt"
	"regexp"
	"strings"
)

type blockKind int

const (
	blockText blockKind = iota
	blockRule
	blockBlank
)

// block is a classified input unit before wrapping.
type block struct {
	kind   blockKind
	text   string
	size   float64
	before float64
	after  float64
	indent float64
}

// headingScale maps the visual heading level (1-3) to a body-size
// multiplier. Deeper markdown levels clamp to the last entry.
var headingScale = [3]float64{2.0, 1.5, 1.25}

// listIndent is the horizontal offset of list item text.
const listIndent = 15.0

var orderedItemRe = regexp.MustCompile(`^\d+\. `)

// classify splits source into lines and classifies each one independently.
// The only cross-line state is blank collapsing: runs of blank lines
// produce at most one blank block, and none before the first content.
func (e *Engine) classify(source string) []block {
	var blocks []block
	prevBlank := true
	for _, rawLine := range strings.Split(source, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(rawLine, "\r"))
		switch {
		case line == "":
			if !prevBlank {
				blocks = append(blocks, e.blankBlock())
				prevBlank = true
			}
			continue
		case isRuleLine(line):
			blocks = append(blocks, e.ruleBlock())
		case isHeadingLine(line):
			level, text := splitHeading(line)
			blocks = append(blocks, e.headingBlock(text, level))
		case isBulletLine(line):
			blocks = append(blocks, e.bulletBlock(strings.TrimSpace(line[2:])))
		case orderedItemRe.MatchString(line):
			blocks = append(blocks, e.orderedBlock(line))
		default:
			blocks = append(blocks, e.paragraphBlock(line))
		}
		prevBlank = false
	}
	return blocks
}

func isRuleLine(s string) bool {
	if len(s) < 3 {
		return false
	}
	c := s[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != c {
			return false
		}
	}
	return true
}

func isHeadingLine(s string) bool {
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	return level >= 1 && level <= 6 && level < len(s) && s[level] == ' '
}

func splitHeading(s string) (level int, text string) {
	for level < len(s) && s[level] == '#' {
		level++
	}
	return level, strings.TrimSpace(s[level:])
}

func isBulletLine(s string) bool {
	return strings.HasPrefix(s, "- ") ||
		strings.HasPrefix(s, "* ") ||
		strings.HasPrefix(s, "+ ")
}

// Block constructors shared by the line classifier and the markdown/HTML
// front ends.

func (e *Engine) headingBlock(text string, level int) block {
	if level < 1 {
		level = 1
	}
	if level > len(headingScale) {
		level = len(headingScale)
	}
	size := e.fontSize * headingScale[level-1]
	return block{
		kind:   blockText,
		text:   text,
		size:   size,
		before: size * 0.8,
		after:  size * 0.4,
	}
}

func (e *Engine) paragraphBlock(text string) block {
	return block{kind: blockText, text: text, size: e.fontSize}
}

func (e *Engine) bulletBlock(text string) block {
	return block{
		kind:   blockText,
		text:   "• " + text,
		size:   e.fontSize,
		indent: listIndent,
	}
}

func (e *Engine) numberedBlock(n int, text string) block {
	return block{
		kind:   blockText,
		text:   fmt.Sprintf("%d. %s", n, text),
		size:   e.fontSize,
		indent: listIndent,
	}
}

// orderedBlock keeps the source's own numbering.
func (e *Engine) orderedBlock(line string) block {
	return block{
		kind:   blockText,
		text:   line,
		size:   e.fontSize,
		indent: listIndent,
	}
}

func (e *Engine) ruleBlock() block {
	return block{
		kind:   blockRule,
		size:   1,
		before: e.fontSize * 0.75,
		after:  e.fontSize * 0.75,
	}
}

func (e *Engine) blankBlock() block {
	return block{kind: blockBlank, size: e.fontSize * 0.6}
}
