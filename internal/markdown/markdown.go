// Package markdown turns assistant text into a flat sequence of renderable
// blocks. It is deliberately small: every line is classified on its own
// (no multi-line constructs) and inline markup is limited to bold spans and
// links, without nesting or escaping.
package markdown

import (
	"iter"
	"regexp"
	"strings"
)

// BlockKind classifies a single input line.
type BlockKind string

const (
	BlockBlank       BlockKind = "blank"
	BlockHeading     BlockKind = "heading"
	BlockListItem    BlockKind = "list_item"
	BlockOrderedItem BlockKind = "ordered_item"
	BlockParagraph   BlockKind = "paragraph"
)

// SpanKind classifies an inline fragment.
type SpanKind string

const (
	SpanText SpanKind = "text"
	SpanBold SpanKind = "bold"
	SpanLink SpanKind = "link"
)

// Span is an inline fragment of a block. Href is set for links only.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
	Href string   `json:"href,omitempty"`
}

// Block is one rendered line. Level is set for headings, Number for ordered items.
type Block struct {
	Kind   BlockKind `json:"kind"`
	Level  int       `json:"level,omitempty"`
	Number string    `json:"number,omitempty"`
	Spans  []Span    `json:"spans,omitempty"`
}

var (
	boldPattern    = regexp.MustCompile(`\*\*.*?\*\*`)
	linkPattern    = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	orderedPattern = regexp.MustCompile(`^(\d+)\.\s`)
)

var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

// Blocks yields one block per line of text, in order.
func Blocks(text string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			if !yield(classify(line)) {
				return
			}
		}
	}
}

// Render collects Blocks into a slice.
func Render(text string) []Block {
	var out []Block
	for b := range Blocks(text) {
		out = append(out, b)
	}
	return out
}

func classify(line string) Block {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Block{Kind: BlockBlank}
	}

	for _, h := range headingPrefixes {
		if strings.HasPrefix(line, h.prefix) {
			return Block{Kind: BlockHeading, Level: h.level, Spans: []Span{{Kind: SpanText, Text: line[len(h.prefix):]}}}
		}
	}

	if rest, ok := strings.CutPrefix(trimmed, "- "); ok {
		return Block{Kind: BlockListItem, Spans: Inline(rest)}
	}

	if m := orderedPattern.FindStringSubmatch(trimmed); m != nil {
		return Block{Kind: BlockOrderedItem, Number: m[1], Spans: Inline(trimmed[len(m[0]):])}
	}

	return Block{Kind: BlockParagraph, Spans: Inline(line)}
}

// Inline splits text into spans. Bold pairs are resolved first; links are
// only recognised in the text between them.
func Inline(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, links(text[last:loc[0]])...)
		}
		spans = append(spans, Span{Kind: SpanBold, Text: text[loc[0]+2 : loc[1]-2]})
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, links(text[last:])...)
	}
	return spans
}

func links(text string) []Span {
	var spans []Span
	last := 0
	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, Span{Kind: SpanText, Text: text[last:m[0]]})
		}
		spans = append(spans, Span{Kind: SpanLink, Text: text[m[2]:m[3]], Href: text[m[4]:m[5]]})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Kind: SpanText, Text: text[last:]})
	}
	return spans
}
