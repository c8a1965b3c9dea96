// Package narrative normalizes free-form activity-report text into the
// fixed block structure the document writer consumes. Authors paste content
// from word processors and plain notes; nothing upstream validates it, so
// normalization must always produce a usable block sequence.
package narrative

import "strings"

// BlockType discriminates the two block shapes
type BlockType string

const (
	BlockParagraph BlockType = "PARAGRAPH"
	BlockListItem  BlockType = "LIST_ITEM"
)

// Style carries the inline formatting of a span
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
}

// Span is a run of text with uniform inline styling
type Span struct {
	Text  string
	Style Style
}

// Block is one normalized unit of document content: a paragraph, or a list
// item with ordering and nesting depth.
type Block struct {
	Type    BlockType
	Spans   []Span
	Ordered bool // list items only
	Depth   int  // list items only, 0 = top level
}

// Text returns the concatenated plain text of the block
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Placeholder is rendered for empty sections and empty list items so the
// document never shows a blank slot.
const Placeholder = "-"

func paragraphBlock(text string) Block {
	return Block{Type: BlockParagraph, Spans: []Span{{Text: text}}}
}

func listItemBlock(text string, ordered bool, depth int) Block {
	return Block{Type: BlockListItem, Spans: []Span{{Text: text}}, Ordered: ordered, Depth: depth}
}

// mergeSpans joins adjacent spans with identical styling and trims the
// surrounding whitespace of the combined run.
func mergeSpans(spans []Span) []Span {
	merged := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].Style == s.Style {
			merged[n-1].Text += s.Text
			continue
		}
		merged = append(merged, s)
	}
	if len(merged) > 0 {
		merged[0].Text = strings.TrimLeft(merged[0].Text, " \t\n\r")
		last := len(merged) - 1
		merged[last].Text = strings.TrimRight(merged[last].Text, " \t\n\r")
	}
	out := merged[:0]
	for _, s := range merged {
		if s.Text != "" {
			out = append(out, s)
		}
	}
	return out
}
