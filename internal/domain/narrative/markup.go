package narrative

import (
	"strings"

	"golang.org/x/net/html"
)

// normalizeMarkup walks a tolerantly parsed markup tree. html.Parse never
// fails on malformed input (unclosed tags, bad nesting): it recovers into a
// well-formed tree, which is exactly the degradation the renderer needs.
func normalizeMarkup(raw string) []Block {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// Parse errors are I/O-level only with a string reader; fall back
		// to the plain-text path rather than dropping the content.
		return normalizePlain(raw)
	}

	body := findBody(doc)
	if body == nil {
		return nil
	}

	var blocks []Block
	walkChildren(body, &blocks)
	return blocks
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// walkChildren emits blocks for the block-level children of a container.
// Loose inline runs between block elements collapse into paragraphs.
func walkChildren(n *html.Node, blocks *[]Block) {
	var pending []Span

	flush := func() {
		spans := mergeSpans(pending)
		pending = nil
		if len(spans) > 0 {
			*blocks = append(*blocks, Block{Type: BlockParagraph, Spans: spans})
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			pending = append(pending, Span{Text: c.Data})
		case c.Type != html.ElementNode:
			// comments, doctypes
		case c.Data == "p" || c.Data == "div":
			flush()
			spans := mergeSpans(collectSpans(c, Style{}))
			if len(spans) > 0 {
				*blocks = append(*blocks, Block{Type: BlockParagraph, Spans: spans})
			}
		case c.Data == "ul" || c.Data == "ol":
			flush()
			walkList(c, c.Data == "ol", 0, blocks)
		case c.Data == "br":
			flush()
		case isInlineTag(c.Data):
			pending = append(pending, collectSpans(c, Style{})...)
		default:
			flush()
			walkChildren(c, blocks)
		}
	}
	flush()
}

// walkList emits one ListItem per <li>, recursing into nested lists at
// depth+1. An empty <li> still emits a placeholder dash so the list marker
// stays visible in the rendered document.
func walkList(list *html.Node, ordered bool, depth int, blocks *[]Block) {
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "li":
			walkListItem(c, ordered, depth, blocks)
		case "ul", "ol":
			// malformed nesting: a list directly inside a list
			walkList(c, c.Data == "ol", depth+1, blocks)
		}
	}
}

func walkListItem(li *html.Node, ordered bool, depth int, blocks *[]Block) {
	var spans []Span
	var implicit []string
	var nested []*html.Node

	for c := li.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			spans = appendSplitText(spans, &implicit, c.Data, Style{})
		case c.Type != html.ElementNode:
		case c.Data == "ul" || c.Data == "ol":
			nested = append(nested, c)
		case c.Data == "p" || c.Data == "div" || c.Data == "br":
			// paragraph-like children join the item's own run, except
			// lines written as literal "- " bullets which become an
			// implicit deeper level
			for _, s := range collectSpans(c, Style{}) {
				spans = appendSplitText(spans, &implicit, s.Text, s.Style)
			}
		case isInlineTag(c.Data):
			spans = append(spans, collectSpans(c, Style{})...)
		default:
			spans = append(spans, collectSpans(c, Style{})...)
		}
	}

	merged := mergeSpans(spans)
	if len(merged) == 0 {
		merged = []Span{{Text: Placeholder}}
	}
	*blocks = append(*blocks, Block{Type: BlockListItem, Spans: merged, Ordered: ordered, Depth: depth})

	for _, line := range implicit {
		*blocks = append(*blocks, listItemBlock(orEmptyPlaceholder(line), false, depth+1))
	}
	for _, list := range nested {
		walkList(list, list.Data == "ol", depth+1, blocks)
	}
}

// appendSplitText routes text lines beginning with a literal "- " to the
// implicit deeper bullet list and everything else into the item's spans.
func appendSplitText(spans []Span, implicit *[]string, text string, style Style) []Span {
	if !strings.Contains(text, "\n") {
		if trimmed := strings.TrimSpace(text); strings.HasPrefix(trimmed, "- ") {
			*implicit = append(*implicit, strings.TrimSpace(trimmed[2:]))
			return spans
		}
		if text != "" {
			spans = append(spans, Span{Text: text, Style: style})
		}
		return spans
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			*implicit = append(*implicit, strings.TrimSpace(trimmed[2:]))
			continue
		}
		if trimmed != "" {
			spans = append(spans, Span{Text: trimmed + " ", Style: style})
		}
	}
	return spans
}

// collectSpans flattens the inline subtree of a node into styled spans,
// accumulating bold/italic/underline through nesting.
func collectSpans(n *html.Node, style Style) []Span {
	var spans []Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			spans = append(spans, Span{Text: c.Data, Style: style})
		case c.Type != html.ElementNode:
		case c.Data == "strong" || c.Data == "b":
			s := style
			s.Bold = true
			spans = append(spans, collectSpans(c, s)...)
		case c.Data == "em" || c.Data == "i":
			s := style
			s.Italic = true
			spans = append(spans, collectSpans(c, s)...)
		case c.Data == "u":
			s := style
			s.Underline = true
			spans = append(spans, collectSpans(c, s)...)
		case c.Data == "br":
			spans = append(spans, Span{Text: "\n", Style: style})
		default:
			spans = append(spans, collectSpans(c, style)...)
		}
	}
	return spans
}

func isInlineTag(tag string) bool {
	switch tag {
	case "strong", "em", "b", "i", "u", "span", "a":
		return true
	}
	return false
}
