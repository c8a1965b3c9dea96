package narrative

import (
	"regexp"
	"strings"
)

var markupTagRe = regexp.MustCompile(`(?i)<\s*/?\s*(p|ul|ol|li|br|strong|em|b|i|u)\b`)

// Normalize turns raw author-entered section content into a block sequence.
// Content carrying recognizable markup tags goes through the tolerant
// markup walker; anything else goes through the plain-text classifier. The
// result is never empty: blank or unparseable input yields one placeholder
// paragraph.
func Normalize(raw string) []Block {
	if strings.TrimSpace(raw) == "" {
		return []Block{paragraphBlock(Placeholder)}
	}

	var blocks []Block
	if markupTagRe.MatchString(raw) {
		blocks = normalizeMarkup(raw)
	} else {
		blocks = normalizePlain(raw)
	}

	if len(blocks) == 0 {
		return []Block{paragraphBlock(Placeholder)}
	}
	return blocks
}

// normalizePlain renders classified plain-text lines as one block per line.
func normalizePlain(raw string) []Block {
	kind, lines := Classify(raw)

	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		switch kind {
		case KindOrdered:
			blocks = append(blocks, listItemBlock(orEmptyPlaceholder(stripListPrefix(line)), true, 0))
		case KindUnordered:
			blocks = append(blocks, listItemBlock(orEmptyPlaceholder(stripListPrefix(line)), false, 0))
		default:
			blocks = append(blocks, paragraphBlock(line))
		}
	}
	return blocks
}

func orEmptyPlaceholder(text string) string {
	if text == "" {
		return Placeholder
	}
	return text
}
