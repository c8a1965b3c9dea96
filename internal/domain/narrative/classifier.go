package narrative

import (
	"regexp"
	"strings"
)

// Kind is the list shape a plain-text blob most likely carries
type Kind string

const (
	KindParagraph Kind = "PARAGRAPH"
	KindOrdered   Kind = "ORDERED"
	KindUnordered Kind = "UNORDERED"
)

var (
	bulletGlyphs = []string{"•", "●", "▪", "‣"} // • ● ▪ ‣

	numberedPrefixRe = regexp.MustCompile(`^\d+[.)]\s*`)
	numberMarkerRe   = regexp.MustCompile(`\d+[.)]`)
)

// Thresholds for the majority vote over split lines.
const (
	orderedLineRatio   = 0.5
	unorderedLineRatio = 0.4
)

// Classify splits a plain-text blob into candidate lines and votes on the
// list shape of the whole blob. Half the lines carrying a numeric prefix, or
// the enumeration keywords authors habitually type ("meliputi:", a bare
// "tujuan:" line), mean an ordered list; 40% bulleted or dashed lines mean
// an unordered list; anything else stays paragraphs.
func Classify(raw string) (Kind, []string) {
	lines := SplitLines(raw)
	if len(lines) == 0 {
		return KindParagraph, lines
	}

	numbered := 0
	bulleted := 0
	keyword := strings.Contains(strings.ToLower(raw), "meliputi:")
	for _, line := range lines {
		if numberedPrefixRe.MatchString(line) {
			numbered++
		}
		if hasBulletPrefix(line) || strings.HasPrefix(line, "-") {
			bulleted++
		}
		if strings.EqualFold(strings.TrimSpace(line), "tujuan:") {
			keyword = true
		}
	}

	total := float64(len(lines))
	switch {
	case float64(numbered)/total >= orderedLineRatio || keyword:
		return KindOrdered, lines
	case float64(bulleted)/total >= unorderedLineRatio:
		return KindUnordered, lines
	default:
		return KindParagraph, lines
	}
}

// SplitLines breaks a blob on explicit newlines plus three synthetic break
// points: after any colon, before any bullet glyph, and before any
// digit-plus-separator run. Blank results are dropped.
func SplitLines(raw string) []string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, ":", ":\n")
	for _, glyph := range bulletGlyphs {
		s = strings.ReplaceAll(s, glyph, "\n"+glyph)
	}
	s = numberMarkerRe.ReplaceAllString(s, "\n$0")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func hasBulletPrefix(line string) bool {
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(line, glyph) {
			return true
		}
	}
	return false
}

// stripListPrefix removes a leading numeric marker, bullet glyph or dash
// from a classified line.
func stripListPrefix(line string) string {
	line = numberedPrefixRe.ReplaceAllString(line, "")
	for _, glyph := range bulletGlyphs {
		line = strings.TrimPrefix(line, glyph)
	}
	line = strings.TrimPrefix(line, "-")
	return strings.TrimSpace(line)
}
