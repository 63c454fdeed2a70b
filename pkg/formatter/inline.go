package formatter

import (
	"regexp"
	"strings"

	"github.com/inkwell-tui/inkwell/pkg/markup"
)

var linkRe = regexp.MustCompile(`^\[([^\]]*)\]\(([^)\s]*)\)`)

// appendInline scans a span of text for inline markdown and appends the
// resulting nodes to parent. Unterminated markers fall through as plain
// text, so half-typed emphasis never swallows the rest of the line.
func appendInline(parent *markup.Node, text string) {
	i := 0
	for i < len(text) {
		rest := text[i:]

		switch {
		case strings.HasPrefix(rest, "`"):
			if end := strings.Index(rest[1:], "`"); end >= 0 {
				code := markup.NewElement(markup.TagInlineCode)
				code.AppendChild(markup.NewText(rest[1 : 1+end]))
				parent.AppendChild(code)
				i += end + 2
				continue
			}
			parent.AppendText("`")
			i++

		case strings.HasPrefix(rest, "**"):
			if end := strings.Index(rest[2:], "**"); end >= 0 {
				strong := markup.NewElement(markup.TagStrong)
				appendInline(strong, rest[2:2+end])
				parent.AppendChild(strong)
				i += end + 4
				continue
			}
			parent.AppendText("**")
			i += 2

		case strings.HasPrefix(rest, "*") || strings.HasPrefix(rest, "_"):
			marker := rest[:1]
			if end := strings.Index(rest[1:], marker); end >= 0 {
				em := markup.NewElement(markup.TagEmphasis)
				appendInline(em, rest[1:1+end])
				parent.AppendChild(em)
				i += end + 2
				continue
			}
			parent.AppendText(marker)
			i++

		case strings.HasPrefix(rest, "["):
			if m := linkRe.FindStringSubmatch(rest); m != nil {
				link := markup.NewElement(markup.TagLink)
				link.SetAttr(markup.AttrHref, m[2])
				appendInline(link, m[1])
				parent.AppendChild(link)
				i += len(m[0])
				continue
			}
			parent.AppendText("[")
			i++

		default:
			next := nextMarker(rest)
			parent.AppendText(rest[:next])
			i += next
		}
	}
}

// nextMarker returns the offset of the next possible inline marker,
// or the length of the span when none remains.
func nextMarker(s string) int {
	if idx := strings.IndexAny(s[1:], "`*_["); idx >= 0 {
		return idx + 1
	}
	return len(s)
}
