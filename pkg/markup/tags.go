package markup

// Tags produced by the formatter and understood by the linearizer. Anything
// else falls through the generic element path.
const (
	TagParagraph  = "p"
	TagDiv        = "div"
	TagQuote      = "blockquote"
	TagHeading1   = "h1"
	TagHeading2   = "h2"
	TagHeading3   = "h3"
	TagHeading4   = "h4"
	TagCodeBlock  = "pre"
	TagTable      = "table"
	TagTableRow   = "tr"
	TagTableCell  = "td"
	TagList       = "ul"
	TagOrdered    = "ol"
	TagListItem   = "li"
	TagStrong     = "strong"
	TagEmphasis   = "em"
	TagInlineCode = "code"
	TagLink       = "a"
	TagSpan       = "span"
	TagBreak      = "br"
	TagRule       = "hr"

	// TagCursor marks the transient write-position indicator injected during
	// playback. It is never part of a source tree and is ignored by
	// structural comparison.
	TagCursor = "x-cursor"
)

// AttrLang carries the language hint on code blocks
const AttrLang = "lang"

// AttrHref carries the destination on links
const AttrHref = "href"

// IsHeadingTag reports whether the tag is one of the heading levels
func IsHeadingTag(tag string) bool {
	switch tag {
	case TagHeading1, TagHeading2, TagHeading3, TagHeading4:
		return true
	}
	return false
}

// IsBlockTag reports whether the tag is a block container that streams as
// open, children, close
func IsBlockTag(tag string) bool {
	switch tag {
	case TagParagraph, TagDiv, TagQuote:
		return true
	}
	return false
}

// IsListTag reports whether the tag is a list container
func IsListTag(tag string) bool {
	return tag == TagList || tag == TagOrdered
}

// IsInlineTag reports whether the tag is inline formatting, a link, or a
// generic inline span
func IsInlineTag(tag string) bool {
	switch tag {
	case TagStrong, TagEmphasis, TagLink, TagSpan:
		return true
	}
	return false
}

// IsVoidTag reports whether the tag is self-closing and carries no children
func IsVoidTag(tag string) bool {
	return tag == TagBreak || tag == TagRule
}
