package tui

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-tui/inkwell/pkg/logger"
	"github.com/inkwell-tui/inkwell/pkg/markup"
	"github.com/inkwell-tui/inkwell/pkg/tui/theme"
)

// Span is a run of text drawn with one style
type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one terminal row of styled spans
type Line struct {
	Spans []Span
}

func (l Line) text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Renderer turns a markup tree into styled terminal lines. It is stateless
// apart from its style table and target width, so a view re-renders by
// calling Render on every invalidation.
type Renderer struct {
	styles      *theme.Styles
	width       int
	cursorGlyph string
	log         *logger.Logger
}

// NewRenderer creates a renderer for the given line width
func NewRenderer(width int, cursorGlyph string) *Renderer {
	if cursorGlyph == "" {
		cursorGlyph = "▌"
	}
	return &Renderer{
		styles:      theme.DefaultStyles(),
		width:       width,
		cursorGlyph: cursorGlyph,
		log:         logger.WithComponent("renderer"),
	}
}

// SetWidth adjusts the wrap width after a resize
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Render produces the lines for a whole tree
func (r *Renderer) Render(root *markup.Node) []Line {
	var lines []Line
	for i, child := range root.Children {
		block := r.renderBlock(child)
		if i > 0 && len(block) > 0 && len(lines) > 0 {
			lines = append(lines, Line{})
		}
		lines = append(lines, block...)
	}
	return lines
}

func (r *Renderer) renderBlock(n *markup.Node) []Line {
	if n.Kind == markup.KindText {
		return r.wrap(r.inline(n, r.styles.Text))
	}

	switch {
	case n.Tag == markup.TagCursor:
		return []Line{{Spans: []Span{r.cursorSpan()}}}

	case markup.IsHeadingTag(n.Tag):
		return r.wrap(r.inline(n, r.headingStyle(n.Tag)))

	case n.Tag == markup.TagCodeBlock:
		return r.renderCode(n)

	case n.Tag == markup.TagQuote:
		return r.renderQuote(n)

	case markup.IsListTag(n.Tag):
		return r.renderList(n)

	case n.Tag == markup.TagTable:
		return r.renderTable(n)

	case n.Tag == markup.TagRule:
		return []Line{{Spans: []Span{{
			Text:  strings.Repeat("─", r.width),
			Style: r.styles.Rule,
		}}}}

	case n.Tag == markup.TagBreak:
		return []Line{{}}

	default:
		// Paragraphs, divs, and anything unrecognized flow as inline text
		return r.wrap(r.inline(n, r.styles.Text))
	}
}

func (r *Renderer) headingStyle(tag string) tcell.Style {
	switch tag {
	case markup.TagHeading1:
		return r.styles.Heading1
	case markup.TagHeading2:
		return r.styles.Heading2
	case markup.TagHeading3:
		return r.styles.Heading3
	default:
		return r.styles.Heading4
	}
}

func (r *Renderer) cursorSpan() Span {
	return Span{Text: r.cursorGlyph, Style: r.styles.Cursor}
}

// inline flattens a subtree into styled spans, composing styles as it
// descends through formatting elements
func (r *Renderer) inline(n *markup.Node, base tcell.Style) []Span {
	if n.Kind == markup.KindText {
		return []Span{{Text: n.Text, Style: base}}
	}

	style := base
	switch n.Tag {
	case markup.TagStrong:
		style = r.styles.Strong
	case markup.TagEmphasis:
		style = r.styles.Emphasis
	case markup.TagInlineCode:
		style = r.styles.InlineCode
	case markup.TagLink:
		style = r.styles.Link
	case markup.TagCursor:
		return []Span{r.cursorSpan()}
	}

	var spans []Span
	for _, child := range n.Children {
		spans = append(spans, r.inline(child, style)...)
	}
	return spans
}

// wrap breaks spans into lines at word boundaries. A span never splits
// mid-word unless the word alone exceeds the width.
func (r *Renderer) wrap(spans []Span) []Line {
	if len(spans) == 0 {
		return nil
	}

	var lines []Line
	current := Line{}
	col := 0

	flush := func() {
		lines = append(lines, current)
		current = Line{}
		col = 0
	}

	for _, span := range spans {
		words := splitKeepingSpaces(span.Text)
		for _, word := range words {
			w := len([]rune(word))
			if col+w > r.width && col > 0 {
				flush()
				if strings.TrimSpace(word) == "" {
					continue // never start a line with the wrap space
				}
			}
			current.Spans = append(current.Spans, Span{Text: word, Style: span.Style})
			col += w
		}
	}
	if col > 0 || len(current.Spans) > 0 {
		flush()
	}
	return lines
}

// splitKeepingSpaces splits text into alternating word and space chunks so
// styles survive wrapping
func splitKeepingSpaces(text string) []string {
	var out []string
	start := 0
	inSpace := false
	for i, r := range text {
		s := r == ' '
		if i > 0 && s != inSpace {
			out = append(out, text[start:i])
			start = i
		}
		inSpace = s
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// renderCode draws a fenced block with chroma syntax highlighting. The
// block was revealed as one atomic snapshot, so its full text is present.
func (r *Renderer) renderCode(n *markup.Node) []Line {
	content := n.TextContent()
	lang := n.Attr(markup.AttrLang)

	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		r.log.Debug("tokenise failed, drawing plain", "lang", lang, "error", err)
		return r.plainCode(content)
	}

	style := styles.Get("autumn")
	if style == nil {
		style = styles.Fallback
	}

	var lines []Line
	current := Line{}
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokenStyle := r.tokenStyle(style, token.Type)
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = Line{}
			}
			if part != "" {
				current.Spans = append(current.Spans, Span{Text: part, Style: tokenStyle})
			}
		}
	}
	if len(current.Spans) > 0 {
		lines = append(lines, current)
	}
	return r.boxCode(lines)
}

func (r *Renderer) plainCode(content string) []Line {
	var lines []Line
	for _, raw := range strings.Split(content, "\n") {
		lines = append(lines, Line{Spans: []Span{{Text: raw, Style: r.styles.CodeBlock}}})
	}
	return r.boxCode(lines)
}

// boxCode frames highlighted lines with the theme border, padded one cell on
// each side and sized to the widest line
func (r *Renderer) boxCode(body []Line) []Line {
	b := theme.CodeBorder
	inner := 0
	for _, line := range body {
		if w := len([]rune(line.text())); w > inner {
			inner = w
		}
	}

	out := make([]Line, 0, len(body)+2)
	out = append(out, Line{Spans: []Span{{
		Text:  b.TopLeft + strings.Repeat(b.Top, inner+2) + b.TopRight,
		Style: r.styles.Rule,
	}}})
	for _, line := range body {
		boxed := Line{Spans: []Span{
			{Text: b.Left, Style: r.styles.Rule},
			{Text: " ", Style: r.styles.CodeBlock},
		}}
		boxed.Spans = append(boxed.Spans, line.Spans...)
		if pad := inner - len([]rune(line.text())); pad > 0 {
			boxed.Spans = append(boxed.Spans, Span{Text: strings.Repeat(" ", pad), Style: r.styles.CodeBlock})
		}
		boxed.Spans = append(boxed.Spans,
			Span{Text: " ", Style: r.styles.CodeBlock},
			Span{Text: b.Right, Style: r.styles.Rule},
		)
		out = append(out, boxed)
	}
	out = append(out, Line{Spans: []Span{{
		Text:  b.BottomLeft + strings.Repeat(b.Bottom, inner+2) + b.BottomRight,
		Style: r.styles.Rule,
	}}})
	return out
}

func (r *Renderer) tokenStyle(style *chroma.Style, tt chroma.TokenType) tcell.Style {
	entry := style.Get(tt)
	out := r.styles.CodeBlock
	if entry.Colour.IsSet() {
		out = out.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		out = out.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		out = out.Italic(true)
	}
	return out
}

func (r *Renderer) renderQuote(n *markup.Node) []Line {
	var out []Line
	for _, child := range n.Children {
		for _, line := range r.renderBlock(child) {
			quoted := Line{Spans: []Span{{Text: "│ ", Style: r.styles.QuoteBar}}}
			for _, span := range line.Spans {
				if span.Style == r.styles.Text {
					span.Style = r.styles.QuoteText
				} else {
					span.Style = span.Style.Italic(true)
				}
				quoted.Spans = append(quoted.Spans, span)
			}
			out = append(out, quoted)
		}
	}
	return out
}

func (r *Renderer) renderList(n *markup.Node) []Line {
	ordered := n.Tag == markup.TagOrdered
	number := 1
	if start := n.Attr("start"); start != "" {
		if v, err := strconv.Atoi(start); err == nil {
			number = v
		}
	}

	var out []Line
	for _, item := range n.Children {
		mark := "• "
		if ordered {
			mark = strconv.Itoa(number) + ". "
			number++
		}

		first := true
		for _, line := range r.wrap(r.inline(item, r.styles.Text)) {
			prefix := strings.Repeat(" ", len([]rune(mark)))
			if first {
				prefix = mark
				first = false
			}
			withMark := Line{Spans: []Span{{Text: prefix, Style: r.styles.ListMark}}}
			withMark.Spans = append(withMark.Spans, line.Spans...)
			out = append(out, withMark)
		}
		if first {
			// Item with no content still gets its marker
			out = append(out, Line{Spans: []Span{{Text: mark, Style: r.styles.ListMark}}})
		}
	}
	return out
}

// renderTable sizes columns to their widest cell and joins them with a
// light vertical rule
func (r *Renderer) renderTable(n *markup.Node) []Line {
	var widths []int
	for _, row := range n.Children {
		for c, cell := range row.Children {
			w := len([]rune(cell.TextContent()))
			if c >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[c] {
				widths[c] = w
			}
		}
	}

	var out []Line
	for ri, row := range n.Children {
		line := Line{}
		for c, cell := range row.Children {
			if c > 0 {
				line.Spans = append(line.Spans, Span{Text: " │ ", Style: r.styles.TableRule})
			}
			spans := r.inline(cell, r.styles.Text)
			if ri == 0 {
				for i := range spans {
					spans[i].Style = spans[i].Style.Bold(true)
				}
			}
			line.Spans = append(line.Spans, spans...)
			if pad := widths[c] - len([]rune(cell.TextContent())); pad > 0 {
				line.Spans = append(line.Spans, Span{Text: strings.Repeat(" ", pad), Style: r.styles.Text})
			}
		}
		out = append(out, line)
		if ri == 0 {
			sep := Line{}
			for c, w := range widths {
				if c > 0 {
					sep.Spans = append(sep.Spans, Span{Text: "─┼─", Style: r.styles.TableRule})
				}
				sep.Spans = append(sep.Spans, Span{Text: strings.Repeat("─", w), Style: r.styles.TableRule})
			}
			out = append(out, sep)
		}
	}
	return out
}
