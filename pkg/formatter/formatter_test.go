package formatter

import (
	"testing"

	"github.com/inkwell-tui/inkwell/pkg/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeadingsAndParagraph(t *testing.T) {
	f := New()
	root := f.Parse("# Title\n\nSome body text\nthat soft wraps.\n\n## Section")

	require.Len(t, root.Children, 3)
	assert.Equal(t, markup.TagHeading1, root.Children[0].Tag)
	assert.Equal(t, "Title", root.Children[0].TextContent())

	assert.Equal(t, markup.TagParagraph, root.Children[1].Tag)
	assert.Equal(t, "Some body text that soft wraps.", root.Children[1].TextContent())

	assert.Equal(t, markup.TagHeading2, root.Children[2].Tag)
}

func TestParseDeepHeadingsClampToFour(t *testing.T) {
	f := New()
	root := f.Parse("#### Four\n\n##### Five is not a level")

	require.Len(t, root.Children, 2)
	assert.Equal(t, markup.TagHeading4, root.Children[0].Tag)
	// Five or more hashes reads as a plain paragraph
	assert.Equal(t, markup.TagParagraph, root.Children[1].Tag)
}

func TestParseFencedCodeBlock(t *testing.T) {
	f := New()
	root := f.Parse("```go\nfunc main() {\n\tprintln(\"hi\")\n}\n```")

	require.Len(t, root.Children, 1)
	pre := root.Children[0]
	assert.Equal(t, markup.TagCodeBlock, pre.Tag)
	assert.Equal(t, "go", pre.Attr(markup.AttrLang))
	assert.Equal(t, "func main() {\n\tprintln(\"hi\")\n}", pre.TextContent())
}

func TestParseUnterminatedFenceRunsToEnd(t *testing.T) {
	f := New()
	root := f.Parse("```\nno closing fence\nstill code")

	require.Len(t, root.Children, 1)
	pre := root.Children[0]
	assert.Equal(t, markup.TagCodeBlock, pre.Tag)
	assert.Equal(t, "", pre.Attr(markup.AttrLang))
	assert.Equal(t, "no closing fence\nstill code", pre.TextContent())
}

func TestParseLists(t *testing.T) {
	f := New()
	root := f.Parse("- one\n- two\n\n1. first\n2. second")

	require.Len(t, root.Children, 2)

	ul := root.Children[0]
	assert.Equal(t, markup.TagList, ul.Tag)
	require.Len(t, ul.Children, 2)
	assert.Equal(t, markup.TagListItem, ul.Children[0].Tag)
	assert.Equal(t, "one", ul.Children[0].TextContent())

	ol := root.Children[1]
	assert.Equal(t, markup.TagOrdered, ol.Tag)
	require.Len(t, ol.Children, 2)
	assert.Equal(t, "second", ol.Children[1].TextContent())
}

func TestParseOrderedListKeepsStartOffset(t *testing.T) {
	f := New()
	root := f.Parse("3. third\n4. fourth")

	require.Len(t, root.Children, 1)
	assert.Equal(t, "3", root.Children[0].Attr("start"))
}

func TestParseBlockquoteNestsBlocks(t *testing.T) {
	f := New()
	root := f.Parse("> # Quoted heading\n> and a line of text")

	require.Len(t, root.Children, 1)
	quote := root.Children[0]
	assert.Equal(t, markup.TagQuote, quote.Tag)
	require.Len(t, quote.Children, 2)
	assert.Equal(t, markup.TagHeading1, quote.Children[0].Tag)
	assert.Equal(t, markup.TagParagraph, quote.Children[1].Tag)
}

func TestParseTable(t *testing.T) {
	f := New()
	root := f.Parse("| Name | Age |\n| --- | --- |\n| Ada | 36 |\n| Alan | 41 |")

	require.Len(t, root.Children, 1)
	table := root.Children[0]
	assert.Equal(t, markup.TagTable, table.Tag)
	require.Len(t, table.Children, 3, "header row plus two data rows")

	header := table.Children[0]
	require.Len(t, header.Children, 2)
	assert.Equal(t, markup.TagTableCell, header.Children[0].Tag)
	assert.Equal(t, "Name", header.Children[0].TextContent())
	assert.Equal(t, "41", table.Children[2].Children[1].TextContent())
}

func TestParseHorizontalRule(t *testing.T) {
	f := New()
	root := f.Parse("above\n\n---\n\nbelow")

	require.Len(t, root.Children, 3)
	assert.Equal(t, markup.TagRule, root.Children[1].Tag)
	assert.Empty(t, root.Children[1].Children)
}

func TestParagraphEndsAtBlockStart(t *testing.T) {
	f := New()
	root := f.Parse("intro text\n- bullet right after")

	require.Len(t, root.Children, 2)
	assert.Equal(t, markup.TagParagraph, root.Children[0].Tag)
	assert.Equal(t, markup.TagList, root.Children[1].Tag)
}

func TestInlineFormatting(t *testing.T) {
	f := New()
	root := f.Parse("plain **bold** and *italic* with `code` plus [a link](https://example.com)")

	require.Len(t, root.Children, 1)
	p := root.Children[0]

	tags := make([]string, 0, len(p.Children))
	for _, child := range p.Children {
		if child.Kind == markup.KindElement {
			tags = append(tags, child.Tag)
		}
	}
	assert.Equal(t, []string{markup.TagStrong, markup.TagEmphasis, markup.TagInlineCode, markup.TagLink}, tags)

	link := p.Children[len(p.Children)-1]
	assert.Equal(t, "https://example.com", link.Attr(markup.AttrHref))
	assert.Equal(t, "a link", link.TextContent())

	assert.Equal(t, "plain bold and italic with code plus a link", p.TextContent())
}

func TestInlineNestedEmphasisInsideBold(t *testing.T) {
	f := New()
	root := f.Parse("**bold with *nested* inside**")

	p := root.Children[0]
	require.Len(t, p.Children, 1)
	strong := p.Children[0]
	assert.Equal(t, markup.TagStrong, strong.Tag)

	var em *markup.Node
	for _, c := range strong.Children {
		if c.Tag == markup.TagEmphasis {
			em = c
		}
	}
	require.NotNil(t, em)
	assert.Equal(t, "nested", em.TextContent())
}

func TestInlineUnterminatedMarkersStayLiteral(t *testing.T) {
	f := New()
	root := f.Parse("a stray ` backtick and **unclosed bold")

	p := root.Children[0]
	assert.Equal(t, "a stray ` backtick and **unclosed bold", p.TextContent())
	for _, c := range p.Children {
		assert.Equal(t, markup.KindText, c.Kind)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	f := New()
	root := f.Parse("")
	assert.Equal(t, markup.TagDiv, root.Tag)
	assert.Empty(t, root.Children)
}
