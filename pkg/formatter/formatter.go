package formatter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/inkwell-tui/inkwell/pkg/logger"
	"github.com/inkwell-tui/inkwell/pkg/markup"
)

// Formatter converts markdown text into a markup tree ready for playback.
// Parsing is line oriented: each call to Parse consumes the whole document
// and returns a fresh tree rooted at a div.
type Formatter struct {
	log *logger.Logger
}

// New creates a markdown formatter
func New() *Formatter {
	return &Formatter{log: logger.WithComponent("formatter")}
}

var (
	headingRe   = regexp.MustCompile(`^(#{1,4})\s+(.*)$`)
	orderedRe   = regexp.MustCompile(`^\s*(\d+)[.)]\s+(.*)$`)
	unorderedRe = regexp.MustCompile(`^\s*[-*+]\s+(.*)$`)
	ruleRe      = regexp.MustCompile(`^\s*(?:(?:-\s*){3,}|(?:\*\s*){3,}|(?:_\s*){3,})$`)
	fenceRe     = regexp.MustCompile("^```\\s*([A-Za-z0-9+_.-]*)\\s*$")
	tableRowRe  = regexp.MustCompile(`^\s*\|.*\|\s*$`)
	tableSepRe  = regexp.MustCompile(`^\s*\|?(\s*:?-+:?\s*\|)+\s*:?-+:?\s*\|?\s*$`)
)

// Parse builds a markup tree from a markdown document
func (f *Formatter) Parse(content string) *markup.Node {
	root := markup.NewElement(markup.TagDiv)
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	f.log.Debug("parsing document", "lines", len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++

		case strings.HasPrefix(trimmed, "```"):
			i = f.parseFence(root, lines, i)

		case headingRe.MatchString(trimmed):
			m := headingRe.FindStringSubmatch(trimmed)
			h := markup.NewElement(headingTag(len(m[1])))
			appendInline(h, m[2])
			root.AppendChild(h)
			i++

		case ruleRe.MatchString(trimmed):
			root.AppendChild(markup.NewElement(markup.TagRule))
			i++

		case strings.HasPrefix(trimmed, ">"):
			i = f.parseBlockquote(root, lines, i)

		case tableRowRe.MatchString(trimmed) && i+1 < len(lines) && tableSepRe.MatchString(lines[i+1]):
			i = f.parseTable(root, lines, i)

		case unorderedRe.MatchString(line):
			i = f.parseList(root, lines, i, markup.TagList, unorderedRe)

		case orderedRe.MatchString(line):
			i = f.parseList(root, lines, i, markup.TagOrdered, orderedRe)

		default:
			i = f.parseParagraph(root, lines, i)
		}
	}

	return root
}

func headingTag(level int) string {
	switch level {
	case 1:
		return markup.TagHeading1
	case 2:
		return markup.TagHeading2
	case 3:
		return markup.TagHeading3
	default:
		return markup.TagHeading4
	}
}

// parseFence consumes a fenced code block. An unterminated fence runs to
// the end of the document.
func (f *Formatter) parseFence(root *markup.Node, lines []string, start int) int {
	m := fenceRe.FindStringSubmatch(strings.TrimSpace(lines[start]))
	lang := ""
	if m != nil {
		lang = m[1]
	}

	var body []string
	i := start + 1
	for ; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			i++
			break
		}
		body = append(body, lines[i])
	}

	pre := markup.NewElement(markup.TagCodeBlock)
	if lang != "" {
		pre.SetAttr(markup.AttrLang, lang)
	}
	pre.AppendChild(markup.NewText(strings.Join(body, "\n")))
	root.AppendChild(pre)

	f.log.Debug("fenced block", "lang", lang, "lines", len(body))
	return i
}

func (f *Formatter) parseBlockquote(root *markup.Node, lines []string, start int) int {
	var inner []string
	i := start
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		inner = append(inner, strings.TrimPrefix(strings.TrimPrefix(trimmed, ">"), " "))
	}

	quote := markup.NewElement(markup.TagQuote)
	// Quoted content is markdown too
	nested := f.Parse(strings.Join(inner, "\n"))
	for len(nested.Children) > 0 {
		quote.AppendChild(nested.Children[0])
	}
	root.AppendChild(quote)
	return i
}

func (f *Formatter) parseTable(root *markup.Node, lines []string, start int) int {
	table := markup.NewElement(markup.TagTable)

	appendRow := func(raw string) {
		row := markup.NewElement(markup.TagTableRow)
		cells := splitTableRow(raw)
		for _, cell := range cells {
			td := markup.NewElement(markup.TagTableCell)
			appendInline(td, cell)
			row.AppendChild(td)
		}
		table.AppendChild(row)
	}

	appendRow(lines[start])
	i := start + 2 // skip the separator row
	for ; i < len(lines); i++ {
		if !tableRowRe.MatchString(lines[i]) {
			break
		}
		appendRow(lines[i])
	}

	root.AppendChild(table)
	return i
}

func splitTableRow(raw string) []string {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func (f *Formatter) parseList(root *markup.Node, lines []string, start int, tag string, itemRe *regexp.Regexp) int {
	list := markup.NewElement(tag)

	i := start
	for ; i < len(lines); i++ {
		m := itemRe.FindStringSubmatch(lines[i])
		if m == nil {
			break
		}
		item := markup.NewElement(markup.TagListItem)
		appendInline(item, m[len(m)-1])
		list.AppendChild(item)
	}

	if tag == markup.TagOrdered {
		if m := orderedRe.FindStringSubmatch(lines[start]); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n != 1 {
				list.SetAttr("start", m[1])
			}
		}
	}

	root.AppendChild(list)
	return i
}

// parseParagraph gathers consecutive plain lines into one paragraph,
// joining them with a single space the way soft wraps collapse.
func (f *Formatter) parseParagraph(root *markup.Node, lines []string, start int) int {
	var parts []string
	i := start
	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			break
		}
		if i > start && isBlockStart(trimmed, lines, i) {
			break
		}
		parts = append(parts, trimmed)
	}
	if i == start {
		return start + 1
	}

	p := markup.NewElement(markup.TagParagraph)
	appendInline(p, strings.Join(parts, " "))
	root.AppendChild(p)
	return i
}

// isBlockStart reports whether a line begins a non-paragraph block,
// ending any paragraph in progress.
func isBlockStart(trimmed string, lines []string, i int) bool {
	if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, ">") {
		return true
	}
	if headingRe.MatchString(trimmed) || ruleRe.MatchString(trimmed) {
		return true
	}
	if unorderedRe.MatchString(trimmed) || orderedRe.MatchString(trimmed) {
		return true
	}
	if tableRowRe.MatchString(trimmed) && i+1 < len(lines) && tableSepRe.MatchString(lines[i+1]) {
		return true
	}
	return false
}
