// Package linearize converts a fully built markup tree into an ordered,
// finite sequence of structural events. Linearization is pure: no timers, no
// side effects, and the same tree always produces the same sequence.
package linearize

import (
	"strings"
	"unicode"

	"github.com/inkwell-tui/inkwell/pkg/markup"
)

// Linearize flattens the tree rooted at node into a Sequence. Unrecognized
// tags fall back to a generic open/recurse/close so new formatter output can
// never make linearization fail.
func Linearize(root *markup.Node) Sequence {
	if root == nil {
		return nil
	}
	var seq Sequence
	linearizeNode(root, &seq)
	return filter(seq)
}

func linearizeNode(node *markup.Node, seq *Sequence) {
	if node.Kind == markup.KindText {
		emitTextRuns(node.Text, seq)
		return
	}

	switch {
	case isAtomic(node):
		ev := Event{
			Kind:     AtomicBlock,
			Snapshot: node.Snapshot(),
			Block:    true,
			Priority: PriorityHigh,
		}
		ev.CodeBlock = node.Tag == markup.TagCodeBlock
		ev.Table = node.Tag == markup.TagTable
		*seq = append(*seq, ev)

	case markup.IsListTag(node.Tag):
		*seq = append(*seq, Event{Kind: ElementStart, Shell: node.Shell(), Block: true})
		for _, item := range node.Children {
			linearizeNode(item, seq)
		}
		*seq = append(*seq, Event{Kind: ElementEnd, Block: true})

	case markup.IsInlineTag(node.Tag):
		*seq = append(*seq, Event{Kind: ElementStart, Shell: node.Shell(), InlineFormatting: true})
		linearizeChildren(node, seq)
		*seq = append(*seq, Event{Kind: ElementEnd, InlineFormatting: true})

	case node.Tag == markup.TagInlineCode:
		*seq = append(*seq, Event{Kind: ElementStart, Shell: node.Shell(), InlineCode: true})
		linearizeChildren(node, seq)
		*seq = append(*seq, Event{Kind: ElementEnd, InlineCode: true})

	default:
		// Block containers, list items, and anything unrecognized all stream
		// as open, children, close.
		block := markup.IsBlockTag(node.Tag) || node.Tag == markup.TagListItem
		*seq = append(*seq, Event{Kind: ElementStart, Shell: node.Shell(), Block: block})
		linearizeChildren(node, seq)
		*seq = append(*seq, Event{Kind: ElementEnd, Block: block})
	}
}

func linearizeChildren(node *markup.Node, seq *Sequence) {
	for _, child := range node.Children {
		linearizeNode(child, seq)
	}
}

// isAtomic reports whether the subtree is revealed in one indivisible step:
// headings, code blocks, tables, and self-closing elements other than plain
// line breaks.
func isAtomic(node *markup.Node) bool {
	if markup.IsHeadingTag(node.Tag) {
		return true
	}
	switch node.Tag {
	case markup.TagCodeBlock, markup.TagTable:
		return true
	}
	return markup.IsVoidTag(node.Tag) && node.Tag != markup.TagBreak
}

// emitTextRuns splits text on whitespace boundaries, one run per event, so
// playback reveals word by word. Pure-whitespace runs are flagged for the
// delay rules.
func emitTextRuns(text string, seq *Sequence) {
	for _, run := range splitRuns(text) {
		*seq = append(*seq, Event{
			Kind:       TextRun,
			Text:       run,
			Whitespace: isWhitespace(run),
		})
	}
}

// splitRuns breaks text into maximal runs of whitespace and non-whitespace
func splitRuns(text string) []string {
	if text == "" {
		return nil
	}
	var runs []string
	var cur strings.Builder
	curSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > 0 && space != curSpace {
			runs = append(runs, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curSpace = space
	}
	if cur.Len() > 0 {
		runs = append(runs, cur.String())
	}
	return runs
}

func isWhitespace(s string) bool {
	return strings.TrimSpace(s) == ""
}

// filter drops zero-length text runs
func filter(seq Sequence) Sequence {
	out := seq[:0]
	for _, ev := range seq {
		if ev.Kind == TextRun && ev.Text == "" {
			continue
		}
		out = append(out, ev)
	}
	return out
}
