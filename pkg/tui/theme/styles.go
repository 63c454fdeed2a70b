package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
)

// Base16 color palette with orange, brown, yellow, and pink tones
// Based on Autumn theme with warm earth tones
var (
	// Base colors (backgrounds and text)
	ColorBase00 = lipgloss.Color("#1a1816") // Dark background
	ColorBase01 = lipgloss.Color("#282420") // Lighter background
	ColorBase02 = lipgloss.Color("#36302a") // Selection background
	ColorBase03 = lipgloss.Color("#5c5044") // Comments, invisibles
	ColorBase04 = lipgloss.Color("#83715f") // Dark foreground
	ColorBase05 = lipgloss.Color("#ab937b") // Default foreground
	ColorBase06 = lipgloss.Color("#d3b597") // Light foreground
	ColorBase07 = lipgloss.Color("#f5d7b9") // Lightest foreground

	// Accent colors
	ColorRed    = lipgloss.Color("#d95f5f")
	ColorOrange = lipgloss.Color("#eb8755")
	ColorYellow = lipgloss.Color("#f5b761")
	ColorGreen  = lipgloss.Color("#93b56b")
	ColorCyan   = lipgloss.Color("#61afaf")
	ColorBlue   = lipgloss.Color("#6b93b5")
	ColorPurple = lipgloss.Color("#976bb5")
	ColorBrown  = lipgloss.Color("#b57f6b")
)

// Tcell converts a palette color to its tcell equivalent for direct
// screen drawing
func Tcell(c lipgloss.Color) tcell.Color {
	return tcell.GetColor(string(c))
}

// CodeBorder is the glyph set the renderer frames code blocks with
var CodeBorder = lipgloss.NormalBorder()

// IndicatorFrame lays out the speed indicator label. Padding only: the
// renderer applies colors per-cell when it draws the frame.
var IndicatorFrame = lipgloss.NewStyle().Padding(0, 1)

// Styles holds the tcell styles for every node kind the renderer draws
type Styles struct {
	Text     tcell.Style
	Heading1 tcell.Style
	Heading2 tcell.Style
	Heading3 tcell.Style
	Heading4 tcell.Style

	Strong     tcell.Style
	Emphasis   tcell.Style
	InlineCode tcell.Style
	Link       tcell.Style

	CodeBlock tcell.Style
	QuoteBar  tcell.Style
	QuoteText tcell.Style
	ListMark  tcell.Style
	TableRule tcell.Style
	Rule      tcell.Style

	Cursor         tcell.Style
	Indicator      tcell.Style
	IndicatorFaded tcell.Style
}

// DefaultStyles maps the palette onto the renderer's style slots
func DefaultStyles() *Styles {
	text := tcell.StyleDefault.Foreground(Tcell(ColorBase05))
	return &Styles{
		Text:     text,
		Heading1: tcell.StyleDefault.Foreground(Tcell(ColorOrange)).Bold(true),
		Heading2: tcell.StyleDefault.Foreground(Tcell(ColorYellow)).Bold(true),
		Heading3: tcell.StyleDefault.Foreground(Tcell(ColorBase06)).Bold(true),
		Heading4: tcell.StyleDefault.Foreground(Tcell(ColorBase06)),

		Strong:     text.Bold(true),
		Emphasis:   text.Italic(true),
		InlineCode: tcell.StyleDefault.Foreground(Tcell(ColorYellow)).Background(Tcell(ColorBase01)),
		Link:       tcell.StyleDefault.Foreground(Tcell(ColorBlue)).Underline(true),

		CodeBlock: tcell.StyleDefault.Foreground(Tcell(ColorBase06)).Background(Tcell(ColorBase01)),
		QuoteBar:  tcell.StyleDefault.Foreground(Tcell(ColorBase03)),
		QuoteText: tcell.StyleDefault.Foreground(Tcell(ColorBase04)).Italic(true),
		ListMark:  tcell.StyleDefault.Foreground(Tcell(ColorOrange)),
		TableRule: tcell.StyleDefault.Foreground(Tcell(ColorBase03)),
		Rule:      tcell.StyleDefault.Foreground(Tcell(ColorBase03)),

		Cursor:         tcell.StyleDefault.Foreground(Tcell(ColorOrange)).Blink(true),
		Indicator:      tcell.StyleDefault.Foreground(Tcell(ColorBase00)).Background(Tcell(ColorOrange)).Bold(true),
		IndicatorFaded: tcell.StyleDefault.Foreground(Tcell(ColorBase03)).Background(Tcell(ColorBase01)),
	}
}
