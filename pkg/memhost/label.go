package memhost

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Label is a text view whose intrinsic height comes from font metrics.
type Label struct {
	*View

	Text string
	// Face defaults to basicfont.Face7x13.
	Face font.Face
	// WrapWidth breaks lines wider than this many points. Zero disables
	// wrapping.
	WrapWidth float64
	// Padding is added above and below the text.
	Padding float64
}

// NewLabel returns a detached label.
func NewLabel(name, text string) *Label {
	l := &Label{View: NewView(name), Text: text}
	l.View.self = l
	return l
}

func (l *Label) face() font.Face {
	if l.Face != nil {
		return l.Face
	}
	return basicfont.Face7x13
}

// Lines returns the text broken into display lines.
func (l *Label) Lines() []string {
	if l.Text == "" {
		return nil
	}
	var lines []string
	for _, paragraph := range strings.Split(l.Text, "\n") {
		lines = append(lines, l.wrap(paragraph)...)
	}
	return lines
}

func (l *Label) wrap(paragraph string) []string {
	words := strings.Fields(paragraph)
	if l.WrapWidth <= 0 || len(words) == 0 {
		return []string{paragraph}
	}
	limit := fixed.I(int(l.WrapWidth))
	face := l.face()
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if font.MeasureString(face, candidate) > limit {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// IntrinsicHeight returns the line count times the face's line height plus
// padding. An empty label has no height.
func (l *Label) IntrinsicHeight() float64 {
	lines := l.Lines()
	if len(lines) == 0 {
		return 0
	}
	lineHeight := float64(l.face().Metrics().Height) / 64
	return float64(len(lines))*lineHeight + 2*l.Padding
}
