package molecule

import (
	"unicode"

	"github.com/molsketch/molsketch/internal/geom"
)

// Fixed type metrics for label layout. The presentation layer may draw with
// any font it likes; hit-testing and bounds use these deterministic sizes.
const (
	tokenSeparation = 1.0
	capHeight       = 7.0
	upperWidth      = 6.5
	defaultWidth    = 5.5
	subscriptWidth  = 3.5
)

var subscripts = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
}

// Token is one run of a label: an uppercase letter plus everything up to
// the next uppercase letter, with digits turned into subscripts. Its bounds
// is centred on the origin.
type Token struct {
	Text   string
	Bounds geom.Rect
}

func newToken(text string) Token {
	var width float64
	for _, r := range text {
		width += runeWidth(r)
	}
	return Token{
		Text:   text,
		Bounds: geom.Rect{X: -width / 2, Y: -capHeight / 2, Width: width, Height: capHeight},
	}
}

func runeWidth(r rune) float64 {
	switch {
	case r >= '₀' && r <= '₉':
		return subscriptWidth
	case unicode.IsUpper(r):
		return upperWidth
	default:
		return defaultWidth
	}
}

// Label is the rendered form of an atom's text: its tokens, their combined
// bounds relative to the atom position, and the side they extend towards.
type Label struct {
	input     string
	tokens    []Token
	bounds    geom.Rect
	direction Direction
}

func newLabel(input string, direction Direction) Label {
	l := Label{
		input:     input,
		tokens:    tokenize(input),
		direction: direction,
	}
	l.calculateBounds()
	return l
}

func (l *Label) Input() string        { return l.input }
func (l *Label) IsEmpty() bool        { return len(l.tokens) == 0 }
func (l *Label) Bounds() geom.Rect    { return l.bounds }
func (l *Label) Direction() Direction { return l.direction }

func (l *Label) updateDirection(direction Direction) {
	if direction != l.direction {
		l.direction = direction
		l.calculateBounds()
	}
}

func (l *Label) calculateBounds() {
	if len(l.tokens) == 0 {
		l.bounds = geom.Rect{}
		return
	}

	bounds := l.tokens[0].Bounds

	for _, tok := range l.tokens[1:] {
		var position geom.Vec
		switch l.direction {
		case DirectionRight:
			position = geom.Vec{X: bounds.Width + bounds.X + tokenSeparation, Y: tok.Bounds.Y}
		case DirectionLeft:
			position = geom.Vec{X: bounds.X - tok.Bounds.Width + tokenSeparation, Y: tok.Bounds.Y}
		case DirectionDown:
			position = geom.Vec{X: tok.Bounds.X, Y: bounds.Height + bounds.Y + tokenSeparation}
		case DirectionUp:
			position = geom.Vec{X: tok.Bounds.X, Y: bounds.Y - tok.Bounds.Height - tokenSeparation}
		}

		placed := geom.Rect{X: position.X, Y: position.Y, Width: tok.Bounds.Width, Height: tok.Bounds.Height}
		bounds = bounds.Union(placed)
	}

	l.bounds = bounds
}

// PlacedToken is a token plus its drawing offset relative to the atom
// position; the sequence is what a renderer lays glyphs out from.
type PlacedToken struct {
	Text   string   `json:"text"`
	Offset geom.Vec `json:"offset"`
}

// Placements returns the tokens with their offsets along the label
// direction, starting from the edge of the combined bounds.
func (l *Label) Placements() []PlacedToken {
	var shift geom.Vec
	switch l.direction {
	case DirectionRight:
		shift = geom.Vec{X: l.bounds.X}
	case DirectionLeft:
		shift = geom.Vec{X: l.bounds.X + l.bounds.Width}
	case DirectionDown:
		shift = geom.Vec{Y: l.bounds.Y}
	case DirectionUp:
		shift = geom.Vec{Y: l.bounds.Y + l.bounds.Height}
	}

	placed := make([]PlacedToken, 0, len(l.tokens))
	for _, tok := range l.tokens {
		// shift such that drawing starts at the current edge
		var offset geom.Vec
		switch l.direction {
		case DirectionRight:
			offset = shift.Sub(geom.Vec{X: tok.Bounds.X})
		case DirectionLeft:
			offset = shift.Sub(geom.Vec{X: tok.Bounds.X + tok.Bounds.Width})
		case DirectionDown:
			offset = shift.Sub(geom.Vec{Y: tok.Bounds.Y})
		case DirectionUp:
			offset = shift.Sub(geom.Vec{Y: tok.Bounds.Y + tok.Bounds.Height})
		}

		placed = append(placed, PlacedToken{Text: tok.Text, Offset: offset})

		switch l.direction {
		case DirectionRight:
			shift = shift.Add(geom.Vec{X: tok.Bounds.Width + tokenSeparation})
		case DirectionLeft:
			shift = shift.Sub(geom.Vec{X: tok.Bounds.Width + tokenSeparation})
		case DirectionDown:
			shift = shift.Add(geom.Vec{Y: tok.Bounds.Height + tokenSeparation})
		case DirectionUp:
			shift = shift.Sub(geom.Vec{Y: tok.Bounds.Height + tokenSeparation})
		}
	}

	return placed
}

func tokenize(input string) []Token {
	var tokens []Token
	var current []rune

	for _, c := range input {
		switch {
		case unicode.IsUpper(c):
			if len(current) > 0 {
				tokens = append(tokens, newToken(string(current)))
				current = current[:0]
			}
			current = append(current, c)
		case c >= '0' && c <= '9':
			current = append(current, subscripts[c])
		default:
			current = append(current, c)
		}
	}
	if len(current) > 0 {
		tokens = append(tokens, newToken(string(current)))
	}

	return tokens
}
