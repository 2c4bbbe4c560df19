// Package molecule implements the molecular graph: labelled atoms, typed
// bonds, and molecules that keep their bond-adjacency graph connected by
// splitting off detached fragments after every structural deletion.
package molecule

// Direction is the side of an atom its label extends towards. The zero
// value is Right, the preferred side.
type Direction int

const (
	DirectionRight Direction = iota
	DirectionLeft
	DirectionUp
	DirectionDown
)

// String returns the direction name for display.
func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "unknown"
	}
}
