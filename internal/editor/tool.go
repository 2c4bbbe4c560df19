package editor

import (
	"github.com/molsketch/molsketch/internal/molecule"
)

// ToolKind identifies the active editing tool.
type ToolKind uint8

const (
	ToolCursor ToolKind = iota
	ToolSelect
	ToolPan
	ToolErase
	ToolBond
	ToolRename
	ToolAtomStamp
)

func (k ToolKind) String() string {
	switch k {
	case ToolCursor:
		return "cursor"
	case ToolSelect:
		return "select"
	case ToolPan:
		return "pan"
	case ToolErase:
		return "erase"
	case ToolBond:
		return "bond"
	case ToolRename:
		return "rename"
	case ToolAtomStamp:
		return "atom"
	default:
		return "unknown"
	}
}

// Tool is the active tool plus its parameters: the bond type for the bond
// tool and the element label for the atom stamp.
type Tool struct {
	Kind     ToolKind
	BondType molecule.BondType
	Label    string
}

func CursorTool() Tool    { return Tool{Kind: ToolCursor} }
func SelectTool() Tool    { return Tool{Kind: ToolSelect} }
func PanTool() Tool       { return Tool{Kind: ToolPan} }
func EraseTool() Tool     { return Tool{Kind: ToolErase} }
func RenameTool() Tool    { return Tool{Kind: ToolRename} }
func BondTool(t molecule.BondType) Tool { return Tool{Kind: ToolBond, BondType: t} }
func AtomTool(label string) Tool        { return Tool{Kind: ToolAtomStamp, Label: label} }

// MouseInteraction tracks the press/drag lifecycle of the primary button.
type MouseInteraction uint8

const (
	InteractionNone MouseInteraction = iota
	InteractionDown
	InteractionDragged
	InteractionReleased
	InteractionTapped
)

func (m MouseInteraction) String() string {
	switch m {
	case InteractionDown:
		return "down"
	case InteractionDragged:
		return "dragged"
	case InteractionReleased:
		return "released"
	case InteractionTapped:
		return "tapped"
	default:
		return "none"
	}
}

// PointerEventKind is a raw pointer transition from the presentation layer.
type PointerEventKind uint8

const (
	PointerDown PointerEventKind = iota
	PointerMoved
	PointerUp
)

// Update advances the interaction state machine for one pointer event. A
// press that releases without moving becomes a tap; the released and tapped
// states last a single event before falling back to none.
func (m MouseInteraction) Update(kind PointerEventKind) MouseInteraction {
	switch kind {
	case PointerDown:
		return InteractionDown
	case PointerMoved:
		if m == InteractionDown || m == InteractionDragged {
			return InteractionDragged
		}
	case PointerUp:
		switch m {
		case InteractionDown:
			return InteractionTapped
		case InteractionDragged:
			return InteractionReleased
		}
	}
	return InteractionNone
}

// ToolActionKind is the abstract editing gesture a tool derives from the
// current interaction state.
type ToolActionKind uint8

const (
	ActionNothing ToolActionKind = iota
	ActionCursorDragged
	ActionClickSelect
	ActionDragSelectStart
	ActionDragSelectFinish
	ActionStartPan
	ActionStartMove
	ActionErase
	ActionBondStart
	ActionBondFinish
	ActionRename
	ActionAtomDraw
)

// ToolAction pairs the gesture with the tool parameters it needs.
type ToolAction struct {
	Kind     ToolActionKind
	BondType molecule.BondType
	Label    string
}

// Action maps the interaction state onto the gesture the tool performs. A
// drag in progress always yields a cursor-drag regardless of the tool.
func (t Tool) Action(interaction MouseInteraction, hover Item, selection Selection) ToolAction {
	if interaction == InteractionDragged {
		return ToolAction{Kind: ActionCursorDragged}
	}

	switch t.Kind {
	case ToolCursor:
		switch interaction {
		case InteractionDown:
			if hover.IsNone() {
				return ToolAction{Kind: ActionStartPan}
			}
			return ToolAction{Kind: ActionClickSelect}
		case InteractionTapped:
			return ToolAction{Kind: ActionClickSelect}
		}

	case ToolSelect:
		switch interaction {
		case InteractionDown:
			if selection.Contains(hover) {
				return ToolAction{Kind: ActionStartMove}
			}
			return ToolAction{Kind: ActionDragSelectStart}
		case InteractionReleased:
			return ToolAction{Kind: ActionDragSelectFinish}
		case InteractionTapped:
			return ToolAction{Kind: ActionClickSelect}
		}

	case ToolPan:
		if interaction == InteractionDown {
			return ToolAction{Kind: ActionStartPan}
		}

	case ToolErase:
		if interaction == InteractionDown {
			return ToolAction{Kind: ActionErase}
		}

	case ToolBond:
		switch interaction {
		case InteractionDown:
			return ToolAction{Kind: ActionBondStart, BondType: t.BondType}
		case InteractionReleased, InteractionTapped:
			return ToolAction{Kind: ActionBondFinish, BondType: t.BondType}
		}

	case ToolRename:
		switch interaction {
		case InteractionTapped:
			return ToolAction{Kind: ActionRename}
		case InteractionDown:
			return ToolAction{Kind: ActionStartPan}
		}

	case ToolAtomStamp:
		switch interaction {
		case InteractionTapped:
			return ToolAction{Kind: ActionAtomDraw, Label: t.Label}
		case InteractionDown:
			return ToolAction{Kind: ActionStartPan}
		}
	}

	return ToolAction{Kind: ActionNothing}
}
