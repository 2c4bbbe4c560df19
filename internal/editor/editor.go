package editor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/molsketch/molsketch/internal/geom"
)

// Editor owns the document, the active tool and the in-flight gesture. All
// input is funneled through the pointer/key/scroll handlers, which reduce
// it to messages and apply them; the presentation layer only ever reads the
// compiled scene back out.
type Editor struct {
	state       *State
	tool        Tool
	action      Action
	viewport    Viewport
	interaction MouseInteraction

	// Last pointer position in presentation space, kept so key-triggered
	// gestures can hit test at the cursor.
	cursor geom.Vec

	rename *RenameSession

	// Scene cache
	dirty      bool
	generation uuid.UUID
	scene      *Scene
}

// New creates an editor with an empty document and the cursor tool.
func New() *Editor {
	return &Editor{
		state:      NewState(),
		tool:       CursorTool(),
		action:     ActionNone{},
		viewport:   NewViewport(),
		dirty:      true,
		generation: uuid.New(),
	}
}

// State exposes the document for tests and scripted sessions.
func (e *Editor) State() *State { return e.state }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// Action returns the gesture currently in progress.
func (e *Editor) Action() Action { return e.action }

// Viewport returns the current view transform.
func (e *Editor) Viewport() Viewport { return e.viewport }

// SetTool switches tools, aborting any gesture and open rename in progress.
func (e *Editor) SetTool(tool Tool) {
	e.tool = tool
	e.action = ActionNone{}
	e.CancelRename()
	e.invalidate()
}

// PointerEvent is a raw pointer transition in presentation-space pixels.
type PointerEvent struct {
	Kind     PointerEventKind
	Position geom.Vec
}

// HandlePointer feeds one pointer event through the tool state machine and
// applies the resulting messages. The applied messages are returned so
// hosts can observe what an event did.
func (e *Editor) HandlePointer(event PointerEvent, size geom.Size) ([]Message, error) {
	e.cursor = event.Position
	e.interaction = e.interaction.Update(event.Kind)

	canvasPos := e.viewport.Project(event.Position, size)
	hover, err := e.state.HoveredAt(canvasPos)
	if err != nil {
		return nil, fmt.Errorf("handle pointer: %w", err)
	}

	toolAction := e.tool.Action(e.interaction, hover.Item, e.state.Selection())
	msgs, err := e.messages(toolAction, hover, canvasPos, event.Position)
	if err != nil {
		return nil, fmt.Errorf("handle pointer: %w", err)
	}

	for _, msg := range msgs {
		if err := e.apply(msg); err != nil {
			return nil, fmt.Errorf("handle pointer: %w", err)
		}
	}
	return msgs, nil
}

// Key is a keyboard key the editor reacts to.
type Key uint8

const (
	KeyEnter Key = iota
	KeyDelete
)

// HandleKey triggers the gesture bound to a key at the current cursor
// position: Enter opens a rename on the hovered atom and Delete erases the
// hovered item.
func (e *Editor) HandleKey(key Key, size geom.Size) ([]Message, error) {
	canvasPos := e.viewport.Project(e.cursor, size)
	hover, err := e.state.HoveredAt(canvasPos)
	if err != nil {
		return nil, fmt.Errorf("handle key: %w", err)
	}

	var toolAction ToolAction
	switch key {
	case KeyEnter:
		toolAction = ToolAction{Kind: ActionRename}
	case KeyDelete:
		toolAction = ToolAction{Kind: ActionErase}
	default:
		return nil, nil
	}

	msgs, err := e.messages(toolAction, hover, canvasPos, e.cursor)
	if err != nil {
		return nil, fmt.Errorf("handle key: %w", err)
	}
	for _, msg := range msgs {
		if err := e.apply(msg); err != nil {
			return nil, fmt.Errorf("handle key: %w", err)
		}
	}
	return msgs, nil
}

// HandleScroll applies a wheel step, zooming around the cursor.
// cursorFromCenter is the presentation-space offset of the cursor from the
// surface center.
func (e *Editor) HandleScroll(deltaY float64, cursorFromCenter geom.Vec) {
	next := e.viewport.Scroll(deltaY, cursorFromCenter)
	if next != e.viewport {
		e.viewport = next
		e.invalidate()
	}
}

// apply executes a single message against the editor state.
func (e *Editor) apply(msg Message) error {
	switch m := msg.(type) {
	case ActionChangedMsg:
		e.action = m.Action

	case SelectMsg:
		e.state.SetSelection(m.Selection)

	case TranslatedMsg:
		e.viewport.Translation = m.Translation

	case MoveSelectionMsg:
		moving, ok := e.action.(ActionMovingSelection)
		if !ok {
			return nil
		}
		if err := e.state.MoveSelection(m.Position.Sub(moving.Last)); err != nil {
			return err
		}
		e.action = ActionMovingSelection{Last: m.Position}

	case AddMoleculeMsg:
		if err := e.state.AddMoleculeWithAtom(m.Molecule, m.Atom, m.Label, m.Position); err != nil {
			return err
		}

	case NewBondMsg:
		mol, err := e.state.Molecule(m.Molecule)
		if err != nil {
			return err
		}
		if _, err := mol.AddBond(m.Start, m.End, m.BondType); err != nil {
			return err
		}

	case FinishBondMsg:
		mol, err := e.state.Molecule(m.Molecule)
		if err != nil {
			return err
		}
		if err := mol.AddAtom(m.Atom, "", m.Position); err != nil {
			return err
		}
		if _, err := mol.AddBond(m.Start, m.Atom, m.BondType); err != nil {
			return err
		}

	case ConnectMoleculesMsg:
		mol, err := e.state.Molecule(m.Molecule)
		if err != nil {
			return err
		}
		other, err := e.state.Molecule(m.OtherMolecule)
		if err != nil {
			return err
		}
		if err := e.state.RemoveMolecule(m.OtherMolecule); err != nil {
			return err
		}
		mol.Extend(other)
		if _, err := mol.AddBond(m.Atom, m.OtherAtom, m.BondType); err != nil {
			return err
		}

	case ChangeBondTypeMsg:
		mol, err := e.state.Molecule(m.Molecule)
		if err != nil {
			return err
		}
		mol.ChangeBondType(m.Bond, m.BondType)

	case FlipBondMsg:
		mol, err := e.state.Molecule(m.Molecule)
		if err != nil {
			return err
		}
		mol.FlipBond(m.Bond)

	case DeleteAtomMsg:
		if err := e.state.DeleteAtom(m.Molecule, m.Atom); err != nil {
			return err
		}

	case DeleteBondMsg:
		if err := e.state.DeleteBond(m.Molecule, m.Bond); err != nil {
			return err
		}

	case DeleteMoleculeMsg:
		if err := e.state.RemoveMolecule(m.Molecule); err != nil {
			return err
		}

	case RelabelAtomMsg:
		mol, err := e.state.Molecule(m.Molecule)
		if err != nil {
			return err
		}
		if err := mol.RenameAtom(m.Atom, m.Label); err != nil {
			return err
		}

	default:
		return fmt.Errorf("apply: unknown message %T", msg)
	}

	e.invalidate()
	return nil
}

// Apply runs a message from outside the input pipeline; scripted sessions
// use this to replay recorded edits.
func (e *Editor) Apply(msg Message) error {
	return e.apply(msg)
}

func (e *Editor) invalidate() {
	e.dirty = true
	e.generation = uuid.New()
}

// Generation returns an opaque token that changes whenever the scene
// changes; hosts compare it to skip redundant redraws.
func (e *Editor) Generation() string {
	return e.generation.String()
}
