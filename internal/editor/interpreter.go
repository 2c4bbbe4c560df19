package editor

import (
	"fmt"

	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
	"github.com/molsketch/molsketch/internal/molecule"
)

// messages reduces one tool action to the messages it should apply.
// canvasPos is the event position in canvas space, cursorPos the raw
// presentation-space position (pans track the latter so they are stable
// under zoom).
func (e *Editor) messages(action ToolAction, hover Hover, canvasPos, cursorPos geom.Vec) ([]Message, error) {
	switch action.Kind {
	case ActionNothing:
		// gestures end on events the tool maps to nothing, such as the
		// release after a pan or a selection move
		if _, idle := e.action.(ActionNone); !idle {
			return []Message{ActionChangedMsg{Action: ActionNone{}}}, nil
		}
		return nil, nil

	case ActionCursorDragged:
		return e.cursorDragged(canvasPos, cursorPos)

	case ActionClickSelect:
		msgs := []Message{ActionChangedMsg{Action: ActionMovingSelection{Last: canvasPos}}}
		if !e.state.Selection().Contains(hover.Item) {
			selection := NewSelection()
			if !hover.Item.IsNone() {
				selection.Add(hover.Item)
			}
			msgs = append(msgs, SelectMsg{Selection: selection})
		}
		return msgs, nil

	case ActionDragSelectStart:
		return []Message{ActionChangedMsg{Action: ActionDrawingSelection{Start: canvasPos}}}, nil

	case ActionDragSelectFinish:
		// ends a rubber band or a selection move alike
		if _, idle := e.action.(ActionNone); idle {
			return nil, nil
		}
		return []Message{ActionChangedMsg{Action: ActionNone{}}}, nil

	case ActionStartPan:
		return []Message{ActionChangedMsg{Action: ActionPanning{
			Translation: e.viewport.Translation,
			Start:       cursorPos,
		}}}, nil

	case ActionStartMove:
		return []Message{ActionChangedMsg{Action: ActionMovingSelection{Last: canvasPos}}}, nil

	case ActionErase:
		msgs := []Message{ActionChangedMsg{Action: ActionErasing{}}}
		switch hover.Item.Kind {
		case ItemAtom:
			msgs = append(msgs, DeleteAtomMsg{Molecule: hover.Item.Molecule, Atom: hover.Item.Atom})
		case ItemBond:
			msgs = append(msgs, DeleteBondMsg{Molecule: hover.Item.Molecule, Bond: hover.Item.Bond})
		case ItemMolecule:
			msgs = append(msgs, DeleteMoleculeMsg{Molecule: hover.Item.Molecule})
		}
		return msgs, nil

	case ActionBondStart:
		return e.bondStart(action.BondType, hover, canvasPos)

	case ActionBondFinish:
		return e.bondFinish(hover, canvasPos)

	case ActionRename:
		if hover.Item.Kind == ItemAtom {
			if _, err := e.BeginRename(hover.Item.Molecule, hover.Item.Atom); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, e.CommitRename()

	case ActionAtomDraw:
		if hover.Item.Kind == ItemAtom {
			return []Message{RelabelAtomMsg{
				Molecule: hover.Item.Molecule,
				Atom:     hover.Item.Atom,
				Label:    action.Label,
			}}, nil
		}
		return []Message{AddMoleculeMsg{
			Molecule: ident.NewMoleculeID(),
			Atom:     ident.NewAtomID(),
			Label:    action.Label,
			Position: canvasPos,
		}}, nil
	}

	return nil, nil
}

// cursorDragged advances whatever gesture the drag is feeding.
func (e *Editor) cursorDragged(canvasPos, cursorPos geom.Vec) ([]Message, error) {
	switch a := e.action.(type) {
	case ActionPanning:
		delta := cursorPos.Sub(a.Start).Mul(1 / e.viewport.Scale)
		return []Message{TranslatedMsg{Translation: a.Translation.Add(delta)}}, nil

	case ActionMovingSelection:
		return []Message{MoveSelectionMsg{Position: canvasPos}}, nil

	case ActionDrawingSelection:
		rect := geom.RectBetween(a.Start, canvasPos)
		return []Message{SelectMsg{Selection: e.state.SelectionIn(rect)}}, nil
	}

	return nil, nil
}

// bondStart begins a bond draw. On an atom the rubber band anchors there;
// on an existing bond the tool retypes or flips it instead; anywhere else a
// fresh single-atom molecule seeds the bond.
func (e *Editor) bondStart(bondType molecule.BondType, hover Hover, canvasPos geom.Vec) ([]Message, error) {
	switch hover.Item.Kind {
	case ItemAtom:
		mol, err := e.state.Molecule(hover.Item.Molecule)
		if err != nil {
			return nil, fmt.Errorf("bond start: %w", err)
		}
		start, err := mol.AtomPosition(hover.Item.Atom)
		if err != nil {
			return nil, fmt.Errorf("bond start: %w", err)
		}
		return []Message{ActionChangedMsg{Action: ActionDrawingBond{
			Molecule: hover.Item.Molecule,
			Atom:     hover.Item.Atom,
			Start:    start,
			BondType: bondType,
		}}}, nil

	case ItemBond:
		mol, err := e.state.Molecule(hover.Item.Molecule)
		if err != nil {
			return nil, fmt.Errorf("bond start: %w", err)
		}
		bond, err := mol.Bond(hover.Item.Bond)
		if err != nil {
			return nil, fmt.Errorf("bond start: %w", err)
		}

		switch {
		case bondType == molecule.Normal(1) && bond.Type() == molecule.Normal(1):
			// tapping a single bond with the single-bond tool doubles it
			return []Message{ChangeBondTypeMsg{
				Molecule: hover.Item.Molecule,
				Bond:     hover.Item.Bond,
				BondType: molecule.Normal(2),
			}}, nil
		case bondType == bond.Type() && bondType.Kind != molecule.BondNormal:
			// re-applying a directional type reverses the bond
			return []Message{FlipBondMsg{
				Molecule: hover.Item.Molecule,
				Bond:     hover.Item.Bond,
			}}, nil
		default:
			return []Message{ChangeBondTypeMsg{
				Molecule: hover.Item.Molecule,
				Bond:     hover.Item.Bond,
				BondType: bondType,
			}}, nil
		}

	default:
		molID := ident.NewMoleculeID()
		atomID := ident.NewAtomID()
		return []Message{
			ActionChangedMsg{Action: ActionDrawingBond{
				Molecule: molID,
				Atom:     atomID,
				Start:    canvasPos,
				BondType: bondType,
			}},
			AddMoleculeMsg{Molecule: molID, Atom: atomID, Position: canvasPos},
		}, nil
	}
}

// bondFinish completes a bond draw. Releasing over another atom bonds to
// it, merging molecules when needed; releasing anywhere else grows a new
// atom one bond length from the anchor toward the release point.
func (e *Editor) bondFinish(hover Hover, canvasPos geom.Vec) ([]Message, error) {
	drawing, ok := e.action.(ActionDrawingBond)
	if !ok {
		return nil, nil
	}

	done := ActionChangedMsg{Action: ActionNone{}}

	if hover.Item.Kind == ItemAtom &&
		!(hover.Item.Molecule == drawing.Molecule && hover.Item.Atom == drawing.Atom) {
		if hover.Item.Molecule == drawing.Molecule {
			return []Message{
				NewBondMsg{
					Molecule: drawing.Molecule,
					Start:    drawing.Atom,
					End:      hover.Item.Atom,
					BondType: drawing.BondType,
				},
				done,
			}, nil
		}
		return []Message{
			ConnectMoleculesMsg{
				Molecule:      drawing.Molecule,
				Atom:          drawing.Atom,
				OtherMolecule: hover.Item.Molecule,
				OtherAtom:     hover.Item.Atom,
				BondType:      drawing.BondType,
			},
			done,
		}, nil
	}

	end := molecule.FixedLength(drawing.Start, canvasPos.Sub(drawing.Start), molecule.BondLength)
	return []Message{
		FinishBondMsg{
			Molecule: drawing.Molecule,
			Start:    drawing.Atom,
			Atom:     ident.NewAtomID(),
			Position: end,
			BondType: drawing.BondType,
		},
		done,
	}, nil
}
