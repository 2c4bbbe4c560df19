package editor

import (
	"testing"

	"github.com/molsketch/molsketch/internal/molecule"
)

func TestMouseInteractionTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  MouseInteraction
		event PointerEventKind
		want  MouseInteraction
	}{
		{"press from idle", InteractionNone, PointerDown, InteractionDown},
		{"press again", InteractionDragged, PointerDown, InteractionDown},
		{"move after press", InteractionDown, PointerMoved, InteractionDragged},
		{"move while dragging", InteractionDragged, PointerMoved, InteractionDragged},
		{"move while idle", InteractionNone, PointerMoved, InteractionNone},
		{"move after tap", InteractionTapped, PointerMoved, InteractionNone},
		{"release without move", InteractionDown, PointerUp, InteractionTapped},
		{"release after drag", InteractionDragged, PointerUp, InteractionReleased},
		{"release while idle", InteractionNone, PointerUp, InteractionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Update(tt.event); got != tt.want {
				t.Errorf("%v.Update(%v) = %v, want %v", tt.from, tt.event, got, tt.want)
			}
		})
	}
}

func TestToolActionMapping(t *testing.T) {
	hoverAtom := Item{Kind: ItemAtom}
	noHover := Item{}

	selected := NewSelection(hoverAtom)
	empty := NewSelection()

	tests := []struct {
		name        string
		tool        Tool
		interaction MouseInteraction
		hover       Item
		selection   Selection
		want        ToolActionKind
	}{
		{"any tool dragging", EraseTool(), InteractionDragged, noHover, empty, ActionCursorDragged},
		{"cursor press on empty pans", CursorTool(), InteractionDown, noHover, empty, ActionStartPan},
		{"cursor press on item selects", CursorTool(), InteractionDown, hoverAtom, empty, ActionClickSelect},
		{"cursor tap selects", CursorTool(), InteractionTapped, noHover, empty, ActionClickSelect},
		{"select press outside starts rubber band", SelectTool(), InteractionDown, hoverAtom, empty, ActionDragSelectStart},
		{"select press on selection starts move", SelectTool(), InteractionDown, hoverAtom, selected, ActionStartMove},
		{"select release finishes rubber band", SelectTool(), InteractionReleased, noHover, empty, ActionDragSelectFinish},
		{"select tap selects", SelectTool(), InteractionTapped, noHover, empty, ActionClickSelect},
		{"pan press pans", PanTool(), InteractionDown, hoverAtom, empty, ActionStartPan},
		{"erase press erases", EraseTool(), InteractionDown, hoverAtom, empty, ActionErase},
		{"bond press starts bond", BondTool(molecule.Normal(1)), InteractionDown, hoverAtom, empty, ActionBondStart},
		{"bond tap finishes bond", BondTool(molecule.Normal(1)), InteractionTapped, noHover, empty, ActionBondFinish},
		{"bond release finishes bond", BondTool(molecule.Wedge), InteractionReleased, noHover, empty, ActionBondFinish},
		{"rename tap renames", RenameTool(), InteractionTapped, hoverAtom, empty, ActionRename},
		{"rename press pans", RenameTool(), InteractionDown, hoverAtom, empty, ActionStartPan},
		{"atom tap stamps", AtomTool("N"), InteractionTapped, noHover, empty, ActionAtomDraw},
		{"atom press pans", AtomTool("N"), InteractionDown, noHover, empty, ActionStartPan},
		{"idle does nothing", CursorTool(), InteractionNone, noHover, empty, ActionNothing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tool.Action(tt.interaction, tt.hover, tt.selection)
			if got.Kind != tt.want {
				t.Errorf("action = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestToolActionCarriesParameters(t *testing.T) {
	bond := BondTool(molecule.Wedge).Action(InteractionDown, Item{}, NewSelection())
	if bond.BondType != molecule.Wedge {
		t.Errorf("bond action type = %+v, want wedge", bond.BondType)
	}

	stamp := AtomTool("Cl").Action(InteractionTapped, Item{}, NewSelection())
	if stamp.Label != "Cl" {
		t.Errorf("stamp action label = %q, want Cl", stamp.Label)
	}
}
