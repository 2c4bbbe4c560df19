package editor

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
	"github.com/molsketch/molsketch/internal/molecule"
)

// Scene is the compiled, render-ready description of the document. The
// presentation layer executes it without knowing anything about molecules:
// bonds are already reduced to strokes and fills, labels to positioned
// tokens. Nodes are in painter's order.
type Scene struct {
	Generation string        `json:"generation"`
	Bonds      []BondNode    `json:"bonds"`
	Atoms      []AtomNode    `json:"atoms"`
	Selection  []OutlineNode `json:"selection"`
}

// Stroke is a single line segment.
type Stroke struct {
	From  geom.Vec `json:"from"`
	To    geom.Vec `json:"to"`
	Width float64  `json:"width"`
}

// Fill is a filled polygon.
type Fill struct {
	Points []geom.Vec `json:"points"`
}

// BondNode is one bond reduced to draw primitives.
type BondNode struct {
	ID       string   `json:"id"`
	Molecule string   `json:"molecule"`
	Strokes  []Stroke `json:"strokes,omitempty"`
	Fills    []Fill   `json:"fills,omitempty"`
}

// TokenNode is one positioned label token.
type TokenNode struct {
	Text     string   `json:"text"`
	Position geom.Vec `json:"position"`
}

// AtomNode is one atom with its placed label tokens.
type AtomNode struct {
	ID        string      `json:"id"`
	Molecule  string      `json:"molecule"`
	Position  geom.Vec    `json:"position"`
	Direction string      `json:"direction"`
	Tokens    []TokenNode `json:"tokens,omitempty"`
}

// OutlineNode is the corner loop of a highlighted item's hit box.
type OutlineNode struct {
	Kind    string      `json:"kind"`
	Corners [4]geom.Vec `json:"corners"`
}

// Scene compiles the document into draw primitives, rebuilding only when
// something changed since the last call.
func (e *Editor) Scene() (*Scene, error) {
	if !e.dirty && e.scene != nil {
		return e.scene, nil
	}

	scene := &Scene{Generation: e.generation.String()}

	// molecule iteration order is undefined; sort ids for a stable scene
	molIDs := make([]string, 0, len(e.state.molecules))
	for id := range e.state.molecules {
		molIDs = append(molIDs, string(id))
	}
	sort.Strings(molIDs)

	for _, rawID := range molIDs {
		m := e.state.molecules[ident.MoleculeID(rawID)]

		bondIDs := make([]string, 0, len(m.Bonds()))
		for id := range m.Bonds() {
			bondIDs = append(bondIDs, string(id))
		}
		sort.Strings(bondIDs)
		for _, bondID := range bondIDs {
			node, err := compileBond(m, ident.BondID(bondID))
			if err != nil {
				return nil, fmt.Errorf("compile scene: %w", err)
			}
			node.Molecule = rawID
			scene.Bonds = append(scene.Bonds, node)
		}

		atomIDs := make([]string, 0, len(m.Atoms()))
		for id := range m.Atoms() {
			atomIDs = append(atomIDs, string(id))
		}
		sort.Strings(atomIDs)
		for _, atomID := range atomIDs {
			node, err := compileAtom(m, ident.AtomID(atomID))
			if err != nil {
				return nil, fmt.Errorf("compile scene: %w", err)
			}
			node.Molecule = rawID
			scene.Atoms = append(scene.Atoms, node)
		}
	}

	outlines, err := e.selectionOutlines()
	if err != nil {
		return nil, fmt.Errorf("compile scene: %w", err)
	}
	scene.Selection = outlines

	e.scene = scene
	e.dirty = false
	return scene, nil
}

// SceneJSON returns the compiled scene as JSON for hosts that cannot share
// Go values.
func (e *Editor) SceneJSON() (string, error) {
	scene, err := e.Scene()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(scene)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (e *Editor) selectionOutlines() ([]OutlineNode, error) {
	var outlines []OutlineNode
	for item := range e.state.selection {
		bounds, err := e.itemBounds(item)
		if err != nil {
			// stale selection entries are skipped, not fatal
			continue
		}
		outlines = append(outlines, OutlineNode{Kind: item.Kind.String(), Corners: bounds.Corners()})
	}
	sort.Slice(outlines, func(i, j int) bool {
		a, b := outlines[i].Corners[0], outlines[j].Corners[0]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	return outlines, nil
}

// HoverOutline hit tests the current cursor position and returns the hit
// box corner loop of whatever is under it.
func (e *Editor) HoverOutline(size geom.Size) (*OutlineNode, error) {
	canvasPos := e.viewport.Project(e.cursor, size)
	hover, err := e.state.HoveredAt(canvasPos)
	if err != nil {
		return nil, fmt.Errorf("hover outline: %w", err)
	}
	if hover.Item.IsNone() {
		return nil, nil
	}
	bounds, err := e.itemBounds(hover.Item)
	if err != nil {
		return nil, fmt.Errorf("hover outline: %w", err)
	}
	return &OutlineNode{Kind: hover.Item.Kind.String(), Corners: bounds.Corners()}, nil
}

func (e *Editor) itemBounds(item Item) (geom.Bounds, error) {
	m, err := e.state.Molecule(item.Molecule)
	if err != nil {
		return geom.Bounds{}, err
	}
	switch item.Kind {
	case ItemMolecule:
		return m.Bounds(), nil
	case ItemAtom:
		return m.AtomBounds(item.Atom)
	case ItemBond:
		return m.BondBounds(item.Bond)
	}
	return geom.Bounds{}, fmt.Errorf("item bounds: no item")
}

func compileAtom(m *molecule.Molecule, id ident.AtomID) (AtomNode, error) {
	atom, err := m.Atom(id)
	if err != nil {
		return AtomNode{}, err
	}
	pos := atom.Position().Add(m.Position())

	node := AtomNode{ID: string(id), Position: pos, Direction: atom.LabelDirection().String()}
	for _, placed := range atom.LabelPlacements() {
		node.Tokens = append(node.Tokens, TokenNode{
			Text:     placed.Text,
			Position: pos.Add(placed.Offset),
		})
	}
	return node, nil
}

func compileBond(m *molecule.Molecule, id ident.BondID) (BondNode, error) {
	bond, err := m.Bond(id)
	if err != nil {
		return BondNode{}, err
	}

	start, end, err := bond.Line(m.Atoms())
	if err != nil {
		return BondNode{}, err
	}
	start = start.Add(m.Position())
	end = end.Add(m.Position())

	node := BondNode{ID: string(id)}

	direction := end.Sub(start)
	length := direction.Length()
	if length == 0 {
		return node, nil
	}
	unit := direction.Mul(1 / length)
	normal := geom.Vec{X: unit.Y, Y: -unit.X}

	switch bond.Type().Kind {
	case molecule.BondNormal:
		for _, offset := range strokeOffsets(bond.Type().Order) {
			shift := normal.Mul(offset * molecule.BondGap / 2)
			node.Strokes = append(node.Strokes, Stroke{
				From:  start.Add(shift),
				To:    end.Add(shift),
				Width: molecule.BondWidth,
			})
		}

	case molecule.BondWedge:
		halfStart := normal.Mul(molecule.WedgeStartWidth / 2)
		halfEnd := normal.Mul(molecule.WedgeEndWidth / 2)
		node.Fills = append(node.Fills, Fill{Points: []geom.Vec{
			start.Add(halfStart),
			end.Add(halfEnd),
			end.Sub(halfEnd),
			start.Sub(halfStart),
		}})

	case molecule.BondDash:
		steps := int(length / molecule.DashSpacing)
		for i := 0; i <= steps; i++ {
			t := float64(i) * molecule.DashSpacing / length
			if t > 1 {
				t = 1
			}
			width := molecule.DashStartWidth + t*(molecule.DashEndWidth-molecule.DashStartWidth)
			at := start.Add(unit.Mul(t * length))
			half := normal.Mul(width / 2)
			node.Strokes = append(node.Strokes, Stroke{
				From:  at.Add(half),
				To:    at.Sub(half),
				Width: molecule.BondWidth,
			})
		}

	case molecule.BondHydrogen:
		steps := int(length / molecule.HydrogenSpacing)
		half := normal.Mul(molecule.HydrogenWidth / 2)
		for i := 0; i <= steps; i++ {
			t := float64(i) * molecule.HydrogenSpacing / length
			if t > 1 {
				t = 1
			}
			at := start.Add(unit.Mul(t * length))
			node.Strokes = append(node.Strokes, Stroke{
				From:  at.Add(half),
				To:    at.Sub(half),
				Width: molecule.BondWidth,
			})
		}
	}

	return node, nil
}

// strokeOffsets spreads the parallel strokes of an order-n bond around its
// axis: odd orders center one stroke, even orders straddle the axis.
func strokeOffsets(order uint8) []float64 {
	n := int(order)
	if n < 1 {
		n = 1
	}
	offsets := make([]float64, 0, n)
	if n%2 == 1 {
		offsets = append(offsets, 0)
		for k := 2; len(offsets) < n; k += 2 {
			offsets = append(offsets, float64(k), -float64(k))
		}
	} else {
		for k := 1; len(offsets) < n; k += 2 {
			offsets = append(offsets, float64(k), -float64(k))
		}
	}
	return offsets[:n]
}
