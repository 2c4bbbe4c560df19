package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/molsketch/molsketch/internal/editor"
	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
	"github.com/molsketch/molsketch/internal/molecule"
)

func buildScene(t *testing.T) *editor.Scene {
	t.Helper()
	e := editor.New()

	molID := ident.NewMoleculeID()
	a := ident.NewAtomID()
	if err := e.Apply(editor.AddMoleculeMsg{Molecule: molID, Atom: a, Label: "C", Position: geom.Vec{X: 0, Y: 0}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := e.Apply(editor.FinishBondMsg{
		Molecule: molID,
		Start:    a,
		Atom:     ident.NewAtomID(),
		Position: geom.Vec{X: molecule.BondLength, Y: 0},
		BondType: molecule.Normal(1),
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	scene, err := e.Scene()
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	return scene
}

func TestPNGOutputDecodes(t *testing.T) {
	data, err := PNG(buildScene(t), Options{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("image size = %dx%d, want 200x200", b.Dx(), b.Dy())
	}
}

func TestImageDrawsBondPixels(t *testing.T) {
	img, err := Image(buildScene(t), Options{Width: 200, Height: 200})
	if err != nil {
		t.Fatalf("Image: %v", err)
	}

	// the bond runs from the image center rightward; its stroke must have
	// darkened at least one pixel on that row
	dark := false
	for x := 100; x < 130; x++ {
		cr, cg, cb, _ := img.At(x, 100).RGBA()
		if cr < 0xc000 && cg < 0xc000 && cb < 0xc000 {
			dark = true
			break
		}
	}
	if !dark {
		t.Errorf("no bond pixels rendered along the expected row")
	}
}

func TestImageRejectsInvalidSize(t *testing.T) {
	if _, err := Image(buildScene(t), Options{Width: 0, Height: 10}); err == nil {
		t.Errorf("zero width accepted")
	}
}
