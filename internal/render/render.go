// Package render rasterizes a compiled scene to an image. It is the
// reference consumer of the editor's scene output: everything it needs is
// in the scene nodes, so it knows nothing about molecules.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/fogleman/gg"

	"github.com/molsketch/molsketch/internal/editor"
	"github.com/molsketch/molsketch/internal/geom"
)

// Options configures a raster pass.
type Options struct {
	Width  int
	Height int

	// Viewport maps canvas coordinates onto the image, exactly as the
	// interactive presentation would.
	Viewport editor.Viewport

	// FontPath points at a TTF for label text; empty falls back to the
	// built-in bitmap face.
	FontPath string
	FontSize float64
}

type rasterizer struct {
	dc   *gg.Context
	view editor.Viewport
	size geom.Size
}

// Image draws a scene and returns the raster.
func Image(scene *editor.Scene, opts Options) (image.Image, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("render: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Viewport.Scale == 0 {
		opts.Viewport = editor.NewViewport()
	}
	if opts.FontSize == 0 {
		opts.FontSize = 12
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if opts.FontPath != "" {
		if err := dc.LoadFontFace(opts.FontPath, opts.FontSize*opts.Viewport.Scale); err != nil {
			return nil, fmt.Errorf("render: load font: %w", err)
		}
	}

	r := &rasterizer{
		dc:   dc,
		view: opts.Viewport,
		size: geom.Size{Width: float64(opts.Width), Height: float64(opts.Height)},
	}

	r.drawSelection(scene.Selection)
	r.drawBonds(scene.Bonds)
	r.drawAtoms(scene.Atoms)

	return dc.Image(), nil
}

// PNG draws a scene and encodes it.
func PNG(scene *editor.Scene, opts Options) ([]byte, error) {
	img, err := Image(scene, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// point maps a canvas-space position to image pixels, inverting the
// viewport projection.
func (r *rasterizer) point(v geom.Vec) (float64, float64) {
	region := r.view.Region(r.size)
	return (v.X - region.X) * r.view.Scale, (v.Y - region.Y) * r.view.Scale
}

func (r *rasterizer) drawBonds(bonds []editor.BondNode) {
	r.dc.SetRGB(0, 0, 0)

	for _, bond := range bonds {
		for _, stroke := range bond.Strokes {
			x1, y1 := r.point(stroke.From)
			x2, y2 := r.point(stroke.To)
			r.dc.SetLineWidth(stroke.Width * r.view.Scale)
			r.dc.DrawLine(x1, y1, x2, y2)
			r.dc.Stroke()
		}

		for _, fill := range bond.Fills {
			if len(fill.Points) == 0 {
				continue
			}
			x, y := r.point(fill.Points[0])
			r.dc.MoveTo(x, y)
			for _, p := range fill.Points[1:] {
				x, y = r.point(p)
				r.dc.LineTo(x, y)
			}
			r.dc.ClosePath()
			r.dc.Fill()
		}
	}
}

func (r *rasterizer) drawAtoms(atoms []editor.AtomNode) {
	r.dc.SetRGB(0, 0, 0)
	for _, atom := range atoms {
		for _, tok := range atom.Tokens {
			x, y := r.point(tok.Position)
			r.dc.DrawStringAnchored(tok.Text, x, y, 0.5, 0.35)
		}
	}
}

func (r *rasterizer) drawSelection(outlines []editor.OutlineNode) {
	r.dc.SetRGBA(0.3, 0.5, 0.9, 0.35)
	for _, outline := range outlines {
		x, y := r.point(outline.Corners[0])
		r.dc.MoveTo(x, y)
		for _, corner := range outline.Corners[1:] {
			x, y = r.point(corner)
			r.dc.LineTo(x, y)
		}
		r.dc.ClosePath()
		r.dc.Fill()
	}
}
