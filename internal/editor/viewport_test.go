package editor

import (
	"math"
	"testing"

	"github.com/molsketch/molsketch/internal/geom"
)

func TestProjectIdentityViewport(t *testing.T) {
	v := NewViewport()
	size := geom.Size{Width: 800, Height: 600}

	// the surface center maps to the canvas origin
	center := v.Project(geom.Vec{X: 400, Y: 300}, size)
	if center != (geom.Vec{}) {
		t.Errorf("center projects to %v, want origin", center)
	}

	corner := v.Project(geom.Vec{}, size)
	if corner != (geom.Vec{X: -400, Y: -300}) {
		t.Errorf("corner projects to %v, want (-400, -300)", corner)
	}
}

func TestProjectTracksTranslationAndScale(t *testing.T) {
	v := Viewport{Translation: geom.Vec{X: 10, Y: -20}, Scale: 2}
	size := geom.Size{Width: 800, Height: 600}

	got := v.Project(geom.Vec{X: 400, Y: 300}, size)
	want := geom.Vec{X: 400/2.0 - 10 - 800/4.0, Y: 300/2.0 + 20 - 600/4.0}
	if got != want {
		t.Errorf("Project = %v, want %v", got, want)
	}
}

func TestScrollZoomsInAndOut(t *testing.T) {
	v := NewViewport()

	in := v.Scroll(30, geom.Vec{})
	if in.Scale != 2 {
		t.Errorf("scale after zoom in = %f, want 2", in.Scale)
	}

	out := v.Scroll(-15, geom.Vec{})
	if out.Scale != 0.5 {
		t.Errorf("scale after zoom out = %f, want 0.5", out.Scale)
	}
}

func TestScrollClampsAtLimits(t *testing.T) {
	v := Viewport{Scale: MaxScale}
	if got := v.Scroll(30, geom.Vec{}); got != v {
		t.Errorf("zooming in at max scale changed the viewport: %+v", got)
	}

	v = Viewport{Scale: MinScale}
	if got := v.Scroll(-30, geom.Vec{}); got != v {
		t.Errorf("zooming out at min scale changed the viewport: %+v", got)
	}

	// a large step lands exactly on the limit
	v = Viewport{Scale: 4}
	if got := v.Scroll(300, geom.Vec{}); got.Scale != MaxScale {
		t.Errorf("scale = %f, want clamped to %f", got.Scale, MaxScale)
	}
}

func TestScrollZeroDeltaIsNoop(t *testing.T) {
	v := Viewport{Translation: geom.Vec{X: 5, Y: 5}, Scale: 1.5}
	if got := v.Scroll(0, geom.Vec{X: 100, Y: 100}); got != v {
		t.Errorf("zero scroll changed the viewport: %+v", got)
	}
}

func TestScrollAnchorsCanvasPointUnderCursor(t *testing.T) {
	// zooming toward a point keeps the canvas under the cursor fixed
	v := NewViewport()
	size := geom.Size{Width: 800, Height: 600}
	cursor := geom.Vec{X: 500, Y: 400}
	fromCenter := cursor.Sub(geom.Vec{X: 400, Y: 300})

	before := v.Project(cursor, size)
	zoomed := v.Scroll(30, fromCenter)
	after := zoomed.Project(cursor, size)

	if zoomed.Scale != 2 {
		t.Fatalf("scale = %f, want 2", zoomed.Scale)
	}
	if before != (geom.Vec{X: 100, Y: 100}) {
		t.Fatalf("canvas point before zoom = %v, want (100, 100)", before)
	}
	if after != before {
		t.Errorf("canvas point under cursor moved from %v to %v", before, after)
	}
}

func TestScrollAnchoringHoldsAcrossSteps(t *testing.T) {
	v := Viewport{Translation: geom.Vec{X: 12, Y: -7}, Scale: 1.5}
	size := geom.Size{Width: 640, Height: 480}
	cursor := geom.Vec{X: 100, Y: 420}
	fromCenter := cursor.Sub(geom.Vec{X: 320, Y: 240})

	before := v.Project(cursor, size)
	for _, deltaY := range []float64{18, -9, 42, -30} {
		v = v.Scroll(deltaY, fromCenter)
		after := v.Project(cursor, size)
		if drift := before.Distance(after); math.Abs(drift) > 1e-9 {
			t.Fatalf("after scroll %f the cursor's canvas point drifted by %g", deltaY, drift)
		}
	}
}
