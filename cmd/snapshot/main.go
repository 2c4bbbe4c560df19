// Command snapshot replays a recorded editing session and writes the
// resulting drawing as a PNG. It drives the editor through the same input
// pipeline the interactive frontend uses, so a script is also a regression
// harness for the tool behavior.
//
// Usage:
//
//	snapshot session.json out.png
//
// Canvas size, font and log level come from the environment (MOLSKETCH_*).
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/molsketch/molsketch/internal/config"
	"github.com/molsketch/molsketch/internal/editor"
	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/molecule"
	"github.com/molsketch/molsketch/internal/render"
)

// Step is one recorded input event.
type Step struct {
	Op string `json:"op"` // "tool", "pointer", "key", "scroll", "rename"

	// tool
	Tool  string `json:"tool,omitempty"`
	Kind  string `json:"kind,omitempty"` // bond kind for the bond tool
	Order uint8  `json:"order,omitempty"`
	Label string `json:"label,omitempty"`

	// pointer: kind is "down", "move" or "up"
	Pointer string  `json:"pointer,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`

	// key
	Key string `json:"key,omitempty"`

	// scroll
	Delta float64 `json:"delta,omitempty"`

	// rename
	Text string `json:"text,omitempty"`
}

type Session struct {
	Steps []Step `json:"steps"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s session.json out.png\n", os.Args[0])
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		slog.Error("read session", "error", err)
		os.Exit(1)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		slog.Error("parse session", "error", err)
		os.Exit(1)
	}

	size := geom.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	e := editor.New()

	for i, step := range session.Steps {
		if err := replay(e, step, size); err != nil {
			slog.Error("replay step", "step", i, "op", step.Op, "error", err)
			os.Exit(1)
		}
	}
	slog.Info("session replayed", "steps", len(session.Steps), "molecules", len(e.State().Molecules()))

	scene, err := e.Scene()
	if err != nil {
		slog.Error("compile scene", "error", err)
		os.Exit(1)
	}

	img, err := render.PNG(scene, render.Options{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Viewport: e.Viewport(),
		FontPath: cfg.FontPath,
		FontSize: cfg.FontSize,
	})
	if err != nil {
		slog.Error("render", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(os.Args[2], img, 0o644); err != nil {
		slog.Error("write png", "error", err)
		os.Exit(1)
	}
	slog.Info("snapshot written", "path", os.Args[2], "bytes", len(img))
}

func replay(e *editor.Editor, step Step, size geom.Size) error {
	switch step.Op {
	case "tool":
		tool, err := parseTool(step)
		if err != nil {
			return err
		}
		e.SetTool(tool)
		return nil

	case "pointer":
		var kind editor.PointerEventKind
		switch step.Pointer {
		case "down":
			kind = editor.PointerDown
		case "move":
			kind = editor.PointerMoved
		case "up":
			kind = editor.PointerUp
		default:
			return fmt.Errorf("unknown pointer kind %q", step.Pointer)
		}
		_, err := e.HandlePointer(editor.PointerEvent{
			Kind:     kind,
			Position: geom.Vec{X: step.X, Y: step.Y},
		}, size)
		return err

	case "key":
		var key editor.Key
		switch step.Key {
		case "enter":
			key = editor.KeyEnter
		case "delete":
			key = editor.KeyDelete
		default:
			return fmt.Errorf("unknown key %q", step.Key)
		}
		_, err := e.HandleKey(key, size)
		return err

	case "scroll":
		center := geom.Vec{X: size.Width / 2, Y: size.Height / 2}
		e.HandleScroll(step.Delta, geom.Vec{X: step.X, Y: step.Y}.Sub(center))
		return nil

	case "rename":
		if err := e.UpdateRename(step.Text); err != nil {
			return err
		}
		return e.CommitRename()

	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

func parseTool(step Step) (editor.Tool, error) {
	switch step.Tool {
	case "cursor":
		return editor.CursorTool(), nil
	case "select":
		return editor.SelectTool(), nil
	case "pan":
		return editor.PanTool(), nil
	case "erase":
		return editor.EraseTool(), nil
	case "rename":
		return editor.RenameTool(), nil
	case "atom":
		return editor.AtomTool(step.Label), nil
	case "bond":
		switch step.Kind {
		case "", "normal":
			order := step.Order
			if order == 0 {
				order = 1
			}
			return editor.BondTool(molecule.Normal(order)), nil
		case "wedge":
			return editor.BondTool(molecule.Wedge), nil
		case "dash":
			return editor.BondTool(molecule.Dash), nil
		case "hydrogen":
			return editor.BondTool(molecule.Hydrogen), nil
		default:
			return editor.Tool{}, fmt.Errorf("unknown bond kind %q", step.Kind)
		}
	default:
		return editor.Tool{}, fmt.Errorf("unknown tool %q", step.Tool)
	}
}
