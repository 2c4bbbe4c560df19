//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/molsketch/molsketch/internal/editor"
	"github.com/molsketch/molsketch/internal/geom"
	"github.com/molsketch/molsketch/internal/ident"
	"github.com/molsketch/molsketch/internal/molecule"
)

var (
	ed      *editor.Editor
	surface geom.Size
)

func main() {
	ed = editor.New()

	// Create the editor API object
	molsketchEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	molsketchEditor.Set("setSurfaceSize", js.FuncOf(setSurfaceSize))
	molsketchEditor.Set("setTool", js.FuncOf(setTool))
	molsketchEditor.Set("pointerDown", js.FuncOf(pointerDown))
	molsketchEditor.Set("pointerMove", js.FuncOf(pointerMove))
	molsketchEditor.Set("pointerUp", js.FuncOf(pointerUp))
	molsketchEditor.Set("keyDown", js.FuncOf(keyDown))
	molsketchEditor.Set("scroll", js.FuncOf(scroll))
	molsketchEditor.Set("renameBegin", js.FuncOf(renameBegin))
	molsketchEditor.Set("renameUpdate", js.FuncOf(renameUpdate))
	molsketchEditor.Set("renameCommit", js.FuncOf(renameCommit))
	molsketchEditor.Set("renameCancel", js.FuncOf(renameCancel))

	// --- Queries (frontend ← backend) ---
	molsketchEditor.Set("scene", js.FuncOf(scene))
	molsketchEditor.Set("generation", js.FuncOf(generation))
	molsketchEditor.Set("hoverOutline", js.FuncOf(hoverOutline))
	molsketchEditor.Set("viewport", js.FuncOf(viewport))
	molsketchEditor.Set("renaming", js.FuncOf(renaming))

	// Register on global scope
	js.Global().Set("molsketchEditor", molsketchEditor)

	// Signal that WASM is ready
	js.Global().Set("molsketchWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func setSurfaceSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	surface = geom.Size{Width: args[0].Float(), Height: args[1].Float()}
	return nil
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing tool name"})
	}

	switch args[0].String() {
	case "cursor":
		ed.SetTool(editor.CursorTool())
	case "select":
		ed.SetTool(editor.SelectTool())
	case "pan":
		ed.SetTool(editor.PanTool())
	case "erase":
		ed.SetTool(editor.EraseTool())
	case "rename":
		ed.SetTool(editor.RenameTool())
	case "atom":
		label := ""
		if len(args) > 1 {
			label = args[1].String()
		}
		ed.SetTool(editor.AtomTool(label))
	case "bond":
		ed.SetTool(editor.BondTool(parseBondType(args[1:])))
	default:
		return js.ValueOf(map[string]interface{}{"error": "unknown tool"})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

// parseBondType reads ("normal", order) or ("wedge"|"dash"|"hydrogen").
func parseBondType(args []js.Value) molecule.BondType {
	if len(args) == 0 {
		return molecule.Normal(1)
	}
	switch args[0].String() {
	case "wedge":
		return molecule.Wedge
	case "dash":
		return molecule.Dash
	case "hydrogen":
		return molecule.Hydrogen
	default:
		order := uint8(1)
		if len(args) > 1 {
			if n := args[1].Int(); n > 0 && n < 256 {
				order = uint8(n)
			}
		}
		return molecule.Normal(order)
	}
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	return pointer(editor.PointerDown, args)
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	return pointer(editor.PointerMoved, args)
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	return pointer(editor.PointerUp, args)
}

func pointer(kind editor.PointerEventKind, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing coordinates"})
	}

	event := editor.PointerEvent{
		Kind:     kind,
		Position: geom.Vec{X: args[0].Float(), Y: args[1].Float()},
	}
	msgs, err := ed.HandlePointer(event, surface)
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "applied": len(msgs)})
}

func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}

	var key editor.Key
	switch args[0].String() {
	case "Enter":
		key = editor.KeyEnter
	case "Delete", "Backspace":
		key = editor.KeyDelete
	default:
		return nil
	}

	if _, err := ed.HandleKey(key, surface); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func scroll(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	delta := args[0].Float()
	cursor := geom.Vec{X: args[1].Float(), Y: args[2].Float()}
	center := geom.Vec{X: surface.Width / 2, Y: surface.Height / 2}
	ed.HandleScroll(delta, cursor.Sub(center))
	return nil
}

func renameBegin(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing ids"})
	}

	molID := args[0].String()
	atomID := args[1].String()
	if err := ident.Validate(molID, ident.PrefixMolecule); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	if err := ident.Validate(atomID, ident.PrefixAtom); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	initial, err := ed.BeginRename(ident.MoleculeID(molID), ident.AtomID(atomID))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "initial": initial})
}

func renameUpdate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := ed.UpdateRename(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func renameCommit(this js.Value, args []js.Value) interface{} {
	if err := ed.CommitRename(); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func renameCancel(this js.Value, args []js.Value) interface{} {
	ed.CancelRename()
	return nil
}

// --- Query Handlers ---

func scene(this js.Value, args []js.Value) interface{} {
	out, err := ed.SceneJSON()
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(out)
}

func generation(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Generation())
}

func hoverOutline(this js.Value, args []js.Value) interface{} {
	outline, err := ed.HoverOutline(surface)
	if err != nil || outline == nil {
		return js.ValueOf("null")
	}
	data, err := json.Marshal(outline)
	if err != nil {
		return js.ValueOf("null")
	}
	return js.ValueOf(string(data))
}

func viewport(this js.Value, args []js.Value) interface{} {
	v := ed.Viewport()
	return js.ValueOf(map[string]interface{}{
		"x":     v.Translation.X,
		"y":     v.Translation.Y,
		"scale": v.Scale,
	})
}

func renaming(this js.Value, args []js.Value) interface{} {
	session, open := ed.Renaming()
	if !open {
		return js.ValueOf("null")
	}
	data, _ := json.Marshal(map[string]string{
		"molecule": string(session.Molecule),
		"atom":     string(session.Atom),
		"initial":  session.Initial,
	})
	return js.ValueOf(string(data))
}
