//go:build js && wasm

// Command editorcore-wasm compiles the caret/selection core to
// WebAssembly and exposes it to the host page as a handful of global
// functions, the same bridge shape as the teacher's astro-wasm entrypoint:
// one js.FuncOf per operation, struct results marshaled with vert.
package main

import (
	"syscall/js"

	"github.com/norunners/vert"

	"github.com/inkline/editorcore/internal/core"
	"github.com/inkline/editorcore/internal/domnode"
	"github.com/inkline/editorcore/internal/domnode/jsdom"
	"github.com/inkline/editorcore/internal/movement"
	"github.com/inkline/editorcore/internal/position"
	"github.com/inkline/editorcore/internal/selection"
)

var handles = map[int]*core.Handle{}
var nextHandle = 1

func main() {
	js.Global().Set("__editorcore_attach", js.FuncOf(Attach))
	js.Global().Set("__editorcore_detach", js.FuncOf(Detach))
	js.Global().Set("__editorcore_getSelection", js.FuncOf(GetSelection))
	js.Global().Set("__editorcore_setSelection", js.FuncOf(SetSelection))
	js.Global().Set("__editorcore_collapse", js.FuncOf(Collapse))
	js.Global().Set("__editorcore_extend", js.FuncOf(Extend))
	js.Global().Set("__editorcore_modify", js.FuncOf(Modify))
	js.Global().Set("__editorcore_contains", js.FuncOf(Contains))
	js.Global().Set("__editorcore_getText", js.FuncOf(GetText))
	js.Global().Set("__editorcore_positionFromPoint", js.FuncOf(PositionFromPoint))
	js.Global().Set("__editorcore_rectsForPosition", js.FuncOf(RectsForPosition))
	js.Global().Set("__editorcore_rectsForSelection", js.FuncOf(RectsForSelection))
	<-make(chan bool)
}

// PositionRef is the wire shape for a position.Position: the leaf is the
// underlying DOM node passed back and forth as an opaque js.Value.
type PositionRef struct {
	Leaf   js.Value `js:"leaf"`
	Offset int      `js:"offset"`
}

type RectJS struct {
	Top    float64 `js:"top"`
	Left   float64 `js:"left"`
	Bottom float64 `js:"bottom"`
	Right  float64 `js:"right"`
}

type SelectionJS struct {
	Anchor      PositionRef `js:"anchor"`
	Focus       PositionRef `js:"focus"`
	IsCollapsed bool        `js:"isCollapsed"`
	Direction   int         `js:"direction"`
}

func toRectJS(r domnode.Rect) RectJS {
	return RectJS{Top: r.Top, Left: r.Left, Bottom: r.Bottom, Right: r.Right}
}

func toPositionRef(p position.Position) PositionRef {
	var leaf js.Value = js.Null()
	if n, ok := p.Leaf.(*jsdom.Node); ok {
		leaf = n.Raw()
	}
	return PositionRef{Leaf: leaf, Offset: p.Offset}
}

func fromPositionArg(v js.Value) position.Position {
	leaf := jsdom.Wrap(v.Get("leaf"))
	offset := v.Get("offset").Int()
	if leaf == nil {
		return position.Position{}
	}
	return position.Position{Leaf: leaf, Offset: offset}
}

func handleOf(args []js.Value) (*core.Handle, bool) {
	id := args[0].Int()
	h, ok := handles[id]
	return h, ok
}

func Attach(this js.Value, args []js.Value) interface{} {
	rootVal := args[0]
	docVal := args[1]
	root := jsdom.Wrap(rootVal)
	host := jsdom.NewHost(docVal)
	h := core.Attach(host, root)

	id := nextHandle
	nextHandle++
	handles[id] = h
	return id
}

func Detach(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return nil
	}
	h.Detach()
	delete(handles, args[0].Int())
	return nil
}

func GetSelection(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return js.Null()
	}
	s := h.GetSelection()
	return vert.ValueOf(SelectionJS{
		Anchor:      toPositionRef(s.Anchor),
		Focus:       toPositionRef(s.Focus),
		IsCollapsed: s.IsCollapsed,
		Direction:   s.Direction,
	})
}

func SetSelection(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return nil
	}
	anchor := fromPositionArg(args[1])
	if len(args) > 2 && !args[2].IsUndefined() && !args[2].IsNull() {
		focus := fromPositionArg(args[2])
		h.SetSelection(anchor, &focus)
	} else {
		h.SetSelection(anchor, nil)
	}
	return nil
}

func Collapse(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return nil
	}
	h.Collapse(fromPositionArg(args[1]))
	return nil
}

func Extend(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return nil
	}
	h.Extend(fromPositionArg(args[1]))
	return nil
}

func Modify(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return nil
	}
	typ := selection.Move
	if args[1].String() == "extend" {
		typ = selection.Extend
	}
	dir := movement.Forward
	if args[2].String() == "backward" {
		dir = movement.Backward
	}
	var unit movement.Unit
	switch args[3].String() {
	case "line":
		unit = movement.Line
	case "lineboundary":
		unit = movement.LineBoundary
	case "documentboundary":
		unit = movement.DocumentBoundary
	default:
		unit = movement.Character
	}
	h.Modify(typ, dir, unit)
	return nil
}

func Contains(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return false
	}
	return h.Contains(fromPositionArg(args[1]))
}

func GetText(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return ""
	}
	return h.GetText()
}

func PositionFromPoint(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return js.Null()
	}
	x := args[1].Float()
	y := args[2].Float()
	p, ok := h.PositionFromPoint(x, y)
	if !ok {
		return js.Null()
	}
	return vert.ValueOf(toPositionRef(p))
}

func RectsForPosition(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return js.Global().Get("Array").New()
	}
	p := fromPositionArg(args[1])
	return rectsToJS(h.RectsForPosition(p))
}

func RectsForSelection(this js.Value, args []js.Value) interface{} {
	h, ok := handleOf(args)
	if !ok {
		return js.Global().Get("Array").New()
	}
	return rectsToJS(h.RectsForSelection())
}

func rectsToJS(rects []domnode.Rect) js.Value {
	arr := js.Global().Get("Array").New(len(rects))
	for i, r := range rects {
		arr.SetIndex(i, vert.ValueOf(toRectJS(r)).Value)
	}
	return arr
}
