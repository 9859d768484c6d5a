// Package render defines the layered drawing description produced by game
// engines. The description is geometry and text only; turning it into a
// visual artifact is owned by an external drawing adapter.
package render

import "sort"

// Kind identifies a primitive shape.
type Kind string

const (
	KindLine   Kind = "line"
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
)

// Scene is a complete board drawing in abstract units.
type Scene struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Layers []Layer `json:"layers"`
}

// Layer groups primitives drawn at the same depth. Higher Z draws on top.
type Layer struct {
	Name   string  `json:"name"`
	Z      int     `json:"z"`
	Shapes []Shape `json:"shapes,omitempty"`
	Texts  []Text  `json:"texts,omitempty"`
}

// Shape is a single drawing primitive. Lines use X,Y → X2,Y2; rects use
// X,Y,W,H; circles use X,Y as center and R as radius.
type Shape struct {
	Kind Kind `json:"kind"`
	X    int  `json:"x"`
	Y    int  `json:"y"`
	X2   int  `json:"x2,omitempty"`
	Y2   int  `json:"y2,omitempty"`
	W    int  `json:"w,omitempty"`
	H    int  `json:"h,omitempty"`
	R    int  `json:"r,omitempty"`
}

// Text is a positioned text label.
type Text struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Size  int    `json:"size"`
	Value string `json:"value"`
}

// Line builds a line shape between two points.
func Line(x, y, x2, y2 int) Shape {
	return Shape{Kind: KindLine, X: x, Y: y, X2: x2, Y2: y2}
}

// Rect builds a rectangle shape anchored at its top-left corner.
func Rect(x, y, w, h int) Shape {
	return Shape{Kind: KindRect, X: x, Y: y, W: w, H: h}
}

// Circle builds a circle shape centered at x,y.
func Circle(x, y, r int) Shape {
	return Shape{Kind: KindCircle, X: x, Y: y, R: r}
}

// Label builds a text label.
func Label(x, y, size int, value string) Text {
	return Text{X: x, Y: y, Size: size, Value: value}
}

// SortLayers orders layers by ascending Z so consumers can paint in slice
// order. Sorting is stable so same-Z layers keep their declared order.
func (s *Scene) SortLayers() {
	sort.SliceStable(s.Layers, func(i, j int) bool {
		return s.Layers[i].Z < s.Layers[j].Z
	})
}
