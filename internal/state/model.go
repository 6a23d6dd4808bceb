package state

import (
	"fmt"

	"GraphicsStudio/internal/geom"
)

// Kind is the type of a shape, and also names the tool that draws it.
type Kind uint8

const (
	KindPoint Kind = iota
	KindLine
	KindRectangle
	KindEllipse
)

// Kinds lists every shape kind in toolbar order.
var Kinds = []Kind{KindPoint, KindLine, KindRectangle, KindEllipse}

var kindNames = [...]string{
	KindPoint:     "point",
	KindLine:      "line",
	KindRectangle: "rectangle",
	KindEllipse:   "ellipse",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a tool name such as "rectangle" to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Anchors returns how many anchor points a shape of kind k has.
func (k Kind) Anchors() int {
	if k == KindPoint {
		return 1
	}
	return 2
}

// Dragged reports whether the tool needs a press-drag-release gesture.
func (k Kind) Dragged() bool {
	return k != KindPoint
}

// Hint is the status text shown while a drag is in progress.
func (k Kind) Hint() string {
	if !k.Dragged() {
		return ""
	}
	return "Drag to draw " + k.String()
}

// Shape is one drawing primitive. Committed shapes are never modified.
type Shape struct {
	ID      string       `json:"id"`
	Owner   string       `json:"owner,omitempty"`
	Kind    Kind         `json:"kind"`
	Anchors []geom.Point `json:"anchors"`
	Color   RGB          `json:"color"`
	Width   float32      `json:"width"`
}

// Validate checks the anchor count against the kind.
func (s Shape) Validate() error {
	if int(s.Kind) >= len(kindNames) {
		return fmt.Errorf("shape %s: unknown kind %d", s.ID, uint8(s.Kind))
	}
	if len(s.Anchors) != s.Kind.Anchors() {
		return fmt.Errorf("shape %s: %s needs %d anchors, has %d",
			s.ID, s.Kind, s.Kind.Anchors(), len(s.Anchors))
	}
	return nil
}

// Tessellate converts the shape's anchors into the vertex list the renderer
// draws and the primitive mode to draw it with. Ellipses are sampled with
// the given number of segments.
func (s Shape) Tessellate(segments int) (geom.Mode, []geom.Point) {
	a := s.Anchors
	switch s.Kind {
	case KindPoint:
		return geom.Points, []geom.Point{a[0]}
	case KindLine:
		return geom.Lines, []geom.Point{a[0], a[1]}
	case KindRectangle:
		return geom.LineStrip, geom.RectLoop(a[0], a[1])
	case KindEllipse:
		return geom.LineStrip, geom.EllipseLoop(a[0], a[1], segments)
	}
	return geom.Points, nil
}
