// Package state holds the drawing surface: committed shapes, the preview
// shape and the gesture state machine that turns pointer input into shapes.
package state

import (
	"sync"

	"GraphicsStudio/internal/geom"
	"GraphicsStudio/internal/logging"
)

// Listener receives surface events. Methods are called without the surface
// lock held, on the goroutine that caused the change.
type Listener interface {
	// ShapeCommitted is called for every shape committed locally.
	ShapeCommitted(s Shape)
	// Cleared is called when the local user clears shapes. An empty owner
	// means every shape.
	Cleared(owner string)
	// SurfaceChanged is called after any change that affects rendering,
	// local or remote.
	SurfaceChanged()
}

// NopListener implements Listener with no-ops. Embed it to handle only some
// events.
type NopListener struct{}

func (NopListener) ShapeCommitted(Shape) {}
func (NopListener) Cleared(string)       {}
func (NopListener) SurfaceChanged()      {}

// Settings are the tool selector values a gesture is drawn with.
type Settings struct {
	Tool  Kind
	Color string // hex, see ParseHex
	Width float32
}

// Surface is the drawing surface state. It is Idle until a drag tool is
// pressed, Drawing until release.
type Surface struct {
	mu       sync.Mutex
	owner    string
	settings Settings
	log      shapeLog
	preview  *Shape
	drawing  bool
	start    geom.Point

	listeners []Listener
}

// NewSurface returns an empty surface whose shapes are owned by owner.
func NewSurface(owner string, s Settings) *Surface {
	return &Surface{owner: owner, settings: s}
}

// Subscribe registers l for surface events.
func (s *Surface) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Unsubscribe removes l. It is a no-op if l was never subscribed.
func (s *Surface) Unsubscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]Listener, 0, len(s.listeners))
	for _, x := range s.listeners {
		if x != l {
			kept = append(kept, x)
		}
	}
	s.listeners = kept
}

// Settings returns the current tool settings.
func (s *Surface) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetTool selects the active tool. Switching tools in the middle of a drag
// cancels the gesture and discards its preview.
func (s *Surface) SetTool(k Kind) {
	s.mu.Lock()
	changed := s.settings.Tool != k && s.drawing
	s.settings.Tool = k
	if changed {
		s.cancelLocked()
	}
	s.mu.Unlock()
	if changed {
		logging.Logger().Debug("gesture cancelled by tool change", "tool", k)
		s.notifyChanged()
	}
}

// SetColor sets the hex colour for subsequent shapes.
func (s *Surface) SetColor(hex string) {
	s.mu.Lock()
	s.settings.Color = hex
	s.mu.Unlock()
}

// SetWidth sets the stroke width for subsequent shapes.
func (s *Surface) SetWidth(w float32) {
	s.mu.Lock()
	s.settings.Width = w
	s.mu.Unlock()
}

// Drawing reports whether a drag gesture is in progress.
func (s *Surface) Drawing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing
}

// PointerDown starts a gesture at p. The point tool commits a shape at once
// and never enters the Drawing state.
func (s *Surface) PointerDown(p geom.Point) {
	s.mu.Lock()
	if !s.settings.Tool.Dragged() {
		shape := s.commitLocked([]geom.Point{p})
		s.mu.Unlock()
		s.notifyCommitted(shape)
		return
	}
	s.drawing = true
	s.start = p
	s.preview = nil
	s.mu.Unlock()
	s.notifyChanged()
}

// PointerMove replaces the preview while Drawing. It does nothing when Idle.
func (s *Surface) PointerMove(p geom.Point) {
	s.mu.Lock()
	if !s.drawing {
		s.mu.Unlock()
		return
	}
	preview := s.shapeLocked([]geom.Point{s.start, p})
	s.preview = &preview
	s.mu.Unlock()
	s.notifyChanged()
}

// PointerUp commits the shape from the gesture start to p and returns to
// Idle. It does nothing when Idle.
func (s *Surface) PointerUp(p geom.Point) {
	s.mu.Lock()
	if !s.drawing {
		s.mu.Unlock()
		return
	}
	shape := s.commitLocked([]geom.Point{s.start, p})
	s.cancelLocked()
	s.mu.Unlock()
	s.notifyCommitted(shape)
}

// Cancel abandons a gesture in progress.
func (s *Surface) Cancel() {
	s.mu.Lock()
	was := s.drawing
	s.cancelLocked()
	s.mu.Unlock()
	if was {
		s.notifyChanged()
	}
}

// Clear removes every committed shape. The preview and gesture state are
// not touched.
func (s *Surface) Clear() {
	s.mu.Lock()
	n := s.log.removeOwner("")
	listeners := s.listeners
	s.mu.Unlock()
	logging.Logger().Info("canvas cleared", "shapes", n)
	for _, l := range listeners {
		l.Cleared("")
		l.SurfaceChanged()
	}
}

// ClearOwner removes the shapes drawn by owner, or all shapes for an empty
// owner, on behalf of another site. Local Cleared listeners are not called.
func (s *Surface) ClearOwner(owner string) {
	s.mu.Lock()
	n := s.log.removeOwner(owner)
	s.mu.Unlock()
	logging.Logger().Debug("remote clear", "owner", owner, "shapes", n)
	s.notifyChanged()
}

// Merge appends a shape committed on another site. It reports false and
// changes nothing if a shape with the same id is already present.
func (s *Surface) Merge(shape Shape) bool {
	if err := shape.Validate(); err != nil {
		logging.Logger().Warn("rejected remote shape", "err", err)
		return false
	}
	s.mu.Lock()
	added := s.log.add(shape)
	s.mu.Unlock()
	if added {
		s.notifyChanged()
	}
	return added
}

// Sync replaces the committed shapes with a snapshot from another site.
// Invalid shapes in the snapshot are dropped.
func (s *Surface) Sync(shapes []Shape) {
	valid := make([]Shape, 0, len(shapes))
	for _, shape := range shapes {
		if err := shape.Validate(); err != nil {
			logging.Logger().Warn("rejected snapshot shape", "err", err)
			continue
		}
		valid = append(valid, shape)
	}
	s.mu.Lock()
	s.log.replace(valid)
	s.mu.Unlock()
	s.notifyChanged()
}

// Load replaces the committed shapes with shapes opened locally. Listeners
// see it as a clear followed by one commit per shape.
func (s *Surface) Load(shapes []Shape) {
	s.mu.Lock()
	s.log.replace(shapes)
	loaded := s.log.snapshot()
	listeners := s.listeners
	s.mu.Unlock()
	for _, l := range listeners {
		l.Cleared("")
		for _, shape := range loaded {
			l.ShapeCommitted(shape)
		}
		l.SurfaceChanged()
	}
}

// Shapes returns the committed shapes in commit order.
func (s *Surface) Shapes() []Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.snapshot()
}

// Preview returns the in-progress shape, if any.
func (s *Surface) Preview() (Shape, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preview == nil {
		return Shape{}, false
	}
	return *s.preview, true
}

// Frame returns the committed shapes and the preview in one consistent read,
// for rendering.
func (s *Surface) Frame() ([]Shape, *Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var preview *Shape
	if s.preview != nil {
		p := *s.preview
		preview = &p
	}
	return s.log.snapshot(), preview
}

func (s *Surface) shapeLocked(anchors []geom.Point) Shape {
	return Shape{
		Owner:   s.owner,
		Kind:    s.settings.Tool,
		Anchors: anchors,
		Color:   ParseHex(s.settings.Color),
		Width:   s.settings.Width,
	}
}

func (s *Surface) commitLocked(anchors []geom.Point) Shape {
	shape := s.shapeLocked(anchors)
	shape.ID = newShapeID()
	s.log.add(shape)
	return shape
}

func (s *Surface) cancelLocked() {
	s.drawing = false
	s.preview = nil
	s.start = geom.Point{}
}

func (s *Surface) notifyCommitted(shape Shape) {
	logging.Logger().Debug("shape committed", "id", shape.ID, "kind", shape.Kind)
	for _, l := range s.subscribers() {
		l.ShapeCommitted(shape)
		l.SurfaceChanged()
	}
}

func (s *Surface) notifyChanged() {
	for _, l := range s.subscribers() {
		l.SurfaceChanged()
	}
}

func (s *Surface) subscribers() []Listener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listeners
}
