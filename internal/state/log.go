package state

import (
	"GraphicsStudio/internal/logging"
)

// shapeLog is the ordered list of committed shapes. Each id appears at most
// once, so merging shapes relayed from other sites is idempotent.
type shapeLog struct {
	shapes []Shape
	ids    map[string]struct{}
}

func (l *shapeLog) init() {
	if l.ids == nil {
		l.ids = make(map[string]struct{})
	}
}

// add appends s and reports whether it was new.
func (l *shapeLog) add(s Shape) bool {
	l.init()
	if _, exists := l.ids[s.ID]; exists {
		logging.Logger().Debug("shape already present", "id", s.ID)
		return false
	}
	l.ids[s.ID] = struct{}{}
	l.shapes = append(l.shapes, s)
	return true
}

// removeOwner drops every shape drawn by owner. An empty owner drops all.
func (l *shapeLog) removeOwner(owner string) int {
	if owner == "" {
		n := len(l.shapes)
		l.shapes = nil
		l.ids = nil
		return n
	}
	kept := l.shapes[:0:0]
	for _, s := range l.shapes {
		if s.Owner == owner {
			delete(l.ids, s.ID)
			continue
		}
		kept = append(kept, s)
	}
	n := len(l.shapes) - len(kept)
	l.shapes = kept
	return n
}

// replace resets the log to shapes, dropping duplicate ids.
func (l *shapeLog) replace(shapes []Shape) {
	l.shapes = nil
	l.ids = nil
	for _, s := range shapes {
		l.add(s)
	}
}

func (l *shapeLog) snapshot() []Shape {
	out := make([]Shape, len(l.shapes))
	copy(out, l.shapes)
	return out
}
