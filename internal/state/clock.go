package state

import "github.com/google/uuid"

// NewSiteID returns a fresh identifier for this running studio. Shapes carry
// it as their owner.
func NewSiteID() string {
	return uuid.NewString()
}

func newShapeID() string {
	return uuid.NewString()
}
