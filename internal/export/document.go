// Package export writes drawings out as PNG, PDF and JSON documents, and
// reads JSON documents back.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"GraphicsStudio/internal/state"
)

// DocumentVersion is the format version written by Save.
const DocumentVersion = 1

// ErrBadDocument is returned for documents that parse but cannot be loaded.
var ErrBadDocument = errors.New("export: bad document")

// Document is the saved form of a drawing.
type Document struct {
	Version int           `json:"version"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Shapes  []state.Shape `json:"shapes"`
}

// Save writes doc as indented JSON.
func Save(w io.Writer, doc Document) error {
	doc.Version = DocumentVersion
	if doc.Shapes == nil {
		doc.Shapes = []state.Shape{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	return nil
}

// Load reads a document written by Save and checks every shape.
func Load(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("load drawing: %w", err)
	}
	if doc.Version != DocumentVersion {
		return Document{}, fmt.Errorf("%w: version %d", ErrBadDocument, doc.Version)
	}
	for i, s := range doc.Shapes {
		if err := s.Validate(); err != nil {
			return Document{}, fmt.Errorf("%w: shape %d: %v", ErrBadDocument, i, err)
		}
		if s.ID == "" {
			return Document{}, fmt.Errorf("%w: shape %d has no id", ErrBadDocument, i)
		}
	}
	return doc, nil
}
