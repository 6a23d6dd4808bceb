package render

import "GraphicsStudio/internal/geom"

// Buffer is a vertex buffer of packed x,y float pairs.
type Buffer struct {
	data []float32
}

// NewBuffer returns a buffer holding v.
func NewBuffer(v []geom.Point) *Buffer {
	b := new(Buffer)
	b.Upload(v)
	return b
}

// Upload replaces the buffer contents with v.
func (b *Buffer) Upload(v []geom.Point) {
	b.data = b.data[:0]
	for _, p := range v {
		b.data = append(b.data, p.X, p.Y)
	}
}

// Len returns the number of vertices in the buffer.
func (b *Buffer) Len() int {
	return len(b.data) / 2
}

func (b *Buffer) vertex(i int) geom.Point {
	return geom.Point{X: b.data[2*i], Y: b.data[2*i+1]}
}

func (b *Buffer) release() {
	b.data = nil
}
