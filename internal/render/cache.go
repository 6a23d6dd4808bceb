package render

import (
	"fmt"

	"GraphicsStudio/internal/geom"
)

// cachedShape is the retained geometry of one committed shape.
type cachedShape struct {
	mode   geom.Mode
	buf    *Buffer
	bounds geom.Rect
}

// bufferCache keeps vertex buffers keyed by shape id across frames. Entries
// not touched during a frame are released when the frame ends.
type bufferCache struct {
	res    map[string]cachedShape
	newRes map[string]cachedShape
}

func newBufferCache() *bufferCache {
	return &bufferCache{
		res:    make(map[string]cachedShape),
		newRes: make(map[string]cachedShape),
	}
}

func (c *bufferCache) get(key string) (cachedShape, bool) {
	v, exists := c.res[key]
	if exists {
		c.newRes[key] = v
	}
	return v, exists
}

func (c *bufferCache) put(key string, v cachedShape) {
	if _, exists := c.newRes[key]; exists {
		panic(fmt.Errorf("render: buffer for %q cached twice in one frame", key))
	}
	c.res[key] = v
	c.newRes[key] = v
}

// frame ends a frame, releasing buffers that were not used in it.
func (c *bufferCache) frame() int {
	released := 0
	for k, v := range c.res {
		if _, exists := c.newRes[k]; !exists {
			delete(c.res, k)
			v.buf.release()
			released++
		}
	}
	for k := range c.newRes {
		delete(c.newRes, k)
	}
	return released
}

func (c *bufferCache) len() int {
	return len(c.res)
}
