package stream

import (
	"container/list"
	"sync"

	"github.com/yyyoichi/playuver/frame"
)

const defaultCacheSize = 8

// frameCache keeps the most recently decoded frames.
type frameCache struct {
	mu    sync.Mutex
	size  int
	order *list.List // front is most recent
	data  map[int]*list.Element
}

type cacheEntry struct {
	index int
	frame *frame.Frame
}

func newFrameCache(size int) *frameCache {
	return &frameCache{
		size:  size,
		order: list.New(),
		data:  make(map[int]*list.Element),
	}
}

func (c *frameCache) get(index int) (*frame.Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.data[index]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(e)
	return e.Value.(*cacheEntry).frame, true
}

func (c *frameCache) add(index int, f *frame.Frame) {
	if c.size == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.data[index]; ok {
		e.Value.(*cacheEntry).frame = f
		c.order.MoveToFront(e)
		return
	}
	c.data[index] = c.order.PushFront(&cacheEntry{index: index, frame: f})
	for c.order.Len() > c.size {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.data, last.Value.(*cacheEntry).index)
	}
}

// dropFrom forgets every frame at or after index.
func (c *frameCache) dropFrom(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.data {
		if i >= index {
			c.order.Remove(e)
			delete(c.data, i)
		}
	}
}

func (c *frameCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
