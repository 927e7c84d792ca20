package cache

import (
	"container/list"
	"sync"
)

// PreviewCache is a bounded LRU of rendered note previews keyed by the
// source text and render width.
type PreviewCache struct {
	mu        sync.Mutex
	size      int
	evictList *list.List
	items     map[previewKey]*list.Element
}

type previewKey struct {
	source string
	width  int
}

type entry struct {
	key   previewKey
	value string
}

func NewPreviewCache(size int) *PreviewCache {
	if size < 1 {
		size = 1
	}
	return &PreviewCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[previewKey]*list.Element),
	}
}

func (c *PreviewCache) Get(source string, width int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, hit := c.items[previewKey{source, width}]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry).value, true
	}
	return "", false
}

func (c *PreviewCache) Put(source string, width int, rendered string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := previewKey{source, width}
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*entry).value = rendered
		return
	}

	ele := c.evictList.PushFront(&entry{key, rendered})
	c.items[key] = ele

	if c.evictList.Len() > c.size {
		c.removeOldest()
	}
}

// Render returns the cached preview or computes, stores and returns it.
// Failed renders are not cached.
func (c *PreviewCache) Render(source string, width int, render func(string, int) (string, error)) (string, error) {
	if out, ok := c.Get(source, width); ok {
		return out, nil
	}
	out, err := render(source, width)
	if err != nil {
		return "", err
	}
	c.Put(source, width, out)
	return out, nil
}

func (c *PreviewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

func (c *PreviewCache) removeOldest() {
	ele := c.evictList.Back()
	if ele != nil {
		c.removeElement(ele)
	}
}

func (c *PreviewCache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)
}
