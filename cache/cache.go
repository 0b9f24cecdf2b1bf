// Package cache memoizes (document, question) answers with a bounded LRU
// policy. Within capacity an entry is never invalidated.
package cache

import (
	"container/list"
	"sync"
)

const DefaultCapacity = 1024

type entry struct {
	key    string
	answer string
}

// Cache is a capacity-bounded LRU keyed by exact (document ID, question)
// pairs. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Cache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func (c *Cache) Get(documentID, question string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key(documentID, question)]
	if !ok {
		return "", false
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*entry).answer, true
}

func (c *Cache) Put(documentID, question, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(documentID, question)

	if elem, ok := c.entries[k]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*entry).answer = answer
		return
	}

	c.entries[k] = c.order.PushFront(&entry{key: k, answer: answer})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// Questions can contain anything, so the two key parts are separated by a
// byte that cannot appear in a UUID or in text.
func key(documentID, question string) string {
	return documentID + "\x00" + question
}
