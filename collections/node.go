// File: collections/node.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linked nodes backing Stack and Queue, with a small per-container free list
// so steady push/pop traffic does not allocate. Free lists are only touched
// under the owning container's lock.

package collections

// nodeCacheLimit caps how many detached nodes a container keeps for reuse.
const nodeCacheLimit = 64

// node is a singly linked cell.
type node[T any] struct {
	item T
	next *node[T]
}

type nodeCache[T any] struct {
	free *node[T]
	n    int
}

func (c *nodeCache[T]) get(item T, next *node[T]) *node[T] {
	nd := c.free
	if nd == nil {
		return &node[T]{item: item, next: next}
	}
	c.free = nd.next
	c.n--
	nd.item, nd.next = item, next
	return nd
}

// put recycles nd. The item is zeroed so the cache does not pin garbage.
func (c *nodeCache[T]) put(nd *node[T]) {
	var zero T
	nd.item = zero
	if c.n >= nodeCacheLimit {
		nd.next = nil
		return
	}
	nd.next = c.free
	c.free = nd
	c.n++
}

func (c *nodeCache[T]) reset() {
	c.free, c.n = nil, 0
}

// dnode is a doubly linked cell.
type dnode[T any] struct {
	item       T
	next, prev *dnode[T]
}

type dnodeCache[T any] struct {
	free *dnode[T]
	n    int
}

func (c *dnodeCache[T]) get(item T) *dnode[T] {
	nd := c.free
	if nd == nil {
		return &dnode[T]{item: item}
	}
	c.free = nd.next
	c.n--
	nd.item, nd.next = item, nil
	return nd
}

func (c *dnodeCache[T]) put(nd *dnode[T]) {
	var zero T
	nd.item, nd.prev = zero, nil
	if c.n >= nodeCacheLimit {
		nd.next = nil
		return
	}
	nd.next = c.free
	c.free = nd
	c.n++
}

func (c *dnodeCache[T]) reset() {
	c.free, c.n = nil, 0
}
