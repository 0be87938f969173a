package cache

// handle addresses a node in the arena.
type handle int

const (
	headSentinel handle = 0
	tailSentinel handle = 1
)

type node[K comparable, V any] struct {
	key   K
	value V
	prev  handle
	next  handle
}

// recencyList orders resident entries from most recently used (after the head
// sentinel) to least recently used (before the tail sentinel).
// Nodes live in a slice and link to each other by index, so a removed node
// can never be reached through a stale pointer.
type recencyList[K comparable, V any] struct {
	nodes []node[K, V]
	free  []handle
	size  int
}

func newRecencyList[K comparable, V any](sizeHint int) *recencyList[K, V] {
	l := &recencyList[K, V]{
		nodes: make([]node[K, V], 2, sizeHint+2),
	}
	l.nodes[headSentinel].next = tailSentinel
	l.nodes[tailSentinel].prev = headSentinel
	return l
}

func (l *recencyList[K, V]) at(h handle) *node[K, V] {
	return &l.nodes[h]
}

func (l *recencyList[K, V]) len() int {
	return l.size
}

// pushFront stores key/value in a fresh or recycled slot and links it first.
func (l *recencyList[K, V]) pushFront(key K, value V) handle {
	var h handle
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[h].key = key
		l.nodes[h].value = value
	} else {
		h = handle(len(l.nodes))
		l.nodes = append(l.nodes, node[K, V]{key: key, value: value})
	}

	l.linkFront(h)
	l.size++
	return h
}

func (l *recencyList[K, V]) moveToFront(h handle) {
	if l.nodes[headSentinel].next == h {
		return
	}
	l.unlink(h)
	l.linkFront(h)
}

// removeBack unlinks the least recently used node. The caller owns the
// returned handle until it hands it to release.
func (l *recencyList[K, V]) removeBack() (handle, bool) {
	h := l.nodes[tailSentinel].prev
	if h == headSentinel {
		return 0, false
	}
	l.unlink(h)
	l.size--
	return h, true
}

// release drops the key/value references of an unlinked node and recycles its slot.
func (l *recencyList[K, V]) release(h handle) {
	l.nodes[h] = node[K, V]{}
	l.free = append(l.free, h)
}

func (l *recencyList[K, V]) keys() []K {
	out := make([]K, 0, l.size)
	for h := l.nodes[headSentinel].next; h != tailSentinel; h = l.nodes[h].next {
		out = append(out, l.nodes[h].key)
	}
	return out
}

func (l *recencyList[K, V]) linkFront(h handle) {
	first := l.nodes[headSentinel].next
	l.nodes[h].prev = headSentinel
	l.nodes[h].next = first
	l.nodes[first].prev = h
	l.nodes[headSentinel].next = h
}

func (l *recencyList[K, V]) unlink(h handle) {
	n := &l.nodes[h]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	n.prev, n.next = headSentinel, headSentinel
}
