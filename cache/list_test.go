package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkLinks walks the list both ways and verifies prev/next agree.
func checkLinks[K comparable, V any](t *testing.T, l *recencyList[K, V]) {
	t.Helper()

	forward := 0
	for h := l.nodes[headSentinel].next; h != tailSentinel; h = l.nodes[h].next {
		require.Equal(t, h, l.nodes[l.nodes[h].next].prev, "broken back link at %d", h)
		forward++
		require.LessOrEqual(t, forward, len(l.nodes), "cycle in forward links")
	}

	backward := 0
	for h := l.nodes[tailSentinel].prev; h != headSentinel; h = l.nodes[h].prev {
		backward++
		require.LessOrEqual(t, backward, len(l.nodes), "cycle in backward links")
	}

	assert.Equal(t, l.len(), forward)
	assert.Equal(t, l.len(), backward)
}

func TestRecencyListEmpty(t *testing.T) {
	l := newRecencyList[string, int](0)

	_, ok := l.removeBack()
	assert.False(t, ok)
	assert.Empty(t, l.keys())
	checkLinks(t, l)
}

func TestRecencyListPushAndMove(t *testing.T) {
	l := newRecencyList[string, int](4)

	a := l.pushFront("a", 1)
	b := l.pushFront("b", 2)
	c := l.pushFront("c", 3)
	assert.Equal(t, []string{"c", "b", "a"}, l.keys())

	l.moveToFront(a)
	assert.Equal(t, []string{"a", "c", "b"}, l.keys())

	// already first
	l.moveToFront(a)
	assert.Equal(t, []string{"a", "c", "b"}, l.keys())

	l.moveToFront(c)
	assert.Equal(t, []string{"c", "a", "b"}, l.keys())
	assert.Equal(t, 2, l.at(b).value)
	checkLinks(t, l)
}

func TestRecencyListRemoveBackAndRelease(t *testing.T) {
	l := newRecencyList[string, int](2)

	a := l.pushFront("a", 1)
	l.pushFront("b", 2)

	h, ok := l.removeBack()
	require.True(t, ok)
	assert.Equal(t, a, h)
	assert.Equal(t, "a", l.at(h).key)
	assert.Equal(t, 1, l.len())

	l.release(h)
	assert.Equal(t, "", l.at(h).key)
	assert.Equal(t, 0, l.at(h).value)

	// the freed slot is reused
	c := l.pushFront("c", 3)
	assert.Equal(t, a, c)
	assert.Equal(t, []string{"c", "b"}, l.keys())
	checkLinks(t, l)
}

func TestRecencyListDrain(t *testing.T) {
	l := newRecencyList[int, int](0)
	for i := 0; i < 10; i++ {
		l.pushFront(i, i*i)
	}

	for want := 0; want < 10; want++ {
		h, ok := l.removeBack()
		require.True(t, ok)
		assert.Equal(t, want, l.at(h).key)
		l.release(h)
		checkLinks(t, l)
	}

	_, ok := l.removeBack()
	assert.False(t, ok)
	assert.Len(t, l.nodes, 12)
}
