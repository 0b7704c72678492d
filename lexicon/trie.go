package lexicon

import "sort"

// Trie is an exact-match prefix tree from byte-string keys to values.
// Keys may contain arbitrary bytes, including NUL; the empty key is
// not storable.
type Trie[V any] struct {
	root *trieNode[V]
	size int
}

type trieNode[V any] struct {
	value    V
	hasValue bool
	children map[byte]*trieNode[V]
}

func NewTrie[V any]() *Trie[V] {
	return &Trie[V]{root: newTrieNode[V]()}
}

func newTrieNode[V any]() *trieNode[V] {
	return &trieNode[V]{children: map[byte]*trieNode[V]{}}
}

// Get returns the value stored at key, if any.
func (t *Trie[V]) Get(key string) (value V, exists bool) {
	node := t.root
	for i := 0; i < len(key); i++ {
		next, ok := node.children[key[i]]
		if !ok {
			var zero V
			return zero, false
		}
		node = next
	}
	if node == t.root || !node.hasValue {
		var zero V
		return zero, false
	}
	return node.value, true
}

// Put stores value at key, replacing any previous value.
func (t *Trie[V]) Put(key string, value V) {
	if len(key) == 0 {
		return
	}
	node := t.root
	for i := 0; i < len(key); i++ {
		next, ok := node.children[key[i]]
		if !ok {
			next = newTrieNode[V]()
			node.children[key[i]] = next
		}
		node = next
	}
	if !node.hasValue {
		t.size++
	}
	node.value = value
	node.hasValue = true
}

// Delete removes the entry at key and prunes any nodes left without
// entries or children. It reports whether an entry was removed.
func (t *Trie[V]) Delete(key string) bool {
	if len(key) == 0 {
		return false
	}
	path := make([]*trieNode[V], 0, len(key)+1)
	node := t.root
	path = append(path, node)
	for i := 0; i < len(key); i++ {
		next, ok := node.children[key[i]]
		if !ok {
			return false
		}
		node = next
		path = append(path, node)
	}
	if !node.hasValue {
		return false
	}
	var zero V
	node.value = zero
	node.hasValue = false
	t.size--
	for i := len(path) - 1; i > 0; i-- {
		n := path[i]
		if n.hasValue || len(n.children) > 0 {
			break
		}
		delete(path[i-1].children, key[i-1])
	}
	return true
}

// Len returns the number of entries stored.
func (t *Trie[V]) Len() int {
	return t.size
}

// Walk visits every entry in lexicographic key order.
func (t *Trie[V]) Walk(fn func(key string, value V)) {
	buf := make([]byte, 0, 16)
	t.walk(t.root, buf, fn)
}

func (t *Trie[V]) walk(node *trieNode[V], key []byte, fn func(string, V)) {
	if node.hasValue {
		fn(string(key), node.value)
	}
	if len(node.children) == 0 {
		return
	}
	bytes := make([]byte, 0, len(node.children))
	for b := range node.children {
		bytes = append(bytes, b)
	}
	sort.Slice(bytes, func(i, j int) bool { return bytes[i] < bytes[j] })
	for _, b := range bytes {
		t.walk(node.children[b], append(key, b), fn)
	}
}

// Cursor points at a position inside the trie, for incremental
// longest-match walks. The zero Cursor is invalid; start from Root.
type Cursor[V any] struct {
	node *trieNode[V]
}

// Root returns a cursor at the top of the trie.
func (t *Trie[V]) Root() Cursor[V] {
	return Cursor[V]{node: t.root}
}

// Step advances the cursor by one key byte. It reports whether the
// resulting position exists.
func (c Cursor[V]) Step(b byte) (Cursor[V], bool) {
	if c.node == nil {
		return Cursor[V]{}, false
	}
	next, ok := c.node.children[b]
	if !ok {
		return Cursor[V]{}, false
	}
	return Cursor[V]{node: next}, true
}

// Value returns the entry stored at the cursor's position, if any.
func (c Cursor[V]) Value() (value V, exists bool) {
	if c.node == nil || !c.node.hasValue {
		var zero V
		return zero, false
	}
	return c.node.value, true
}

// HasChildren reports whether any longer key passes through the
// cursor's position.
func (c Cursor[V]) HasChildren() bool {
	return c.node != nil && len(c.node.children) > 0
}
