package skipkv

// Iterator provides a forward-only view over the list in key order.
//
// Each step takes the read lock and finds its place again by key, so an
// iterator stays valid across concurrent inserts and deletes: it yields the
// next key greater than the last one it returned.
type Iterator[K any, V any] struct {
	sl      *SkipList[K, V]
	key     K
	value   V
	valid   bool
	started bool
	done    bool
}

// Iterator returns a new iterator positioned before the first element.
func (sl *SkipList[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{sl: sl}
}

// Valid reports whether the iterator currently points at an element.
func (it *Iterator[K, V]) Valid() bool {
	if it == nil {
		return false
	}
	return it.valid
}

// Key returns the key at the iterator's current position.
// It should only be called when Valid reports true.
func (it *Iterator[K, V]) Key() K {
	var zero K
	if it == nil || !it.valid {
		return zero
	}
	return it.key
}

// Value returns the value at the iterator's current position.
// It should only be called when Valid reports true.
func (it *Iterator[K, V]) Value() V {
	var zero V
	if it == nil || !it.valid {
		return zero
	}
	return it.value
}

// Next advances the iterator to the next element and reports whether it
// successfully moved forward. If the iterator was not started it advances to
// the first element. Once exhausted it stays exhausted.
func (it *Iterator[K, V]) Next() bool {
	if it == nil || it.sl == nil || it.done {
		return false
	}

	sl := it.sl
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	var next *node[K, V]
	if !it.started {
		next = sl.head().forward[0]
		it.started = true
	} else {
		next = sl.findPredecessors(it.key, nil)
		if sl.matches(next, it.key) {
			next = next.forward[0]
		}
	}

	if next == nil {
		it.invalidate()
		it.done = true
		return false
	}

	it.key = next.key
	it.value = next.value
	it.valid = true
	return true
}

func (it *Iterator[K, V]) invalidate() {
	if it == nil {
		return
	}
	it.valid = false
	var zeroK K
	var zeroV V
	it.key = zeroK
	it.value = zeroV
}

// Range calls fn for each key/value pair in key order until fn returns false.
// The read lock is held throughout, so fn must not modify the list.
func (sl *SkipList[K, V]) Range(fn func(key K, value V) bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	for n := sl.head().forward[0]; n != nil; n = n.forward[0] {
		if !fn(n.key, n.value) {
			return
		}
	}
}
