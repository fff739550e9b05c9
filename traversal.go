package skipkv

// findPredecessors walks from the header at the current top level down to
// level 0. On each level it moves right while the next key is strictly less
// than key, then records the node it stopped on in preds (when preds is
// non-nil) and drops a level. It returns the level-0 successor of the last
// predecessor: the node holding key, or the insertion point, or nil.
//
// preds must have room for topLevel+1 entries. The caller holds the lock.
func (sl *SkipList[K, V]) findPredecessors(key K, preds []*node[K, V]) *node[K, V] {
	x := sl.head()
	for i := sl.topLevel; i >= 0; i-- {
		for next := x.forward[i]; next != nil && sl.compare(next.key, key) < 0; next = x.forward[i] {
			x = next
		}
		if preds != nil {
			preds[i] = x
		}
	}
	return x.forward[0]
}

// matches reports whether n is a data node holding key.
func (sl *SkipList[K, V]) matches(n *node[K, V], key K) bool {
	return n != nil && sl.compare(n.key, key) == 0
}
