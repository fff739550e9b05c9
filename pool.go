package skipkv

func (sl *SkipList[K, V]) acquireNode(key K, val V, level int) *node[K, V] {
	n := sl.nodePool.Get().(*node[K, V])

	height := level + 1
	if cap(n.forward) < height {
		n.forward = make([]*node[K, V], height)
	} else {
		n.forward = n.forward[:height]
		clear(n.forward)
	}

	n.key = key
	n.value = val
	return n
}

// releaseNode returns a detached node to the pool. The tower is cleared in
// full so a pooled node never keeps live nodes reachable.
func (sl *SkipList[K, V]) releaseNode(n *node[K, V]) {
	if n == nil || n == sl.header {
		return
	}

	var zeroK K
	var zeroV V
	n.key = zeroK
	n.value = zeroV

	if cap(n.forward) > 0 {
		n.forward = n.forward[:cap(n.forward)]
		clear(n.forward)
	}

	sl.nodePool.Put(n)
}
