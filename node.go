package skipkv

// node holds a key/value pair and its tower of forward links.
// forward[0] is the owning link of the base list; higher entries point at
// nodes already owned further down. The node's level is len(forward)-1.
type node[K, V any] struct {
	key     K
	value   V
	forward []*node[K, V]
}

func (n *node[K, V]) level() int {
	return len(n.forward) - 1
}

// newHeader builds the sentinel that anchors every level.
func newHeader[K, V any](maxLevel int) *node[K, V] {
	return &node[K, V]{forward: make([]*node[K, V], maxLevel+1)}
}
