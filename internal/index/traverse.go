package index

// Traversals produce the ordered key sequences consumed by the debug
// visualizer. They are not on the per-frame hot path. In-order output
// is strictly increasing, which the tests use as an ordering check.

// InOrder returns all keys in ascending order.
func (t *Tree[V]) InOrder() []Key {
	keys := make([]Key, 0, t.size)
	var walk func(n *node[V])
	walk = func(n *node[V]) {
		if n == nil {
			return
		}
		walk(n.left)
		keys = append(keys, n.key)
		walk(n.right)
	}
	walk(t.root)
	return keys
}

// PreOrder returns all keys in root-left-right order.
func (t *Tree[V]) PreOrder() []Key {
	keys := make([]Key, 0, t.size)
	var walk func(n *node[V])
	walk = func(n *node[V]) {
		if n == nil {
			return
		}
		keys = append(keys, n.key)
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return keys
}

// PostOrder returns all keys in left-right-root order.
func (t *Tree[V]) PostOrder() []Key {
	keys := make([]Key, 0, t.size)
	var walk func(n *node[V])
	walk = func(n *node[V]) {
		if n == nil {
			return
		}
		walk(n.left)
		walk(n.right)
		keys = append(keys, n.key)
	}
	walk(t.root)
	return keys
}

// LevelOrder returns all keys breadth-first, top level first. It uses
// an explicit queue rather than recursion.
func (t *Tree[V]) LevelOrder() []Key {
	if t.root == nil {
		return nil
	}
	keys := make([]Key, 0, t.size)
	queue := []*node[V]{t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		keys = append(keys, cur.key)
		if cur.left != nil {
			queue = append(queue, cur.left)
		}
		if cur.right != nil {
			queue = append(queue, cur.right)
		}
	}
	return keys
}

// VisitShape visits every node right subtree first with its depth from
// the root. The visualizer uses this to print the tree sideways, top
// line being the rightmost key.
func (t *Tree[V]) VisitShape(visit func(key Key, depth int)) {
	var walk func(n *node[V], depth int)
	walk = func(n *node[V], depth int) {
		if n == nil {
			return
		}
		walk(n.right, depth+1)
		visit(n.key, depth)
		walk(n.left, depth+1)
	}
	walk(t.root, 0)
}
