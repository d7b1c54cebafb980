// Package index implements the obstacle spatial index: an AVL tree
// keyed by course coordinates. It guarantees logarithmic-height
// search, insert and delete, and rejects duplicate keys instead of
// overwriting them.
package index

// node is one tree entry. Children are owned by their parent; the
// parent pointer is only followed upward during rebalancing and must
// never be used to extend a node's lifetime.
type node[V any] struct {
	key    Key
	val    V
	parent *node[V]
	left   *node[V]
	right  *node[V]
	height int // cached subtree height: leaf = 1, nil child = 0
}

func height[V any](n *node[V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

// update recomputes the cached height from the children.
func (n *node[V]) update() {
	lh, rh := height(n.left), height(n.right)
	if lh > rh {
		n.height = lh + 1
	} else {
		n.height = rh + 1
	}
}

// balance returns height(left) - height(right).
func (n *node[V]) balance() int {
	return height(n.left) - height(n.right)
}

// Tree is a self-balancing binary search tree over course coordinates.
// The zero value is not usable; construct with New.
type Tree[V any] struct {
	root *node[V]
	size int
}

// New returns an empty spatial index.
func New[V any]() *Tree[V] {
	return &Tree[V]{}
}

// Len returns the number of entries in the index.
func (t *Tree[V]) Len() int {
	return t.size
}

// Height returns the height of the tree (0 when empty).
func (t *Tree[V]) Height() int {
	return height(t.root)
}

// Search returns the payload stored at key, if present. Searching an
// empty tree or a missing key is a normal negative result.
func (t *Tree[V]) Search(key Key) (V, bool) {
	cur := t.root
	for cur != nil {
		switch {
		case key == cur.key:
			return cur.val, true
		case key.Less(cur.key):
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	var zero V
	return zero, false
}

// Insert adds a payload at key. It returns false without mutating the
// tree if the key is already present.
func (t *Tree[V]) Insert(key Key, val V) bool {
	if t.root == nil {
		t.root = &node[V]{key: key, val: val, height: 1}
		t.size = 1
		return true
	}

	cur := t.root
	var fresh *node[V]
	for fresh == nil {
		switch {
		case key == cur.key:
			return false
		case key.Less(cur.key):
			if cur.left == nil {
				fresh = &node[V]{key: key, val: val, parent: cur, height: 1}
				cur.left = fresh
			} else {
				cur = cur.left
			}
		default:
			if cur.right == nil {
				fresh = &node[V]{key: key, val: val, parent: cur, height: 1}
				cur.right = fresh
			} else {
				cur = cur.right
			}
		}
	}

	t.size++
	t.rebalance(cur)
	return true
}

// Delete removes the entry at key. It returns false if the key is
// absent (including the empty tree).
func (t *Tree[V]) Delete(key Key) bool {
	target := t.root
	for target != nil && target.key != key {
		if key.Less(target.key) {
			target = target.left
		} else {
			target = target.right
		}
	}
	if target == nil {
		return false
	}

	t.remove(target)
	t.size--
	return true
}

// remove detaches target from the tree and restores the balance
// invariant, walking upward from the deepest structurally changed
// position.
func (t *Tree[V]) remove(target *node[V]) {
	switch {
	case target.left == nil && target.right == nil:
		// Leaf: detach and rebalance from the former parent.
		parent := target.parent
		t.replaceChild(target, nil)
		t.rebalance(parent)

	case target.left != nil && target.right != nil:
		// Two children: graft the in-order predecessor (rightmost node
		// of the left subtree) into target's position.
		pred := target.left
		for pred.right != nil {
			pred = pred.right
		}

		rebalanceFrom := pred
		if pred.parent != target {
			// Splice the predecessor out of its original slot first,
			// replacing it with its own left child. Heights change
			// deepest at the splice point, so the upward walk starts
			// there; it passes through the predecessor's final
			// position on its way to the root.
			rebalanceFrom = pred.parent
			t.replaceChild(pred, pred.left)
			pred.left = target.left
			pred.left.parent = pred
		}
		t.replaceChild(target, pred)
		pred.right = target.right
		pred.right.parent = pred
		t.rebalance(rebalanceFrom)

	default:
		// One child: the child takes target's slot directly.
		child := target.left
		if child == nil {
			child = target.right
		}
		t.replaceChild(target, child)
		t.rebalance(child)
	}

	target.parent, target.left, target.right = nil, nil, nil
}

// replaceChild makes repl occupy old's position under old's parent
// (or the root slot), fixing repl's parent pointer.
func (t *Tree[V]) replaceChild(old, repl *node[V]) {
	switch {
	case old.parent == nil:
		t.root = repl
	case old.parent.left == old:
		old.parent.left = repl
	default:
		old.parent.right = repl
	}
	if repl != nil {
		repl.parent = old.parent
	}
}

// rebalance walks from n to the root, recomputing heights and rotating
// wherever the balance invariant is violated. The walk always continues
// to the root: a rotation changes the height of the rotated subtree,
// which can unbalance ancestors further up.
func (t *Tree[V]) rebalance(n *node[V]) {
	for ; n != nil; n = n.parent {
		n.update()
		switch bf := n.balance(); {
		case bf > 1:
			if n.left.balance() >= 0 {
				n = t.rotateRight(n) // left-left
			} else {
				t.rotateLeft(n.left) // left-right
				n = t.rotateRight(n)
			}
		case bf < -1:
			if n.right.balance() <= 0 {
				n = t.rotateLeft(n) // right-right
			} else {
				t.rotateRight(n.right) // right-left
				n = t.rotateLeft(n)
			}
		}
	}
}

// rotateRight lifts n's left child into n's position and returns it.
func (t *Tree[V]) rotateRight(n *node[V]) *node[V] {
	l := n.left
	n.left = l.right
	if l.right != nil {
		l.right.parent = n
	}
	t.replaceChild(n, l)
	l.right = n
	n.parent = l
	n.update()
	l.update()
	return l
}

// rotateLeft lifts n's right child into n's position and returns it.
func (t *Tree[V]) rotateLeft(n *node[V]) *node[V] {
	r := n.right
	n.right = r.left
	if r.left != nil {
		r.left.parent = n
	}
	t.replaceChild(n, r)
	r.left = n
	n.parent = r
	n.update()
	r.update()
	return r
}

// VisitRange calls visit in key order for every entry with from <= key
// <= to. Returning false from visit stops the walk early.
func (t *Tree[V]) VisitRange(from, to Key, visit func(key Key, val V) bool) {
	visitRange(t.root, from, to, visit)
}

func visitRange[V any](n *node[V], from, to Key, visit func(Key, V) bool) bool {
	if n == nil {
		return true
	}
	if from.Less(n.key) {
		if !visitRange(n.left, from, to, visit) {
			return false
		}
	}
	if !n.key.Less(from) && !to.Less(n.key) {
		if !visit(n.key, n.val) {
			return false
		}
	}
	if n.key.Less(to) {
		return visitRange(n.right, from, to, visit)
	}
	return true
}
