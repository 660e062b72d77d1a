package scene

import (
	"fmt"
	"strings"

	"github.com/hubastard/layergrove/engine/core"
	"github.com/hubastard/layergrove/engine/object"
)

// Node is a scene entity: identity, a place in the parent/child tree and a
// Behavior receiving the world's per-frame broadcast. Nodes are created by
// World.Create and stay owned by that world's registry.
type Node struct {
	object.Base

	world    *World
	behavior Behavior
	started  bool

	// parent is a back-reference only; children lists membership, not lifetime.
	parent   *Node
	children []*Node

	// enabling and deleting guard each cascade against revisiting a node
	// through stale child entries.
	enabling bool
	deleting bool
}

func (n *Node) World() *World       { return n.world }
func (n *Node) Behavior() Behavior  { return n.behavior }
func (n *Node) Started() bool       { return n.started }
func (n *Node) Parent() *Node       { return n.parent }
func (n *Node) NumChildren() int    { return len(n.children) }
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// SetParent attaches n under parent and aligns n's enabled state with it.
// Parenting to a deleted node, to n itself or to one of n's descendants is
// reported and ignored. A nil parent detaches n.
//
// Neither reparenting nor detaching removes n from a former parent's child
// list; that parent keeps cascading enable/delete into n.
func (n *Node) SetParent(parent *Node) error {
	logger := n.world.log.WithField("node", n.Name())
	if n.Deleted() {
		err := fmt.Errorf("set parent of %s: %w", n, core.ErrDeleted)
		logger.WithError(err).Error("cannot reparent a deleted node")
		return err
	}
	if parent == nil {
		n.parent = nil
		return nil
	}
	if parent.Deleted() {
		err := fmt.Errorf("parent %s is deleted: %w", parent, core.ErrInvalidHierarchy)
		logger.WithError(err).Error("cannot assign a deleted node as parent")
		return err
	}
	if parent == n {
		err := fmt.Errorf("%s cannot parent itself: %w", n, core.ErrInvalidHierarchy)
		logger.WithError(err).Error("cannot assign a node as its own parent")
		return err
	}
	if isAncestor(n, parent) {
		err := fmt.Errorf("%s is an ancestor of %s: %w", n, parent, core.ErrInvalidHierarchy)
		logger.WithError(err).Error("parenting would create a cycle")
		return err
	}
	if n.parent == parent {
		return nil
	}

	n.parent = parent
	parent.children = append(parent.children, n)
	if n.Enabled() != parent.Enabled() {
		n.SetEnable(parent.Enabled())
	}
	return nil
}

// SetEnable fires OnEnable or OnDisable, cascades the status into every child
// not already in it, then records the status on n.
func (n *Node) SetEnable(status bool) error {
	if n.Deleted() {
		err := fmt.Errorf("set enable on %s: %w", n, core.ErrDeleted)
		n.world.log.WithField("node", n.Name()).WithError(err).Warn("ignoring enable change")
		return err
	}
	if n.enabling {
		return nil
	}
	n.enabling = true
	defer func() { n.enabling = false }()

	if status {
		n.behavior.OnEnable(n)
	} else {
		n.behavior.OnDisable(n)
	}
	if n.Deleted() {
		// the hook deleted n
		return nil
	}
	for _, child := range n.children {
		if child.Deleted() || child.Enabled() == status {
			continue
		}
		child.SetEnable(status)
	}
	n.MarkEnabled(status)
	return nil
}

// Delete fires OnDelete, deletes every child depth-first, drops n from the
// world registry and marks it deleted. Deleting twice, or from inside n's own
// delete cascade, is a no-op.
func (n *Node) Delete() {
	if n.Deleted() || n.deleting {
		return
	}
	n.deleting = true
	defer func() { n.deleting = false }()

	n.behavior.OnDelete(n)
	// OnDelete may attach more children; iterate what is there now.
	children := append([]*Node(nil), n.children...)
	for _, child := range children {
		child.Delete()
	}
	n.world.remove(n)
	n.MarkDeleted()
}

// Ancestors returns the parent chain, nearest first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Walk visits n's descendants depth-first in child order. depth is 1 for
// direct children. Returning false from fn skips that node's subtree.
// Each node is visited at most once.
func (n *Node) Walk(fn func(child *Node, depth int) bool) {
	n.walk(fn, 1, map[*Node]bool{n: true})
}

func (n *Node) walk(fn func(*Node, int) bool, depth int, seen map[*Node]bool) {
	children := append([]*Node(nil), n.children...)
	for _, child := range children {
		if seen[child] {
			continue
		}
		seen[child] = true
		if fn(child, depth) {
			child.walk(fn, depth+1, seen)
		}
	}
}

// LogHierarchy logs the parent chain of n.
func (n *Node) LogHierarchy() {
	logger := n.world.log.WithField("node", n.Name())
	if n.parent == nil {
		logger.Info("no hierarchy for this node")
		return
	}
	logger.Warnf("hierarchy of %s", n.Name())
	for i, p := range n.Ancestors() {
		logger.Infof("parent #%d: %s", i, p.Name())
	}
}

// LogChildren logs n's subtree, indenting each level.
func (n *Node) LogChildren() {
	logger := n.world.log.WithField("node", n.Name())
	if len(n.children) == 0 {
		logger.Infof("%s has no children", n.Name())
		return
	}
	index := map[int]int{}
	n.Walk(func(child *Node, depth int) bool {
		logger.Infof("%schild #%d: %s", strings.Repeat("   ", depth-1), index[depth], child.Name())
		index[depth]++
		index[depth+1] = 0
		return true
	})
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node.parent; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
