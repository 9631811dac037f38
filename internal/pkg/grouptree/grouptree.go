// Package grouptree provides an in-memory arena over the persisted group
// hierarchy. Pipeline stages load a snapshot once, manipulate it through the
// arena, and write changes back, instead of chasing lazy associations
// mid-traversal.
package grouptree

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrCycle = errors.New("grouptree: attach would create a cycle")

type Node struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
	Value    string
	Label    string
	Split    string
	Items    []uuid.UUID
}

// Tree indexes nodes by id and keeps child lists in insertion order, so every
// traversal is deterministic for a given load order.
type Tree struct {
	nodes    map[uuid.UUID]*Node
	children map[uuid.UUID][]uuid.UUID
	order    []uuid.UUID
}

func New(nodes []*Node) *Tree {
	t := &Tree{
		nodes:    make(map[uuid.UUID]*Node, len(nodes)),
		children: make(map[uuid.UUID][]uuid.UUID, len(nodes)),
	}
	for _, n := range nodes {
		t.Add(n)
	}
	return t
}

func (t *Tree) Add(n *Node) {
	if _, ok := t.nodes[n.ID]; ok {
		return
	}
	t.nodes[n.ID] = n
	t.order = append(t.order, n.ID)
	if n.ParentID != nil {
		t.children[*n.ParentID] = append(t.children[*n.ParentID], n.ID)
	}
}

func (t *Tree) Node(id uuid.UUID) *Node {
	return t.nodes[id]
}

func (t *Tree) Children(id uuid.UUID) []*Node {
	ids := t.children[id]
	out := make([]*Node, 0, len(ids))
	for _, cid := range ids {
		if n, ok := t.nodes[cid]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (t *Tree) Roots() []*Node {
	var out []*Node
	for _, id := range t.order {
		if n, ok := t.nodes[id]; ok && n.ParentID == nil {
			out = append(out, n)
		}
	}
	return out
}

// Attach re-parents child under parent (nil detaches). It refuses any attach
// that would make a node its own ancestor.
func (t *Tree) Attach(childID uuid.UUID, parentID *uuid.UUID) error {
	child, ok := t.nodes[childID]
	if !ok {
		return fmt.Errorf("grouptree: unknown node %s", childID)
	}
	if parentID != nil {
		if _, ok := t.nodes[*parentID]; !ok {
			return fmt.Errorf("grouptree: unknown parent %s", *parentID)
		}
		if *parentID == childID {
			return ErrCycle
		}
		for cur := t.nodes[*parentID]; cur != nil && cur.ParentID != nil; cur = t.nodes[*cur.ParentID] {
			if *cur.ParentID == childID {
				return ErrCycle
			}
		}
	}
	if child.ParentID != nil {
		t.removeChild(*child.ParentID, childID)
	}
	child.ParentID = nil
	if parentID != nil {
		pid := *parentID
		child.ParentID = &pid
		t.children[pid] = append(t.children[pid], childID)
	}
	return nil
}

func (t *Tree) removeChild(parentID, childID uuid.UUID) {
	ids := t.children[parentID]
	for i, cid := range ids {
		if cid == childID {
			t.children[parentID] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}

func (t *Tree) Depth(id uuid.UUID) int {
	depth := 0
	for n := t.nodes[id]; n != nil && n.ParentID != nil; n = t.nodes[*n.ParentID] {
		depth++
	}
	return depth
}

// Walk visits the subtree under id in pre-order.
func (t *Tree) Walk(id uuid.UUID, fn func(*Node)) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	fn(n)
	for _, cid := range append([]uuid.UUID(nil), t.children[id]...) {
		t.Walk(cid, fn)
	}
}
