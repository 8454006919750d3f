// Package stree implements the suffix tree data model shared by both
// construction algorithms: the arena-indexed node tables, the two storage
// back-ends (LinkedChildren, HashedEdges), and the primitive operations
// (fastscan, slowscan, edge_descend/climb, branch_once, create_leaf,
// split_edge, go_down, go_up) that the construction drivers in
// internal/build compose.
package stree

import (
	"github.com/suffixtreelab/stc/symtext"
)

// NodeId tags branch vs leaf by sign, per spec section 3:
//
//	> 0   a branching node: index into the branch table, 1 is the root
//	< 0   a leaf: the magnitude is the suffix start position it represents
//	  0   none/undefined
type NodeId int32

// Root is always branch index 1.
const Root NodeId = 1

// None is the undefined node id.
const None NodeId = 0

// IsBranch reports whether id names a branching node.
func (id NodeId) IsBranch() bool { return id > 0 }

// IsLeaf reports whether id names a leaf.
func (id NodeId) IsLeaf() bool { return id < 0 }

// IsNone reports whether id is undefined.
func (id NodeId) IsNone() bool { return id == 0 }

// SuffixStart returns the suffix start position for a leaf id. It panics
// if id is not a leaf; callers must check IsLeaf first.
func (id NodeId) SuffixStart() int {
	if id >= 0 {
		panic("stree: SuffixStart called on a non-leaf NodeId")
	}
	return int(-id)
}

// Leaf builds the NodeId for the leaf representing the suffix starting at
// text position p.
func Leaf(p int) NodeId { return NodeId(-p) }

// branchRecord holds the per-branching-node state common to every
// back-end (spec section 3's "Branch record"), plus the sorted sibling
// chain (chain.go) both back-ends keep: LinkedChildren uses it as its
// only means of finding an edge, HashedEdges keeps it purely to answer
// ordered traversal without a full table scan.
type branchRecord struct {
	depth      int
	headPos    int
	suffixLink NodeId

	firstChild  NodeId
	nextSibling NodeId

	// backward-pointer variants only.
	parent NodeId
}

// leafRecord holds the back-end-specific state a leaf needs beyond its
// implicit identity: the sibling link both back-ends maintain (chain.go),
// and a parent pointer for backward-pointer variants.
type leafRecord struct {
	nextSibling NodeId
	parent      NodeId
}

// Sym is re-exported for callers that only import stree.
type Sym = symtext.Sym
