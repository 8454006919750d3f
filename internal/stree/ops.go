package stree

// BranchOnce looks up the child of u reached by first symbol c. It is a
// thin wrapper over the chosen back-end (spec section 4.5).
func (tr *Tree) BranchOnce(u NodeId, c Sym) (NodeId, error) {
	return tr.backend.BranchOnce(tr, u, c)
}

// NextChild returns the sibling following v in u's child order, or None
// past the last child. Both back-ends maintain the same sorted sibling
// chain (hashed.go mirrors it purely for this), so this one definition
// serves LinkedChildren and HashedEdges alike.
func (tr *Tree) NextChild(v NodeId) NodeId {
	return tr.nextSibling(v)
}

// FirstChild returns u's first child in ascending first-symbol order, or
// None if u has no children yet.
func (tr *Tree) FirstChild(u NodeId) NodeId {
	return tr.firstChild(u)
}

// CreateLeaf attaches a new leaf for the suffix starting at suffixPos as a
// child of u, reached by first symbol c. c must equal
// T[suffixPos+depth(u)].
func (tr *Tree) CreateLeaf(u NodeId, c Sym, suffixPos int) (NodeId, error) {
	leaf := Leaf(suffixPos)
	if err := tr.backend.CreateEdge(tr, u, c, leaf); err != nil {
		return None, err
	}
	return leaf, nil
}

// SplitEdge inserts a new branching node in the middle of the edge
// u->target (reached by first symbol c), k symbols down from u, and
// reattaches target below it. It returns the new branching node (spec
// section 4.5: "split_edge").
func (tr *Tree) SplitEdge(u NodeId, c Sym, k int, target NodeId) (NodeId, error) {
	if k <= 0 || k >= tr.Depth(target)-tr.Depth(u) {
		return None, invariantf("split_edge: k=%d out of range for u=%d target=%d", k, u, target)
	}

	w := tr.allocBranch()
	tr.branch[w].depth = tr.Depth(u) + k
	tr.branch[w].headPos = tr.HeadPos(target)
	tr.branch[w].suffixLink = None

	if err := tr.backend.ReassignEdge(tr, u, c, w); err != nil {
		return None, err
	}

	splitSym := tr.firstSymbol(w, target)
	if err := tr.backend.CreateEdge(tr, w, splitSym, target); err != nil {
		return None, err
	}
	return w, nil
}

// GoDownOutcome is the result tag of GoDown/GoUp (spec section 4.5).
type GoDownOutcome int

const (
	// GoDownExact means the walk landed exactly on a branching node at
	// the requested depth.
	GoDownExact GoDownOutcome = iota
	// GoDownSplitHere means the requested depth falls strictly inside
	// edge U->V; K is the offset from depth(U) at which it falls, the k
	// argument SplitEdge expects.
	GoDownSplitHere
)

// GoDownResult reports where a GoDown or GoUp walk landed.
type GoDownResult struct {
	Outcome GoDownOutcome
	Node    NodeId // valid when Outcome == GoDownExact
	U, V    NodeId // valid when Outcome == GoDownSplitHere: the spanning edge
	K       int    // valid when Outcome == GoDownSplitHere
}

// GoDown starts at branching node g and repeatedly takes whole edges
// (branch_once + edge_descend), spelling out T[pos..] as it goes, until it
// either lands exactly on a branching node at targetDepth or finds
// targetDepth strictly inside an edge. It is the top-down way to relocate
// a suffix-link target, used by the construction drivers for every
// back-end, the backward-pointer variants included.
//
// Landing on a leaf before reaching targetDepth is a builder bug: the
// caller guarantees the path to targetDepth already exists in the tree.
func (tr *Tree) GoDown(g NodeId, targetDepth, pos int) (GoDownResult, error) {
	cur := g
	curPos := pos
	for tr.Depth(cur) < targetDepth {
		if cur.IsLeaf() {
			return GoDownResult{}, invariantf("go_down: reached leaf %d before target depth %d", cur, targetDepth)
		}
		c := tr.symbolAt(curPos)
		v, err := tr.BranchOnce(cur, c)
		if err != nil {
			return GoDownResult{}, invariantf("go_down: no edge for u=%d c=%d: %v", cur, c, err)
		}
		if tr.Depth(v) > targetDepth {
			return GoDownResult{
				Outcome: GoDownSplitHere,
				U:       cur,
				V:       v,
				K:       targetDepth - tr.Depth(cur),
			}, nil
		}
		cur, curPos = tr.EdgeDescend(cur, v, curPos)
	}
	return GoDownResult{Outcome: GoDownExact, Node: cur}, nil
}

// GoUp is GoDown's bottom-up counterpart for LinkedChildren+BP: it climbs
// from v via parent pointers until it reaches a branching node at
// targetDepth, or finds targetDepth strictly inside the edge immediately
// above the last node it passed.
func (tr *Tree) GoUp(v NodeId, targetDepth int) (GoDownResult, error) {
	if !tr.backend.HasParent() {
		return GoDownResult{}, invariantf("go_up: backend %s has no parent pointers", tr.backend.Name())
	}
	cur := v
	for tr.Depth(cur) > targetDepth {
		parent := tr.Parent(cur)
		if parent.IsNone() {
			return GoDownResult{}, invariantf("go_up: parent chain broken above %d", cur)
		}
		if tr.Depth(parent) < targetDepth {
			return GoDownResult{
				Outcome: GoDownSplitHere,
				U:       parent,
				V:       cur,
				K:       targetDepth - tr.Depth(parent),
			}, nil
		}
		cur = parent
	}
	return GoDownResult{Outcome: GoDownExact, Node: cur}, nil
}
