package stree

// linkedBackend is the LinkedChildren back-end (spec section 4.4): every
// branching node keeps a first_child pointer, and every child (branch or
// leaf) keeps a next_sibling pointer. Children are kept in ascending
// first-edge-symbol order (invariant I4), which lets BranchOnce stop as
// soon as it passes c.
type linkedBackend struct {
	hasParent bool
}

// NewLinkedChildren builds a LinkedChildren back-end. withParent selects
// the backward-pointer variant (LinkedChildren+BP), which additionally
// maintains a parent pointer per node so go_up can replace go_down during
// suffix-link resolution (spec section 4.5).
func NewLinkedChildren(withParent bool) Backend {
	return &linkedBackend{hasParent: withParent}
}

func (b *linkedBackend) Name() string {
	if b.hasParent {
		return "SL+BP"
	}
	return "SL"
}

func (b *linkedBackend) HasParent() bool { return b.hasParent }

func (b *linkedBackend) SetParent(tr *Tree, v, u NodeId) {
	if b.hasParent {
		tr.setParentField(v, u)
	}
}

func (b *linkedBackend) BranchOnce(tr *Tree, u NodeId, c Sym) (NodeId, error) {
	v := tr.firstChild(u)
	for !v.IsNone() {
		s := tr.firstSymbol(u, v)
		if s == c {
			return v, nil
		}
		if s > c {
			break
		}
		v = tr.nextSibling(v)
	}
	return None, ErrNoSuchEdge
}

func (b *linkedBackend) CreateEdge(tr *Tree, u NodeId, c Sym, target NodeId) error {
	if err := insertChainSorted(tr, u, c, target); err != nil {
		return err
	}
	b.SetParent(tr, target, u)
	return nil
}

func (b *linkedBackend) ReassignEdge(tr *Tree, u NodeId, c Sym, newTarget NodeId) error {
	if err := reassignChainSorted(tr, u, c, newTarget); err != nil {
		return err
	}
	b.SetParent(tr, newTarget, u)
	return nil
}

func (b *linkedBackend) Children(tr *Tree, u NodeId) []NodeId {
	return childrenChain(tr, u)
}
