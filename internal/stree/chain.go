package stree

// chain.go holds the sorted-sibling-list bookkeeping shared by both
// back-ends. LinkedChildren uses it as its only means of finding an edge;
// HashedEdges uses it purely so traversal (spec section 4.7) can list a
// node's children in ascending first-symbol order without a full table
// scan, while BranchOnce still answers point queries from the hash table
// in O(1).

func insertChainSorted(tr *Tree, u NodeId, c Sym, target NodeId) error {
	var prev NodeId
	cur := tr.firstChild(u)
	for !cur.IsNone() {
		s := tr.firstSymbol(u, cur)
		if s == c {
			return invariantf("chain: duplicate edge u=%d c=%d", u, c)
		}
		if s > c {
			break
		}
		prev = cur
		cur = tr.nextSibling(cur)
	}
	tr.setNextSibling(target, cur)
	if prev.IsNone() {
		tr.setFirstChild(u, target)
	} else {
		tr.setNextSibling(prev, target)
	}
	return nil
}

func reassignChainSorted(tr *Tree, u NodeId, c Sym, newTarget NodeId) error {
	var prev NodeId
	cur := tr.firstChild(u)
	for !cur.IsNone() {
		s := tr.firstSymbol(u, cur)
		if s == c {
			tr.setNextSibling(newTarget, tr.nextSibling(cur))
			if prev.IsNone() {
				tr.setFirstChild(u, newTarget)
			} else {
				tr.setNextSibling(prev, newTarget)
			}
			return nil
		}
		if s > c {
			break
		}
		prev = cur
		cur = tr.nextSibling(cur)
	}
	return invariantf("chain: reassign missing edge u=%d c=%d", u, c)
}

func childrenChain(tr *Tree, u NodeId) []NodeId {
	var out []NodeId
	for v := tr.firstChild(u); !v.IsNone(); v = tr.nextSibling(v) {
		out = append(out, v)
	}
	return out
}
