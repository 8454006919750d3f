package build

import (
	"fmt"

	"github.com/suffixtreelab/stc/internal/stree"
)

// McCreight builds tr with McCreight's linear top-down algorithm (spec
// section 4.6.1): suffixes are inserted in order p = 1..N+1, reusing the
// suffix link of the node just split to avoid rescanning from the root.
//
// The same code serves the plain and backward-pointer backends: suffix
// links are always relocated top-down via Tree.GoDown, which only needs
// branch_once/edge_descend and works identically whether or not the
// backend also maintains parent pointers. See DESIGN.md for why the BP
// variant does not additionally fast-path through Tree.GoUp here.
func McCreight(tr *stree.Tree) error {
	st := newState()
	n := tr.N()
	for p := 1; p <= n+1; p++ {
		if err := mccreightStep(tr, st, p); err != nil {
			return fmt.Errorf("mccreight: suffix %d: %w", p, err)
		}
	}
	return nil
}

func mccreightStep(tr *stree.Tree, st *State, p int) error {
	cur := st.ActiveBranch
	pos := p + tr.Depth(cur)
	maxPos := tr.N() + 1

	for {
		c := tr.Symbol(pos)
		v, err := tr.BranchOnce(cur, c)
		if err != nil {
			if _, err := tr.CreateLeaf(cur, c, p); err != nil {
				return err
			}
			st.ActiveBranch = followSuffixLinkOrRoot(tr, cur)
			return nil
		}

		res := tr.SlowScan(cur, v, pos, maxPos)
		switch res.Outcome {
		case stree.ScanFull:
			cur, pos = tr.EdgeDescend(cur, v, pos)
		case stree.ScanPartial:
			w, err := tr.SplitEdge(cur, c, res.K, v)
			if err != nil {
				return err
			}
			newPos := pos + res.K
			newC := tr.Symbol(newPos)
			if _, err := tr.CreateLeaf(w, newC, p); err != nil {
				return err
			}
			next, err := resolveAfterSplit(tr, st, cur, w, p)
			if err != nil {
				return err
			}
			st.ActiveBranch = next
			return nil
		default:
			return fmt.Errorf("%w: unexpected truncated scan", stree.ErrInvariant)
		}
	}
}

// resolveAfterSplit implements spec section 4.6.1 steps 2-5: it links a
// still-pending split node to w if w happens to be its suffix-link target,
// then relocates (or defers relocating) the suffix link of w itself by
// jumping to suffix_link(u), u being w's parent, and redescending with
// GoDown. It
// returns the node the caller's active point should continue from; shared
// by both McCreight and Ukkonen, which store that node in different State
// fields (ActiveBranch vs ActiveNode).
func resolveAfterSplit(tr *stree.Tree, st *State, u, w stree.NodeId, p int) (stree.NodeId, error) {
	if !st.SLPendingSrc.IsNone() && tr.Depth(w) == st.SLPendingTargetDepth {
		tr.SetSuffixLink(st.SLPendingSrc, w)
	}

	st.SLPendingSrc = w
	st.SLPendingTargetDepth = tr.Depth(w) - 1

	g := u
	var starting int
	if g != stree.Root {
		g = tr.SuffixLink(g)
		starting = p + 1 + tr.Depth(g)
	} else {
		starting = p + 1
	}

	res, err := tr.GoDown(g, st.SLPendingTargetDepth, starting)
	if err != nil {
		return stree.None, err
	}

	if res.Outcome == stree.GoDownExact {
		tr.SetSuffixLink(st.SLPendingSrc, res.Node)
		st.SLPendingSrc = stree.None
		return res.Node, nil
	}
	return res.U, nil
}

// followSuffixLinkOrRoot implements step 5's other branch: when a suffix
// falls off a branching node with no matching edge at all, the next active
// point is simply that node's own (already-resolved) suffix link.
func followSuffixLinkOrRoot(tr *stree.Tree, u stree.NodeId) stree.NodeId {
	if u != stree.Root {
		return tr.SuffixLink(u)
	}
	return stree.Root
}
