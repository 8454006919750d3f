package build

import (
	"fmt"

	"github.com/suffixtreelab/stc/internal/stree"
)

// SimpleMcCreight builds tr by inserting every suffix with a full descent
// from the root and no suffix-link bookkeeping (spec section 4.6.3). It
// costs O(N^2) in the worst case and exists purely as an independent
// equivalence oracle for McCreight.
func SimpleMcCreight(tr *stree.Tree) error {
	n := tr.N()
	for p := 1; p <= n+1; p++ {
		if err := simpleInsertSuffix(tr, p); err != nil {
			return fmt.Errorf("simple-mccreight: suffix %d: %w", p, err)
		}
	}
	return nil
}

func simpleInsertSuffix(tr *stree.Tree, p int) error {
	cur := stree.Root
	pos := p
	maxPos := tr.N() + 1

	for {
		c := tr.Symbol(pos)
		v, err := tr.BranchOnce(cur, c)
		if err != nil {
			_, err := tr.CreateLeaf(cur, c, p)
			return err
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
			_, err = tr.CreateLeaf(w, newC, p)
			return err
		default:
			return fmt.Errorf("%w: unexpected truncated scan", stree.ErrInvariant)
		}
	}
}

// SimpleUkkonen builds tr with Ukkonen's extension logic but restarts
// every extension at the root instead of carrying the active point across
// extensions (spec section 4.6.3). The source material documents an
// abort() on an "edge longer than necessary" path in this baseline whose
// intent is unclear (spec section 9, open questions); this port never
// reaches an equivalent state, so it is represented only as an
// stree.ErrInvariant a caller would see if it somehow did.
func SimpleUkkonen(tr *stree.Tree) error {
	return ukkonenBuild(tr, false)
}
