package build

import (
	"fmt"

	"github.com/suffixtreelab/stc/internal/stree"
)

// Ukkonen builds tr with Ukkonen's on-line algorithm (spec section 4.6.2):
// it maintains an implicit suffix tree for T[1..L-1] and extends it one
// character at a time, skipping suffixes that are already implicit
// (rule 3) and reusing the active point across extensions.
func Ukkonen(tr *stree.Tree) error {
	return ukkonenBuild(tr, true)
}

// ukkonenBuild drives the shared extension loop. useActivePoint selects
// between the real on-line algorithm (active_node/active_index carried
// across extensions) and the quadratic baseline (every extension
// redescends from the root, spec section 4.6.3).
func ukkonenBuild(tr *stree.Tree, useActivePoint bool) error {
	st := newState()
	n := tr.N()

	for length := 1; length <= n+1; length++ {
		oldLength := length - 1
		for st.Start <= length {
			if !useActivePoint {
				st.ActiveNode = stree.Root
				st.ActiveIndex = st.Start
			}
			trivial, err := ukkonenExtend(tr, st, oldLength)
			if err != nil {
				return fmt.Errorf("ukkonen: suffix %d at length %d: %w", st.Start, length, err)
			}
			if trivial {
				break
			}
			st.Start++
		}
	}
	return nil
}

// ukkonenExtend runs one extension of the suffix starting at st.Start,
// given that T[1..oldLength] is already a fully explicit implicit tree.
// It reports whether the extension was trivial (rule 3: the tree already
// implies the new character, so every shorter remaining suffix this round
// is trivial too).
func ukkonenExtend(tr *stree.Tree, st *State, oldLength int) (trivial bool, err error) {
	cur := st.ActiveNode
	pos := st.ActiveIndex
	extensionLen := oldLength + 2 - st.Start

	for {
		c := tr.Symbol(pos)
		v, err := tr.BranchOnce(cur, c)
		if err != nil {
			if _, err := tr.CreateLeaf(cur, c, st.Start); err != nil {
				return false, err
			}
			st.ActiveNode = followSuffixLinkOrRoot(tr, cur)
			st.ActiveIndex = st.Start + 1 + tr.Depth(st.ActiveNode)
			return false, nil
		}

		res := tr.SlowScan(cur, v, pos, oldLength+1)
		switch res.Outcome {
		case stree.ScanFull:
			cur, pos = tr.EdgeDescend(cur, v, pos)
			if v.IsLeaf() || tr.Depth(cur) == extensionLen {
				st.ActiveNode, st.ActiveIndex = cur, pos
				return true, nil
			}
			// more of this suffix's path remains below cur; keep descending.
		case stree.ScanTruncated:
			st.ActiveNode, st.ActiveIndex = cur, pos
			return true, nil
		case stree.ScanPartial:
			w, err := tr.SplitEdge(cur, c, res.K, v)
			if err != nil {
				return false, err
			}
			newPos := pos + res.K
			newC := tr.Symbol(newPos)
			if _, err := tr.CreateLeaf(w, newC, st.Start); err != nil {
				return false, err
			}
			next, err := resolveAfterSplit(tr, st, cur, w, st.Start)
			if err != nil {
				return false, err
			}
			st.ActiveNode = next
			st.ActiveIndex = st.Start + 1 + tr.Depth(st.ActiveNode)
			return false, nil
		}
	}
}
