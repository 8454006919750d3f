// Package build implements the construction drivers that turn a borrowed
// text and an empty *stree.Tree into a complete suffix tree: McCreight's
// linear top-down algorithm, Ukkonen's linear on-line algorithm, and the
// quadratic "simple" baselines used as an equivalence oracle for both
// (spec section 4.6).
package build

import "github.com/suffixtreelab/stc/internal/stree"

// State threads the small pieces of mutable bookkeeping the McCreight and
// Ukkonen loops carry between steps. Construction drivers own one State
// value exclusively for the duration of a build; there is no global
// singleton (spec section 9, "Mutable state during a construction step").
type State struct {
	// ActiveBranch is McCreight's current starting branching node.
	ActiveBranch stree.NodeId

	// ActiveNode/ActiveIndex/Start are Ukkonen's active point.
	ActiveNode  stree.NodeId
	ActiveIndex int
	Start       int

	// SLPendingSrc is a branching node created in a previous step whose
	// suffix link is not yet known; None if there is no such node.
	SLPendingSrc         stree.NodeId
	SLPendingTargetDepth int
}

// newState returns a State with active_branch/active_node at the root, as
// every driver starts.
func newState() *State {
	return &State{ActiveBranch: stree.Root, ActiveNode: stree.Root, ActiveIndex: 1, Start: 1}
}
