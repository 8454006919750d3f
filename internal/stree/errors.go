package stree

import "errors"

// ErrInvariant marks a detected violation of the tree's structural
// invariants (spec section 7): descending into a leaf where a branching
// node was expected, a missing suffix-link resolution, a backend reporting
// an edge that doesn't exist. These are builder bugs; the driver
// short-circuits on the first one.
var ErrInvariant = errors.New("stree: invariant violation")

// ErrNoSuchEdge is control flow, not a fatal error: branch_once found no
// edge for the requested symbol.
var ErrNoSuchEdge = errors.New("stree: no such edge")
