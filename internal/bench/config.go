// Package bench drives one construction-and-traversal benchmark run: it
// wires a symtext.Text and a chosen stree.Backend/build.Algorithm pair
// together, times the run, and reports the stats the CLI prints when its
// -l/--log level is debug or lower
// (spec.md §6's "-b {C,T}" benchmark kinds and §9's size/timing reporting,
// carried over from the original driver's allocation/timing trace).
package bench

import (
	"math/rand/v2"

	"github.com/suffixtreelab/stc/internal/build"
	"github.com/suffixtreelab/stc/internal/edgehash"
	"github.com/suffixtreelab/stc/internal/stree"
)

// Kind selects which of the two benchmarks to run (spec.md §6, "-b").
type Kind int

const (
	// ConstructDelete builds the tree then drops it; it measures build
	// cost in isolation.
	ConstructDelete Kind = iota
	// ConstructTraverseDelete additionally dumps every edge before
	// dropping the tree, through the -d/-s traversal options.
	ConstructTraverseDelete
)

func (k Kind) String() string {
	if k == ConstructTraverseDelete {
		return "construct-traverse-delete"
	}
	return "construct-delete"
}

// Config is the fully-resolved, already-validated set of knobs a run
// needs. cmd/st builds one of these from flags; nothing in this package
// parses flags itself (spec.md §1: CLI parsing is an external
// collaborator).
type Config struct {
	Kind      Kind
	Algorithm build.Algorithm

	// Backend selection. Hashed is false for LinkedChildren.
	Hashed       bool
	WithParent   bool
	Scheme       edgehash.Scheme
	CuckooFuncs  int
	InitialSize  int
	Rng          *rand.Rand
	SimpleFormat bool // -s: "simple" traversal format (ids elided)

	// DumpPath is where traversal output is written for a T benchmark;
	// empty means stdout (spec.md §6, "-d <file>").
	DumpPath string
}

// NewBackend constructs the stree.Backend this Config selects.
func (c Config) NewBackend() stree.Backend {
	if !c.Hashed {
		return stree.NewLinkedChildren(c.WithParent)
	}
	return stree.NewHashedEdges(c.WithParent, c.Scheme, c.InitialSize, c.CuckooFuncs, c.Rng)
}
