package stree

import (
	"math/rand/v2"

	"github.com/suffixtreelab/stc/internal/edgehash"
)

// treeResolver adapts a *Tree to edgehash.Resolver. It is bound lazily,
// once the owning Tree exists, since the backend is constructed before the
// Tree that will use it (spec section 9: back-ends are built standalone,
// then handed to stree.New).
type treeResolver struct {
	tr *Tree
}

func (r *treeResolver) FirstSymbol(u, target int32) Sym {
	return r.tr.FirstSymbol(u, target)
}

// hashedBackend is the HashedEdges back-end (spec section 4.3): a single
// global table maps (source, first symbol) to target and answers every
// point lookup. Each edge is also mirrored into the sorted sibling chain
// (chain.go), which is used only for ordered traversal.
type hashedBackend struct {
	hasParent   bool
	scheme      edgehash.Scheme
	initialSize int
	cuckooFuncs int
	rng         *rand.Rand

	resolver *treeResolver
	table    edgehash.Table
}

// NewHashedEdges builds a HashedEdges back-end. withParent selects the
// backward-pointer variant; scheme picks double vs Cuckoo hashing.
// initialSize and cuckooFuncs forward to edgehash.New; rng makes the
// choice of Cuckoo parameters and prime search deterministic for a fixed
// seed.
func NewHashedEdges(withParent bool, scheme edgehash.Scheme, initialSize, cuckooFuncs int, rng *rand.Rand) Backend {
	return &hashedBackend{
		hasParent:   withParent,
		scheme:      scheme,
		initialSize: initialSize,
		cuckooFuncs: cuckooFuncs,
		rng:         rng,
		resolver:    &treeResolver{},
	}
}

func (b *hashedBackend) Name() string {
	if b.hasParent {
		return "SH+BP"
	}
	return "SH"
}

func (b *hashedBackend) HasParent() bool { return b.hasParent }

func (b *hashedBackend) SetParent(tr *Tree, v, u NodeId) {
	if b.hasParent {
		tr.setParentField(v, u)
	}
}

func (b *hashedBackend) ensure(tr *Tree) {
	if b.table == nil {
		b.resolver.tr = tr
		b.table = edgehash.New(b.scheme, b.resolver, b.initialSize, b.cuckooFuncs, b.rng)
	}
}

func (b *hashedBackend) BranchOnce(tr *Tree, u NodeId, c Sym) (NodeId, error) {
	b.ensure(tr)
	target, ok := b.table.Lookup(int32(u), c)
	if !ok {
		return None, ErrNoSuchEdge
	}
	return NodeId(target), nil
}

func (b *hashedBackend) CreateEdge(tr *Tree, u NodeId, c Sym, target NodeId) error {
	b.ensure(tr)
	if err := b.table.Insert(int32(u), c, int32(target)); err != nil {
		return err
	}
	// The hash table alone answers point queries in O(1); it has no
	// notion of sibling order. Mirror the edge into the same
	// firstChild/nextSibling chain LinkedChildren uses, purely so
	// traversal can list children in ascending symbol order without a
	// full table scan.
	if err := insertChainSorted(tr, u, c, target); err != nil {
		return err
	}
	b.SetParent(tr, target, u)
	return nil
}

func (b *hashedBackend) ReassignEdge(tr *Tree, u NodeId, c Sym, newTarget NodeId) error {
	b.ensure(tr)
	if err := b.table.Update(int32(u), c, int32(newTarget)); err != nil {
		return err
	}
	if err := reassignChainSorted(tr, u, c, newTarget); err != nil {
		return err
	}
	b.SetParent(tr, newTarget, u)
	return nil
}

// Children walks the same sorted sibling chain LinkedChildren uses (see
// CreateEdge); the hash table itself is never scanned.
func (b *hashedBackend) Children(tr *Tree, u NodeId) []NodeId {
	return childrenChain(tr, u)
}

// Stats exposes the underlying table's occupancy, used by the benchmark
// driver's stats line.
func (b *hashedBackend) Stats() edgehash.Stats {
	if b.table == nil {
		return edgehash.Stats{Scheme: b.scheme}
	}
	return b.table.Stats()
}
