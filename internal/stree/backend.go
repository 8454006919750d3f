package stree

// Backend is the small capability surface the primitive operations and
// construction drivers depend on (spec section 9, "Polymorphism over
// back-ends"). LinkedChildren and HashedEdges each implement it; the
// drivers never switch on the concrete type.
type Backend interface {
	// Name identifies the backend for stats/CLI output ("SL" or "SH",
	// with a "+BP" suffix for the backward-pointer variants).
	Name() string

	// BranchOnce returns the child of u reached on first symbol c, or
	// ErrNoSuchEdge if there is none.
	BranchOnce(tr *Tree, u NodeId, c Sym) (NodeId, error)

	// CreateEdge attaches a brand new edge u->target whose first symbol
	// is c. The caller (create_leaf/split_edge) guarantees no edge for c
	// already exists at u.
	CreateEdge(tr *Tree, u NodeId, c Sym, target NodeId) error

	// ReassignEdge repoints the existing edge u->(old target reached by
	// c) to newTarget, keeping the same first symbol c. Used by
	// split_edge.
	ReassignEdge(tr *Tree, u NodeId, c Sym, newTarget NodeId) error

	// Children returns the children of u in the back-end's canonical
	// order (ascending first edge symbol), for traversal (spec 4.7).
	Children(tr *Tree, u NodeId) []NodeId

	// HasParent reports whether this backend maintains per-node parent
	// pointers (the "backward-pointer" variant).
	HasParent() bool

	// SetParent records v's parent as u. No-op when !HasParent().
	SetParent(tr *Tree, v, u NodeId)
}
