// Package edgehash implements the HashedEdges storage back-end's global
// open-addressed table mapping (source branching node, first edge symbol)
// to a target node, with both a double-hashing and a Cuckoo-hashing
// collision resolution scheme (spec section 4.3).
//
// The table never interprets node identities itself; it asks a Resolver
// (implemented by the tree package) to recover the first edge symbol of an
// existing entry when it needs to disambiguate a hash collision.
package edgehash

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/suffixtreelab/stc/internal/primes"
	"github.com/suffixtreelab/stc/symtext"
)

// ErrKeyNotFound is returned by Update when the (u,c) key is not present.
var ErrKeyNotFound = errors.New("edgehash: key not found")

// ErrTableFull is a transient failure surfaced when an insert cannot find a
// slot without growing; callers should grow and retry.
var ErrTableFull = errors.New("edgehash: table full, grow required")

// ErrCuckooNotConverged is returned when a Cuckoo rebuild with fresh random
// parameters still fails to place every key within the retry bound.
var ErrCuckooNotConverged = errors.New("edgehash: cuckoo rebuild did not converge")

// Resolver recovers the first edge symbol of an existing (u, target) edge,
// by reading T[head_position(target)+depth(u)] (or the leaf equivalent).
// It is implemented by the owning tree so the hash table can disambiguate
// two (u,c) keys that collide on a slot.
type Resolver interface {
	FirstSymbol(u, target int32) symtext.Sym
}

// key packs (u, c) into the 64-bit word the spec defines: u in the low 32
// bits, c shifted into the high bits. u is always > 0 (a branching node).
func key(u int32, c symtext.Sym) uint64 {
	return uint64(uint32(u)) | (uint64(c) << 32)
}

// Scheme selects the collision resolution technique, matching the -r CLI
// flag (SH back-end only).
type Scheme int

const (
	Cuckoo Scheme = iota
	Double
)

func (s Scheme) String() string {
	if s == Double {
		return "double"
	}
	return "cuckoo"
}

// Stats reports back-end-agnostic occupancy for the benchmark driver's
// stats line.
type Stats struct {
	Scheme     Scheme
	Size       int
	Occupied   int
	Grows      int
	LoadFactor float64
}

// Table is the capability surface the tree package's HashedEdges back-end
// depends on.
type Table interface {
	// Lookup returns the target stored for (u,c), or ok=false on a miss.
	Lookup(u int32, c symtext.Sym) (target int32, ok bool)
	// Insert adds a new (u,c)->target mapping. It is an error to insert a
	// key that is already present; use Update to change an existing
	// mapping's target (split_edge does this).
	Insert(u int32, c symtext.Sym, target int32) error
	// Update changes the target of an existing (u,c) key.
	Update(u int32, c symtext.Sym, target int32) error
	// Delete removes (u,c). It is a no-op, not an error, if absent.
	Delete(u int32, c symtext.Sym)
	Stats() Stats
}

// defaultLoadFactor is the double-hashing grow threshold (spec: "default
// 0.5 is safe").
const defaultLoadFactor = 0.5

// defaultCuckooFuncs is the original driver's default Cuckoo function
// count (-c default 8, spec section 6).
const defaultCuckooFuncs = 8

// New builds a Table for the requested scheme. initialSize is the
// requested starting table size (rounded up to the scheme's prime
// constraints); cuckooFuncs is only consulted for Cuckoo and defaults to 8
// when <2. rng seeds both the Cuckoo affine parameters and the table's
// internal next_prime Miller-Rabin rounds, so builds are deterministic for
// a fixed seed (spec section 5, "Determinism").
func New(scheme Scheme, resolver Resolver, initialSize int, cuckooFuncs int, rng *rand.Rand) Table {
	switch scheme {
	case Double:
		return newDoubleTable(resolver, initialSize, rng)
	default:
		if cuckooFuncs < 2 {
			cuckooFuncs = defaultCuckooFuncs
		}
		return newCuckooTable(resolver, initialSize, cuckooFuncs, rng)
	}
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("edgehash: invariant violation: "+format, args...)
}

// nextPrime wraps internal/primes.NextPrime for the table sizing policies
// below (double hashing's M, Cuckoo's per-partition sizes).
func nextPrime(n uint64, rng *rand.Rand) uint64 {
	return primes.NextPrime(n, rng)
}
