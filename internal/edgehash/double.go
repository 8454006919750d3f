package edgehash

import (
	"math/rand/v2"

	"github.com/suffixtreelab/stc/symtext"
)

// doubleSlot is one cell of the open-addressed table. An empty slot has
// source==0 && target==0. A tombstone (left behind by Delete) has
// source==0 && target!=0, and is passed through by Lookup but reused by
// Insert (spec section 4.3).
type doubleSlot struct {
	source int32
	target int32
}

type doubleTable struct {
	resolver Resolver
	rng      *rand.Rand

	m          uint64 // phf_max, current table size (prime)
	slots      []doubleSlot
	occupied   int
	tombstones int
	grows      int
}

func newDoubleTable(resolver Resolver, initialSize int, rng *rand.Rand) *doubleTable {
	if initialSize < 7 {
		initialSize = 7
	}
	m := nextPrime(uint64(initialSize), rng)
	return &doubleTable{
		resolver: resolver,
		rng:      rng,
		m:        m,
		slots:    make([]doubleSlot, m),
	}
}

// h1/h2 implement spec section 4.3's double-hashing probe family.
func (t *doubleTable) h1(k uint64) uint64 { return k % t.m }
func (t *doubleTable) h2(k uint64) uint64 { return (k % (t.m - 2)) + 1 }

// probeState is the outcome of scanning the probe sequence for (u,c).
type probeState struct {
	matchIdx    int // >=0 if an existing (u,c) entry was found
	firstFreeIdx int // >=0 if an empty or tombstone slot was seen (usable for insert)
	tableFull   bool
}

func (t *doubleTable) probe(u int32, c symtext.Sym) probeState {
	k := key(u, c)
	h1, h2 := t.h1(k), t.h2(k)
	st := probeState{matchIdx: -1, firstFreeIdx: -1}

	for i := uint64(0); i < t.m; i++ {
		idx := (h1 + i*h2) % t.m
		slot := t.slots[idx]

		switch {
		case slot.source == 0 && slot.target == 0: // empty: lookup miss, insert may stop here
			if st.firstFreeIdx < 0 {
				st.firstFreeIdx = int(idx)
			}
			return st
		case slot.source == 0 && slot.target != 0: // tombstone: keep scanning, but remember slot
			if st.firstFreeIdx < 0 {
				st.firstFreeIdx = int(idx)
			}
		case slot.source == u && t.resolver.FirstSymbol(u, slot.target) == c:
			st.matchIdx = int(idx)
			return st
		}
	}
	st.tableFull = true
	return st
}

func (t *doubleTable) Lookup(u int32, c symtext.Sym) (int32, bool) {
	st := t.probe(u, c)
	if st.matchIdx < 0 {
		return 0, false
	}
	return t.slots[st.matchIdx].target, true
}

func (t *doubleTable) Insert(u int32, c symtext.Sym, target int32) error {
	st := t.probe(u, c)
	if st.matchIdx >= 0 {
		// The spec allows overwrite-on-duplicate-insert only as an update
		// path; a genuine duplicate insert indicates a builder bug.
		return invariantf("duplicate insert for existing edge (%d,%d)", u, c)
	}
	if st.firstFreeIdx < 0 {
		if st.tableFull {
			return ErrTableFull
		}
		return ErrTableFull
	}

	wasTombstone := t.slots[st.firstFreeIdx].target != 0
	t.slots[st.firstFreeIdx] = doubleSlot{source: u, target: target}
	t.occupied++
	if wasTombstone {
		t.tombstones--
	}

	if t.loadFactor() > defaultLoadFactor {
		t.grow(t.m * 2)
	}
	return nil
}

func (t *doubleTable) Update(u int32, c symtext.Sym, target int32) error {
	st := t.probe(u, c)
	if st.matchIdx < 0 {
		return ErrKeyNotFound
	}
	t.slots[st.matchIdx].target = target
	return nil
}

func (t *doubleTable) Delete(u int32, c symtext.Sym) {
	st := t.probe(u, c)
	if st.matchIdx < 0 {
		return
	}
	// Tombstone: source=0, target left non-zero so it stays distinguishable
	// from a true empty slot.
	t.slots[st.matchIdx] = doubleSlot{source: 0, target: -1}
	t.occupied--
	t.tombstones++
}

func (t *doubleTable) loadFactor() float64 {
	return float64(t.occupied+t.tombstones) / float64(t.m)
}

func (t *doubleTable) Stats() Stats {
	return Stats{
		Scheme:     Double,
		Size:       int(t.m),
		Occupied:   t.occupied,
		Grows:      t.grows,
		LoadFactor: t.loadFactor(),
	}
}

// grow rehashes every occupied entry into a fresh table of at least
// desired cells, sized up to the next prime (spec section 4.3).
func (t *doubleTable) grow(desired uint64) {
	old := t.slots
	t.m = nextPrime(desired, t.rng)
	t.slots = make([]doubleSlot, t.m)
	t.occupied = 0
	t.tombstones = 0
	t.grows++

	for _, slot := range old {
		if slot.source == 0 {
			continue // empty or tombstone, dropped on rehash
		}
		c := t.resolver.FirstSymbol(slot.source, slot.target)
		st := t.probe(slot.source, c)
		// st.firstFreeIdx is guaranteed valid: the new table is larger and
		// was just allocated empty.
		t.slots[st.firstFreeIdx] = slot
		t.occupied++
	}
}
