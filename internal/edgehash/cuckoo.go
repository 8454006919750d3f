package edgehash

import (
	"math"
	"math/rand/v2"

	"github.com/gammazero/deque"

	"github.com/suffixtreelab/stc/internal/primes"
	"github.com/suffixtreelab/stc/symtext"
)

// cuckooP is the largest prime that fits in a 32-bit unsigned integer,
// used as the modulus for the affine hash family (spec section 4.3).
const cuckooP = 4294967291

type cuckooSlot struct {
	source int32
	target int32
}

// cuckooItem is a key/target pair in flight during insertion or rebuild;
// unlike the stored slot, it carries the symbol explicitly so the eviction
// chain doesn't need to re-resolve it from the tree on every hop.
type cuckooItem struct {
	source int32
	sym    symtext.Sym
	target int32
}

type cuckooTable struct {
	resolver Resolver
	rng      *rand.Rand

	k       int
	sizes   []uint64
	offsets []uint64
	a       []uint64
	b       []uint64

	slots    []cuckooSlot
	funcOf   []int8 // which function currently owns each occupied slot
	occupied int
	grows    int
}

func newCuckooTable(resolver Resolver, initialSize, k int, rng *rand.Rand) *cuckooTable {
	t := &cuckooTable{resolver: resolver, rng: rng, k: k}
	t.setPartitions(initialPartitionSizes(initialSize, k, rng))
	t.randomizeParams()
	t.allocate()
	return t
}

// initialPartitionSizes mirrors the original driver's allocation: the
// first partition is the next prime strictly above size/k, and every
// subsequent partition is the next prime strictly above the previous
// partition's size.
func initialPartitionSizes(size, k int, rng *rand.Rand) []uint64 {
	if k < 2 {
		k = defaultCuckooFuncs
	}
	base := uint64(size) / uint64(k)
	if base == 0 {
		base = 1
	}
	sizes := make([]uint64, k)
	sizes[0] = nextPrime(base, rng)
	for i := 1; i < k; i++ {
		sizes[i] = nextPrime(sizes[i-1], rng)
	}
	return sizes
}

func (t *cuckooTable) setPartitions(sizes []uint64) {
	t.k = len(sizes)
	t.sizes = sizes
	t.offsets = make([]uint64, t.k)
	for i := 1; i < t.k; i++ {
		t.offsets[i] = t.offsets[i-1] + t.sizes[i-1]
	}
}

func (t *cuckooTable) randomizeParams() {
	t.a = make([]uint64, t.k)
	t.b = make([]uint64, t.k)
	for i := 0; i < t.k; i++ {
		// 1 <= a_i < P-1, 0 <= b_i < P
		t.a[i] = 1 + t.rng.Uint64N(cuckooP-2)
		t.b[i] = t.rng.Uint64N(cuckooP)
	}
}

func (t *cuckooTable) allocate() {
	total := t.totalSize()
	t.slots = make([]cuckooSlot, total)
	t.funcOf = make([]int8, total)
	t.occupied = 0
}

func (t *cuckooTable) totalSize() uint64 {
	var total uint64
	for _, s := range t.sizes {
		total += s
	}
	return total
}

// hashAt computes h_i(u,c) = (((a_i*key + b_i) mod P) mod s_i) + o_i,
// using MulMod to keep a_i*key from overflowing 64 bits.
func (t *cuckooTable) hashAt(i int, u int32, c symtext.Sym) int {
	keyModP := key(u, c) % cuckooP
	h := primes.MulMod(t.a[i], keyModP, cuckooP)
	h = (h + t.b[i]) % cuckooP
	return int(t.offsets[i] + h%t.sizes[i])
}

func (t *cuckooTable) Lookup(u int32, c symtext.Sym) (int32, bool) {
	for i := 0; i < t.k; i++ {
		idx := t.hashAt(i, u, c)
		slot := t.slots[idx]
		if slot.source == u && t.resolver.FirstSymbol(u, slot.target) == c {
			return slot.target, true
		}
	}
	return 0, false
}

func (t *cuckooTable) Insert(u int32, c symtext.Sym, target int32) error {
	if _, ok := t.Lookup(u, c); ok {
		return invariantf("duplicate insert for existing edge (%d,%d)", u, c)
	}
	return t.insertItem(cuckooItem{source: u, sym: c, target: target})
}

func (t *cuckooTable) Update(u int32, c symtext.Sym, target int32) error {
	for i := 0; i < t.k; i++ {
		idx := t.hashAt(i, u, c)
		slot := t.slots[idx]
		if slot.source == u && t.resolver.FirstSymbol(u, slot.target) == c {
			t.slots[idx].target = target
			return nil
		}
	}
	return ErrKeyNotFound
}

func (t *cuckooTable) Delete(u int32, c symtext.Sym) {
	for i := 0; i < t.k; i++ {
		idx := t.hashAt(i, u, c)
		slot := t.slots[idx]
		if slot.source == u && t.resolver.FirstSymbol(u, slot.target) == c {
			t.slots[idx] = cuckooSlot{}
			t.funcOf[idx] = 0
			t.occupied--
			return
		}
	}
}

func (t *cuckooTable) Stats() Stats {
	total := t.totalSize()
	return Stats{
		Scheme:     Cuckoo,
		Size:       int(total),
		Occupied:   t.occupied,
		Grows:      t.grows,
		LoadFactor: float64(t.occupied) / float64(total),
	}
}

const maxCuckooRebuilds = 6

func (t *cuckooTable) insertItem(item cuckooItem) error {
	if t.tryInsert(item) {
		return nil
	}
	for attempt := 0; attempt < maxCuckooRebuilds; attempt++ {
		if t.rebuildWith(item, attempt) {
			return nil
		}
	}
	return ErrCuckooNotConverged
}

// evictionBound is the spec's "typical ~ 8*log2(total_size)" retry bound
// for a single insertion's eviction chain.
func (t *cuckooTable) evictionBound() int {
	total := float64(t.totalSize())
	if total < 2 {
		return 8
	}
	return int(8*math.Log2(total)) + 1
}

// tryInsert walks the eviction chain for item, cycling through functions
// as each displaced occupant is relocated, using a deque as the explicit
// worklist. It returns false if the bound is exceeded without placing
// everything, after undoing every move of the chain so the table holds
// exactly what it held before the call.
func (t *cuckooTable) tryInsert(item cuckooItem) bool {
	bound := t.evictionBound()

	type undo struct {
		idx  int
		slot cuckooSlot
		fn   int8
	}
	var log []undo

	chain := deque.New(1)
	chain.PushBack(item)
	nextFunc := 0

	for step := 0; step < bound && chain.Len() > 0; step++ {
		cur := chain.PopFront().(cuckooItem)
		idx := t.hashAt(nextFunc, cur.source, cur.sym)
		occupant := t.slots[idx]
		log = append(log, undo{idx: idx, slot: occupant, fn: t.funcOf[idx]})

		t.slots[idx] = cuckooSlot{source: cur.source, target: cur.target}
		t.funcOf[idx] = int8(nextFunc)

		if occupant.source == 0 {
			t.occupied++
			return true
		}

		evictedSym := t.resolver.FirstSymbol(occupant.source, occupant.target)
		chain.PushBack(cuckooItem{source: occupant.source, sym: evictedSym, target: occupant.target})
		nextFunc = (int(t.funcOf[idx]) + 1) % t.k
	}
	for i := len(log) - 1; i >= 0; i-- {
		t.slots[log[i].idx] = log[i].slot
		t.funcOf[log[i].idx] = log[i].fn
	}
	return false
}

// rebuildWith regenerates fresh random affine parameters (enlarging
// partitions a bit more with each failed attempt) and reinserts every
// live key plus extra from scratch. If an attempt fails, the table is put
// back exactly as it was before the call.
func (t *cuckooTable) rebuildWith(extra cuckooItem, attempt int) bool {
	saved := *t
	existing := t.allItems()

	growth := 1.0 + 0.25*float64(attempt+1)
	newSizes := make([]uint64, t.k)
	for i, s := range t.sizes {
		newSizes[i] = nextPrime(uint64(float64(s)*growth), t.rng)
	}

	t.setPartitions(newSizes)
	t.randomizeParams()
	t.allocate()
	t.grows++

	all := append(existing, extra)
	for _, it := range all {
		if !t.tryInsert(it) {
			*t = saved
			return false
		}
	}
	return true
}

func (t *cuckooTable) allItems() []cuckooItem {
	items := make([]cuckooItem, 0, t.occupied)
	for _, s := range t.slots {
		if s.source == 0 {
			continue
		}
		sym := t.resolver.FirstSymbol(s.source, s.target)
		items = append(items, cuckooItem{source: s.source, sym: sym, target: s.target})
	}
	return items
}
