package bench

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/suffixtreelab/stc/internal/build"
	"github.com/suffixtreelab/stc/internal/edgehash"
	"github.com/suffixtreelab/stc/internal/stree"
	"github.com/suffixtreelab/stc/symtext"
)

// Result is the set of measurements a single run reports. HashStats is
// nil for LinkedChildren backends.
type Result struct {
	Algorithm build.Algorithm
	Backend   string
	TextBytes int

	BranchCount int
	LeafCount   int

	ConstructDuration time.Duration
	TraverseDuration  time.Duration

	HeapBeforeBytes uint64
	HeapAfterBytes  uint64

	HashStats *edgehash.Stats
}

// Run executes cfg against text, logging progress through log the way
// optakt-flow-dps/cmd/flow-dps-indexer/main.go logs around its mapper
// run, and returns the collected measurements.
func Run(cfg Config, text *symtext.Text, log zerolog.Logger) (*Result, error) {
	backend := cfg.NewBackend()
	tr := stree.New(text, backend)

	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	log.Info().
		Str("algorithm", cfg.Algorithm.String()).
		Str("backend", backend.Name()).
		Int("text_bytes", text.N).
		Msg("construction starting")

	start := time.Now()
	if err := build.Run(tr, cfg.Algorithm); err != nil {
		return nil, fmt.Errorf("bench: construction failed: %w", err)
	}
	constructDuration := time.Since(start)

	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	result := &Result{
		Algorithm:         cfg.Algorithm,
		Backend:           backend.Name(),
		TextBytes:         text.N,
		BranchCount:       tr.BranchCount(),
		ConstructDuration: constructDuration,
		HeapBeforeBytes:   before.HeapAlloc,
		HeapAfterBytes:    after.HeapAlloc,
	}

	stree.Walk(tr, func(_, child stree.NodeId) {
		if child.IsLeaf() {
			result.LeafCount++
		}
	})

	if hb, ok := backend.(interface{ Stats() edgehash.Stats }); ok {
		stats := hb.Stats()
		result.HashStats = &stats
	}

	log.Info().
		Dur("construction", constructDuration).
		Int("branches", result.BranchCount).
		Int("leaves", result.LeafCount).
		Msg("construction finished")

	if cfg.Kind == ConstructTraverseDelete {
		w, closeW, err := cfg.dumpWriter()
		if err != nil {
			return nil, fmt.Errorf("bench: opening traversal output: %w", err)
		}
		defer closeW()

		start = time.Now()
		if err := dumpTraversal(tr, w, cfg.SimpleFormat); err != nil {
			return nil, fmt.Errorf("bench: traversal failed: %w", err)
		}
		result.TraverseDuration = time.Since(start)

		log.Info().Dur("traversal", result.TraverseDuration).Msg("traversal finished")
	}

	// "Delete": there is no explicit free in a garbage-collected runtime,
	// so the benchmark's delete phase is a GC cycle instead, run while tr
	// and backend are still the only references to their arenas (spec.md
	// §6's construct-then-delete benchmark kind).
	runtime.GC()

	return result, nil
}

func (c Config) dumpWriter() (io.Writer, func(), error) {
	if c.DumpPath == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(c.DumpPath)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// dumpTraversal writes the begin/end-delimited edge traversal spec.md §6
// describes ("Begin/end lines delimit the traversal"); the edge grammar
// itself is stree.FormatEdge, the one part of the formatter the
// specification pins down exactly.
func dumpTraversal(tr *stree.Tree, w io.Writer, simple bool) error {
	if _, err := fmt.Fprintln(w, "=== begin traversal ==="); err != nil {
		return err
	}
	var walkErr error
	stree.Walk(tr, func(parent, child stree.NodeId) {
		if walkErr != nil {
			return
		}
		_, walkErr = fmt.Fprintln(w, stree.FormatEdge(tr, parent, child, simple))
	})
	if walkErr != nil {
		return walkErr
	}
	_, err := fmt.Fprintln(w, "=== end traversal ===")
	return err
}
