package bench_test

import (
	"io"
	"math/rand/v2"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/suffixtreelab/stc/internal/bench"
	"github.com/suffixtreelab/stc/internal/build"
	"github.com/suffixtreelab/stc/internal/edgehash"
	"github.com/suffixtreelab/stc/symtext"
)

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestRunConstructDeleteReportsCounts(t *testing.T) {
	text, err := symtext.LoadString("mississippi", symtext.ASCII)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	cfg := bench.Config{
		Kind:      bench.ConstructDelete,
		Algorithm: build.McCreightAlgorithm,
		Hashed:    false,
	}

	result, err := bench.Run(cfg, text, discardLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.LeafCount != len("mississippi")+1 {
		t.Fatalf("LeafCount = %d, want %d", result.LeafCount, len("mississippi")+1)
	}
	if result.HashStats != nil {
		t.Fatalf("HashStats should be nil for LinkedChildren, got %+v", result.HashStats)
	}
}

func TestRunConstructTraverseDeleteWritesDumpFile(t *testing.T) {
	text, err := symtext.LoadString("abab", symtext.ASCII)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	dumpPath := t.TempDir() + "/traversal.txt"
	cfg := bench.Config{
		Kind:        bench.ConstructTraverseDelete,
		Algorithm:   build.UkkonenAlgorithm,
		Hashed:      true,
		Scheme:      edgehash.Cuckoo,
		InitialSize: 16,
		CuckooFuncs: 4,
		Rng:         rand.New(rand.NewPCG(1, 2)),
		DumpPath:    dumpPath,
	}

	result, err := bench.Run(cfg, text, discardLogger())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.HashStats == nil {
		t.Fatal("HashStats should be populated for HashedEdges")
	}

	raw, err := os.ReadFile(dumpPath)
	if err != nil {
		t.Fatalf("reading dump file: %v", err)
	}
	contents := string(raw)
	if !strings.HasPrefix(contents, "=== begin traversal ===\n") {
		t.Fatalf("dump file missing begin marker: %q", contents)
	}
	if !strings.HasSuffix(contents, "=== end traversal ===\n") {
		t.Fatalf("dump file missing end marker: %q", contents)
	}
}
