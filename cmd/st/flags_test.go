package main

import (
	"errors"
	"testing"

	"github.com/suffixtreelab/stc/internal/bench"
	"github.com/suffixtreelab/stc/internal/build"
	"github.com/suffixtreelab/stc/internal/edgehash"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in        string
		wantAlgo  build.Algorithm
		wantBP    bool
		wantError bool
	}{
		{"A", build.SimpleMcCreightAlgorithm, false, false},
		{"M", build.McCreightAlgorithm, false, false},
		{"MB", build.McCreightAlgorithm, true, false},
		{"B", build.SimpleUkkonenAlgorithm, false, false},
		{"U", build.UkkonenAlgorithm, false, false},
		{"UB", build.UkkonenAlgorithm, true, false},
		{"P", build.PWOTDAlgorithm, false, false},
		{"AB", 0, false, true}, // simple-McCreight has no BP variant
		{"BB", 0, false, true}, // simple-Ukkonen has no BP variant
		{"PB", 0, false, true}, // PWOTD has no BP variant
		{"X", 0, false, true},
		{"", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			algo, withBP, err := parseAlgorithm(tt.in)
			if tt.wantError {
				if err == nil {
					t.Fatalf("parseAlgorithm(%q): want error, got nil", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAlgorithm(%q): unexpected error: %v", tt.in, err)
			}
			if algo != tt.wantAlgo || withBP != tt.wantBP {
				t.Fatalf("parseAlgorithm(%q) = (%v, %v), want (%v, %v)", tt.in, algo, withBP, tt.wantAlgo, tt.wantBP)
			}
		})
	}
}

func TestParseBackendType(t *testing.T) {
	if _, err := parseBackendType("SL"); err != nil {
		t.Fatalf("SL: unexpected error: %v", err)
	}
	if _, err := parseBackendType("SH"); err != nil {
		t.Fatalf("SH: unexpected error: %v", err)
	}
	if _, err := parseBackendType("bogus"); err == nil {
		t.Fatal("bogus: want error, got nil")
	}
}

func TestResolveRejectsOutOfCoreOptions(t *testing.T) {
	cases := []flags{
		{backend: "LA", algorithm: "M", benchKind: "C", scheme: "C"},
		{backend: "SL", algorithm: "P", benchKind: "C", scheme: "C"},
		{backend: "SL", algorithm: "M", benchKind: "C", scheme: "C", prefixLen: 4},
	}
	for _, f := range cases {
		if _, err := f.resolve(); err == nil {
			t.Fatalf("%+v: want configuration error, got nil", f)
		}
	}
}

func TestResolveRejectsMismatchedBackwardPointer(t *testing.T) {
	f := flags{backend: "SL", algorithm: "AB", benchKind: "C", scheme: "C"}
	_, err := f.resolve()
	if err == nil {
		t.Fatal("want configuration error for -a AB, got nil")
	}
	var cfgErr *ErrConfiguration
	if !errors.As(err, &cfgErr) {
		t.Fatalf("want *ErrConfiguration, got %T", err)
	}
}

func TestResolveRejectsHashOnlyFlagsOnLinkedBackend(t *testing.T) {
	cases := []flags{
		{backend: "SL", algorithm: "M", benchKind: "C", scheme: "D"},
		{backend: "SL", algorithm: "M", benchKind: "C", scheme: "C", cuckooN: 4},
	}
	for _, f := range cases {
		if _, err := f.resolve(); err == nil {
			t.Fatalf("%+v: want configuration error, got nil", f)
		}
	}
}

func TestResolveRejectsDumpWithoutTraversalBenchmark(t *testing.T) {
	f := flags{backend: "SL", algorithm: "M", benchKind: "C", scheme: "C", dumpPath: "out.txt"}
	if _, err := f.resolve(); err == nil {
		t.Fatal("want configuration error for -d without -b T, got nil")
	}
}

func TestResolveBuildsHashedConfig(t *testing.T) {
	f := flags{backend: "SH", algorithm: "UB", benchKind: "T", scheme: "D", seed: 7}
	cfg, err := f.resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Hashed || !cfg.WithParent || cfg.Scheme != edgehash.Double || cfg.Algorithm != build.UkkonenAlgorithm {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Kind != bench.ConstructTraverseDelete {
		t.Fatalf("unexpected kind: %v", cfg.Kind)
	}
}
