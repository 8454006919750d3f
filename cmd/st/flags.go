package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/suffixtreelab/stc/internal/bench"
	"github.com/suffixtreelab/stc/internal/build"
	"github.com/suffixtreelab/stc/internal/edgehash"
)

// ErrConfiguration marks a fatal configuration error: a bad option
// argument, or an incompatible combination of options, detected before any
// build begins (spec.md §7).
type ErrConfiguration struct {
	err error
}

func (e *ErrConfiguration) Error() string { return "st: configuration error: " + e.err.Error() }
func (e *ErrConfiguration) Unwrap() error { return e.err }

func configErrorf(format string, args ...any) error {
	return &ErrConfiguration{err: fmt.Errorf(format, args...)}
}

// backendType is the -t flag's resolved value.
type backendType int

const (
	backendLinked backendType = iota
	backendHashed
	backendLinearArray
)

func parseBackendType(s string) (backendType, error) {
	switch s {
	case "SL":
		return backendLinked, nil
	case "SH":
		return backendHashed, nil
	case "LA":
		return backendLinearArray, nil
	default:
		return 0, configErrorf("-t: unrecognized storage back-end %q (want SL, SH or LA)", s)
	}
}

// parseAlgorithm splits the -a flag's letter plus optional trailing "B"
// (backward-pointer) suffix, per spec.md §6's "{A,M,B,U,P}[B]" grammar.
// The base letter B (simple-Ukkonen) and the backward-pointer suffix B are
// the same character in two different grammar positions; "-a B" alone is
// the algorithm, "-a MB"/"-a UB" is the base algorithm plus the suffix.
func parseAlgorithm(s string) (algo build.Algorithm, withBP bool, err error) {
	if s == "" {
		return 0, false, configErrorf("-a: missing algorithm letter")
	}

	base := s[0]
	rest := s[1:]

	switch base {
	case 'A':
		algo = build.SimpleMcCreightAlgorithm
	case 'M':
		algo = build.McCreightAlgorithm
	case 'B':
		algo = build.SimpleUkkonenAlgorithm
	case 'U':
		algo = build.UkkonenAlgorithm
	case 'P':
		algo = build.PWOTDAlgorithm
	default:
		return 0, false, configErrorf("-a: unrecognized algorithm letter %q (want A, M, B, U or P)", string(base))
	}

	switch rest {
	case "":
		withBP = false
	case "B":
		withBP = true
	default:
		return 0, false, configErrorf("-a: unrecognized suffix %q after algorithm letter", rest)
	}

	if withBP && !algo.SupportsBackwardPointer() {
		return 0, false, configErrorf("-a: backward-pointer suffix B is only compatible with M and U, got %q", s)
	}
	return algo, withBP, nil
}

func parseBenchKind(s string) (bench.Kind, error) {
	switch s {
	case "C":
		return bench.ConstructDelete, nil
	case "T":
		return bench.ConstructTraverseDelete, nil
	default:
		return 0, configErrorf("-b: unrecognized benchmark kind %q (want C or T)", s)
	}
}

func parseScheme(s string) (edgehash.Scheme, error) {
	switch s {
	case "C":
		return edgehash.Cuckoo, nil
	case "D":
		return edgehash.Double, nil
	default:
		return 0, configErrorf("-r: unrecognized hash scheme %q (want C or D)", s)
	}
}

// flags holds every raw -X value, before cross-field validation.
type flags struct {
	backend   string
	algorithm string
	benchKind string
	prefixLen int
	scheme    string
	cuckooN   int
	simple    bool
	dumpPath  string
	inputEnc  string
	internEnc string
	logLevel  string
	seed      uint64
}

// resolve validates flag combinations and builds a bench.Config, per
// spec.md §7's "configuration error...fatal before any build begins."
func (f flags) resolve() (bench.Config, error) {
	bt, err := parseBackendType(f.backend)
	if err != nil {
		return bench.Config{}, err
	}
	if bt == backendLinearArray {
		return bench.Config{}, configErrorf("-t LA: PWOTD/linear-array storage is out of core scope: %w", build.ErrOutOfCore)
	}

	algo, withBP, err := parseAlgorithm(f.algorithm)
	if err != nil {
		return bench.Config{}, err
	}
	if algo == build.PWOTDAlgorithm {
		return bench.Config{}, configErrorf("-a P: PWOTD is out of core scope: %w", build.ErrOutOfCore)
	}

	kind, err := parseBenchKind(f.benchKind)
	if err != nil {
		return bench.Config{}, err
	}

	cfg := bench.Config{
		Kind:         kind,
		Algorithm:    algo,
		Hashed:       bt == backendHashed,
		WithParent:   withBP,
		SimpleFormat: f.simple,
		DumpPath:     f.dumpPath,
		Rng:          rand.New(rand.NewPCG(f.seed, f.seed^0x9e3779b97f4a7c15)),
	}

	if cfg.DumpPath != "" && kind != bench.ConstructTraverseDelete {
		return bench.Config{}, configErrorf("-d is only meaningful with -b T")
	}

	if cfg.Hashed {
		scheme, err := parseScheme(f.scheme)
		if err != nil {
			return bench.Config{}, err
		}
		cfg.Scheme = scheme
		cfg.CuckooFuncs = f.cuckooN
		cfg.InitialSize = 64
	} else {
		if f.scheme != "C" {
			return bench.Config{}, configErrorf("-r is only meaningful with -t SH")
		}
		if f.cuckooN != 0 {
			return bench.Config{}, configErrorf("-c is only meaningful with -t SH -r C")
		}
	}

	if f.prefixLen != 0 {
		return bench.Config{}, configErrorf("-p is only meaningful with -a P (PWOTD), which is out of core scope")
	}

	return cfg, nil
}
