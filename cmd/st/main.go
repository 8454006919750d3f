package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/suffixtreelab/stc/internal/bench"
	"github.com/suffixtreelab/stc/symtext"
)

func main() {
	os.Exit(run())
}

// run contains everything main would otherwise do inline, so it can
// return an exit code instead of calling os.Exit directly (spec.md §6:
// "zero on success; non-zero on any error").
func run() int {
	var f flags
	var help bool
	pflag.BoolVarP(&help, "help", "h", false, "show usage and exit")
	pflag.StringVarP(&f.backend, "type", "t", "SL", "storage back-end: SL, SH, or LA (out of core)")
	pflag.StringVarP(&f.algorithm, "algorithm", "a", "M", "algorithm letter {A,M,B,U,P} plus optional B suffix")
	pflag.StringVarP(&f.benchKind, "bench", "b", "C", "benchmark kind: C (construct-delete) or T (construct-traverse-delete)")
	pflag.IntVarP(&f.prefixLen, "prefix", "p", 0, "PWOTD prefix length (LA only, out of core)")
	pflag.StringVarP(&f.scheme, "resolution", "r", "C", "hash collision resolution: C (Cuckoo) or D (double)")
	pflag.IntVarP(&f.cuckooN, "cuckoo-functions", "c", 0, "number of Cuckoo functions (SH+Cuckoo only, >=2, default 8)")
	pflag.BoolVarP(&f.simple, "simple", "s", false, "simple traversal format (elide node ids)")
	pflag.StringVarP(&f.dumpPath, "dump", "d", "", "write traversal to file instead of stdout (T benchmark only)")
	pflag.StringVarP(&f.inputEnc, "input-encoding", "e", "utf-8", "input file byte encoding")
	pflag.StringVarP(&f.internEnc, "internal-encoding", "i", "ascii", "internal symbol encoding: ascii or utf16")
	pflag.StringVarP(&f.logLevel, "log", "l", "info", "log output level")
	pflag.Uint64VarP(&f.seed, "seed", "z", 1, "seed for the hash back-end's deterministic randomness")
	pflag.Parse()

	if help {
		fmt.Fprintln(os.Stderr, "Usage: st -t <type> -a <algorithm>[B] -b <bench> [options] <filename>")
		pflag.PrintDefaults()
		return 0
	}

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(f.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "st: configuration error: bad -l log level %q: %v\n", f.logLevel, err)
		return 1
	}
	log = log.Level(level)

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: st -t <type> -a <algorithm>[B] -b <bench> [options] <filename>")
		return 1
	}
	filename := pflag.Arg(0)

	cfg, err := f.resolve()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		log.Error().Err(err).Str("file", filename).Msg("could not read input file")
		return 1
	}

	text, err := symtext.Load(raw, f.inputEnc, symtext.ParseEncoding(f.internEnc))
	if err != nil {
		log.Error().Err(err).Msg("could not load text")
		return 1
	}

	result, err := bench.Run(cfg, text, log)
	if err != nil {
		log.Error().Err(err).Msg("benchmark run failed")
		return 1
	}

	if level <= zerolog.DebugLevel {
		bench.PrintStats(log, result)
	}

	return 0
}
