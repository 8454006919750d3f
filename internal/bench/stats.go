package bench

import (
	"fmt"

	"github.com/rs/zerolog"
)

// humanSize renders bytes using the same binary-prefix ladder as the
// original driver's print_human_readable_size, simplified to plain
// float64 division since Go's logging doesn't need the original's
// fixed-point rounding-for-C-locale care.
func humanSize(bytes uint64) string {
	const unit = 1024.0
	prefixes := []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

	size := float64(bytes)
	i := 0
	for size >= unit && i < len(prefixes)-1 {
		size /= unit
		i++
	}
	return fmt.Sprintf("%.2f %s", size, prefixes[i])
}

// PrintStats logs the suffix tree statistics block the original driver
// prints unconditionally (st_print_stats in stree_common.h); this port
// gates it behind the CLI's -l/--log level being debug or lower instead, per SPEC_FULL.md's
// supplemented-features decision.
func PrintStats(log zerolog.Logger, r *Result) {
	event := log.Info().
		Str("algorithm", r.Algorithm.String()).
		Str("backend", r.Backend).
		Int("text_bytes", r.TextBytes).
		Int("branches", r.BranchCount).
		Int("leaves", r.LeafCount).
		Str("construction", r.ConstructDuration.String()).
		Str("heap_before", humanSize(r.HeapBeforeBytes)).
		Str("heap_after", humanSize(r.HeapAfterBytes))

	if r.TraverseDuration > 0 {
		event = event.Str("traversal", r.TraverseDuration.String())
	}

	if r.HashStats != nil {
		event = event.
			Str("hash_scheme", r.HashStats.Scheme.String()).
			Int("hash_size", r.HashStats.Size).
			Int("hash_occupied", r.HashStats.Occupied).
			Int("hash_grows", r.HashStats.Grows).
			Float64("hash_load_factor", r.HashStats.LoadFactor)
	}

	event.Msg("suffix tree statistics")
}
