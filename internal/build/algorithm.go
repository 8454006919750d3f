package build

import (
	"errors"
	"fmt"

	"github.com/suffixtreelab/stc/internal/stree"
)

// Algorithm selects which construction driver builds a tree, matching the
// -a CLI letters (PWOTD is named for completeness but is out of core:
// running it is always a configuration error, spec section 1's Non-goals).
type Algorithm int

const (
	SimpleMcCreightAlgorithm Algorithm = iota
	McCreightAlgorithm
	SimpleUkkonenAlgorithm
	UkkonenAlgorithm
	PWOTDAlgorithm
)

func (a Algorithm) String() string {
	switch a {
	case SimpleMcCreightAlgorithm:
		return "simple-mccreight"
	case McCreightAlgorithm:
		return "mccreight"
	case SimpleUkkonenAlgorithm:
		return "simple-ukkonen"
	case UkkonenAlgorithm:
		return "ukkonen"
	case PWOTDAlgorithm:
		return "pwotd"
	default:
		return "unknown"
	}
}

// SupportsBackwardPointer reports whether the -a...B suffix is a legal
// combination for a (spec section 6: "compatible only with M and U").
func (a Algorithm) SupportsBackwardPointer() bool {
	return a == McCreightAlgorithm || a == UkkonenAlgorithm
}

// ErrOutOfCore marks an algorithm this module deliberately does not
// implement (PWOTD is an external collaborator per spec section 1).
var ErrOutOfCore = errors.New("build: algorithm is out of core scope")

// Run builds tr with the chosen algorithm. The backend already encodes
// whether parent pointers (the "B" variant) are available; Run itself
// only dispatches on the algorithm letter.
func Run(tr *stree.Tree, algo Algorithm) error {
	switch algo {
	case SimpleMcCreightAlgorithm:
		return SimpleMcCreight(tr)
	case McCreightAlgorithm:
		return McCreight(tr)
	case SimpleUkkonenAlgorithm:
		return SimpleUkkonen(tr)
	case UkkonenAlgorithm:
		return Ukkonen(tr)
	case PWOTDAlgorithm:
		return fmt.Errorf("%w: PWOTD", ErrOutOfCore)
	default:
		return fmt.Errorf("build: unknown algorithm %d", int(algo))
	}
}
