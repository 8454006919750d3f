package symtext

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrEmptyAlphabetOverlap is returned when the input contains a byte/rune
// value that collides with the encoding's terminator.
var ErrEmptyAlphabetOverlap = errors.New("symtext: input symbol collides with terminator")

// Text is the 1-based layout required by the construction core:
//
//	Text[0]        blank sentinel
//	Text[1..N]     the real symbols
//	Text[N+1]      TERMINATOR
//	Text[N+2]      out-of-band null (0)
//
// N is the number of real symbols (excluding the terminator).
type Text struct {
	Sym []Sym
	N   int
	Enc Encoding
}

// At returns Text.Sym[p], or 0 if p is out of the allocated range. The
// construction core relies on index 0 and N+2 always being safely
// addressable zero/terminator values, never on this fallback.
func (t *Text) At(p int) Sym {
	if p < 0 || p >= len(t.Sym) {
		return 0
	}
	return t.Sym[p]
}

// Load transcodes raw into the internal 1-based layout. inputEncoding names
// the byte-stream encoding of raw but is not consulted: raw is read as
// UTF-8 for UTF16 and byte by byte for ASCII. internalEncoding selects the
// fixed-width Sym space the core operates over.
//
// This function is the explicit text-ingestion boundary called out as an
// external collaborator by the core design: it is deliberately the only
// place in the module that looks at raw bytes.
func Load(raw []byte, inputEncoding string, internalEncoding Encoding) (*Text, error) {
	var symbols []Sym

	switch internalEncoding {
	case UTF16:
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("symtext: input is not valid UTF-8 for internal encoding %s", internalEncoding)
		}
		units := utf16.Encode([]rune(string(raw)))
		symbols = make([]Sym, len(units))
		for i, u := range units {
			symbols[i] = Sym(u)
		}
	default: // ASCII
		symbols = make([]Sym, len(raw))
		for i, b := range raw {
			symbols[i] = Sym(b)
		}
	}

	term := internalEncoding.Terminator()
	for _, s := range symbols {
		if s >= term {
			return nil, fmt.Errorf("%w: symbol %d under encoding %s", ErrEmptyAlphabetOverlap, s, internalEncoding)
		}
	}

	n := len(symbols)
	buf := make([]Sym, n+3)
	copy(buf[1:], symbols)
	buf[n+1] = term
	buf[n+2] = 0

	return &Text{Sym: buf, N: n, Enc: internalEncoding}, nil
}

// LoadString is a convenience wrapper around Load for in-process callers
// (tests, benchmarks) that already hold a Go string rather than a raw file.
func LoadString(s string, internalEncoding Encoding) (*Text, error) {
	return Load([]byte(s), "utf-8", internalEncoding)
}
