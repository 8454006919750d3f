// Package symtext holds the fixed-width symbol model and the 1-based text
// layout consumed by the suffix tree construction core. It is the text
// ingestion boundary: everything past Load is internal symbols, never raw
// bytes.
package symtext

// Sym is an internal alphabet symbol. Its ordinal space is wide enough to
// hold any supported Encoding's terminator without overflow.
type Sym uint32

// Encoding selects how input bytes are mapped onto Sym values, and in turn
// where the terminator sits relative to the alphabet.
type Encoding int

const (
	// ASCII treats each input byte as one symbol (0..255); the terminator
	// is 256, strictly above every legal byte value.
	ASCII Encoding = iota
	// UTF16 treats the input as a sequence of UTF-16 code units (after
	// transcoding from UTF-8); the terminator is 65536.
	UTF16
)

// Terminator returns the distinguished symbol for enc, strictly greater
// than every symbol enc can produce.
func (enc Encoding) Terminator() Sym {
	switch enc {
	case UTF16:
		return 1 << 16
	default:
		return 1 << 8
	}
}

// String implements fmt.Stringer for diagnostics and flag help text.
func (enc Encoding) String() string {
	switch enc {
	case UTF16:
		return "utf16"
	default:
		return "ascii"
	}
}

// ParseEncoding parses the -e/-i CLI encoding names. Unrecognized names
// default to ASCII, matching the original driver's permissive behavior for
// this out-of-core concern.
func ParseEncoding(name string) Encoding {
	switch name {
	case "utf16", "UTF-16", "UTF16":
		return UTF16
	default:
		return ASCII
	}
}

// Render returns a human-readable form of one symbol, for dump output. The
// terminator always prints as "$"; everything else prints as its rune.
func (enc Encoding) Render(sym Sym) string {
	if sym == enc.Terminator() {
		return "$"
	}
	return string(rune(sym))
}
