// Package primes provides the modular-arithmetic and primality-testing
// primitives consumed by the Cuckoo/double hashing back-end: overflow-safe
// modular multiplication and a Miller-Rabin based next_prime.
//
// No third-party library in the retrieval pack implements Miller-Rabin
// witness search or 64-bit-overflow-safe modular multiplication as a
// reusable component, so this stays on the standard library (math/bits,
// math/rand/v2); see DESIGN.md.
package primes

import (
	"math/bits"
	"math/rand/v2"
)

// MulMod computes (a*b) mod m without overflowing 64 bits, using the
// 128-bit intermediate product from math/bits.Mul64 followed by
// math/bits.Div64.
func MulMod(a, b, m uint64) uint64 {
	if m == 0 {
		panic("primes: MulMod with modulus 0")
	}
	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return lo % m
	}
	_, rem := bits.Div64(hi%m, lo, m)
	return rem
}

// PowMod computes base^exp mod m using binary exponentiation built on
// MulMod.
func PowMod(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = MulMod(result, base, m)
		}
		exp >>= 1
		base = MulMod(base, base, m)
	}
	return result
}

// mrWitness performs one Miller-Rabin round for base a against n, given the
// n-1 = 2^s * d decomposition. It returns true if a is a witness to n's
// compositeness.
func mrWitness(n, d uint64, s int, a uint64) bool {
	x := PowMod(a, d, n)
	if x == 1 || x == n-1 {
		return false
	}
	for i := 0; i < s-1; i++ {
		x = MulMod(x, x, n)
		if x == n-1 {
			return false
		}
	}
	return true
}

// MRTest runs r independent Miller-Rabin rounds against n with bases drawn
// from rng, and returns a witness to n's compositeness, or 0 if none was
// found in r rounds (false-positive probability <= 4^-r).
//
// n must be >= 3 and odd; MRTest does not special-case even n or small n
// itself, since next_prime always calls it on odd candidates >= 3 and
// handles the trivial primes directly.
func MRTest(n uint64, r int, rng *rand.Rand) uint64 {
	d := n - 1
	s := 0
	for d%2 == 0 {
		d /= 2
		s++
	}
	for i := 0; i < r; i++ {
		// a in [2, n-1]
		a := uint64(2)
		if n > 4 {
			a += rng.Uint64N(n - 3)
		}
		if mrWitness(n, d, s, a) {
			return a
		}
	}
	return 0
}

// NextPrime returns the smallest prime strictly greater than n, verified
// with 100 Miller-Rabin rounds (false-positive probability <= 4^-100).
// rng supplies the witness bases; pass a seeded *rand.Rand for
// deterministic builds.
func NextPrime(n uint64, rng *rand.Rand) uint64 {
	const rounds = 100

	if n < 2 {
		return 2
	}
	if n == 2 {
		return 3
	}

	candidate := n + 1
	if candidate%2 == 0 {
		candidate++
	}
	for {
		if isSmallPrime(candidate) {
			return candidate
		}
		if candidate > 3 && MRTest(candidate, rounds, rng) == 0 {
			return candidate
		}
		candidate += 2
	}
}

// isSmallPrime shortcuts trial division for tiny candidates so NextPrime(2)
// and NextPrime(3) don't need a Miller-Rabin round with no valid base range.
func isSmallPrime(n uint64) bool {
	switch {
	case n < 2:
		return false
	case n < 4:
		return true
	case n%2 == 0:
		return false
	}
	for d := uint64(3); d*d <= n && d < 1000; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return n < 1000*1000
}
