package quant

import (
	"fmt"
	"strconv"
	"strings"
)

// alphabet is the fixed, ordered set of base-dimension letters. Declaration
// order here is the canonical order used by normalize, implode and the
// DerivedUnit term sort (spec §3, §4.1).
var alphabet = []byte{'M', 'L', 'A', 'D', 'C', 'T', 'I', 'H', 'N', 'J'}

// siBaseSymbols gives the canonical SI base unit symbol for each letter in
// alphabet, same indexing.
var siBaseSymbols = []string{"kg", "m", "rad", "bit", "sr", "s", "A", "K", "mol", "cd"}

var letterIndex = func() map[byte]int {
	m := make(map[byte]int, len(alphabet))
	for i, c := range alphabet {
		m[c] = i
	}
	return m
}()

// letterToIndex returns the position of c in the canonical alphabet, or
// false if c is not a recognized dimension letter.
func letterToIndex(c byte) (int, bool) {
	i, ok := letterIndex[c]
	return i, ok
}

// siBaseOf returns the canonical SI base unit symbol for a dimension
// letter, e.g. siBaseOf('M') == "kg".
func siBaseOf(letter byte) (string, bool) {
	i, ok := letterToIndex(letter)
	if !ok {
		return "", false
	}
	return siBaseSymbols[i], true
}

// isValidDimension reports whether s is a well-formed dimension code:
// every letter from alphabet, each optionally followed by a single signed
// nonzero digit, no letter repeated.
func isValidDimension(s string) bool {
	_, err := explode(s)
	return err == nil
}

// explode parses a dimension code into a letter->exponent map. Exponent 1
// is implicit when elided. Fails with ErrInvalidFormat on malformed input,
// a repeated letter, or an explicit exponent of 0.
func explode(s string) (map[byte]int, error) {
	out := make(map[byte]int)
	i := 0
	for i < len(s) {
		letter := s[i]
		if _, ok := letterToIndex(letter); !ok {
			return nil, fmt.Errorf("dimension %q: unknown letter %q: %w", s, letter, ErrInvalidFormat)
		}
		i++

		start := i
		if i < len(s) && s[i] == '-' {
			i++
		}
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}

		exp := 1
		if i > start {
			digits := s[start:i]
			n, err := strconv.Atoi(digits)
			if err != nil {
				return nil, fmt.Errorf("dimension %q: bad exponent %q: %w", s, digits, ErrInvalidFormat)
			}
			if n == 0 {
				return nil, fmt.Errorf("dimension %q: exponent 0 for %q: %w", s, letter, ErrInvalidFormat)
			}
			if n < -9 || n > 9 {
				return nil, fmt.Errorf("dimension %q: exponent %d for %q out of range: %w", s, n, letter, ErrInvalidFormat)
			}
			exp = n
		}

		if _, dup := out[letter]; dup {
			return nil, fmt.Errorf("dimension %q: letter %q repeated: %w", s, letter, ErrInvalidFormat)
		}
		out[letter] = exp
	}
	return out, nil
}

// implode renders a letter->exponent map back into canonical form: letters
// in alphabet order, exponent 1 elided, zero exponents omitted entirely.
func implode(m map[byte]int) string {
	var b strings.Builder
	for _, letter := range alphabet {
		exp, ok := m[letter]
		if !ok || exp == 0 {
			continue
		}
		b.WriteByte(letter)
		if exp != 1 {
			b.WriteString(strconv.Itoa(exp))
		}
	}
	return b.String()
}

// normalize is implode(explode(s)); it is idempotent for any valid s.
func normalize(s string) (string, error) {
	m, err := explode(s)
	if err != nil {
		return "", err
	}
	return implode(m), nil
}

// mustNormalize is normalize, panicking on malformed input. Reserved for
// package-internal literals that are known-good at compile time.
func mustNormalize(s string) string {
	n, err := normalize(s)
	if err != nil {
		panic(err)
	}
	return n
}

// applyExponent multiplies every letter's exponent in s by n. n==1 returns
// s unchanged (after normalization). Fails if any resulting exponent falls
// outside [-9,9] or equals 0 for a letter that was present (i.e. n must be
// nonzero, since n==0 would erase every letter, which has no
// representation consistent with explode/implode's "dimensionless is
// empty string" rule other than by construction, not as an exponent op).
func applyExponent(s string, n int) (string, error) {
	if n == 0 {
		return "", fmt.Errorf("applyExponent(%q, 0): %w", s, ErrDomainError)
	}
	m, err := explode(s)
	if err != nil {
		return "", err
	}
	out := make(map[byte]int, len(m))
	for letter, exp := range m {
		v := exp * n
		if v < -9 || v > 9 {
			return "", fmt.Errorf("applyExponent(%q, %d): exponent for %q out of range: %w", s, n, letter, ErrDomainError)
		}
		out[letter] = v
	}
	return implode(out), nil
}

// addDimensions returns the dimension code for the sum of two dimension
// bags (used when combining UnitTerm dimensions into a DerivedUnit's
// aggregate dimension).
func addDimensions(a, b string) (string, error) {
	ma, err := explode(a)
	if err != nil {
		return "", err
	}
	mb, err := explode(b)
	if err != nil {
		return "", err
	}
	out := make(map[byte]int, len(ma)+len(mb))
	for k, v := range ma {
		out[k] = v
	}
	for k, v := range mb {
		sum := out[k] + v
		if sum < -9 || sum > 9 {
			return "", fmt.Errorf("addDimensions(%q, %q): exponent for %q out of range: %w", a, b, k, ErrDomainError)
		}
		out[k] = sum
	}
	return implode(out), nil
}

// letterCount returns the number of distinct letters present in a
// dimension code's exploded form; used by DerivedUnit's canonical sort
// (more complex dimensions cluster to the left).
func letterCount(s string) int {
	m, err := explode(s)
	if err != nil {
		return 0
	}
	return len(m)
}

// primaryLetterIndex returns the alphabet index of the first (canonical
// order) letter present in s, or len(alphabet) if s is dimensionless —
// pushing dimensionless terms to the right in DerivedUnit's sort.
func primaryLetterIndex(s string) int {
	m, err := explode(s)
	if err != nil {
		return len(alphabet)
	}
	for i, letter := range alphabet {
		if _, ok := m[letter]; ok {
			return i
		}
	}
	return len(alphabet)
}
