package quant

import (
	"fmt"
	"sort"
	"strings"
)

// DerivedUnit is an ordered bag of UnitTerms keyed by unexponentiated
// symbol: inserting a term whose symbol already exists sums the
// exponents, dropping the term entirely if the sum is zero (spec §3/§4.5).
type DerivedUnit struct {
	terms []UnitTerm
}

// Dimensionless is the empty derived unit.
var Dimensionless = DerivedUnit{}

// NewDerivedUnit builds a DerivedUnit from a sequence of terms, combining
// like terms in insertion order.
func NewDerivedUnit(terms ...UnitTerm) (DerivedUnit, error) {
	var d DerivedUnit
	var err error
	for _, t := range terms {
		d, err = d.AddTerm(t)
		if err != nil {
			return DerivedUnit{}, err
		}
	}
	return d, nil
}

// AddTerm returns a new DerivedUnit with t inserted, combining with any
// existing term sharing the same UnexponentiatedSymbol by summing
// exponents; a resulting exponent of 0 removes the entry.
func (d DerivedUnit) AddTerm(t UnitTerm) (DerivedUnit, error) {
	key := t.UnexponentiatedSymbol()
	out := make([]UnitTerm, 0, len(d.terms)+1)
	found := false
	for _, existing := range d.terms {
		if existing.UnexponentiatedSymbol() == key {
			found = true
			sum := existing.Exponent + t.Exponent
			if sum == 0 {
				continue // term cancels out entirely
			}
			combined, err := existing.WithExponent(sum)
			if err != nil {
				return DerivedUnit{}, err
			}
			out = append(out, combined)
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, t)
	}
	sortTerms(out)
	return DerivedUnit{terms: out}, nil
}

// sortTerms applies the canonical order of spec §3: more dimensionally
// complex terms first (more distinct letters), then by the alphabet index
// of the term's primary dimension letter.
func sortTerms(terms []UnitTerm) {
	sort.SliceStable(terms, func(i, j int) bool {
		di, dj := terms[i].Dimension(), terms[j].Dimension()
		ci, cj := letterCount(di), letterCount(dj)
		if ci != cj {
			return ci > cj
		}
		return primaryLetterIndex(di) < primaryLetterIndex(dj)
	})
}

// Terms returns a defensive copy of d's terms in canonical order.
func (d DerivedUnit) Terms() []UnitTerm {
	out := make([]UnitTerm, len(d.terms))
	copy(out, d.terms)
	return out
}

// IsDimensionless reports whether d has no terms.
func (d DerivedUnit) IsDimensionless() bool {
	return len(d.terms) == 0
}

// Dimension returns the aggregate dimension: the sum of every term's
// dimension, as a normalized dimension code.
func (d DerivedUnit) Dimension() (string, error) {
	acc := ""
	for _, t := range d.terms {
		next, err := addDimensions(acc, t.Dimension())
		if err != nil {
			return "", err
		}
		acc = next
	}
	return acc, nil
}

// Multiplier returns the product of every term's Multiplier — the factor
// by which the numeric coefficient scales relative to an entirely
// unprefixed rendering of the same unit identities and exponents.
func (d DerivedUnit) Multiplier() float64 {
	m := 1.0
	for _, t := range d.terms {
		m *= t.Multiplier()
	}
	return m
}

// Inv negates every term's exponent.
func (d DerivedUnit) Inv() (DerivedUnit, error) {
	out := make([]UnitTerm, 0, len(d.terms))
	for _, t := range d.terms {
		inv, err := t.Inv()
		if err != nil {
			return DerivedUnit{}, err
		}
		out = append(out, inv)
	}
	sortTerms(out)
	return DerivedUnit{terms: out}, nil
}

// Pow raises every term to the n-th power.
func (d DerivedUnit) Pow(n int) (DerivedUnit, error) {
	if n == 0 {
		return Dimensionless, nil
	}
	out := make([]UnitTerm, 0, len(d.terms))
	for _, t := range d.terms {
		p, err := t.Pow(n)
		if err != nil {
			return DerivedUnit{}, err
		}
		out = append(out, p)
	}
	sortTerms(out)
	return DerivedUnit{terms: out}, nil
}

// Mul combines d and other by inserting every term of other into a copy
// of d, combining like terms.
func (d DerivedUnit) Mul(other DerivedUnit) (DerivedUnit, error) {
	result := d
	var err error
	for _, t := range other.terms {
		result, err = result.AddTerm(t)
		if err != nil {
			return DerivedUnit{}, err
		}
	}
	return result, nil
}

// Div is Mul(other.Inv()).
func (d DerivedUnit) Div(other DerivedUnit) (DerivedUnit, error) {
	inv, err := other.Inv()
	if err != nil {
		return DerivedUnit{}, err
	}
	return d.Mul(inv)
}

// ToSI replaces the whole bag with one term per nonzero dimension letter
// of d's aggregate dimension, each the SI base unit for that letter
// raised to the letter's exponent (spec §4.5).
func (d DerivedUnit) ToSI(units *UnitCatalog) (DerivedUnit, error) {
	dim, err := d.Dimension()
	if err != nil {
		return DerivedUnit{}, err
	}
	exploded, err := explode(dim)
	if err != nil {
		return DerivedUnit{}, err
	}
	var out DerivedUnit
	for _, letter := range alphabet {
		exp, ok := exploded[letter]
		if !ok || exp == 0 {
			continue
		}
		symbol, ok := siBaseOf(letter)
		if !ok {
			return DerivedUnit{}, fmt.Errorf("no SI base unit for dimension letter %q: %w", letter, ErrDomainError)
		}
		u, ok := units.GetBySymbol(symbol)
		if !ok {
			return DerivedUnit{}, fmt.Errorf("SI base unit %q not registered: %w", symbol, ErrUnknownUnit)
		}
		term, err := NewUnitTerm(u, nil, exp)
		if err != nil {
			return DerivedUnit{}, err
		}
		out, err = out.AddTerm(term)
		if err != nil {
			return DerivedUnit{}, err
		}
	}
	return out, nil
}

// SameUnitIdentities reports whether d and other reference the same set
// of units with the same exponents (prefixes may differ), term by term
// in canonical order.
func (d DerivedUnit) SameUnitIdentities(other DerivedUnit) bool {
	a, b := d.Terms(), other.Terms()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Unit.Name != b[i].Unit.Name || a[i].Exponent != b[i].Exponent {
			return false
		}
	}
	return true
}

// Equal reports whether d and other have identical terms (same units,
// same prefixes, same exponents) in canonical order.
func (d DerivedUnit) Equal(other DerivedUnit) bool {
	a, b := d.Terms(), other.Terms()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		pa, pb := "", ""
		if a[i].Prefix != nil {
			pa = a[i].Prefix.Name
		}
		if b[i].Prefix != nil {
			pb = b[i].Prefix.Name
		}
		if a[i].Unit.Name != b[i].Unit.Name || a[i].Exponent != b[i].Exponent || pa != pb {
			return false
		}
	}
	return true
}

// Format renders the derived unit as a multiplicative/divisive chain,
// positive-exponent terms first, then "/" and negative-exponent terms
// with their sign flipped (parenthesized when there is more than one),
// per the teacher's formatter idiom.
func (d DerivedUnit) Format(ascii bool) string {
	opts := FormatOptions{ASCII: ascii, MultSymbol: "*", DivSymbol: "/"}
	if !ascii {
		opts.MultSymbol = "·"
	}
	return formatDerivedUnit(d, opts)
}

// ParseDerivedUnit parses the DerivedUnit grammar of spec §6: one or more
// unit-term productions separated by '*', '·', '.' (multiplicative) or
// '/' (divisive, negating the following term's exponent before
// insertion). The empty string parses to Dimensionless.
func ParseDerivedUnit(s string, units *UnitCatalog, prefixes *PrefixCatalog) (DerivedUnit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dimensionless, nil
	}
	return NewParser(NewTokenizer(s), units, prefixes).ParseDerivedUnit()
}
