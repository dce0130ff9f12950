package quant

import (
	"fmt"
	"math"
)

// Quantity is a scalar paired with the DerivedUnit it is measured in
// (spec §3). Value is always finite; negative zero is normalized to
// positive zero.
type Quantity struct {
	Value float64
	Unit  DerivedUnit
}

// NewQuantity validates value and constructs a Quantity.
func NewQuantity(value float64, unit DerivedUnit) (Quantity, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Quantity{}, fmt.Errorf("quantity value %v not finite: %w", value, ErrDomainError)
	}
	if value == 0 {
		value = 0 // normalizes -0.0 to +0.0
	}
	return Quantity{Value: value, Unit: unit}, nil
}

// Format renders q as "<value> <unit>", or a bare value when q is
// dimensionless.
func (q Quantity) Format(ascii bool) string {
	if q.Unit.IsDimensionless() {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit.Format(ascii))
}

// ParseQuantity parses "<number><optional whitespace><optional unit>"
// per spec §6's grammar, e.g. "1000 m" or "90deg".
func ParseQuantity(s string, units *UnitCatalog, prefixes *PrefixCatalog) (Quantity, error) {
	tok := NewTokenizer(s)
	head := tok.Next()
	if head.Kind != TokenNumber {
		return Quantity{}, fmt.Errorf("quantity %q: no leading number: %w", s, ErrInvalidFormat)
	}
	var value float64
	if _, err := fmt.Sscanf(head.Value, "%g", &value); err != nil {
		return Quantity{}, fmt.Errorf("quantity %q: invalid number %q: %w", s, head.Value, ErrInvalidFormat)
	}
	unit, err := NewParser(tok, units, prefixes).ParseDerivedUnit()
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(value, unit)
}

// To converts q to dest, which must share q's dimension. When the two
// units have the same number of terms, they are paired up in canonical
// order and converted term-by-term directly — this covers both simple
// atomic units (src and dest each a single term, regardless of unit
// identity — the Converter's search handles that) and already-aligned
// compound units (e.g. m/s -> km/h). When the term counts differ
// structurally (e.g. a compound unit against a named derived unit, kg
// m/s² vs N), both sides are expanded to their irreducible base-unit
// representation and aligned there instead (spec §4.10).
func (q Quantity) To(dest DerivedUnit, cv *Converter) (Quantity, error) {
	srcDim, err := q.Unit.Dimension()
	if err != nil {
		return Quantity{}, err
	}
	destDim, err := dest.Dimension()
	if err != nil {
		return Quantity{}, err
	}
	if srcDim != destDim {
		return Quantity{}, fmt.Errorf("to: dimension mismatch (%s vs %s): %w", srcDim, destDim, ErrDimensionMismatch)
	}

	srcTerms, destTerms := q.Unit.Terms(), dest.Terms()
	if len(srcTerms) == len(destTerms) {
		if factor, err := termwiseFactor(srcTerms, destTerms, cv); err == nil {
			return NewQuantity(q.Value*factor, dest)
		}
	}

	expanded, err := q.Expand(cv)
	if err != nil {
		return Quantity{}, err
	}
	destExpanded, err := (Quantity{Value: 1, Unit: dest}).Expand(cv)
	if err != nil {
		return Quantity{}, err
	}
	factor, err := termwiseFactor(expanded.Unit.Terms(), destExpanded.Unit.Terms(), cv)
	if err != nil {
		return Quantity{}, fmt.Errorf("to: %s and %s share no common base representation: %w",
			q.Unit.Format(true), dest.Format(true), ErrNoConversionPath)
	}
	resultValue := expanded.Value * factor / destExpanded.Value
	return NewQuantity(resultValue, dest)
}

// termwiseFactor multiplies the per-index conversion factor of each
// (src,dest) term pair. It fails with ErrNoConversionPath when the two
// slices differ in length, and with the Converter's error when a pair
// cannot be converted (e.g. the pair's dimensions differ).
func termwiseFactor(srcTerms, destTerms []UnitTerm, cv *Converter) (float64, error) {
	if len(srcTerms) != len(destTerms) {
		return 0, fmt.Errorf("termwise conversion of %d terms into %d: %w", len(srcTerms), len(destTerms), ErrNoConversionPath)
	}
	factor := 1.0
	for i := range srcTerms {
		c, err := cv.Convert(srcTerms[i], destTerms[i])
		if err != nil {
			return 0, err
		}
		factor *= c.Factor.Value
	}
	return factor, nil
}

// Add returns q+other. If the units are not byte-identical, other is
// first converted to q's unit. Dimension mismatch raises
// ErrDimensionMismatch.
func (q Quantity) Add(other Quantity, cv *Converter) (Quantity, error) {
	if q.Unit.Equal(other.Unit) {
		return NewQuantity(q.Value+other.Value, q.Unit)
	}
	converted, err := other.To(q.Unit, cv)
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(q.Value+converted.Value, q.Unit)
}

// Sub returns q-other, with the same unit-alignment rule as Add.
func (q Quantity) Sub(other Quantity, cv *Converter) (Quantity, error) {
	if q.Unit.Equal(other.Unit) {
		return NewQuantity(q.Value-other.Value, q.Unit)
	}
	converted, err := other.To(q.Unit, cv)
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(q.Value-converted.Value, q.Unit)
}

// Mul combines q and other: the units compose by inserting every term
// of other.Unit into a copy of q.Unit (like-term exponents sum), the
// scalars multiply, and the result is merged to collapse any
// same-dimension duplicate terms that composition introduced.
func (q Quantity) Mul(other Quantity, cv *Converter) (Quantity, error) {
	combinedUnit, err := q.Unit.Mul(other.Unit)
	if err != nil {
		return Quantity{}, err
	}
	product, err := NewQuantity(q.Value*other.Value, combinedUnit)
	if err != nil {
		return Quantity{}, err
	}
	return product.Merge(cv)
}

// MulScalar multiplies q's value by s without touching the unit.
func (q Quantity) MulScalar(s float64) (Quantity, error) {
	return NewQuantity(q.Value*s, q.Unit)
}

// Div is Mul(other.Inv()).
func (q Quantity) Div(other Quantity, cv *Converter) (Quantity, error) {
	inv, err := other.Inv()
	if err != nil {
		return Quantity{}, err
	}
	return q.Mul(inv, cv)
}

// DivScalar divides q's value by s; fails with ErrDivByZero if s==0.
func (q Quantity) DivScalar(s float64) (Quantity, error) {
	if s == 0 {
		return Quantity{}, fmt.Errorf("divide by zero scalar: %w", ErrDivByZero)
	}
	return NewQuantity(q.Value/s, q.Unit)
}

// Pow raises q's value to the n-th power and every unit-term's exponent
// by a factor of n.
func (q Quantity) Pow(n int) (Quantity, error) {
	if n == 0 {
		return NewQuantity(1, Dimensionless)
	}
	unit, err := q.Unit.Pow(n)
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(ipow(q.Value, n), unit)
}

// Inv returns 1/q, unit inverted. Fails on a zero value.
func (q Quantity) Inv() (Quantity, error) {
	if q.Value == 0 {
		return Quantity{}, fmt.Errorf("invert of zero quantity: %w", ErrDivByZero)
	}
	unit, err := q.Unit.Inv()
	if err != nil {
		return Quantity{}, err
	}
	return NewQuantity(1/q.Value, unit)
}

// Neg flips q's sign.
func (q Quantity) Neg() Quantity {
	v := -q.Value
	if v == 0 {
		v = 0
	}
	return Quantity{Value: v, Unit: q.Unit}
}

// Abs returns the absolute value of q.
func (q Quantity) Abs() Quantity {
	return Quantity{Value: math.Abs(q.Value), Unit: q.Unit}
}

// Equal reports whether q and other represent the same quantity within
// tolerance, after converting other to q's unit.
func (q Quantity) Equal(other Quantity, tolerance float64, cv *Converter) (bool, error) {
	converted, err := other.To(q.Unit, cv)
	if err != nil {
		return false, err
	}
	return math.Abs(q.Value-converted.Value) <= tolerance, nil
}

// Expand replaces every unit-term whose Unit carries a stored expansion
// with that expansion's DerivedUnit (raised to the term's exponent,
// scaling the scalar by the expansion's multiplier and the term's own
// prefix/exponent multiplier), leaving terms without an expansion
// unchanged, then Merge-s the result to collapse same-dimension
// duplicates the substitution introduced (spec §4.10).
func (q Quantity) Expand(cv *Converter) (Quantity, error) {
	value := q.Value
	var acc DerivedUnit
	for _, t := range q.Unit.Terms() {
		if t.Unit.HasExpansion() {
			sub, err := t.Unit.ExpansionUnit.Pow(t.Exponent)
			if err != nil {
				return Quantity{}, err
			}
			value *= ipow(t.Unit.ExpansionFactor, t.Exponent) * t.Multiplier()
			for _, st := range sub.Terms() {
				acc, err = acc.AddTerm(st)
				if err != nil {
					return Quantity{}, err
				}
			}
			continue
		}
		var err error
		acc, err = acc.AddTerm(t)
		if err != nil {
			return Quantity{}, err
		}
	}
	return (Quantity{Value: value, Unit: acc}).Merge(cv)
}

// Merge collapses, within q.Unit, any two terms sharing a dimension
// into one: the second is converted to the first's (unit, prefix) and
// its exponent folded in by insertion, scaling the scalar by the
// conversion factor (spec §4.10).
func (q Quantity) Merge(cv *Converter) (Quantity, error) {
	value := q.Value
	var acc DerivedUnit
	for _, t := range q.Unit.Terms() {
		existing, found := findByDimension(acc, t.Dimension())
		if !found {
			var err error
			acc, err = acc.AddTerm(t)
			if err != nil {
				return Quantity{}, err
			}
			continue
		}
		target, err := NewUnitTerm(existing.Unit, existing.Prefix, t.Exponent)
		if err != nil {
			return Quantity{}, err
		}
		c, err := cv.Convert(t, target)
		if err != nil {
			return Quantity{}, err
		}
		value *= c.Factor.Value
		acc, err = acc.AddTerm(target)
		if err != nil {
			return Quantity{}, err
		}
	}
	return NewQuantity(value, acc)
}

func findByDimension(d DerivedUnit, dim string) (UnitTerm, bool) {
	for _, t := range d.Terms() {
		if t.Dimension() == dim {
			return t, true
		}
	}
	return UnitTerm{}, false
}

// Compact scans units for the expandable unit whose expansion is fully
// covered by a subset of q's terms (every expansion term present with
// matching sign and at least its exponent magnitude) and, among
// matches, substitutes the highest-scoring one. Only units whose
// dimension equals q's whole dimension are candidates, so a match inside
// a larger product (newton within kg·m·s⁻²·A) is not substituted. "hertz" only matches
// when it is q's sole term; "becquerel" is never substituted, matching
// the special cases spec §4.10 calls out.
func (q Quantity) Compact(cv *Converter) (Quantity, error) {
	dim, err := q.Unit.Dimension()
	if err != nil {
		return Quantity{}, err
	}
	var best *Unit
	var bestScore int
	for _, u := range cv.Units.All() {
		if !u.HasExpansion() || u.Name == "becquerel" {
			continue
		}
		uDim, err := normalize(u.Dimension)
		if err != nil || uDim != dim {
			continue
		}
		if u.Name == "hertz" && len(q.Unit.Terms()) != 1 {
			continue
		}
		score, ok := matchScore(q.Unit, *u.ExpansionUnit)
		if !ok || score <= bestScore {
			continue
		}
		best = u
		bestScore = score
	}
	if best == nil {
		return q, nil
	}
	newTerms := make([]UnitTerm, 0, len(q.Unit.Terms()))
	for _, t := range q.Unit.Terms() {
		if matched, ok := findByUnexponentiatedSymbol(*best.ExpansionUnit, t.UnexponentiatedSymbol()); ok &&
			sameSign(matched.Exponent, t.Exponent) && matched.Exponent == t.Exponent {
			continue // fully consumed by the substitution
		}
		newTerms = append(newTerms, t)
	}
	substituted, err := NewUnitTerm(best, nil, 1)
	if err != nil {
		return q, nil
	}
	newUnit, err := NewDerivedUnit(append(newTerms, substituted)...)
	if err != nil {
		return q, nil
	}
	value := q.Value / best.ExpansionFactor
	return NewQuantity(value, newUnit)
}

// matchScore reports whether every term of expansion has a same-sign,
// sufficiently-large-magnitude counterpart in candidate (keyed by
// unexponentiated symbol), and if so the sum of the expansion's
// exponent magnitudes.
func matchScore(candidate DerivedUnit, expansion DerivedUnit) (int, bool) {
	score := 0
	for _, et := range expansion.Terms() {
		ct, ok := findByUnexponentiatedSymbol(candidate, et.UnexponentiatedSymbol())
		if !ok || !sameSign(ct.Exponent, et.Exponent) || absInt(ct.Exponent) < absInt(et.Exponent) {
			return 0, false
		}
		score += absInt(et.Exponent)
	}
	if score == 0 {
		return 0, false
	}
	return score, true
}

func findByUnexponentiatedSymbol(d DerivedUnit, symbol string) (UnitTerm, bool) {
	for _, t := range d.Terms() {
		if t.UnexponentiatedSymbol() == symbol {
			return t, true
		}
	}
	return UnitTerm{}, false
}

func sameSign(a, b int) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ToSi expands q, merges, converts to q.Unit's SI-base representation,
// and optionally compacts and auto-prefixes the result (spec §4.10).
func (q Quantity) ToSi(compact, autoPrefix bool, cv *Converter) (Quantity, error) {
	expanded, err := q.Expand(cv)
	if err != nil {
		return Quantity{}, err
	}
	siUnit, err := q.Unit.ToSI(cv.Units)
	if err != nil {
		return Quantity{}, err
	}
	result, err := expanded.To(siUnit, cv)
	if err != nil {
		return Quantity{}, err
	}
	if compact {
		if compacted, cerr := result.Compact(cv); cerr == nil {
			result = compacted
		}
	}
	if autoPrefix {
		if ap, aerr := result.AutoPrefix(cv); aerr == nil {
			result = ap
		}
	}
	return result, nil
}

// AutoPrefix picks, for q's primary (first) unit-term, the engineering
// metric prefix minimizing |value| subject to staying >= 1; binary
// prefixes are never chosen. If none beats the unprefixed form, q is
// returned unchanged (spec §4.10).
func (q Quantity) AutoPrefix(cv *Converter) (Quantity, error) {
	terms := q.Unit.Terms()
	if len(terms) == 0 {
		return q, nil
	}
	primary := terms[0]
	baseValue := q.Value * q.Unit.Multiplier()

	const metricEngineering = GroupSmallEngineering | GroupLargeEngineering
	mask := primary.Unit.PrefixGroupMask & metricEngineering
	candidates := cv.Prefixes.GetByGroupMask(mask)

	bestValue := baseValue
	bestAbs := math.Abs(baseValue)
	var bestPrefix *Prefix
	for _, p := range candidates {
		if p.Multiplier == 1 {
			continue
		}
		scaled := baseValue / ipow(p.Multiplier, primary.Exponent)
		if math.Abs(scaled) >= 1 && math.Abs(scaled) < bestAbs {
			bestAbs = math.Abs(scaled)
			bestValue = scaled
			bestPrefix = p
		}
	}
	if bestPrefix == nil {
		return q, nil
	}
	return NewQuantity(bestValue, rebasedUnit(terms, bestPrefix))
}

// rebasedUnit strips every term's prefix and, if newPrimary is non-nil,
// applies it to the first term only.
func rebasedUnit(terms []UnitTerm, newPrimary *Prefix) DerivedUnit {
	out := make([]UnitTerm, 0, len(terms))
	for i, t := range terms {
		bare := t.RemovePrefix()
		if i == 0 && newPrimary != nil {
			if withPrefix, err := bare.WithPrefix(newPrimary); err == nil {
				bare = withPrefix
			}
		}
		out = append(out, bare)
	}
	d, err := NewDerivedUnit(out...)
	if err != nil {
		return Dimensionless
	}
	return d
}

// Parts is the result of Quantity.ToParts: the decomposition of a
// quantity's magnitude into a set of named unit values plus its sign.
type Parts struct {
	Values map[string]float64
	Sign   int
}

// ToParts decomposes |q| into the given descending sequence of unit
// symbols (largest first; the last is the "smallest unit"), rounding
// the smallest part to precision decimal digits, then carries any
// rounded-up smallest part into the next-larger unit (spec §4.10).
func (q Quantity) ToParts(unitSymbols []string, precision int, cv *Converter, units *UnitCatalog, prefixes *PrefixCatalog) (Parts, error) {
	if len(unitSymbols) == 0 {
		return Parts{}, fmt.Errorf("toParts: no unit symbols given: %w", ErrDomainError)
	}
	sign := 1
	if q.Value < 0 {
		sign = -1
	}
	magnitude := q.Abs()

	smallestUnit, err := ParseDerivedUnit(unitSymbols[len(unitSymbols)-1], units, prefixes)
	if err != nil {
		return Parts{}, err
	}
	inSmallest, err := magnitude.To(smallestUnit, cv)
	if err != nil {
		return Parts{}, err
	}
	remainder := inSmallest.Value

	values := make(map[string]float64, len(unitSymbols))
	oneOf := make(map[string]float64, len(unitSymbols))
	for _, sym := range unitSymbols[:len(unitSymbols)-1] {
		unit, err := ParseDerivedUnit(sym, units, prefixes)
		if err != nil {
			return Parts{}, err
		}
		one, err := (Quantity{Value: 1, Unit: unit}).To(smallestUnit, cv)
		if err != nil {
			return Parts{}, err
		}
		oneOf[sym] = one.Value
		whole := math.Floor(remainder / one.Value)
		values[sym] = whole
		remainder -= whole * one.Value
	}
	if precision >= 0 {
		scale := math.Pow(10, float64(precision))
		remainder = math.Round(remainder*scale) / scale
	}
	smallestSym := unitSymbols[len(unitSymbols)-1]
	values[smallestSym] = remainder

	for i := len(unitSymbols) - 1; i > 0; i-- {
		sym, parentSym := unitSymbols[i], unitSymbols[i-1]
		if values[sym] >= oneOf[parentSym] {
			values[sym] -= oneOf[parentSym]
			values[parentSym]++
		}
	}

	return Parts{Values: values, Sign: sign}, nil
}

// FromParts sums every part converted into resultSymbol, applying the
// overall sign — the inverse of ToParts (spec §4.10).
func FromParts(parts Parts, resultSymbol string, cv *Converter, units *UnitCatalog, prefixes *PrefixCatalog) (Quantity, error) {
	resultUnit, err := ParseDerivedUnit(resultSymbol, units, prefixes)
	if err != nil {
		return Quantity{}, err
	}
	total, err := NewQuantity(0, resultUnit)
	if err != nil {
		return Quantity{}, err
	}
	for sym, v := range parts.Values {
		unit, err := ParseDerivedUnit(sym, units, prefixes)
		if err != nil {
			return Quantity{}, err
		}
		part, err := NewQuantity(v, unit)
		if err != nil {
			return Quantity{}, err
		}
		total, err = total.Add(part, cv)
		if err != nil {
			return Quantity{}, err
		}
	}
	if parts.Sign < 0 {
		total = total.Neg()
	}
	return total, nil
}
