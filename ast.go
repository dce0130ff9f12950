package quant

import "fmt"

// exponentExpr is the parsed form of a single unit-term chunk (spec
// §4.4): a bare symbol, possibly prefixed, optionally followed by an
// ASCII or Unicode-superscript exponent. Narrowed from a general
// expression tree to this one production, since the DerivedUnit grammar
// has no binary operators below the term level.
type exponentExpr struct {
	symbol   string
	exponent int
}

// parseExponentExpr splits a unit-term chunk into its symbol and
// exponent.
func parseExponentExpr(chunk string) (exponentExpr, error) {
	symbol, exponent, err := splitExponent(chunk)
	if err != nil {
		return exponentExpr{}, err
	}
	if symbol == "" {
		return exponentExpr{}, fmt.Errorf("unit term %q has no symbol: %w", chunk, ErrInvalidFormat)
	}
	return exponentExpr{symbol: symbol, exponent: exponent}, nil
}

// eval resolves e to a UnitTerm against the given catalogs, using the
// lookup order of spec §4.4: the whole symbol unprefixed first, then
// every (prefix, unit) split.
func (e exponentExpr) eval(units *UnitCatalog, prefixes *PrefixCatalog) (UnitTerm, error) {
	if u, ok := units.GetBySymbol(e.symbol); ok {
		return NewUnitTerm(u, nil, e.exponent)
	}

	var matches []UnitTerm
	for plen := 1; plen <= 2 && plen < len(e.symbol); plen++ {
		prefixSym := e.symbol[:plen]
		unitSym := e.symbol[plen:]
		p, ok := prefixes.GetBySymbol(prefixSym)
		if !ok {
			continue
		}
		u, ok := units.GetBySymbol(unitSym)
		if !ok {
			continue
		}
		if u.PrefixGroupMask&p.Group == 0 {
			continue
		}
		term, err := NewUnitTerm(u, p, e.exponent)
		if err != nil {
			continue
		}
		matches = append(matches, term)
	}
	switch len(matches) {
	case 0:
		return UnitTerm{}, fmt.Errorf("unrecognized unit %q: %w", e.symbol, ErrUnknownUnit)
	case 1:
		return matches[0], nil
	default:
		return UnitTerm{}, fmt.Errorf("ambiguous unit term %q matches %d (prefix,unit) pairs: %w", e.symbol, len(matches), ErrDomainError)
	}
}
