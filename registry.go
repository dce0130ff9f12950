package quant

import (
	"fmt"
	"sync"
)

// ConversionRegistry indexes known Conversions by dimension, then by the
// (source, destination) unexponentiated symbol pair, so Converter can
// look up a cached direct or previously-discovered route in O(1) before
// falling back to graph search (spec §4.8).
type ConversionRegistry struct {
	mu    sync.RWMutex
	byDim map[string]map[string]map[string]Conversion
}

// NewConversionRegistry returns an empty registry.
func NewConversionRegistry() *ConversionRegistry {
	return &ConversionRegistry{byDim: make(map[string]map[string]map[string]Conversion)}
}

var defaultConversionRegistry = NewConversionRegistry()

// DefaultConversionRegistry returns the process-wide registry.
func DefaultConversionRegistry() *ConversionRegistry {
	return defaultConversionRegistry
}

// add inserts c keyed by its dimension and symbol pair, overwriting any
// existing entry for the same pair. When c's source or destination term
// carries a prefix, the un-prefixed counterpart conversion is also
// inserted (scaled via AlterPrefixes), so that later prefix-only fast
// paths in Converter never need a graph search of their own.
func (r *ConversionRegistry) add(c Conversion) error {
	dim := c.Src.Dimension()
	r.mu.Lock()
	r.insertLocked(dim, c)
	r.mu.Unlock()

	if c.Src.Prefix == nil && c.Dest.Prefix == nil {
		return nil
	}
	unprefixed, err := c.AlterPrefixes(nil, nil)
	if err != nil {
		return fmt.Errorf("add %s->%s: deriving unprefixed counterpart: %w",
			c.Src.UnexponentiatedSymbol(), c.Dest.UnexponentiatedSymbol(), err)
	}
	r.mu.Lock()
	r.insertLocked(unprefixed.Src.Dimension(), unprefixed)
	r.mu.Unlock()
	return nil
}

func (r *ConversionRegistry) insertLocked(dim string, c Conversion) {
	bySrc, ok := r.byDim[dim]
	if !ok {
		bySrc = make(map[string]map[string]Conversion)
		r.byDim[dim] = bySrc
	}
	byDest, ok := bySrc[c.Src.UnexponentiatedSymbol()]
	if !ok {
		byDest = make(map[string]Conversion)
		bySrc[c.Src.UnexponentiatedSymbol()] = byDest
	}
	byDest[c.Dest.UnexponentiatedSymbol()] = c
}

// get looks up a direct conversion from src to dest, both keyed by
// UnexponentiatedSymbol within src's dimension bucket.
func (r *ConversionRegistry) get(src, dest UnitTerm) (Conversion, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bySrc, ok := r.byDim[src.Dimension()]
	if !ok {
		return Conversion{}, false
	}
	byDest, ok := bySrc[src.UnexponentiatedSymbol()]
	if !ok {
		return Conversion{}, false
	}
	c, ok := byDest[dest.UnexponentiatedSymbol()]
	return c, ok
}

// has reports whether a direct conversion from src to dest is registered.
func (r *ConversionRegistry) has(src, dest UnitTerm) bool {
	_, ok := r.get(src, dest)
	return ok
}

// getByDimension returns every conversion registered for dim, in no
// particular order; Converter uses this to seed its graph search.
func (r *ConversionRegistry) getByDimension(dim string) []Conversion {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bySrc, ok := r.byDim[dim]
	if !ok {
		return nil
	}
	var out []Conversion
	for _, byDest := range bySrc {
		for _, c := range byDest {
			out = append(out, c)
		}
	}
	return out
}

// remove deletes the src->dest entry, if present, from dim's bucket.
func (r *ConversionRegistry) remove(dim string, src, dest UnitTerm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bySrc, ok := r.byDim[dim]
	if !ok {
		return
	}
	byDest, ok := bySrc[src.UnexponentiatedSymbol()]
	if !ok {
		return
	}
	delete(byDest, dest.UnexponentiatedSymbol())
}

// reset drops every registered conversion. Intended for test isolation.
func (r *ConversionRegistry) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byDim = make(map[string]map[string]map[string]Conversion)
}

// ConversionRow is one static (source symbol, destination symbol, factor)
// entry as stored in a catalog conversion table, resolved against a
// UnitCatalog/PrefixCatalog pair by LoadSystem.
type ConversionRow struct {
	Src    string
	Dest   string
	Factor float64
	Error  float64
}

// LoadSystem parses and inserts every row of rows as a Conversion, using
// units/prefixes to resolve the symbol strings into UnitTerms. When
// strict is true, any row that fails to parse or validate aborts the
// whole load and returns the first error; otherwise such rows are
// skipped silently, matching the catalog loader's two behaviors (spec
// §4.12).
func (r *ConversionRegistry) LoadSystem(rows []ConversionRow, units *UnitCatalog, prefixes *PrefixCatalog, strict bool) error {
	for _, row := range rows {
		src, err := ParseUnitTerm(row.Src, units, prefixes)
		if err != nil {
			if strict {
				return fmt.Errorf("loadSystem: row %s->%s: %w", row.Src, row.Dest, err)
			}
			continue
		}
		dest, err := ParseUnitTerm(row.Dest, units, prefixes)
		if err != nil {
			if strict {
				return fmt.Errorf("loadSystem: row %s->%s: %w", row.Src, row.Dest, err)
			}
			continue
		}
		factor, err := NewFloatWithError(row.Factor, row.Error)
		if err != nil {
			if strict {
				return fmt.Errorf("loadSystem: row %s->%s: %w", row.Src, row.Dest, err)
			}
			continue
		}
		conv, err := NewConversion(src, dest, factor)
		if err != nil {
			if strict {
				return fmt.Errorf("loadSystem: row %s->%s: %w", row.Src, row.Dest, err)
			}
			continue
		}
		if err := r.add(conv); err != nil {
			if strict {
				return err
			}
			continue
		}
	}
	return nil
}
