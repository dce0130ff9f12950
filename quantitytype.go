package quant

import (
	"fmt"
	"sync"
)

// QuantityType names a physical quantity kind associated with a
// normalized dimension code, plus a recorded default unit symbol
// (spec §9's "sum type of typed quantity variants", made concrete).
// DefaultUnit is stored only; no constructor or formatter in this
// package reads it.
type QuantityType struct {
	Name        string
	Dimension   string
	DefaultUnit string
}

// QuantityTypeCatalog resolves a normalized dimension code to its
// registered QuantityType, guarded by a readers-writer lock per spec §5.
type QuantityTypeCatalog struct {
	mu     sync.RWMutex
	byDim  map[string]QuantityType
	byName map[string]QuantityType
}

// NewQuantityTypeCatalog returns an empty catalog.
func NewQuantityTypeCatalog() *QuantityTypeCatalog {
	return &QuantityTypeCatalog{
		byDim:  make(map[string]QuantityType),
		byName: make(map[string]QuantityType),
	}
}

var defaultQuantityTypeCatalog = NewQuantityTypeCatalog()

// DefaultQuantityTypeCatalog returns the process-wide catalog.
func DefaultQuantityTypeCatalog() *QuantityTypeCatalog {
	return defaultQuantityTypeCatalog
}

// Insert registers qt, keyed by its normalized dimension and by name.
// A dimension already bound to a different name is a DuplicateSymbol
// error; dimensions may only host one named variant at a time, matching
// the "resolves which variant a computed dimension corresponds to"
// dispatch rule of spec §9.
func (c *QuantityTypeCatalog) Insert(qt QuantityType) error {
	if qt.Name == "" {
		return fmt.Errorf("quantity type has no name: %w", ErrDomainError)
	}
	dim, err := normalize(qt.Dimension)
	if err != nil {
		return fmt.Errorf("quantity type %q: %w", qt.Name, err)
	}
	qt.Dimension = dim

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byDim[dim]; ok && existing.Name != qt.Name {
		return fmt.Errorf("dimension %q already registered as %q: %w", dim, existing.Name, ErrDuplicateSymbol)
	}
	if _, ok := c.byName[qt.Name]; ok {
		return fmt.Errorf("quantity type name %q already registered: %w", qt.Name, ErrDuplicateSymbol)
	}
	c.byDim[dim] = qt
	c.byName[qt.Name] = qt
	return nil
}

// Resolve returns the QuantityType registered for dim, if any.
func (c *QuantityTypeCatalog) Resolve(dim string) (QuantityType, bool) {
	norm, err := normalize(dim)
	if err != nil {
		return QuantityType{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	qt, ok := c.byDim[norm]
	return qt, ok
}

// ByName looks up a registered QuantityType by its unique name.
func (c *QuantityTypeCatalog) ByName(name string) (QuantityType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	qt, ok := c.byName[name]
	return qt, ok
}

// Reset drops every registered quantity type. Intended for test isolation.
func (c *QuantityTypeCatalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byDim = make(map[string]QuantityType)
	c.byName = make(map[string]QuantityType)
}

// TypeName reports q's human-facing quantity type name: the registered
// name for its dimension, or the bare dimension code when unregistered.
func (q Quantity) TypeName(catalog *QuantityTypeCatalog) string {
	dim, err := q.Unit.Dimension()
	if err != nil {
		return ""
	}
	if qt, ok := catalog.Resolve(dim); ok {
		return qt.Name
	}
	return dim
}

// Length constructs a length Quantity, asserting the parsed symbol's
// dimension is "L".
func Length(value float64, symbol string, units *UnitCatalog, prefixes *PrefixCatalog) (Quantity, error) {
	unit, err := ParseDerivedUnit(symbol, units, prefixes)
	if err != nil {
		return Quantity{}, err
	}
	if dim, _ := unit.Dimension(); dim != "L" {
		return Quantity{}, fmt.Errorf("unit %q is not a length: %w", symbol, ErrDimensionMismatch)
	}
	return NewQuantity(value, unit)
}

// Mass constructs a mass Quantity, asserting the parsed symbol's
// dimension is "M".
func Mass(value float64, symbol string, units *UnitCatalog, prefixes *PrefixCatalog) (Quantity, error) {
	unit, err := ParseDerivedUnit(symbol, units, prefixes)
	if err != nil {
		return Quantity{}, err
	}
	if dim, _ := unit.Dimension(); dim != "M" {
		return Quantity{}, fmt.Errorf("unit %q is not a mass: %w", symbol, ErrDimensionMismatch)
	}
	return NewQuantity(value, unit)
}

// Time constructs a time Quantity, asserting the parsed symbol's
// dimension is "T".
func Time(value float64, symbol string, units *UnitCatalog, prefixes *PrefixCatalog) (Quantity, error) {
	unit, err := ParseDerivedUnit(symbol, units, prefixes)
	if err != nil {
		return Quantity{}, err
	}
	if dim, _ := unit.Dimension(); dim != "T" {
		return Quantity{}, fmt.Errorf("unit %q is not a time: %w", symbol, ErrDimensionMismatch)
	}
	return NewQuantity(value, unit)
}
