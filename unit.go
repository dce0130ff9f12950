package quant

import (
	"fmt"
	"sync"
)

// System names a named measurement system a Unit can belong to, used by
// UnitCatalog.LoadSystem / ConversionRegistry.LoadSystem filtering.
type System string

// Standard measurement systems recognized by the catalog loader.
const (
	SystemSI          System = "si"
	SystemImperial    System = "imperial"
	SystemUSCustomary System = "uscustomary"
	SystemDigital     System = "digital"
	SystemCGS         System = "cgs"
	SystemTime        System = "time"
	SystemAngle       System = "angle"
)

// Unit is an atomic named unit: a symbol set, a normalized dimension, the
// prefix groups it accepts, and an optional expansion into a compound
// unit carrying a multiplier (spec §3).
type Unit struct {
	Name            string
	ASCIISymbol     string
	UnicodeSymbol   string
	AlternateSymbol string
	Dimension       string
	PrefixGroupMask PrefixGroup
	Systems         map[System]bool
	ExpansionUnit   *DerivedUnit
	ExpansionFactor float64
}

// symbols returns every distinct symbol this unit is known by.
func (u Unit) symbols() []string {
	seen := make(map[string]bool, 3)
	var out []string
	for _, s := range []string{u.ASCIISymbol, u.UnicodeSymbol, u.AlternateSymbol} {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// HasExpansion reports whether u has a stored decomposition into base
// units (spec's "expandable unit").
func (u Unit) HasExpansion() bool {
	return u.ExpansionUnit != nil
}

// InSystem reports whether u is a member of sys.
func (u Unit) InSystem(sys System) bool {
	return u.Systems[sys]
}

// Format renders u's own symbol (ASCII or Unicode, falling back to ASCII
// when no Unicode symbol is registered).
func (u Unit) Format(ascii bool) string {
	if ascii || u.UnicodeSymbol == "" {
		return u.ASCIISymbol
	}
	return u.UnicodeSymbol
}

// UnitCatalog is the registry of known atomic units, populated only by
// explicit Insert/LoadSystem calls and guarded by a readers-writer lock
// per spec §5.
type UnitCatalog struct {
	mu        sync.RWMutex
	bySymbol  map[string]*Unit
	byName    map[string]*Unit
	all       []*Unit
	loadedSys map[System]bool
	prefixes  *PrefixCatalog
}

var defaultUnitCatalog = NewUnitCatalog(DefaultPrefixCatalog())

// DefaultUnitCatalog returns the process-wide UnitCatalog.
func DefaultUnitCatalog() *UnitCatalog {
	return defaultUnitCatalog
}

// NewUnitCatalog creates an empty catalog bound to the given prefix
// catalog, used to validate prefixed-symbol uniqueness on insert.
func NewUnitCatalog(prefixes *PrefixCatalog) *UnitCatalog {
	return &UnitCatalog{
		bySymbol:  make(map[string]*Unit),
		byName:    make(map[string]*Unit),
		loadedSys: make(map[System]bool),
		prefixes:  prefixes,
	}
}

// Insert adds u to the catalog. Uniqueness of every symbol variant,
// including every prefixed form of a prefix-accepting unit, is checked;
// a collision raises ErrDuplicateSymbol.
func (c *UnitCatalog) Insert(u Unit) error {
	if u.Name == "" {
		return fmt.Errorf("unit has no name: %w", ErrDomainError)
	}
	if !isValidDimension(u.Dimension) {
		return fmt.Errorf("unit %q: invalid dimension %q: %w", u.Name, u.Dimension, ErrInvalidFormat)
	}
	if u.ExpansionUnit != nil {
		expDim, err := u.ExpansionUnit.Dimension()
		if err != nil {
			return err
		}
		normDim, _ := normalize(u.Dimension)
		if expDim != normDim {
			return fmt.Errorf("unit %q: expansion dimension %q != unit dimension %q: %w", u.Name, expDim, normDim, ErrDomainError)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.byName[u.Name]; dup {
		return fmt.Errorf("unit name %q already registered: %w", u.Name, ErrDuplicateSymbol)
	}

	candidates := append([]string{}, u.symbols()...)
	if u.PrefixGroupMask != 0 {
		for _, p := range c.prefixes.GetByGroupMask(u.PrefixGroupMask) {
			for _, sym := range u.symbols() {
				candidates = append(candidates, p.ASCIISymbol+sym)
				if p.UnicodeSymbol != p.ASCIISymbol {
					candidates = append(candidates, p.UnicodeSymbol+sym)
				}
			}
		}
	}
	seen := make(map[string]bool, len(candidates))
	for _, sym := range candidates {
		if seen[sym] {
			continue
		}
		seen[sym] = true
		if existing, ok := c.bySymbol[sym]; ok && existing.Name != u.Name {
			return fmt.Errorf("unit symbol %q collides with existing unit %q: %w", sym, existing.Name, ErrDuplicateSymbol)
		}
	}
	for _, other := range c.all {
		if other.PrefixGroupMask == 0 {
			continue
		}
		for _, p := range c.prefixes.GetByGroupMask(other.PrefixGroupMask) {
			for _, osym := range other.symbols() {
				for _, psym := range []string{p.ASCIISymbol + osym, p.UnicodeSymbol + osym} {
					if seen[psym] {
						return fmt.Errorf("unit symbol %q collides with a prefixed form of existing unit %q: %w", psym, other.Name, ErrDuplicateSymbol)
					}
				}
			}
		}
	}

	stored := u
	c.all = append(c.all, &stored)
	c.byName[u.Name] = &stored
	for _, sym := range u.symbols() {
		c.bySymbol[sym] = &stored
	}
	return nil
}

// GetBySymbol matches any of a unit's registered (unprefixed) symbols.
func (c *UnitCatalog) GetBySymbol(s string) (*Unit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.bySymbol[s]
	return u, ok
}

// GetByName looks up a unit by its unique name.
func (c *UnitCatalog) GetByName(name string) (*Unit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.byName[name]
	return u, ok
}

// GetBySystem returns every unit that is a member of sys.
func (c *UnitCatalog) GetBySystem(sys System) []*Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Unit
	for _, u := range c.all {
		if u.InSystem(sys) {
			out = append(out, u)
		}
	}
	return out
}

// GetByDimension returns every registered unit sharing the given
// normalized dimension.
func (c *UnitCatalog) GetByDimension(dim string) []*Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Unit
	for _, u := range c.all {
		if u.Dimension == dim {
			out = append(out, u)
		}
	}
	return out
}

// All returns every registered unit.
func (c *UnitCatalog) All() []*Unit {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Unit, len(c.all))
	copy(out, c.all)
	return out
}

// LoadSystem inserts every unit in rows, then records sys as loaded.
// Idempotent: a system already loaded is a no-op, so catalog loaders can
// call it unconditionally. When strict is true, any row that fails
// Insert aborts the load and returns that error; otherwise bad rows are
// skipped, matching ConversionRegistry.LoadSystem's two behaviors (spec
// §4.12).
func (c *UnitCatalog) LoadSystem(sys System, rows []Unit, strict bool) error {
	if c.HasLoadedSystem(sys) {
		return nil
	}
	for _, u := range rows {
		if err := c.Insert(u); err != nil {
			if strict {
				return fmt.Errorf("loading system %q: %w", sys, err)
			}
			continue
		}
	}
	c.markLoaded(sys)
	return nil
}

// HasLoadedSystem reports whether LoadSystem(sys) has already run,
// so loaders can stay idempotent.
func (c *UnitCatalog) HasLoadedSystem(sys System) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedSys[sys]
}

// markLoaded records that sys has been loaded; called by catalog loaders
// after a successful Insert pass, ensuring idempotence on repeat calls.
func (c *UnitCatalog) markLoaded(sys System) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedSys[sys] = true
}

// Reset drops all registered units. Intended for test isolation.
func (c *UnitCatalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bySymbol = make(map[string]*Unit)
	c.byName = make(map[string]*Unit)
	c.all = nil
	c.loadedSys = make(map[System]bool)
}
