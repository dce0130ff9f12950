package catalog

import (
	"fmt"

	"github.com/holmgren/quant"
)

// StandardSystems lists every quant.System this package ships unit rows
// for, in the order LoadAllStandardSystems loads them. CGS is part of
// quant.System but has no rows here: nothing in this package's unit
// tables declares membership in quant.SystemCGS, so loading it would be
// a no-op; it is omitted rather than loaded pointlessly.
var StandardSystems = []quant.System{
	quant.SystemSI,
	quant.SystemImperial,
	quant.SystemUSCustomary,
	quant.SystemDigital,
	quant.SystemTime,
	quant.SystemAngle,
}

// rowsBySystem partitions rows across StandardSystems, assigning each
// unit to the first system in StandardSystems order it belongs to. A
// unit declaring more than one system (e.g. inch is both Imperial and
// USCustomary) would otherwise be handed to UnitCatalog.LoadSystem twice,
// and the second Insert would fail on the name it already registered;
// partitioning keeps every unit's load call singular while its own
// Systems map, used by Unit.InSystem/GetBySystem, is untouched.
func rowsBySystem(rows []quant.Unit) map[quant.System][]quant.Unit {
	out := make(map[quant.System][]quant.Unit, len(StandardSystems))
	claimed := make(map[string]bool)
	for _, sys := range StandardSystems {
		for _, u := range rows {
			if claimed[u.Name] || !u.InSystem(sys) {
				continue
			}
			out[sys] = append(out[sys], u)
			claimed[u.Name] = true
		}
	}
	return out
}

// LoadAllStandardSystems populates prefixes, units and registry (and,
// when qtypes is non-nil, the quantity type catalog) from this package's
// static tables: prefixes first, since UnitCatalog.Insert validates a
// unit's prefixed symbol forms against the live PrefixCatalog; then every
// base unit's system, in StandardSystems order; then the named SI derived
// units, whose ExpansionUnit terms reference the kilogram/meter/second/
// ampere units the previous step just registered (see derivedSIUnits);
// then the conversion rows, which resolve unit symbols against the now-
// fully-populated UnitCatalog.
//
// A second call on the same catalogs is not a no-op: LoadPrefixes
// succeeds again (PrefixCatalog.Insert accepts a prefix under its own
// name), UnitCatalog.LoadSystem skips systems already loaded, but the
// derived SI units go through UnitCatalog.Insert, which rejects a name
// already registered, so a strict second call fails there. When strict
// is true the first failing row aborts the whole load.
func LoadAllStandardSystems(prefixes *quant.PrefixCatalog, units *quant.UnitCatalog, registry *quant.ConversionRegistry, qtypes *quant.QuantityTypeCatalog, strict bool) error {
	if err := LoadPrefixes(prefixes); err != nil {
		return err
	}
	bySystem := rowsBySystem(baseUnits())
	for _, sys := range StandardSystems {
		if err := units.LoadSystem(sys, bySystem[sys], strict); err != nil {
			return err
		}
	}
	for _, u := range derivedSIUnits(units) {
		if err := units.Insert(u); err != nil {
			if strict {
				return fmt.Errorf("loading derived SI units: %w", err)
			}
			continue
		}
	}
	if err := registry.LoadSystem(AllConversions(), units, prefixes, strict); err != nil {
		return err
	}
	if qtypes != nil {
		if err := LoadQuantityTypes(qtypes, strict); err != nil {
			return err
		}
	}
	return nil
}
