package catalog

import "github.com/holmgren/quant"

// baseTerm builds a UnitTerm for use inside a compound unit's
// ExpansionUnit from the actual *Unit the catalog holds for symbol.
// Converter.Convert identifies routes by Unit.Name (and the graph search
// in converter.go keys nodes by Unit.Name too), so an expansion term must
// reference the same registered kilogram/meter/second/ampere unit the
// catalog already has. A synthetic stand-in unit would expand/compact
// fine but leave Convert with no route back to the real base units. The
// referenced symbol must already be registered in units, which is why
// derivedSIUnits is built only after the base unit families are loaded.
func baseTerm(units *quant.UnitCatalog, symbol string, exp int) quant.UnitTerm {
	u, ok := units.GetBySymbol(symbol)
	if !ok {
		panic("catalog: base unit " + symbol + " not registered")
	}
	t, err := quant.NewUnitTerm(u, nil, exp)
	if err != nil {
		panic(err)
	}
	return t
}

func expand(terms ...quant.UnitTerm) *quant.DerivedUnit {
	d, err := quant.NewDerivedUnit(terms...)
	if err != nil {
		panic(err)
	}
	return &d
}

func si(s ...quant.System) map[quant.System]bool {
	m := make(map[quant.System]bool, len(s)+1)
	m[quant.SystemSI] = true
	for _, sys := range s {
		m[sys] = true
	}
	return m
}

func systems(s ...quant.System) map[quant.System]bool {
	m := make(map[quant.System]bool, len(s))
	for _, sys := range s {
		m[sys] = true
	}
	return m
}

// LengthUnits covers the SI meter and its Imperial/US customary relatives.
// The non-SI rows carry no ExpansionUnit: their factor against meter is
// linear but not a clean unit decomposition, so they convert through
// ConversionRows (LengthConversions) instead, the way the Imperial rows
// in the core package's own test fixtures do.
var LengthUnits = []quant.Unit{
	{Name: "meter", ASCIISymbol: "m", UnicodeSymbol: "m", Dimension: "L", PrefixGroupMask: quant.AllPrefixGroups, Systems: si()},
	{Name: "inch", ASCIISymbol: "in", Dimension: "L", Systems: systems(quant.SystemImperial, quant.SystemUSCustomary)},
	{Name: "foot", ASCIISymbol: "ft", Dimension: "L", Systems: systems(quant.SystemImperial, quant.SystemUSCustomary)},
	{Name: "yard", ASCIISymbol: "yd", Dimension: "L", Systems: systems(quant.SystemImperial, quant.SystemUSCustomary)},
	{Name: "mile", ASCIISymbol: "mi", Dimension: "L", Systems: systems(quant.SystemImperial, quant.SystemUSCustomary)},
	{Name: "nautical-mile", ASCIISymbol: "nmi", Dimension: "L", Systems: systems(quant.SystemImperial)},
}

// MassUnits anchors mass on a non-prefixable "kg", the SI base unit
// implode/explode already hardcodes via siBaseSymbols, and registers
// "gram" separately for the sub-kilo prefixes. Gram excludes
// GroupLargeEngineering: kilo+gram would collide with kilogram's own "kg"
// symbol, and UnitCatalog.Insert rejects the whole row on any collision
// (see DESIGN.md's mass open question).
var MassUnits = []quant.Unit{
	{Name: "kilogram", ASCIISymbol: "kg", UnicodeSymbol: "kg", Dimension: "M", PrefixGroupMask: 0, Systems: si()},
	{Name: "gram", ASCIISymbol: "g", UnicodeSymbol: "g", Dimension: "M",
		PrefixGroupMask: quant.GroupSmallEngineering | quant.GroupSmallNonEngineering | quant.GroupLargeNonEngineering,
		Systems:         si()},
	{Name: "pound", ASCIISymbol: "lb", Dimension: "M", Systems: systems(quant.SystemImperial, quant.SystemUSCustomary)},
	{Name: "ounce", ASCIISymbol: "oz", Dimension: "M", Systems: systems(quant.SystemImperial, quant.SystemUSCustomary)},
	{Name: "stone", ASCIISymbol: "st", Dimension: "M", Systems: systems(quant.SystemImperial)},
}

// TimeUnits covers the SI second, prefixable only for the sub-second
// engineering range, plus the non-decimal calendar units.
var TimeUnits = []quant.Unit{
	{Name: "second", ASCIISymbol: "s", UnicodeSymbol: "s", Dimension: "T", PrefixGroupMask: quant.GroupSmallEngineering, Systems: si(quant.SystemTime)},
	{Name: "minute", ASCIISymbol: "min", Dimension: "T", Systems: systems(quant.SystemTime)},
	{Name: "hour", ASCIISymbol: "h", Dimension: "T", Systems: systems(quant.SystemTime)},
	{Name: "day", ASCIISymbol: "d", Dimension: "T", Systems: systems(quant.SystemTime)},
	{Name: "week", ASCIISymbol: "wk", Dimension: "T", Systems: systems(quant.SystemTime)},
}

// AngleUnits covers the SI radian and the non-prefixable degree/turn.
var AngleUnits = []quant.Unit{
	{Name: "radian", ASCIISymbol: "rad", Dimension: "A", PrefixGroupMask: quant.GroupSmallEngineering, Systems: si(quant.SystemAngle)},
	{Name: "degree", ASCIISymbol: "deg", UnicodeSymbol: "°", Dimension: "A", Systems: systems(quant.SystemAngle)},
	{Name: "turn", ASCIISymbol: "tr", Dimension: "A", Systems: systems(quant.SystemAngle)},
	{Name: "gradian", ASCIISymbol: "gon", Dimension: "A", Systems: systems(quant.SystemAngle)},
}

// SolidAngleUnits covers the SI steradian.
var SolidAngleUnits = []quant.Unit{
	{Name: "steradian", ASCIISymbol: "sr", Dimension: "C", PrefixGroupMask: quant.GroupSmallEngineering, Systems: si()},
}

// CurrentUnits covers the SI ampere.
var CurrentUnits = []quant.Unit{
	{Name: "ampere", ASCIISymbol: "A", Dimension: "I", PrefixGroupMask: quant.AllPrefixGroups, Systems: si()},
}

// TemperatureUnits covers the SI kelvin; Celsius and Fahrenheit carry an
// additive offset the linear conversion model cannot represent and are
// deliberately left out (see DESIGN.md's temperature open question).
var TemperatureUnits = []quant.Unit{
	{Name: "kelvin", ASCIISymbol: "K", Dimension: "H", PrefixGroupMask: quant.GroupSmallEngineering, Systems: si()},
}

// AmountUnits covers the SI mole.
var AmountUnits = []quant.Unit{
	{Name: "mole", ASCIISymbol: "mol", Dimension: "N", PrefixGroupMask: quant.GroupSmallEngineering | quant.GroupLargeEngineering, Systems: si()},
}

// LuminousIntensityUnits covers the SI candela.
var LuminousIntensityUnits = []quant.Unit{
	{Name: "candela", ASCIISymbol: "cd", Dimension: "J", PrefixGroupMask: quant.GroupSmallEngineering, Systems: si()},
}

// DigitalUnits covers the bit and byte, each accepting both the decimal
// (kilo, mega, ...) and binary (kibi, mebi, ...) prefix families, per
// common storage-vendor/OS usage. Byte converts to bit via
// DigitalConversions rather than an ExpansionUnit, since "bit" is an
// atomic unit of its own dimension, not a sub-unit newton/joule-style
// compound.
var DigitalUnits = []quant.Unit{
	{Name: "bit", ASCIISymbol: "bit", Dimension: "D", PrefixGroupMask: quant.GroupLargeEngineering | quant.GroupBinary, Systems: systems(quant.SystemDigital)},
	{Name: "byte", ASCIISymbol: "B", Dimension: "D", PrefixGroupMask: quant.GroupLargeEngineering | quant.GroupBinary, Systems: systems(quant.SystemDigital)},
}

// derivedSIUnits builds the named coherent SI derived units' rows, each
// carrying an ExpansionUnit decomposing it into the kilogram/meter/
// second/ampere units already registered in units (spec §4.10's
// Expand/Compact), mirroring the "newton = kg*m/s2" fixture the core
// package's own tests are grounded on. Liter is the one incoherent entry,
// hence its 0.001 ExpansionFactor. Must only be called after baseUnits()
// has been loaded into units, since baseTerm looks kg/m/s/A up there.
func derivedSIUnits(units *quant.UnitCatalog) []quant.Unit {
	return []quant.Unit{
		{Name: "newton", ASCIISymbol: "N", Dimension: "MLT-2", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", 1), baseTerm(units, "s", -2)), ExpansionFactor: 1},
		{Name: "joule", ASCIISymbol: "J", Dimension: "ML2T-2", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", 2), baseTerm(units, "s", -2)), ExpansionFactor: 1},
		{Name: "watt", ASCIISymbol: "W", Dimension: "ML2T-3", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", 2), baseTerm(units, "s", -3)), ExpansionFactor: 1},
		{Name: "pascal", ASCIISymbol: "Pa", Dimension: "ML-1T-2", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", -1), baseTerm(units, "s", -2)), ExpansionFactor: 1},
		{Name: "hertz", ASCIISymbol: "Hz", Dimension: "T-1", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "s", -1)), ExpansionFactor: 1},
		{Name: "becquerel", ASCIISymbol: "Bq", Dimension: "T-1", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "s", -1)), ExpansionFactor: 1},
		{Name: "volt", ASCIISymbol: "V", Dimension: "ML2T-3I-1", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", 2), baseTerm(units, "s", -3), baseTerm(units, "A", -1)), ExpansionFactor: 1},
		{Name: "ohm", ASCIISymbol: "ohm", UnicodeSymbol: "Ω", Dimension: "ML2T-3I-2", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", 2), baseTerm(units, "s", -3), baseTerm(units, "A", -2)), ExpansionFactor: 1},
		{Name: "farad", ASCIISymbol: "F", Dimension: "M-1L-2T4I2", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", -1), baseTerm(units, "m", -2), baseTerm(units, "s", 4), baseTerm(units, "A", 2)), ExpansionFactor: 1},
		{Name: "henry", ASCIISymbol: "H", Dimension: "ML2T-2I-2", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", 2), baseTerm(units, "s", -2), baseTerm(units, "A", -2)), ExpansionFactor: 1},
		{Name: "tesla", ASCIISymbol: "T", Dimension: "MT-2I-1", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "s", -2), baseTerm(units, "A", -1)), ExpansionFactor: 1},
		{Name: "weber", ASCIISymbol: "Wb", Dimension: "ML2T-2I-1", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", 1), baseTerm(units, "m", 2), baseTerm(units, "s", -2), baseTerm(units, "A", -1)), ExpansionFactor: 1},
		{Name: "siemens", ASCIISymbol: "S", Dimension: "M-1L-2T3I2", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "kg", -1), baseTerm(units, "m", -2), baseTerm(units, "s", 3), baseTerm(units, "A", 2)), ExpansionFactor: 1},
		{Name: "coulomb", ASCIISymbol: "C", Dimension: "TI", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "s", 1), baseTerm(units, "A", 1)), ExpansionFactor: 1},
		{Name: "liter", ASCIISymbol: "L", UnicodeSymbol: "ℓ", Dimension: "L3", PrefixGroupMask: quant.AllPrefixGroups, Systems: si(),
			ExpansionUnit: expand(baseTerm(units, "m", 3)), ExpansionFactor: 0.001},
	}
}

// baseUnits returns every non-derived unit row this package declares,
// grouped by family. These have no dependency on catalog state and can
// be loaded in any order; derivedSIUnits, in contrast, must be built
// (and inserted) only once these are already in the catalog.
func baseUnits() []quant.Unit {
	var out []quant.Unit
	for _, group := range [][]quant.Unit{
		LengthUnits, MassUnits, TimeUnits, AngleUnits, SolidAngleUnits,
		CurrentUnits, TemperatureUnits, AmountUnits, LuminousIntensityUnits,
		DigitalUnits,
	} {
		out = append(out, group...)
	}
	return out
}
