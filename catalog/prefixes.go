// Package catalog supplies the static unit, prefix and conversion data
// that quant.UnitCatalog, quant.PrefixCatalog and quant.ConversionRegistry
// load at startup. It is deliberately data-only: every function here
// builds plain quant values and hands them to a LoadSystem call, never
// reaching into the registries' internals.
package catalog

import "github.com/holmgren/quant"

// PrefixRow is a declarative Prefix row, resolved into a quant.Prefix by
// LoadPrefixes.
type PrefixRow struct {
	Name       string
	ASCII      string
	Unicode    string
	Multiplier float64
	Group      quant.PrefixGroup
}

// SIPrefixes lists the decimal metric prefixes, yocto through yotta.
var SIPrefixes = []PrefixRow{
	{Name: "yotta", ASCII: "Y", Multiplier: 1e24, Group: quant.GroupLargeEngineering},
	{Name: "zetta", ASCII: "Z", Multiplier: 1e21, Group: quant.GroupLargeEngineering},
	{Name: "exa", ASCII: "E", Multiplier: 1e18, Group: quant.GroupLargeEngineering},
	{Name: "peta", ASCII: "P", Multiplier: 1e15, Group: quant.GroupLargeEngineering},
	{Name: "tera", ASCII: "T", Multiplier: 1e12, Group: quant.GroupLargeEngineering},
	{Name: "giga", ASCII: "G", Multiplier: 1e9, Group: quant.GroupLargeEngineering},
	{Name: "mega", ASCII: "M", Multiplier: 1e6, Group: quant.GroupLargeEngineering},
	{Name: "kilo", ASCII: "k", Multiplier: 1e3, Group: quant.GroupLargeEngineering},
	{Name: "hecto", ASCII: "h", Multiplier: 1e2, Group: quant.GroupLargeNonEngineering},
	{Name: "deca", ASCII: "da", Multiplier: 1e1, Group: quant.GroupLargeNonEngineering},
	{Name: "deci", ASCII: "d", Multiplier: 1e-1, Group: quant.GroupSmallNonEngineering},
	{Name: "centi", ASCII: "c", Multiplier: 1e-2, Group: quant.GroupSmallNonEngineering},
	{Name: "milli", ASCII: "m", Multiplier: 1e-3, Group: quant.GroupSmallEngineering},
	{Name: "micro", ASCII: "u", Unicode: "μ", Multiplier: 1e-6, Group: quant.GroupSmallEngineering},
	{Name: "nano", ASCII: "n", Multiplier: 1e-9, Group: quant.GroupSmallEngineering},
	{Name: "pico", ASCII: "p", Multiplier: 1e-12, Group: quant.GroupSmallEngineering},
	{Name: "femto", ASCII: "f", Multiplier: 1e-15, Group: quant.GroupSmallEngineering},
	{Name: "atto", ASCII: "a", Multiplier: 1e-18, Group: quant.GroupSmallEngineering},
	{Name: "zepto", ASCII: "z", Multiplier: 1e-21, Group: quant.GroupSmallEngineering},
	{Name: "yocto", ASCII: "y", Multiplier: 1e-24, Group: quant.GroupSmallEngineering},
}

// BinaryPrefixes lists the IEC 80000-13 binary prefixes, kibi through exbi.
var BinaryPrefixes = []PrefixRow{
	{Name: "kibi", ASCII: "Ki", Multiplier: 1 << 10, Group: quant.GroupBinary},
	{Name: "mebi", ASCII: "Mi", Multiplier: 1 << 20, Group: quant.GroupBinary},
	{Name: "gibi", ASCII: "Gi", Multiplier: 1 << 30, Group: quant.GroupBinary},
	{Name: "tebi", ASCII: "Ti", Multiplier: 1 << 40, Group: quant.GroupBinary},
	{Name: "pebi", ASCII: "Pi", Multiplier: 1 << 50, Group: quant.GroupBinary},
	{Name: "exbi", ASCII: "Ei", Multiplier: 1 << 60, Group: quant.GroupBinary},
}

func (r PrefixRow) resolve() quant.Prefix {
	return quant.Prefix{
		Name:          r.Name,
		ASCIISymbol:   r.ASCII,
		UnicodeSymbol: r.Unicode,
		Multiplier:    r.Multiplier,
		Group:         r.Group,
	}
}

// LoadPrefixes inserts every row of SIPrefixes and BinaryPrefixes into c.
// Unlike UnitCatalog.LoadSystem, prefixes carry no System tag and are
// always loaded together. A repeat call against an already-populated
// catalog returns no error, since PrefixCatalog.Insert accepts a prefix
// inserted again under its own name, but it adds a second copy of every
// prefix to the catalog's list.
func LoadPrefixes(c *quant.PrefixCatalog) error {
	for _, row := range append(append([]PrefixRow{}, SIPrefixes...), BinaryPrefixes...) {
		if err := c.Insert(row.resolve()); err != nil {
			return err
		}
	}
	return nil
}
