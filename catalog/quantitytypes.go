package catalog

import "github.com/holmgren/quant"

// QuantityTypeRow is a declarative QuantityType row.
type QuantityTypeRow struct {
	Name        string
	Dimension   string
	DefaultUnit string
}

func (r QuantityTypeRow) resolve() quant.QuantityType {
	return quant.QuantityType{Name: r.Name, Dimension: r.Dimension, DefaultUnit: r.DefaultUnit}
}

// QuantityTypes lists the named quantity kinds this package's unit
// tables support, one per distinct dimension code they populate.
var QuantityTypes = []QuantityTypeRow{
	{Name: "length", Dimension: "L", DefaultUnit: "m"},
	{Name: "mass", Dimension: "M", DefaultUnit: "kg"},
	{Name: "time", Dimension: "T", DefaultUnit: "s"},
	{Name: "angle", Dimension: "A", DefaultUnit: "rad"},
	{Name: "solid-angle", Dimension: "C", DefaultUnit: "sr"},
	{Name: "current", Dimension: "I", DefaultUnit: "A"},
	{Name: "temperature", Dimension: "H", DefaultUnit: "K"},
	{Name: "amount-of-substance", Dimension: "N", DefaultUnit: "mol"},
	{Name: "luminous-intensity", Dimension: "J", DefaultUnit: "cd"},
	{Name: "digital-information", Dimension: "D", DefaultUnit: "bit"},
	{Name: "frequency", Dimension: "T-1", DefaultUnit: "Hz"},
	{Name: "force", Dimension: "MLT-2", DefaultUnit: "N"},
	{Name: "energy", Dimension: "ML2T-2", DefaultUnit: "J"},
	{Name: "power", Dimension: "ML2T-3", DefaultUnit: "W"},
	{Name: "pressure", Dimension: "ML-1T-2", DefaultUnit: "Pa"},
	{Name: "electric-charge", Dimension: "TI", DefaultUnit: "C"},
	{Name: "voltage", Dimension: "ML2T-3I-1", DefaultUnit: "V"},
	{Name: "resistance", Dimension: "ML2T-3I-2", DefaultUnit: "ohm"},
	{Name: "capacitance", Dimension: "M-1L-2T4I2", DefaultUnit: "F"},
	{Name: "inductance", Dimension: "ML2T-2I-2", DefaultUnit: "H"},
	{Name: "magnetic-flux-density", Dimension: "MT-2I-1", DefaultUnit: "T"},
	{Name: "magnetic-flux", Dimension: "ML2T-2I-1", DefaultUnit: "Wb"},
	{Name: "conductance", Dimension: "M-1L-2T3I2", DefaultUnit: "S"},
	{Name: "volume", Dimension: "L3", DefaultUnit: "L"},
}

// LoadQuantityTypes inserts every row of QuantityTypes into c. Unlike
// UnitCatalog/ConversionRegistry, QuantityTypeCatalog.Insert has no
// strict/lenient LoadSystem of its own, so a row failing to insert
// aborts the whole load when strict is true and is skipped otherwise.
func LoadQuantityTypes(c *quant.QuantityTypeCatalog, strict bool) error {
	for _, row := range QuantityTypes {
		if err := c.Insert(row.resolve()); err != nil {
			if strict {
				return err
			}
			continue
		}
	}
	return nil
}
