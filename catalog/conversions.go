package catalog

import "github.com/holmgren/quant"

// LengthConversions gives every non-SI length unit a direct factor to
// meter; Converter.search discovers any route between two non-SI units
// (e.g. inch -> foot) from these by graph traversal.
var LengthConversions = []quant.ConversionRow{
	{Src: "in", Dest: "m", Factor: 0.0254},
	{Src: "ft", Dest: "m", Factor: 0.3048},
	{Src: "yd", Dest: "m", Factor: 0.9144},
	{Src: "mi", Dest: "m", Factor: 1609.344},
	{Src: "nmi", Dest: "m", Factor: 1852},
}

// MassConversions gives every non-SI mass unit a direct factor to
// kilogram.
var MassConversions = []quant.ConversionRow{
	{Src: "lb", Dest: "kg", Factor: 0.45359237},
	{Src: "oz", Dest: "kg", Factor: 0.028349523125},
	{Src: "st", Dest: "kg", Factor: 6.35029318},
}

// TimeConversions gives every non-SI (calendar) time unit a direct
// factor to second.
var TimeConversions = []quant.ConversionRow{
	{Src: "min", Dest: "s", Factor: 60},
	{Src: "h", Dest: "s", Factor: 3600},
	{Src: "d", Dest: "s", Factor: 86400},
	{Src: "wk", Dest: "s", Factor: 604800},
}

// AngleConversions gives every non-SI angle unit a direct factor to
// radian.
var AngleConversions = []quant.ConversionRow{
	{Src: "deg", Dest: "rad", Factor: 0.017453292519943295},
	{Src: "tr", Dest: "rad", Factor: 6.283185307179586},
	{Src: "gon", Dest: "rad", Factor: 0.015707963267948967},
}

// DigitalConversions gives byte its factor to bit.
var DigitalConversions = []quant.ConversionRow{
	{Src: "B", Dest: "bit", Factor: 8},
}

// AllConversions returns every conversion row this package declares.
func AllConversions() []quant.ConversionRow {
	var out []quant.ConversionRow
	for _, group := range [][]quant.ConversionRow{
		LengthConversions, MassConversions, TimeConversions,
		AngleConversions, DigitalConversions,
	} {
		out = append(out, group...)
	}
	return out
}
