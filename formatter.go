package quant

import (
	"fmt"
	"strings"
)

// FormatOptions configures Formatter.Format's rendering: whether to use
// ASCII or Unicode symbols, and the join symbols for multiplicative and
// divisive terms.
type FormatOptions struct {
	// ASCII selects the ASCII symbol set; false renders Unicode symbols
	// where a unit or prefix registers one.
	ASCII bool
	// MultSymbol joins positive-exponent terms; defaults to "*" (ASCII)
	// or "·" (Unicode) when empty.
	MultSymbol string
	// DivSymbol separates the numerator from the denominator; defaults
	// to "/" when empty.
	DivSymbol string
}

// DefaultFormatOptions renders ASCII with the canonical join symbols.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{ASCII: true, MultSymbol: "*", DivSymbol: "/"}
}

// Formatter renders Prefix, Unit, UnitTerm, DerivedUnit and Quantity
// values to their parseable string form (spec §6), per a configurable
// FormatOptions.
type Formatter struct {
	Options FormatOptions
}

// NewFormatter builds a Formatter with the given options.
func NewFormatter(opts FormatOptions) *Formatter {
	return &Formatter{Options: opts}
}

// DefaultFormatter is a process-wide ASCII Formatter.
var DefaultFormatter = NewFormatter(DefaultFormatOptions())

// Format renders v, dispatching on its dynamic type. Unrecognized types
// fail with ErrNotSupported.
func (f *Formatter) Format(v any) (string, error) {
	ascii := f.Options.ASCII
	switch n := v.(type) {
	case Prefix:
		return n.Format(ascii), nil
	case *Prefix:
		return n.Format(ascii), nil
	case Unit:
		return n.Format(ascii), nil
	case *Unit:
		return n.Format(ascii), nil
	case UnitTerm:
		return n.Format(ascii), nil
	case DerivedUnit:
		return formatDerivedUnit(n, f.normalizedOptions()), nil
	case Quantity:
		unitStr := formatDerivedUnit(n.Unit, f.normalizedOptions())
		if n.Unit.IsDimensionless() {
			return fmt.Sprintf("%g", n.Value), nil
		}
		return fmt.Sprintf("%g %s", n.Value, unitStr), nil
	default:
		return "", fmt.Errorf("formatter: unsupported type %T: %w", v, ErrNotSupported)
	}
}

// normalizedOptions fills in the join symbols' defaults.
func (f *Formatter) normalizedOptions() FormatOptions {
	opts := f.Options
	if opts.MultSymbol == "" {
		opts.MultSymbol = "*"
		if !opts.ASCII {
			opts.MultSymbol = "·"
		}
	}
	if opts.DivSymbol == "" {
		opts.DivSymbol = "/"
	}
	return opts
}

// formatDerivedUnit renders d as a multiplicative/divisive chain,
// positive-exponent terms first, then the divide symbol and
// negative-exponent terms with their sign flipped, parenthesized when
// there is more than one so the string parses back to d.
func formatDerivedUnit(d DerivedUnit, opts FormatOptions) string {
	terms := d.Terms()
	if len(terms) == 0 {
		return "1"
	}
	var num, den []string
	for _, t := range terms {
		if t.Exponent > 0 {
			num = append(num, t.Format(opts.ASCII))
		} else {
			negT, _ := t.Inv()
			den = append(den, negT.Format(opts.ASCII))
		}
	}
	var b strings.Builder
	if len(num) == 0 {
		b.WriteString("1")
	} else {
		b.WriteString(strings.Join(num, opts.MultSymbol))
	}
	if len(den) > 0 {
		b.WriteString(opts.DivSymbol)
		if len(den) > 1 {
			b.WriteString("(" + strings.Join(den, opts.MultSymbol) + ")")
		} else {
			b.WriteString(den[0])
		}
	}
	return b.String()
}
