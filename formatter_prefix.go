package quant

// AutoPrefixFormatter extends Formatter by rescaling a Quantity to its
// best engineering-metric prefix (Quantity.AutoPrefix) before rendering,
// so callers get "1.5 km" rather than having to compute the rescale
// themselves before calling Format.
type AutoPrefixFormatter struct {
	Formatter
	Converter *Converter
}

// NewAutoPrefixFormatter builds an AutoPrefixFormatter using cv to
// rescale quantities before formatting.
func NewAutoPrefixFormatter(opts FormatOptions, cv *Converter) *AutoPrefixFormatter {
	return &AutoPrefixFormatter{Formatter: Formatter{Options: opts}, Converter: cv}
}

// FormatQuantity renders q after auto-prefixing. A quantity AutoPrefix
// can't rescale (e.g. one with no single-term prefixable unit) falls
// back to formatting q unscaled.
func (f *AutoPrefixFormatter) FormatQuantity(q Quantity) (string, error) {
	scaled, err := q.AutoPrefix(f.Converter)
	if err != nil {
		scaled = q
	}
	return f.Format(scaled)
}
