package quant

import "testing"

func TestParserBuildsSimpleDerivedUnit(t *testing.T) {
	prefixes, units := newTestCatalogs()
	d, err := NewParser(NewTokenizer("m/s2"), units, prefixes).ParseDerivedUnit()
	if err != nil {
		t.Fatal(err)
	}
	dim, err := d.Dimension()
	if err != nil {
		t.Fatal(err)
	}
	if dim != "LT-2" {
		t.Errorf("dimension = %q, want LT-2", dim)
	}
}

func TestParserEmptyStreamIsDimensionless(t *testing.T) {
	prefixes, units := newTestCatalogs()
	d, err := NewParser(NewTokenizer(""), units, prefixes).ParseDerivedUnit()
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsDimensionless() {
		t.Error("expected dimensionless result for empty input")
	}
}

func TestParserRejectsUnknownUnit(t *testing.T) {
	prefixes, units := newTestCatalogs()
	if _, err := NewParser(NewTokenizer("qq"), units, prefixes).ParseDerivedUnit(); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestParserCaretExponentMatchesFusedExponent(t *testing.T) {
	prefixes, units := newTestCatalogs()
	fused, err := NewParser(NewTokenizer("m2"), units, prefixes).ParseDerivedUnit()
	if err != nil {
		t.Fatal(err)
	}
	caret, err := NewParser(NewTokenizer("m^2"), units, prefixes).ParseDerivedUnit()
	if err != nil {
		t.Fatal(err)
	}
	if !fused.Equal(caret) {
		t.Errorf("m2 = %+v, m^2 = %+v, want equal", fused, caret)
	}
}

func TestParserParenthesizedGroupWithExponent(t *testing.T) {
	prefixes, units := newTestCatalogs()
	d, err := NewParser(NewTokenizer("(g*m/s2)^2"), units, prefixes).ParseDerivedUnit()
	if err != nil {
		t.Fatal(err)
	}
	dim, err := d.Dimension()
	if err != nil {
		t.Fatal(err)
	}
	if dim != "M2L2T-4" {
		t.Errorf("dimension = %q, want M2L2T-4", dim)
	}
}

func TestParserRejectsUnbalancedParen(t *testing.T) {
	prefixes, units := newTestCatalogs()
	if _, err := NewParser(NewTokenizer("(g*m"), units, prefixes).ParseDerivedUnit(); err == nil {
		t.Error("expected error for missing closing paren")
	}
}

func TestParserAgreesWithParseDerivedUnit(t *testing.T) {
	prefixes, units := newTestCatalogs()
	viaParser, err := NewParser(NewTokenizer("kg*m/s2"), units, prefixes).ParseDerivedUnit()
	if err != nil {
		t.Fatal(err)
	}
	viaTopLevel, err := ParseDerivedUnit("kg*m/s2", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	if !viaParser.Equal(viaTopLevel) {
		t.Errorf("got %+v, want %+v", viaParser, viaTopLevel)
	}
}
