package quant

import "testing"

func TestRegistryAddAndGet(t *testing.T) {
	prefixes, units := newTestCatalogs()
	m := mustTerm(t, "m", units, prefixes)
	ft := mustTerm(t, "ft", units, prefixes)
	c, err := NewConversion(m, ft, Exact(2))
	if err != nil {
		t.Fatal(err)
	}
	r := NewConversionRegistry()
	if err := r.add(c); err != nil {
		t.Fatal(err)
	}
	got, ok := r.get(m, ft)
	if !ok {
		t.Fatal("expected direct conversion to be registered")
	}
	if got.Factor.Value != 2 {
		t.Errorf("factor = %v, want 2", got.Factor.Value)
	}
	if !r.has(m, ft) {
		t.Error("has() should report true for registered pair")
	}
}

func TestRegistryAddDerivesUnprefixedCounterpart(t *testing.T) {
	prefixes, units := newTestCatalogs()
	km := mustTerm(t, "km", units, prefixes)
	ft := mustTerm(t, "ft", units, prefixes)
	c, err := NewConversion(km, ft, Exact(1000))
	if err != nil {
		t.Fatal(err)
	}
	r := NewConversionRegistry()
	if err := r.add(c); err != nil {
		t.Fatal(err)
	}
	m := mustTerm(t, "m", units, prefixes)
	got, ok := r.get(m, ft)
	if !ok {
		t.Fatal("expected unprefixed counterpart m->ft to be auto-registered")
	}
	if got.Factor.Value != 1 {
		t.Errorf("unprefixed factor = %v, want 1", got.Factor.Value)
	}
}

func TestRegistryGetByDimension(t *testing.T) {
	prefixes, units := newTestCatalogs()
	m := mustTerm(t, "m", units, prefixes)
	ft := mustTerm(t, "ft", units, prefixes)
	s := mustTerm(t, "s", units, prefixes)
	r := NewConversionRegistry()
	c1, _ := NewConversion(m, ft, Exact(2))
	r.add(c1)
	all := r.getByDimension(m.Dimension())
	if len(all) != 1 {
		t.Fatalf("expected 1 conversion in dimension bucket, got %d", len(all))
	}
	if len(r.getByDimension(s.Dimension())) != 0 {
		t.Error("expected no conversions registered in time dimension")
	}
}

func TestRegistryRemove(t *testing.T) {
	prefixes, units := newTestCatalogs()
	m := mustTerm(t, "m", units, prefixes)
	ft := mustTerm(t, "ft", units, prefixes)
	r := NewConversionRegistry()
	c, _ := NewConversion(m, ft, Exact(2))
	r.add(c)
	r.remove(m.Dimension(), m, ft)
	if r.has(m, ft) {
		t.Error("expected conversion to be removed")
	}
}

func TestRegistryReset(t *testing.T) {
	prefixes, units := newTestCatalogs()
	m := mustTerm(t, "m", units, prefixes)
	ft := mustTerm(t, "ft", units, prefixes)
	r := NewConversionRegistry()
	c, _ := NewConversion(m, ft, Exact(2))
	r.add(c)
	r.reset()
	if r.has(m, ft) {
		t.Error("expected reset to clear registry")
	}
}

func TestRegistryLoadSystemStrictFailsOnBadRow(t *testing.T) {
	prefixes, units := newTestCatalogs()
	r := NewConversionRegistry()
	rows := []ConversionRow{
		{Src: "m", Dest: "nonexistent-unit", Factor: 1},
	}
	if err := r.LoadSystem(rows, units, prefixes, true); err == nil {
		t.Error("expected strict LoadSystem to fail on unresolvable row")
	}
}

func TestRegistryLoadSystemLenientSkipsBadRow(t *testing.T) {
	prefixes, units := newTestCatalogs()
	r := NewConversionRegistry()
	rows := []ConversionRow{
		{Src: "m", Dest: "nonexistent-unit", Factor: 1},
		{Src: "m", Dest: "ft", Factor: 2},
	}
	if err := r.LoadSystem(rows, units, prefixes, false); err != nil {
		t.Fatalf("lenient LoadSystem should not fail: %v", err)
	}
	m := mustTerm(t, "m", units, prefixes)
	ft := mustTerm(t, "ft", units, prefixes)
	if !r.has(m, ft) {
		t.Error("expected valid row to still be registered")
	}
}
