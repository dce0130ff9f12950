package quant

import "testing"

func newTestPrefixCatalog() *PrefixCatalog {
	c := newPrefixCatalog()
	for _, p := range []Prefix{
		{Name: "kilo", ASCIISymbol: "k", UnicodeSymbol: "k", Multiplier: 1e3, Group: GroupLargeEngineering},
		{Name: "milli", ASCIISymbol: "m", UnicodeSymbol: "m", Multiplier: 1e-3, Group: GroupSmallEngineering},
		{Name: "centi", ASCIISymbol: "c", UnicodeSymbol: "c", Multiplier: 1e-2, Group: GroupSmallNonEngineering},
		{Name: "deca", ASCIISymbol: "da", UnicodeSymbol: "da", Multiplier: 1e1, Group: GroupLargeNonEngineering},
		{Name: "kibi", ASCIISymbol: "Ki", UnicodeSymbol: "Ki", Multiplier: 1024, Group: GroupBinary},
	} {
		if err := c.Insert(p); err != nil {
			panic(err)
		}
	}
	return c
}

func TestPrefixInsertAndGetBySymbol(t *testing.T) {
	c := newTestPrefixCatalog()
	p, ok := c.GetBySymbol("k")
	if !ok || p.Multiplier != 1e3 {
		t.Fatalf("GetBySymbol(k) = %v, %v", p, ok)
	}
}

func TestPrefixInsertDuplicateRejected(t *testing.T) {
	c := newTestPrefixCatalog()
	err := c.Insert(Prefix{Name: "kibble", ASCIISymbol: "k", Multiplier: 5, Group: GroupLargeEngineering})
	if err == nil {
		t.Fatal("expected duplicate symbol error")
	}
}

func TestPrefixGetByGroupMaskAscending(t *testing.T) {
	c := newTestPrefixCatalog()
	got := c.GetByGroupMask(GroupSmallEngineering | GroupLargeEngineering)
	// The base prefix belongs to every group, so it sits between milli and kilo.
	if len(got) != 3 || got[0].Multiplier > got[1].Multiplier || got[1].Multiplier > got[2].Multiplier {
		t.Fatalf("expected ascending [milli, base, kilo], got %v", got)
	}
}

func TestPrefixInvertEngineering(t *testing.T) {
	c := newTestPrefixCatalog()
	kilo, _ := c.GetBySymbol("k")
	inv, err := c.Invert(*kilo)
	if err != nil {
		t.Fatal(err)
	}
	if inv.ASCIISymbol != "m" {
		t.Errorf("invert(kilo) = %q, want milli", inv.ASCIISymbol)
	}
}

func TestPrefixInvertNonEngineeringFails(t *testing.T) {
	c := newTestPrefixCatalog()
	centi, _ := c.GetBySymbol("c")
	if _, err := c.Invert(*centi); err == nil {
		t.Error("expected no inverse for non-engineering prefix")
	}
}

func TestPrefixInvertBase(t *testing.T) {
	c := newTestPrefixCatalog()
	base, _ := c.GetBySymbol("")
	inv, err := c.Invert(*base)
	if err != nil {
		t.Fatal(err)
	}
	if inv.Multiplier != 1 {
		t.Errorf("invert(base) multiplier = %v, want 1", inv.Multiplier)
	}
}

func TestIsEngineering(t *testing.T) {
	c := newTestPrefixCatalog()
	kibi, _ := c.GetBySymbol("Ki")
	if !kibi.IsEngineering() {
		t.Error("binary prefix should count as engineering (guaranteed inverse)")
	}
	deca, _ := c.GetBySymbol("da")
	if deca.IsEngineering() {
		t.Error("deca should not count as engineering")
	}
}

func TestPrefixFormatFallsBackToASCIIWithoutUnicode(t *testing.T) {
	p := Prefix{Name: "kilo", ASCIISymbol: "k", Multiplier: 1e3, Group: GroupLargeEngineering}
	if got := p.Format(false); got != "k" {
		t.Errorf("format = %q, want k", got)
	}
}

func TestPrefixFormatUsesUnicodeSymbol(t *testing.T) {
	p := Prefix{Name: "micro", ASCIISymbol: "u", UnicodeSymbol: "μ", Multiplier: 1e-6, Group: GroupSmallEngineering}
	if got := p.Format(false); got != "μ" {
		t.Errorf("format = %q, want μ", got)
	}
	if got := p.Format(true); got != "u" {
		t.Errorf("ascii format = %q, want u", got)
	}
}

func TestPrefixReset(t *testing.T) {
	c := newTestPrefixCatalog()
	c.Reset()
	if _, ok := c.GetBySymbol("k"); ok {
		t.Error("expected catalog to be empty after reset")
	}
	if _, ok := c.GetBySymbol(""); !ok {
		t.Error("base prefix should survive reset")
	}
}
