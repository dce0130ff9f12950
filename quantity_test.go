package quant

import (
	"math"
	"testing"
)

// newQuantityTestEnv builds a catalog set covering length, mass, time,
// angle and a force expansion, grounded the way spec §8's worked
// scenarios expect. Mass is anchored on a non-prefixable "kg" (the
// literal SI base symbol for the M letter per dimension.go's
// siBaseSymbols) rather than treating "kg" as a prefixed variant of a
// prefixable gram unit, so DerivedUnit.ToSI never has to guess a
// kilo-multiplier back out of an opaque *Unit lookup.
func newQuantityTestEnv(t *testing.T) (*PrefixCatalog, *UnitCatalog, *Converter) {
	t.Helper()
	prefixes := newTestPrefixCatalog()
	units := NewUnitCatalog(prefixes)

	plain := []Unit{
		{Name: "meter", ASCIISymbol: "m", UnicodeSymbol: "m", Dimension: "L", PrefixGroupMask: AllPrefixGroups, Systems: map[System]bool{SystemSI: true}},
		{Name: "kilogram", ASCIISymbol: "kg", UnicodeSymbol: "kg", Dimension: "M", PrefixGroupMask: 0, Systems: map[System]bool{SystemSI: true}},
		{Name: "second", ASCIISymbol: "s", UnicodeSymbol: "s", Dimension: "T", PrefixGroupMask: GroupSmallEngineering, Systems: map[System]bool{SystemSI: true}},
		{Name: "minute", ASCIISymbol: "min", UnicodeSymbol: "min", Dimension: "T", PrefixGroupMask: 0, Systems: map[System]bool{SystemTime: true}},
		{Name: "hour", ASCIISymbol: "h", UnicodeSymbol: "h", Dimension: "T", PrefixGroupMask: 0, Systems: map[System]bool{SystemTime: true}},
		{Name: "radian", ASCIISymbol: "rad", UnicodeSymbol: "rad", Dimension: "A", PrefixGroupMask: 0, Systems: map[System]bool{SystemSI: true}},
		{Name: "degree", ASCIISymbol: "deg", UnicodeSymbol: "deg", Dimension: "A", PrefixGroupMask: 0, Systems: map[System]bool{SystemAngle: true}},
		{Name: "inch", ASCIISymbol: "in", UnicodeSymbol: "in", Dimension: "L", PrefixGroupMask: 0, Systems: map[System]bool{SystemImperial: true}},
		{Name: "pound", ASCIISymbol: "lb", UnicodeSymbol: "lb", Dimension: "M", PrefixGroupMask: 0, Systems: map[System]bool{SystemImperial: true}},
		{Name: "ounce", ASCIISymbol: "oz", UnicodeSymbol: "oz", Dimension: "M", PrefixGroupMask: 0, Systems: map[System]bool{SystemImperial: true}},
	}
	for _, u := range plain {
		if err := units.Insert(u); err != nil {
			t.Fatalf("insert %s: %v", u.Name, err)
		}
	}

	kg, _ := units.GetBySymbol("kg")
	m, _ := units.GetBySymbol("m")
	s, _ := units.GetBySymbol("s")
	kgTerm, _ := NewUnitTerm(kg, nil, 1)
	mTerm, _ := NewUnitTerm(m, nil, 1)
	sTerm, _ := NewUnitTerm(s, nil, -2)
	forceUnit, err := NewDerivedUnit(kgTerm, mTerm, sTerm)
	if err != nil {
		t.Fatalf("build force expansion unit: %v", err)
	}
	newton := Unit{
		Name: "newton", ASCIISymbol: "N", UnicodeSymbol: "N", Dimension: "MLT-2",
		PrefixGroupMask: 0, Systems: map[System]bool{SystemSI: true},
		ExpansionUnit: &forceUnit, ExpansionFactor: 1.0,
	}
	if err := units.Insert(newton); err != nil {
		t.Fatalf("insert newton: %v", err)
	}

	registry := NewConversionRegistry()
	rows := []ConversionRow{
		{Src: "min", Dest: "s", Factor: 60},
		{Src: "h", Dest: "s", Factor: 3600},
		{Src: "deg", Dest: "rad", Factor: math.Pi / 180},
		{Src: "in", Dest: "m", Factor: 0.0254},
		{Src: "lb", Dest: "kg", Factor: 0.45359237},
		{Src: "oz", Dest: "lb", Factor: 0.0625},
	}
	if err := registry.LoadSystem(rows, units, prefixes, true); err != nil {
		t.Fatalf("load conversion rows: %v", err)
	}

	cv := NewConverter(registry, units, prefixes)
	return prefixes, units, cv
}

func TestScenarioParseAndConvertLength(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	q, err := ParseQuantity("1000 m", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	km, err := ParseDerivedUnit("km", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	got, err := q.To(km, cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Value-1.0) > 1e-9 {
		t.Errorf("1000 m in km = %v, want 1.0", got.Value)
	}
}

func TestScenarioMinutesToSecondsAndHours(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	q, err := ParseQuantity("60 min", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	sec, _ := ParseDerivedUnit("s", units, prefixes)
	inSec, err := q.To(sec, cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(inSec.Value-3600) > 1e-9 {
		t.Errorf("60 min in s = %v, want 3600", inSec.Value)
	}
	hour, _ := ParseDerivedUnit("h", units, prefixes)
	inHour, err := q.To(hour, cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(inHour.Value-1.0) > 1e-9 {
		t.Errorf("60 min in h = %v, want 1.0", inHour.Value)
	}
}

func TestScenarioPoundsToKilogramsAndOunces(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	q, err := ParseQuantity("1 lb", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	kg, _ := ParseDerivedUnit("kg", units, prefixes)
	inKg, err := q.To(kg, cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(inKg.Value-0.45359237) > 1e-9 {
		t.Errorf("1 lb in kg = %v, want 0.45359237", inKg.Value)
	}
	oz, _ := ParseDerivedUnit("oz", units, prefixes)
	inOz, err := q.To(oz, cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(inOz.Value-16.0) > 1e-9 {
		t.Errorf("1 lb in oz = %v, want 16.0", inOz.Value)
	}
}

func TestScenarioAddDifferentLengthUnits(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	inches, err := Length(1, "in", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	cm, err := Length(1, "cm", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := inches.Add(cm, cv)
	if err != nil {
		t.Fatal(err)
	}
	want := 1.3937007874015748
	if math.Abs(sum.Value-want) > 1e-9 {
		t.Errorf("1in + 1cm = %v, want %v", sum.Value, want)
	}
	if sum.Unit.Terms()[0].Unit.Name != "inch" {
		t.Errorf("expected result unit to stay inch, got %s", sum.Unit.Format(true))
	}
}

func TestScenarioMultiplyLengthsAndToSi(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	a, err := Length(3, "m", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Length(4, "m", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	product, err := a.Mul(b, cv)
	if err != nil {
		t.Fatal(err)
	}
	result, err := product.ToSi(false, false, cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(result.Value-12) > 1e-9 {
		t.Errorf("3m * 4m toSi value = %v, want 12", result.Value)
	}
	if got := result.Unit.Format(true); got != "m2" {
		t.Errorf("3m * 4m toSi unit = %q, want m2", got)
	}
}

func TestScenarioForceCompactsToNewton(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	accel, err := ParseQuantity("9.80665 m/s2", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	mass, err := Mass(1, "kg", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	product, err := accel.Mul(mass, cv)
	if err != nil {
		t.Fatal(err)
	}
	compacted, err := product.Compact(cv)
	if err != nil {
		t.Fatal(err)
	}
	terms := compacted.Unit.Terms()
	if len(terms) != 1 || terms[0].Unit.Name != "newton" {
		t.Fatalf("expected single newton term, got %s", compacted.Unit.Format(true))
	}
	if math.Abs(compacted.Value-9.80665) > 1e-9 {
		t.Errorf("compacted value = %v, want 9.80665", compacted.Value)
	}
}

func TestScenarioAutoPrefixLength(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	q, err := Length(1500, "m", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	got, err := q.AutoPrefix(cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Value-1.5) > 1e-9 {
		t.Errorf("autoPrefix value = %v, want 1.5", got.Value)
	}
	term := got.Unit.Terms()[0]
	if term.Prefix == nil || term.Prefix.Name != "kilo" {
		t.Errorf("expected kilo prefix, got %v", term.Prefix)
	}
}

func TestScenarioDegreesToRadians(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	q, err := ParseQuantity("90deg", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	rad, _ := ParseDerivedUnit("rad", units, prefixes)
	got, err := q.To(rad, cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got.Value-math.Pi/2) > 1e-9 {
		t.Errorf("90deg in rad = %v, want pi/2", got.Value)
	}
}

func TestScenarioTimeToPartsAndBack(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	q, err := Time(3723.5, "s", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	parts, err := q.ToParts([]string{"h", "min", "s"}, 3, cv, units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	if parts.Sign != 1 {
		t.Errorf("sign = %d, want 1", parts.Sign)
	}
	if parts.Values["h"] != 1 || parts.Values["min"] != 2 {
		t.Errorf("parts = %v, want h:1 min:2", parts.Values)
	}
	if math.Abs(parts.Values["s"]-3.5) > 1e-9 {
		t.Errorf("parts[s] = %v, want 3.5", parts.Values["s"])
	}

	back, err := FromParts(parts, "s", cv, units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(back.Value-3723.5) > 1e-9 {
		t.Errorf("fromParts = %v, want 3723.5", back.Value)
	}
}

func TestQuantityArithmeticLaws(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	a, err := Length(2, "m", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	inv, err := a.Inv()
	if err != nil {
		t.Fatal(err)
	}
	roundTrip, err := inv.Inv()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(roundTrip.Value-a.Value) > 1e-9 || !roundTrip.Unit.Equal(a.Unit) {
		t.Errorf("inv(inv(a)) = %+v, want %+v", roundTrip, a)
	}

	doubled, err := a.MulScalar(2)
	if err != nil {
		t.Fatal(err)
	}
	halved, err := doubled.DivScalar(2)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(halved.Value-a.Value) > 1e-9 {
		t.Errorf("(a*2)/2 = %v, want %v", halved.Value, a.Value)
	}
}

func TestQuantityAutoPrefixIdempotent(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	q, err := Length(1500, "m", units, prefixes)
	if err != nil {
		t.Fatal(err)
	}
	once, err := q.AutoPrefix(cv)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := once.AutoPrefix(cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(once.Value-twice.Value) > 1e-9 || !once.Unit.Equal(twice.Unit) {
		t.Errorf("autoPrefix not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestQuantityExpandCompactRoundTrip(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	accel, _ := ParseQuantity("9.80665 m/s2", units, prefixes)
	mass, _ := Mass(1, "kg", units, prefixes)
	force, err := accel.Mul(mass, cv)
	if err != nil {
		t.Fatal(err)
	}
	compacted, err := force.Compact(cv)
	if err != nil {
		t.Fatal(err)
	}
	expanded, err := compacted.Expand(cv)
	if err != nil {
		t.Fatal(err)
	}
	backToNewton, err := expanded.Compact(cv)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(backToNewton.Value-compacted.Value) > 1e-9 || !backToNewton.Unit.Equal(compacted.Unit) {
		t.Errorf("expand/compact round trip: got %+v, want %+v", backToNewton, compacted)
	}
}

func TestQuantityDimensionMismatchRejected(t *testing.T) {
	_, units, cv := newQuantityTestEnv(t)
	prefixes := cv.Prefixes
	length, _ := Length(1, "m", units, prefixes)
	mass, _ := Mass(1, "kg", units, prefixes)
	if _, err := length.Add(mass, cv); err == nil {
		t.Error("expected dimension mismatch adding length to mass")
	}
	if _, err := Length(1, "kg", units, prefixes); err == nil {
		t.Error("expected dimension mismatch constructing Length from a mass symbol")
	}
}
