package sizing

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func scenarioA() Input {
	return Input{
		ApartmentCount:          10,
		AvgBedroomsPerApartment: 2,
		UsableRoofAreaSqFt:      1000,
		GasCostPerTherm:         2.50,
	}
}

func TestCompute_ScenarioA(t *testing.T) {
	got := Compute(scenarioA())

	want := Result{
		DailyHotWaterGallons:         800,
		DailyHeatLoadBTU:             666400,
		DailyBoilerGasInputBTU:       888533.33,
		DailyThermsConsumed:          8.8853,
		AnnualThermsConsumed:         3243.15,
		AnnualBaselineGasCost:        8107.87,
		DailySolarCoveredBTU:         466480,
		PanelsNeededForSolarFraction: 12,
		PanelsFittingRoof:            31,
		PanelsToInstall:              12,
		ThermalStorageGallons:        600,
		AnnualDollarSaved:            4380,
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 0.01)); diff != "" {
		t.Fatalf("Compute() mismatch (-want +got):\n%s", diff)
	}
	if got.RoofConstrained() {
		t.Fatal("expected demand-constrained result")
	}
}

func TestCompute_ScenarioB_RoofConstrained(t *testing.T) {
	in := scenarioA()
	in.UsableRoofAreaSqFt = 300

	got := Compute(in)

	if got.PanelsNeededForSolarFraction != 12 {
		t.Fatalf("needed=%d want 12", got.PanelsNeededForSolarFraction)
	}
	if got.PanelsFittingRoof != 9 {
		t.Fatalf("fitting=%d want 9", got.PanelsFittingRoof)
	}
	if got.PanelsToInstall != 9 {
		t.Fatalf("install=%d want 9", got.PanelsToInstall)
	}
	if got.ThermalStorageGallons != 450 {
		t.Fatalf("storage=%d want 450", got.ThermalStorageGallons)
	}
	// 9 panels * 40000 BTU * 365 / 100000 = 1314 therms
	if math.Abs(got.AnnualDollarSaved-1314*2.5) > 1e-9 {
		t.Fatalf("saved=%v want %v", got.AnnualDollarSaved, 1314*2.5)
	}
	if !got.RoofConstrained() {
		t.Fatal("expected roof-constrained result")
	}
}

func TestCompute_RoofRoundsDown(t *testing.T) {
	cases := []struct {
		roof float64
		want int
	}{
		{32, 1},
		{63.99, 1},
		{64, 2},
		{319, 9},
		{320, 10},
		{352, 11},
	}

	for _, tc := range cases {
		in := scenarioA()
		in.UsableRoofAreaSqFt = tc.roof
		if got := Compute(in).PanelsFittingRoof; got != tc.want {
			t.Fatalf("roof=%v: fitting=%d want %d", tc.roof, got, tc.want)
		}
	}
}

func TestCompute_ExactlyDivisibleDemandDoesNotRoundUp(t *testing.T) {
	// 400000 gal * 833 * 0.7 = 233,240,000 BTU = 5831 panels exactly.
	in := Input{ApartmentCount: 5000, AvgBedroomsPerApartment: 2, UsableRoofAreaSqFt: 1e6, GasCostPerTherm: 1}

	if got := Compute(in).PanelsNeededForSolarFraction; got != 5831 {
		t.Fatalf("needed=%d want 5831", got)
	}
}

func TestCeilFloorCount(t *testing.T) {
	cases := []struct {
		name      string
		in        float64
		wantCeil  int
		wantFloor int
	}{
		{"exact", 12, 12, 12},
		{"noise above", 12 + 1e-12, 12, 12},
		{"noise below", 12 - 1e-12, 12, 12},
		{"fraction", 11.66, 12, 11},
		{"just above", 12.001, 13, 12},
		{"zero", 0, 0, 0},
		{"nan", math.NaN(), 0, 0},
		{"inf", math.Inf(1), 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ceilCount(tc.in); got != tc.wantCeil {
				t.Fatalf("ceilCount(%v)=%d want %d", tc.in, got, tc.wantCeil)
			}
			if got := floorCount(tc.in); got != tc.wantFloor {
				t.Fatalf("floorCount(%v)=%d want %d", tc.in, got, tc.wantFloor)
			}
		})
	}
}

func TestCompute_NaNPropagates(t *testing.T) {
	in := scenarioA()
	in.AvgBedroomsPerApartment = math.NaN()

	got := Compute(in)

	if !math.IsNaN(got.DailyHotWaterGallons) || !math.IsNaN(got.AnnualBaselineGasCost) {
		t.Fatalf("expected NaN baseline, got %+v", got)
	}
	if got.PanelsNeededForSolarFraction != 0 || got.PanelsToInstall != 0 {
		t.Fatalf("expected zero panel counts, got %+v", got)
	}
	if got.PanelsFittingRoof != 31 {
		t.Fatalf("roof capacity should not depend on demand, got %d", got.PanelsFittingRoof)
	}
}

func TestCompute_ZeroInputs(t *testing.T) {
	got := Compute(Input{})
	if diff := cmp.Diff(Result{}, got); diff != "" {
		t.Fatalf("expected zero result (-want +got):\n%s", diff)
	}
}

// boundedInput maps arbitrary generator values into the default bounds,
// keeping apartments*bedrooms >= 2.
func boundedInput(a, b, r, g uint16) Input {
	return Input{
		ApartmentCount:          2 + int(a)%499,
		AvgBedroomsPerApartment: 1 + float64(b%91)/10,
		UsableRoofAreaSqFt:      32 + float64(r%19969),
		GasCostPerTherm:         0.1 + float64(g%991)/100,
	}
}

func TestProperty_InstallIsMinOfNeededAndFitting(t *testing.T) {
	f := func(a, b, r, g uint16) bool {
		res := Compute(boundedInput(a, b, r, g))
		return res.PanelsToInstall == min(res.PanelsNeededForSolarFraction, res.PanelsFittingRoof) &&
			res.PanelsToInstall <= res.PanelsNeededForSolarFraction &&
			res.PanelsToInstall <= res.PanelsFittingRoof
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestProperty_NonNegative(t *testing.T) {
	f := func(a, b, r, g uint16) bool {
		res := Compute(boundedInput(a, b, r, g))
		return res.DailyHotWaterGallons >= 0 &&
			res.DailyHeatLoadBTU >= 0 &&
			res.DailyBoilerGasInputBTU >= 0 &&
			res.AnnualThermsConsumed >= 0 &&
			res.AnnualBaselineGasCost >= 0 &&
			res.DailySolarCoveredBTU >= 0 &&
			res.PanelsToInstall >= 0 &&
			res.ThermalStorageGallons >= 0 &&
			res.AnnualDollarSaved >= 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestProperty_SavingsNeverExceedBaseline(t *testing.T) {
	f := func(a, b, r, g uint16) bool {
		res := Compute(boundedInput(a, b, r, g))
		return res.AnnualDollarSaved <= res.AnnualBaselineGasCost
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestProperty_MonotonicInApartmentCount(t *testing.T) {
	f := func(a, b, r, g uint16) bool {
		in := boundedInput(a, b, r, g)
		more := in
		more.ApartmentCount++

		lo, hi := Compute(in), Compute(more)
		return hi.DailyHotWaterGallons >= lo.DailyHotWaterGallons &&
			hi.AnnualBaselineGasCost >= lo.AnnualBaselineGasCost &&
			hi.PanelsNeededForSolarFraction >= lo.PanelsNeededForSolarFraction
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestProperty_RoofCapping(t *testing.T) {
	f := func(a, b, r, g uint16) bool {
		in := boundedInput(a, b, r, g)
		res := Compute(in)
		if res.PanelsFittingRoof < res.PanelsNeededForSolarFraction {
			return res.PanelsToInstall == res.PanelsFittingRoof
		}
		return res.PanelsToInstall == res.PanelsNeededForSolarFraction
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestModelConstants(t *testing.T) {
	c := ModelConstants()
	if c.PanelOutputBTUPerDay != 40000 || c.PanelStorageGal != 50 || c.SolarCoverageFraction != 0.70 {
		t.Fatalf("unexpected constants: %+v", c)
	}
}
