package sizing

import "math"

// Input is one building description submitted for sizing.
type Input struct {
	ApartmentCount          int     `json:"apartment_count" yaml:"apartment_count"`
	AvgBedroomsPerApartment float64 `json:"avg_bedrooms_per_apartment" yaml:"avg_bedrooms_per_apartment"`
	UsableRoofAreaSqFt      float64 `json:"usable_roof_area_sqft" yaml:"usable_roof_area_sqft"`
	GasCostPerTherm         float64 `json:"gas_cost_per_therm" yaml:"gas_cost_per_therm"`
}

// Result holds every derived quantity of one sizing run.
type Result struct {
	// Baseline, no solar.
	DailyHotWaterGallons   float64 `json:"daily_hot_water_gallons" yaml:"daily_hot_water_gallons"`
	DailyHeatLoadBTU       float64 `json:"daily_heat_load_btu" yaml:"daily_heat_load_btu"`
	DailyBoilerGasInputBTU float64 `json:"daily_boiler_gas_input_btu" yaml:"daily_boiler_gas_input_btu"`
	DailyThermsConsumed    float64 `json:"daily_therms_consumed" yaml:"daily_therms_consumed"`
	AnnualThermsConsumed   float64 `json:"annual_therms_consumed" yaml:"annual_therms_consumed"`
	AnnualBaselineGasCost  float64 `json:"annual_baseline_gas_cost" yaml:"annual_baseline_gas_cost"`

	// Solar.
	DailySolarCoveredBTU         float64 `json:"daily_solar_covered_btu" yaml:"daily_solar_covered_btu"`
	PanelsNeededForSolarFraction int     `json:"panels_needed_for_solar_fraction" yaml:"panels_needed_for_solar_fraction"`
	PanelsFittingRoof            int     `json:"panels_fitting_roof" yaml:"panels_fitting_roof"`
	PanelsToInstall              int     `json:"panels_to_install" yaml:"panels_to_install"`
	ThermalStorageGallons        int     `json:"thermal_storage_gallons" yaml:"thermal_storage_gallons"`
	AnnualDollarSaved            float64 `json:"annual_dollar_saved" yaml:"annual_dollar_saved"`
}

// RoofConstrained reports whether the roof, not demand, capped the installation.
func (r Result) RoofConstrained() bool {
	return r.PanelsFittingRoof < r.PanelsNeededForSolarFraction
}

// Compute runs the sizing model. It does not validate in; callers check
// Bounds first. Non-finite inputs propagate into the float fields.
func Compute(in Input) Result {
	var r Result

	r.DailyHotWaterGallons = float64(in.ApartmentCount) * in.AvgBedroomsPerApartment * WaterUsePerBedroomGal
	r.DailyHeatLoadBTU = r.DailyHotWaterGallons * BTUPerGallon
	r.DailyBoilerGasInputBTU = r.DailyHeatLoadBTU / BoilerEfficiency
	r.DailyThermsConsumed = r.DailyBoilerGasInputBTU / ThermBTU
	r.AnnualThermsConsumed = r.DailyThermsConsumed * DaysPerYear
	r.AnnualBaselineGasCost = r.AnnualThermsConsumed * in.GasCostPerTherm

	r.DailySolarCoveredBTU = r.DailyHeatLoadBTU * SolarCoverageFraction
	// A partial panel must still be installed, but cannot fit on the roof.
	r.PanelsNeededForSolarFraction = ceilCount(r.DailySolarCoveredBTU / PanelOutputBTUPerDay)
	r.PanelsFittingRoof = floorCount(in.UsableRoofAreaSqFt / PanelAreaSqFt)
	r.PanelsToInstall = min(r.PanelsNeededForSolarFraction, r.PanelsFittingRoof)
	r.ThermalStorageGallons = r.PanelsToInstall * PanelStorageGal

	annualSolarTherms := float64(r.PanelsToInstall) * PanelOutputBTUPerDay * DaysPerYear / ThermBTU
	r.AnnualDollarSaved = annualSolarTherms * in.GasCostPerTherm

	return r
}

// integerTolerance absorbs float noise around exact quotients.
const integerTolerance = 1e-9

func snap(x float64) float64 {
	if r := math.Round(x); math.Abs(x-r) < integerTolerance {
		return r
	}
	return x
}

func ceilCount(x float64) int {
	return toCount(math.Ceil(snap(x)))
}

func floorCount(x float64) int {
	return toCount(math.Floor(snap(x)))
}

// toCount maps non-finite values to 0; int conversion of NaN or Inf is
// platform dependent.
func toCount(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(x)
}
