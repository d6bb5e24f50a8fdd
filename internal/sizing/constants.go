package sizing

// Engineering constants of the sizing model.
const (
	BTUPerGallon          = 833.0    // BTU to heat one gallon of service hot water
	WaterUsePerBedroomGal = 40.0     // gallons of hot water per bedroom per day
	PanelOutputBTUPerDay  = 40000.0  // thermal output of one collector per day
	PanelStorageGal       = 50       // storage gallons per installed collector
	PanelAreaSqFt         = 32.0     // roof footprint of one collector
	ThermBTU              = 100000.0 // BTU per therm
	BoilerEfficiency      = 0.75     // fraction of gas input delivered as heat
	SolarCoverageFraction = 0.70     // share of the daily load the collectors are sized for
	DaysPerYear           = 365.0
)

// Constants is the constant table in a serializable form.
type Constants struct {
	BTUPerGallon          float64 `json:"btu_per_gallon" yaml:"btu_per_gallon"`
	WaterUsePerBedroomGal float64 `json:"water_use_per_bedroom_gal" yaml:"water_use_per_bedroom_gal"`
	PanelOutputBTUPerDay  float64 `json:"panel_output_btu_per_day" yaml:"panel_output_btu_per_day"`
	PanelStorageGal       int     `json:"panel_storage_gal" yaml:"panel_storage_gal"`
	PanelAreaSqFt         float64 `json:"panel_area_sqft" yaml:"panel_area_sqft"`
	ThermBTU              float64 `json:"therm_btu" yaml:"therm_btu"`
	BoilerEfficiency      float64 `json:"boiler_efficiency" yaml:"boiler_efficiency"`
	SolarCoverageFraction float64 `json:"solar_coverage_fraction" yaml:"solar_coverage_fraction"`
	DaysPerYear           float64 `json:"days_per_year" yaml:"days_per_year"`
}

func ModelConstants() Constants {
	return Constants{
		BTUPerGallon:          BTUPerGallon,
		WaterUsePerBedroomGal: WaterUsePerBedroomGal,
		PanelOutputBTUPerDay:  PanelOutputBTUPerDay,
		PanelStorageGal:       PanelStorageGal,
		PanelAreaSqFt:         PanelAreaSqFt,
		ThermBTU:              ThermBTU,
		BoilerEfficiency:      BoilerEfficiency,
		SolarCoverageFraction: SolarCoverageFraction,
		DaysPerYear:           DaysPerYear,
	}
}
