package sizing

import (
	"errors"
	"fmt"
	"math"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Bounds are the accepted input ranges, checked before Compute is called.
type Bounds struct {
	ApartmentCount          Range `json:"apartment_count" yaml:"apartment_count"`
	AvgBedroomsPerApartment Range `json:"avg_bedrooms_per_apartment" yaml:"avg_bedrooms_per_apartment"`
	UsableRoofAreaSqFt      Range `json:"usable_roof_area_sqft" yaml:"usable_roof_area_sqft"`
	GasCostPerTherm         Range `json:"gas_cost_per_therm" yaml:"gas_cost_per_therm"`
}

// DefaultBounds matches the ranges offered by the entry form.
func DefaultBounds() Bounds {
	return Bounds{
		ApartmentCount:          Range{Min: 1, Max: 500},
		AvgBedroomsPerApartment: Range{Min: 0.5, Max: 10},
		UsableRoofAreaSqFt:      Range{Min: PanelAreaSqFt, Max: 20000},
		GasCostPerTherm:         Range{Min: 0.1, Max: 10},
	}
}

func (b Bounds) Range(f Field) Range {
	switch f {
	case FieldApartmentCount:
		return b.ApartmentCount
	case FieldAvgBedroomsPerApartment:
		return b.AvgBedroomsPerApartment
	case FieldUsableRoofAreaSqFt:
		return b.UsableRoofAreaSqFt
	case FieldGasCostPerTherm:
		return b.GasCostPerTherm
	default:
		return Range{}
	}
}

// Check verifies the bounds themselves are usable.
func (b Bounds) Check() error {
	for _, f := range Fields {
		r := b.Range(f)
		if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
			return fmt.Errorf("%s: %w", f, ErrInvalidRange)
		}
	}
	return nil
}

// ValidateField checks a single value for field f.
func (b Bounds) ValidateField(f Field, v float64) error {
	if !f.Valid() {
		return ErrInvalidField
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", f, ErrNotFinite)
	}
	if f == FieldApartmentCount && v != math.Trunc(v) {
		return fmt.Errorf("%s: %w", f, ErrNotInteger)
	}
	if r := b.Range(f); !r.Contains(v) {
		return fmt.Errorf("%s: %w: %g not in [%g, %g]", f, ErrOutOfRange, v, r.Min, r.Max)
	}
	return nil
}

// Validate checks every field of in and joins all violations.
func (b Bounds) Validate(in Input) error {
	var errs []error
	for _, f := range Fields {
		if err := b.ValidateField(f, in.Value(f)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
