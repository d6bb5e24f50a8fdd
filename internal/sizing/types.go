package sizing

import "fmt"

// Field identifies one of the four user-supplied inputs.
type Field int

const (
	FieldUnknown Field = iota
	FieldApartmentCount
	FieldAvgBedroomsPerApartment
	FieldUsableRoofAreaSqFt
	FieldGasCostPerTherm
)

// Fields lists the valid fields in input order.
var Fields = []Field{
	FieldApartmentCount,
	FieldAvgBedroomsPerApartment,
	FieldUsableRoofAreaSqFt,
	FieldGasCostPerTherm,
}

func (f Field) Valid() bool {
	return f >= FieldApartmentCount && f <= FieldGasCostPerTherm
}

func (f Field) String() string {
	switch f {
	case FieldApartmentCount:
		return "apartment_count"
	case FieldAvgBedroomsPerApartment:
		return "avg_bedrooms_per_apartment"
	case FieldUsableRoofAreaSqFt:
		return "usable_roof_area_sqft"
	case FieldGasCostPerTherm:
		return "gas_cost_per_therm"
	default:
		return "unknown"
	}
}

func ParseField(s string) (Field, error) {
	switch s {
	case "apartment_count":
		return FieldApartmentCount, nil
	case "avg_bedrooms_per_apartment":
		return FieldAvgBedroomsPerApartment, nil
	case "usable_roof_area_sqft":
		return FieldUsableRoofAreaSqFt, nil
	case "gas_cost_per_therm":
		return FieldGasCostPerTherm, nil
	default:
		return FieldUnknown, fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
}

// Value returns the field of in as a float64.
func (in Input) Value(f Field) float64 {
	switch f {
	case FieldApartmentCount:
		return float64(in.ApartmentCount)
	case FieldAvgBedroomsPerApartment:
		return in.AvgBedroomsPerApartment
	case FieldUsableRoofAreaSqFt:
		return in.UsableRoofAreaSqFt
	case FieldGasCostPerTherm:
		return in.GasCostPerTherm
	default:
		return 0
	}
}

// With returns a copy of in with field f set to v. Apartment counts are
// truncated; validate v with Bounds.ValidateField beforehand.
func (in Input) With(f Field, v float64) Input {
	switch f {
	case FieldApartmentCount:
		in.ApartmentCount = int(v)
	case FieldAvgBedroomsPerApartment:
		in.AvgBedroomsPerApartment = v
	case FieldUsableRoofAreaSqFt:
		in.UsableRoofAreaSqFt = v
	case FieldGasCostPerTherm:
		in.GasCostPerTherm = v
	}
	return in
}
