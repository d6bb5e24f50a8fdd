package sizing

import (
	"errors"
	"testing"
)

func formValues() map[string]string {
	return map[string]string{
		"apartment_count":            "10",
		"avg_bedrooms_per_apartment": "2",
		"usable_roof_area_sqft":      " 1000 ",
		"gas_cost_per_therm":         "2.50",
	}
}

func TestParseInput_Valid(t *testing.T) {
	in, err := ParseInput(formValues())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in != scenarioA() {
		t.Fatalf("got %+v want %+v", in, scenarioA())
	}
}

func TestParseInput_Errors(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
		want  error
	}{
		{"missing", "gas_cost_per_therm", "", ErrMissingField},
		{"blank", "usable_roof_area_sqft", "   ", ErrMissingField},
		{"garbage float", "avg_bedrooms_per_apartment", "two", ErrNotFinite},
		{"nan text", "gas_cost_per_therm", "NaN", ErrNotFinite},
		{"fractional count", "apartment_count", "10.5", ErrNotInteger},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := formValues()
			v[tc.field] = tc.value

			in, err := ParseInput(v)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if in != (Input{}) {
				t.Fatalf("expected zero input on error, got %+v", in)
			}
		})
	}
}
