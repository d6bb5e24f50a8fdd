package sizing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseInput builds an Input from raw form text keyed by field name.
// Unlike a lenient numeric parse, malformed text is reported, never turned
// into NaN. Range checks are left to Bounds.
func ParseInput(values map[string]string) (Input, error) {
	var (
		in   Input
		errs []error
	)
	for _, f := range Fields {
		raw := strings.TrimSpace(values[f.String()])
		if raw == "" {
			errs = append(errs, fmt.Errorf("%s: %w", f, ErrMissingField))
			continue
		}
		v, err := parseFieldText(f, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
			continue
		}
		in = in.With(f, v)
	}
	if err := errors.Join(errs...); err != nil {
		return Input{}, err
	}
	return in, nil
}

func parseFieldText(f Field, raw string) (float64, error) {
	if f == FieldApartmentCount {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, ErrNotInteger
		}
		return float64(n), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}
