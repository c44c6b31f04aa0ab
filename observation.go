package locusstats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingSentinel marks an absent observation in the input table.
const MissingSentinel = "."

// ErrParseFailure is the class of error returned when a non-missing field
// cannot be read as a finite number.
var ErrParseFailure = errors.New("could not parse numeric values")

// ObservationSet holds the finite values recovered from one row. It may be
// empty.
type ObservationSet []float64

// ParseError records the first field that could not be parsed.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: field %q: %v", ErrParseFailure, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailure
}

// ExtractObservations drops missing fields and parses the rest. Under
// FailFast any bad field invalidates the row. Under Salvage bad fields are
// skipped, and the number skipped is returned.
func ExtractObservations(fields []string, policy ParsePolicy) (ObservationSet, int, error) {
	values := make(ObservationSet, 0, len(fields))
	skipped := 0

	for _, field := range fields {
		if field == MissingSentinel {
			continue
		}

		v, err := parseObservation(field)
		if err != nil {
			if policy == Salvage {
				skipped++
				continue
			}
			return nil, 0, &ParseError{Field: field, Err: err}
		}

		values = append(values, v)
	}

	return values, skipped, nil
}

// parseObservation reads a decimal literal. Surrounding whitespace is ignored;
// base-prefixed literals such as "0x1p3" are rejected.
func parseObservation(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if hasBasePrefix(field) {
		return 0, fmt.Errorf("%q is not a decimal number", field)
	}

	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}

	// strconv accepts "NaN" and "Inf", and saturates overflow to Inf with
	// ErrRange, so only finite values get past here.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", field)
	}

	return v, nil
}

func hasBasePrefix(field string) bool {
	field = strings.TrimLeft(field, "+-")
	if len(field) < 2 || field[0] != '0' {
		return false
	}

	switch field[1] {
	case 'x', 'X', 'b', 'B', 'o', 'O':
		return true
	}

	return false
}
