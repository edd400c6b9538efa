package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidDuration indicates the input cannot be used as a countdown length.
var ErrInvalidDuration = errors.New("invalid duration")

// Default is the duration shown when the input is first displayed.
const Default = "00:01:30"

const fieldCount = 3

// Spec is a parsed HH:MM:SS duration.
// Field bounds are not enforced, so "00:90:00" is a valid 90 minute spec.
type Spec struct {
	Hours   int
	Minutes int
	Seconds int
}

// Parse converts an HH:MM:SS string into a Spec.
func Parse(raw string) (Spec, error) {
	fields := strings.Split(strings.TrimSpace(raw), ":")
	if len(fields) != fieldCount {
		return Spec{}, fmt.Errorf("%w: %q has %d fields, want %d", ErrInvalidDuration, raw, len(fields), fieldCount)
	}

	values := make([]int, fieldCount)
	for index, field := range fields {
		value, err := parseField(field)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %q: %s", ErrInvalidDuration, raw, err.Error())
		}
		values[index] = value
	}

	spec := Spec{Hours: values[0], Minutes: values[1], Seconds: values[2]}
	total, ok := checkedTotal(spec)
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q is too long", ErrInvalidDuration, raw)
	}
	if total <= 0 {
		return Spec{}, fmt.Errorf("%w: %q is not longer than zero", ErrInvalidDuration, raw)
	}
	return spec, nil
}

// checkedTotal sums the fields in seconds and reports false on int overflow.
func checkedTotal(spec Spec) (int, bool) {
	total := spec.Seconds
	if spec.Minutes > (math.MaxInt-total)/60 {
		return 0, false
	}
	total += spec.Minutes * 60
	if spec.Hours > (math.MaxInt-total)/3600 {
		return 0, false
	}
	return total + spec.Hours*3600, true
}

// MustParse is Parse for known-good literals.
func MustParse(raw string) Spec {
	spec, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return spec
}

// TotalSeconds returns the whole duration in seconds.
func (spec Spec) TotalSeconds() int {
	return spec.Seconds + spec.Minutes*60 + spec.Hours*3600
}

// String renders the spec as zero-padded HH:MM:SS.
func (spec Spec) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", spec.Hours, spec.Minutes, spec.Seconds)
}

func parseField(field string) (int, error) {
	trimmed := strings.TrimSpace(field)
	if trimmed == "" {
		return 0, errors.New("empty field")
	}
	if strings.HasPrefix(trimmed, "-") {
		return 0, fmt.Errorf("field %q is negative", trimmed)
	}
	if trimmed[0] < '0' || trimmed[0] > '9' {
		return 0, fmt.Errorf("field %q is not a number", trimmed)
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("field %q is not a number", trimmed)
	}
	return value, nil
}
