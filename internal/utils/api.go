package utils

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"launchdash.dev/internal/models"
)

// ParseFloatParam retrieves a float64 value from the provided URL query parameters.
// A missing key yields def. An invalid value yields def and adds an entry to fieldErrors.
func ParseFloatParam(params url.Values, key string, def float64, fieldErrors map[string][]string) (float64, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	val := params.Get(key)
	if val == "" {
		return def, fieldErrors
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		fieldErrors[key] = append(fieldErrors[key], fmt.Sprintf("Invalid field value for field %q.", key))
		return def, fieldErrors
	}
	return f, fieldErrors
}

// ParsePayloadRange reads the low and high query parameters. Missing bounds fall back
// to the matching side of bounds.
func ParsePayloadRange(params url.Values, bounds models.PayloadRange) (models.PayloadRange, map[string][]string) {
	var fieldErrors map[string][]string
	var r models.PayloadRange

	r.Low, fieldErrors = ParseFloatParam(params, "low", bounds.Low, fieldErrors)
	r.High, fieldErrors = ParseFloatParam(params, "high", bounds.High, fieldErrors)

	return r, fieldErrors
}
