package utils

import (
	"errors"
	"unicode/utf8"
)

// MaxSiteLength bounds the site selection accepted from clients.
const MaxSiteLength = 100

// ValidateSite validates a launch site selection. Empty selects every site. Any other
// value is passed through to the queries, which are parameterized; a site that is not
// in the dataset simply matches no rows.
func ValidateSite(site string) error {
	if utf8.RuneCountInString(site) > MaxSiteLength {
		return errors.New("site too long (max 100 characters)")
	}
	return nil
}

// ValidatePayloadBound validates one end of a payload range.
func ValidatePayloadBound(kg float64) error {
	if kg < 0 {
		return errors.New("payload must be non-negative")
	}
	return nil
}

// ValidateChartParams validates the site and payload parameters shared by the chart endpoints.
func ValidateChartParams(site string, low, high float64) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateSite(site); err != nil {
		fieldErrors["site"] = append(fieldErrors["site"], err.Error())
	}

	if err := ValidatePayloadBound(low); err != nil {
		fieldErrors["low"] = append(fieldErrors["low"], err.Error())
	}

	if err := ValidatePayloadBound(high); err != nil {
		fieldErrors["high"] = append(fieldErrors["high"], err.Error())
	}

	return fieldErrors
}
