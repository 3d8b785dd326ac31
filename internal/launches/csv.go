package launches

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"launchdash.dev/internal/models"
)

// Column headers of the launch records file.
const (
	ColumnFlightNumber           = "Flight Number"
	ColumnLaunchSite             = "Launch Site"
	ColumnClass                  = "class"
	ColumnPayloadMass            = "Payload Mass (kg)"
	ColumnBoosterVersion         = "Booster Version"
	ColumnBoosterVersionCategory = "Booster Version Category"
)

var requiredColumns = []string{
	ColumnLaunchSite,
	ColumnClass,
	ColumnPayloadMass,
	ColumnBoosterVersionCategory,
}

var ErrMissingColumn = errors.New("missing required column")

// ParseCSV reads launch records from r. Columns are located by header name; an unnamed
// index column and unknown columns are ignored. Flight Number and Booster Version are
// optional.
func ParseCSV(r io.Reader) ([]models.Launch, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty launch records file")
		}
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	var launches []models.Launch
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}

		launch, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		launches = append(launches, launch)
	}

	return launches, nil
}

func parseRecord(record []string, index map[string]int) (models.Launch, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var launch models.Launch

	launch.LaunchSite = field(ColumnLaunchSite)
	if launch.LaunchSite == "" {
		return launch, fmt.Errorf("empty %q", ColumnLaunchSite)
	}

	class, err := parseWholeNumber(field(ColumnClass))
	if err != nil {
		return launch, fmt.Errorf("invalid %q: %w", ColumnClass, err)
	}
	if class != models.OutcomeFailure && class != models.OutcomeSuccess {
		return launch, fmt.Errorf("invalid %q: %d is not 0 or 1", ColumnClass, class)
	}
	launch.Class = class

	payload, err := strconv.ParseFloat(field(ColumnPayloadMass), 64)
	if err != nil {
		return launch, fmt.Errorf("invalid %q: %w", ColumnPayloadMass, err)
	}
	if math.IsNaN(payload) || math.IsInf(payload, 0) {
		return launch, fmt.Errorf("invalid %q: %v is not a finite mass", ColumnPayloadMass, payload)
	}
	if payload < 0 {
		return launch, fmt.Errorf("invalid %q: negative mass %v", ColumnPayloadMass, payload)
	}
	launch.PayloadMassKg = payload

	if raw := field(ColumnFlightNumber); raw != "" {
		n, err := parseWholeNumber(raw)
		if err != nil {
			return launch, fmt.Errorf("invalid %q: %w", ColumnFlightNumber, err)
		}
		launch.FlightNumber = n
	}

	launch.BoosterVersion = field(ColumnBoosterVersion)
	launch.BoosterVersionCategory = field(ColumnBoosterVersionCategory)

	return launch, nil
}

// parseWholeNumber accepts "1" as well as "1.0", which is how dataframe exports write
// integer columns that once held a missing value.
func parseWholeNumber(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return int(f), nil
}
