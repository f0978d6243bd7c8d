package launch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ReadCSV parses launch records from CSV with a header row. Columns are
// matched by name; unknown columns (such as an unnamed index) are ignored.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}
		rec, err := cols.record(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

type columnIndex struct {
	site, class, payload, category int
	flight, version                int // -1 when absent
}

func mapColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	lookup := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	ci := columnIndex{
		site:     lookup(ColLaunchSite),
		class:    lookup(ColClass),
		payload:  lookup(ColPayloadMass),
		category: lookup(ColBoosterCategory),
		flight:   lookup(ColFlightNumber),
		version:  lookup(ColBoosterVersion),
	}
	var missing []string
	for name, i := range map[string]int{
		ColLaunchSite:      ci.site,
		ColClass:           ci.class,
		ColPayloadMass:     ci.payload,
		ColBoosterCategory: ci.category,
	} {
		if i < 0 {
			missing = append(missing, strconv.Quote(name))
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return ci, fmt.Errorf("missing required column(s) %s", strings.Join(missing, ", "))
	}
	return ci, nil
}

func (ci columnIndex) record(row []string) (Record, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	site := field(ci.site)
	if site == "" {
		return Record{}, fmt.Errorf("empty %q", ColLaunchSite)
	}
	success, err := ParseClass(field(ci.class))
	if err != nil {
		return Record{}, err
	}
	mass, err := strconv.ParseFloat(field(ci.payload), 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse %q: %w", ColPayloadMass, err)
	}

	rec := Record{
		Site:            site,
		Success:         success,
		PayloadMassKg:   mass,
		BoosterVersion:  field(ci.version),
		BoosterCategory: field(ci.category),
	}
	if s := field(ci.flight); s != "" {
		n, err := ParseFlightNumber(s)
		if err != nil {
			return Record{}, err
		}
		rec.FlightNumber = n
	}
	return rec, nil
}

// ParseFlightNumber converts a flight number cell ("7", "7.0") to an int.
// Fractional values are rejected.
func ParseFlightNumber(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", ColFlightNumber, err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%q: want a whole number, got %q", ColFlightNumber, s)
	}
	return int(f), nil
}

// ParseClass converts a class cell ("0", "1", "1.0", ...) to an outcome.
func ParseClass(s string) (bool, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return false, fmt.Errorf("parse %q: %w", ColClass, err)
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("parse %q: want 0 or 1, got %s", ColClass, s)
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
