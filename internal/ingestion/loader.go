package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	coreerrors "github.com/fuel-lab/fueltrack/internal/core/errors"
	"github.com/fuel-lab/fueltrack/internal/core/fuel"
	"github.com/fuel-lab/fueltrack/internal/schema"
)

// Load reads the file at path.
func (s *Service) Load(path string) (*fuel.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &coreerrors.MissingInputError{Path: path}
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input %s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return s.Read(path, f)
}

// Read parses a fuel log from r. source names the input in errors and logs.
//
// Unparseable cells never fail the load: they become null values and are
// counted in a warning. Only a missing required column is fatal.
func (s *Service) Read(source string, r io.Reader) (*fuel.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		header = nil
	} else if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", source, err)
	}

	binding, err := s.spec.Bind(source, header)
	if err != nil {
		return nil, err
	}

	var (
		entries  []fuel.Entry
		badCells int
	)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", source, line, err)
		}

		entry, bad := s.parseRecord(record, binding)
		entry.Row = line
		badCells += bad
		entries = append(entries, entry)
	}

	table := fuel.NewTable(entries, binding.Has(schema.FieldFuelType))

	if badCells > 0 {
		s.logger.Warn("Unparseable cells loaded as null",
			"source", source,
			"cells", badCells)
	}
	if n := table.Undated(); n > 0 {
		s.logger.Warn("Rows without a valid date excluded from windows and charts",
			"source", source,
			"rows", n)
	}
	s.logger.Info("Loaded fuel log",
		"source", source,
		"entries", table.Len(),
		"fuel_type", table.HasFuelType)

	return table, nil
}

// parseRecord coerces one record and reports how many non-blank cells
// failed to parse.
func (s *Service) parseRecord(record []string, b schema.Binding) (fuel.Entry, int) {
	var (
		e   fuel.Entry
		bad int
	)

	cell := func(field string) (string, bool) {
		i, ok := b.Index(field)
		if !ok || i >= len(record) {
			return "", false
		}
		v := strings.TrimSpace(record[i])
		return v, v != ""
	}

	number := func(field string) fuel.Float {
		raw, ok := cell(field)
		if !ok {
			return fuel.Null
		}
		v, valid := parseNumber(raw)
		if !valid {
			bad++
		}
		return v
	}

	if raw, ok := cell(schema.FieldDate); ok {
		t, err := s.parseDate(raw)
		if err != nil {
			bad++
			s.logger.Debug("Unparseable date", "value", raw, "error", err)
		} else {
			e.Date = fuel.DateOf(t)
		}
	}
	e.Distance = number(schema.FieldDistance)
	e.FuelVolume = number(schema.FieldFuelVolume)
	e.TotalCost = number(schema.FieldTotalCost)
	if raw, ok := cell(schema.FieldFuelType); ok {
		e.FuelType = raw
	}

	return e, bad
}
