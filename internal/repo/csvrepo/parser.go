package csvrepo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/milad/energymonitor/internal/domain"
)

const (
	timeLayout = "2006-01-02 15:04:05"
)

// ParseReadingsCSV parses readings from the provided CSV reader.
//
// The header names the columns: time and value are required ("meterusage" is
// accepted for value); meter_type, method, notes and image_ref are optional.
// Missing meter types default to electricity and missing methods to manual.
//
// Times are parsed using layout "2006-01-02 15:04:05" interpreted as UTC, or as
// RFC 3339. Invalid rows are skipped and returned as a joined error
// (errors.Join).
func ParseReadingsCSV(r io.Reader) ([]domain.MeterReading, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // be permissive; validate ourselves
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var (
		readings []domain.MeterReading
		rowErrs  []error
		rowNum   = 1 // header
	)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: read: %w", rowNum, err))
			continue
		}
		rd, err := cols.reading(row)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", rowNum, err))
			continue
		}
		readings = append(readings, rd)
	}

	// Ensure we return stable, non-nil slice.
	if readings == nil {
		readings = []domain.MeterReading{}
	}
	return readings, errors.Join(rowErrs...)
}

type columns struct {
	time, value, meterType, method, notes, imageRef int
}

func parseHeader(header []string) (columns, error) {
	c := columns{time: -1, value: -1, meterType: -1, method: -1, notes: -1, imageRef: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "time", "timestamp":
			c.time = i
		case "value", "meterusage", "reading":
			c.value = i
		case "meter_type":
			c.meterType = i
		case "method":
			c.method = i
		case "notes":
			c.notes = i
		case "image_ref":
			c.imageRef = i
		}
	}
	if c.time < 0 || c.value < 0 {
		return c, fmt.Errorf("unexpected header %q (want at least %q)", strings.Join(header, ","), "time,value")
	}
	return c, nil
}

func (c columns) reading(row []string) (domain.MeterReading, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	if len(row) <= max(c.time, c.value) {
		return domain.MeterReading{}, fmt.Errorf("expected at least %d columns, got %d", max(c.time, c.value)+1, len(row))
	}

	t, err := parseTime(field(c.time))
	if err != nil {
		return domain.MeterReading{}, fmt.Errorf("parse time %q: %w", field(c.time), err)
	}

	v, err := strconv.ParseFloat(field(c.value), 64)
	if err != nil {
		return domain.MeterReading{}, fmt.Errorf("parse value %q: %w", field(c.value), err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return domain.MeterReading{}, fmt.Errorf("invalid value %v", v)
	}

	rd := domain.MeterReading{
		Value:     v,
		Timestamp: t,
		MeterType: domain.MeterElectricity,
		Method:    domain.MethodManual,
		Notes:     field(c.notes),
		ImageRef:  field(c.imageRef),
	}
	if s := field(c.meterType); s != "" {
		rd.MeterType = domain.MeterType(strings.ToLower(s))
		if !rd.MeterType.Valid() {
			return domain.MeterReading{}, fmt.Errorf("unknown meter type %q", s)
		}
	}
	if s := field(c.method); s != "" {
		rd.Method = domain.ReadingMethod(strings.ToLower(s))
		if !rd.Method.Valid() {
			return domain.MeterReading{}, fmt.Errorf("unknown reading method %q", s)
		}
	}
	return rd, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
		return t2.UTC(), nil
	}
	return time.Time{}, err
}
