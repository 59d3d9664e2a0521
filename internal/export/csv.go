// Package export renders reading histories as comma-delimited text.
//
// The output is deliberately simpler than RFC 4180: fields are never quoted
// and commas inside free text are replaced with semicolons.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/milad/energymonitor/internal/consumption"
	"github.com/milad/energymonitor/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	readingsHeader    = "Date,Time,Reading (kWh),Meter Type,Reading Method,Notes"
	consumptionHeader = "Date,Daily Consumption (kWh),Cumulative Reading (kWh)"
)

// Kind selects one of the export layouts.
type Kind string

const (
	KindReadings    Kind = "readings"
	KindConsumption Kind = "consumption"
)

func (k Kind) Valid() bool { return k == KindReadings || k == KindConsumption }

// Render dispatches to the layout named by kind. Callers check kind with Valid;
// any kind other than KindConsumption gets the readings layout.
func Render(kind Kind, readings []domain.MeterReading, loc *time.Location) string {
	switch kind {
	case KindConsumption:
		return ConsumptionCSV(readings, loc)
	default:
		return ReadingsCSV(readings, loc)
	}
}

// ReadingsCSV lists every reading in chronological order.
func ReadingsCSV(readings []domain.MeterReading, loc *time.Location) string {
	loc = orUTC(loc)
	var b strings.Builder
	b.WriteString(readingsHeader)
	b.WriteByte('\n')
	for _, r := range consumption.Sorted(readings) {
		ts := r.Timestamp.In(loc)
		writeRow(&b,
			ts.Format(dateLayout),
			ts.Format(timeLayout),
			formatNumber(r.Value),
			string(r.MeterType),
			string(r.Method),
			sanitize(r.Notes),
		)
	}
	return b.String()
}

// ConsumptionCSV lists the usage since the previous reading next to each
// cumulative reading. The first row always reports zero usage.
func ConsumptionCSV(readings []domain.MeterReading, loc *time.Location) string {
	loc = orUTC(loc)
	var b strings.Builder
	b.WriteString(consumptionHeader)
	b.WriteByte('\n')
	for _, s := range consumption.DeriveCumulative(readings) {
		writeRow(&b,
			s.Timestamp.In(loc).Format(dateLayout),
			formatNumber(s.Delta),
			formatNumber(s.Cumulative),
		)
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f)
	}
	b.WriteByte('\n')
}

func sanitize(s string) string {
	return strings.ReplaceAll(s, ",", ";")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
