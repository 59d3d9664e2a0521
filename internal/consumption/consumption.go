// Package consumption derives usage from cumulative meter readings.
//
// All functions are pure: inputs are never modified and results depend only on
// the arguments. Readings are ordered by timestamp with a stable sort, so
// readings sharing a timestamp keep their input order.
//
// Negative differences between consecutive readings (a counter reset or a
// corrected entry) are clamped to zero. A genuine reset therefore under-counts
// the usage of that interval.
package consumption

import (
	"slices"
	"time"

	"github.com/milad/energymonitor/internal/domain"
)

// DailyTotal is the usage observed within one calendar day.
type DailyTotal struct {
	Day         time.Time // midnight in the grouping location
	Consumption float64
}

// HourlyTotal is the usage observed within one hour-of-day bucket.
type HourlyTotal struct {
	Hour        int
	Consumption float64
}

// Sorted returns a copy of readings ordered ascending by timestamp.
func Sorted(readings []domain.MeterReading) []domain.MeterReading {
	out := slices.Clone(readings)
	slices.SortStableFunc(out, func(a, b domain.MeterReading) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

// Derive returns one sample per adjacent pair of readings. The first reading
// has no predecessor and contributes no sample.
func Derive(readings []domain.MeterReading) []domain.ConsumptionSample {
	if len(readings) < 2 {
		return []domain.ConsumptionSample{}
	}
	sorted := Sorted(readings)
	out := make([]domain.ConsumptionSample, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		out = append(out, domain.ConsumptionSample{
			PeriodStart: prev.Timestamp,
			PeriodEnd:   curr.Timestamp,
			Delta:       delta(prev.Value, curr.Value),
		})
	}
	return out
}

// DeriveCumulative returns one sample per reading carrying the reading's
// cumulative value and the usage since its predecessor.
func DeriveCumulative(readings []domain.MeterReading) []domain.CumulativeSample {
	sorted := Sorted(readings)
	out := make([]domain.CumulativeSample, 0, len(sorted))
	for i, r := range sorted {
		s := domain.CumulativeSample{Timestamp: r.Timestamp, Cumulative: r.Value}
		if i > 0 {
			s.Delta = delta(sorted[i-1].Value, r.Value)
		}
		out = append(out, s)
	}
	return out
}

// Total is the usage between the earliest and the latest reading, or 0 when
// fewer than two readings are given.
func Total(readings []domain.MeterReading) float64 {
	if len(readings) < 2 {
		return 0
	}
	first, last := readings[0], readings[0]
	for _, r := range readings[1:] {
		// Strict comparisons keep the first of equal timestamps as "first" and
		// the last of them as "last", matching a stable sort.
		if r.Timestamp.Before(first.Timestamp) {
			first = r
		}
		if !r.Timestamp.Before(last.Timestamp) {
			last = r
		}
	}
	return delta(first.Value, last.Value)
}

// InMonth returns the readings whose timestamp, seen in loc, falls within the
// given calendar month.
func InMonth(readings []domain.MeterReading, year int, month time.Month, loc *time.Location) []domain.MeterReading {
	loc = orUTC(loc)
	var out []domain.MeterReading
	for _, r := range readings {
		y, m, _ := r.Timestamp.In(loc).Date()
		if y == year && m == month {
			out = append(out, r)
		}
	}
	return out
}

// Monthly is the usage within one calendar month. At least two readings must
// fall inside the month, otherwise the result is 0.
func Monthly(readings []domain.MeterReading, year int, month time.Month, loc *time.Location) float64 {
	return Total(InMonth(readings, year, month, loc))
}

// Daily groups readings by calendar day in loc and returns each day's usage,
// ascending by day. Days holding a single reading report 0.
func Daily(readings []domain.MeterReading, loc *time.Location) []DailyTotal {
	loc = orUTC(loc)
	groups := make(map[time.Time][]domain.MeterReading)
	for _, r := range readings {
		t := r.Timestamp.In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		groups[day] = append(groups[day], r)
	}

	out := make([]DailyTotal, 0, len(groups))
	for day, rs := range groups {
		out = append(out, DailyTotal{Day: day, Consumption: Total(rs)})
	}
	slices.SortFunc(out, func(a, b DailyTotal) int { return a.Day.Compare(b.Day) })
	return out
}

// ByHour groups readings by hour of day in loc and returns each bucket's usage,
// ascending by hour. Only hours holding at least one reading are returned.
func ByHour(readings []domain.MeterReading, loc *time.Location) []HourlyTotal {
	loc = orUTC(loc)
	var buckets [24][]domain.MeterReading
	for _, r := range readings {
		h := r.Timestamp.In(loc).Hour()
		buckets[h] = append(buckets[h], r)
	}

	var out []HourlyTotal
	for h, rs := range buckets {
		if len(rs) == 0 {
			continue
		}
		out = append(out, HourlyTotal{Hour: h, Consumption: Total(rs)})
	}
	return out
}

func delta(prev, curr float64) float64 {
	return max(0, curr-prev)
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
