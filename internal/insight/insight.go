// Package insight turns a reading history into short qualitative observations:
// a month-over-month comparison, the peak usage hour of the past week and
// efficiency warnings.
package insight

import (
	"fmt"
	"math"
	"time"

	"github.com/milad/energymonitor/internal/consumption"
	"github.com/milad/energymonitor/internal/domain"
)

const (
	// HighConsumptionThreshold is the total usage above which a reading
	// history is flagged as high consumption.
	HighConsumptionThreshold = 1000.0
	// SpikeFactor is how many times the mean daily usage a day must exceed to
	// count as a spike.
	SpikeFactor = 1.5
	// ChangeThresholdPct is the month-over-month change, in percent, beyond
	// which usage is reported as increased or reduced.
	ChangeThresholdPct = 10.0
	// PatternDays is how many calendar days back the usage pattern analysis
	// looks.
	PatternDays = 7
)

// Generate returns the insights for readings as observed at now, using loc for
// calendar months, days and hours. Empty input yields no insights.
func Generate(readings []domain.MeterReading, now time.Time, loc *time.Location) []domain.EnergyInsight {
	if len(readings) == 0 {
		return []domain.EnergyInsight{}
	}
	if loc == nil {
		loc = time.UTC
	}

	out := []domain.EnergyInsight{MonthlyComparison(readings, now, loc)}
	if p, ok := UsagePattern(readings, now, loc); ok {
		out = append(out, p)
	}
	out = append(out, Efficiency(readings, loc)...)
	return out
}

// PercentageChange is the relative change from last to this, in percent. A
// zero baseline yields 0.
func PercentageChange(this, last float64) float64 {
	if last <= 0 {
		return 0
	}
	return (this - last) * 100 / last
}

// MonthlyComparison compares the calendar month containing now with the one
// before it.
func MonthlyComparison(readings []domain.MeterReading, now time.Time, loc *time.Location) domain.EnergyInsight {
	local := now.In(loc)
	thisMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	this := consumption.Total(consumption.InMonth(readings, thisMonth.Year(), thisMonth.Month(), loc))
	last := consumption.Total(consumption.InMonth(readings, lastMonth.Year(), lastMonth.Month(), loc))
	pct := PercentageChange(this, last)

	in := domain.EnergyInsight{
		Title:      "Monthly Comparison",
		Actionable: pct > ChangeThresholdPct,
	}
	switch {
	case pct > ChangeThresholdPct:
		in.Severity = domain.SeverityWarning
		in.Message = fmt.Sprintf("Your energy consumption increased by %d%% compared to last month. Consider reviewing your usage patterns.", int(pct))
	case pct < -ChangeThresholdPct:
		in.Severity = domain.SeveritySuccess
		in.Message = fmt.Sprintf("Great job! You reduced your energy consumption by %d%% compared to last month.", int(math.Abs(pct)))
	default:
		in.Severity = domain.SeverityInfo
		in.Message = "Your energy consumption is stable compared to last month."
	}
	return in
}

// PeakHour returns the hour of day with the highest usage among readings taken
// after the same wall-clock time PatternDays calendar days before now in loc.
// Equal usage resolves to the earliest hour. ok is false when no reading falls
// inside the window.
func PeakHour(readings []domain.MeterReading, now time.Time, loc *time.Location) (hour int, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	since := now.In(loc).AddDate(0, 0, -PatternDays)
	var recent []domain.MeterReading
	for _, r := range readings {
		if r.Timestamp.After(since) {
			recent = append(recent, r)
		}
	}
	if len(recent) == 0 {
		return 0, false
	}

	best := -1.0
	for _, h := range consumption.ByHour(recent, loc) {
		if h.Consumption > best {
			hour, best = h.Hour, h.Consumption
		}
	}
	return hour, true
}

// UsagePattern names the peak usage hour of the last week.
func UsagePattern(readings []domain.MeterReading, now time.Time, loc *time.Location) (domain.EnergyInsight, bool) {
	hour, ok := PeakHour(readings, now, loc)
	if !ok {
		return domain.EnergyInsight{}, false
	}
	return domain.EnergyInsight{
		Title:      "Usage Pattern",
		Message:    fmt.Sprintf("Your peak energy usage typically occurs around %d:00. Consider shifting some activities to off-peak hours.", hour),
		Severity:   domain.SeverityInfo,
		Actionable: true,
	}, true
}

// Spikes counts the days whose usage exceeds SpikeFactor times the mean daily
// usage.
func Spikes(daily []consumption.DailyTotal) int {
	if len(daily) == 0 {
		return 0
	}
	var sum float64
	for _, d := range daily {
		sum += d.Consumption
	}
	mean := sum / float64(len(daily))

	n := 0
	for _, d := range daily {
		if d.Consumption > mean*SpikeFactor {
			n++
		}
	}
	return n
}

// Efficiency flags high overall usage and days with unusual spikes.
func Efficiency(readings []domain.MeterReading, loc *time.Location) []domain.EnergyInsight {
	var out []domain.EnergyInsight
	if consumption.Total(readings) > HighConsumptionThreshold {
		out = append(out, domain.EnergyInsight{
			Title:      "High Consumption",
			Message:    "Your monthly consumption is above average. Check AC settings and consider energy-efficient appliances.",
			Severity:   domain.SeverityWarning,
			Actionable: true,
		})
	}
	if n := Spikes(consumption.Daily(readings, loc)); n > 0 {
		out = append(out, domain.EnergyInsight{
			Title:      "Usage Spikes",
			Message:    fmt.Sprintf("Detected %d days with unusually high consumption. Review your energy usage on those days.", n),
			Severity:   domain.SeverityWarning,
			Actionable: true,
		})
	}
	return out
}
