// Package tariff computes progressive-tier electricity bills.
package tariff

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// ReferenceConsumption is the consumption level at which AverageRate blends
// the tiers of a schedule.
const ReferenceConsumption = 1000.0

var ErrInvalidSchedule = errors.New("invalid tariff schedule")

// Unbounded marks the upper bound of a schedule's final tier.
var Unbounded = math.Inf(1)

// Tier prices the units numbered Lower..Upper inclusive at Rate per unit.
type Tier struct {
	Lower float64
	Upper float64
	Rate  float64
}

func (t Tier) Unbounded() bool { return math.IsInf(t.Upper, 1) }

// capacity is the number of whole units the tier covers. Bands are inclusive
// integer ranges; a band starting at 0 begins with unit 1.
func (t Tier) capacity() decimal.Decimal {
	lower := max(t.Lower, 1)
	return decimal.NewFromFloat(t.Upper - lower + 1)
}

// Schedule is the ordered list of tiers billed in one region.
type Schedule struct {
	Region string
	Tiers  []Tier
}

func (s Schedule) validate() error {
	if s.Region == "" {
		return fmt.Errorf("%w: empty region", ErrInvalidSchedule)
	}
	if len(s.Tiers) == 0 {
		return fmt.Errorf("%w: %s: no tiers", ErrInvalidSchedule, s.Region)
	}
	for i, t := range s.Tiers {
		if t.Rate < 0 || math.IsNaN(t.Rate) {
			return fmt.Errorf("%w: %s: tier %d has negative rate", ErrInvalidSchedule, s.Region, i)
		}
		if t.Upper < t.Lower {
			return fmt.Errorf("%w: %s: tier %d upper bound below lower bound", ErrInvalidSchedule, s.Region, i)
		}
		if i == 0 {
			continue
		}
		prev := s.Tiers[i-1]
		if prev.Unbounded() || t.Lower != prev.Upper+1 {
			return fmt.Errorf("%w: %s: tier %d does not follow tier %d", ErrInvalidSchedule, s.Region, i, i-1)
		}
	}
	if !s.Tiers[len(s.Tiers)-1].Unbounded() {
		return fmt.Errorf("%w: %s: final tier must be unbounded", ErrInvalidSchedule, s.Region)
	}
	return nil
}

// Bill prices consumption against the schedule. Negative or NaN consumption
// bills nothing.
func (s Schedule) Bill(consumption float64) float64 {
	if !(consumption > 0) {
		return 0
	}
	remaining := decimal.NewFromFloat(consumption)
	total := decimal.Zero
	for _, t := range s.Tiers {
		used := remaining
		if !t.Unbounded() {
			used = decimal.Min(remaining, t.capacity())
		}
		if used.IsPositive() {
			total = total.Add(used.Mul(decimal.NewFromFloat(t.Rate)))
			remaining = remaining.Sub(used)
		}
		if !remaining.IsPositive() {
			break
		}
	}
	return total.InexactFloat64()
}

// Table is an immutable set of schedules with a designated fallback region.
type Table struct {
	schedules map[string]Schedule
	fallback  string
}

// NewTable validates the schedules and indexes them by region. fallback must
// name one of the schedules.
func NewTable(fallback string, schedules ...Schedule) (*Table, error) {
	t := &Table{schedules: make(map[string]Schedule, len(schedules)), fallback: fallback}
	for _, s := range schedules {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := t.schedules[s.Region]; dup {
			return nil, fmt.Errorf("%w: duplicate region %q", ErrInvalidSchedule, s.Region)
		}
		s.Tiers = slices.Clone(s.Tiers)
		t.schedules[s.Region] = s
	}
	if _, ok := t.schedules[fallback]; !ok {
		return nil, fmt.Errorf("%w: fallback region %q has no schedule", ErrInvalidSchedule, fallback)
	}
	return t, nil
}

// Lookup returns a copy of the schedule for region and whether the region is
// known.
func (t *Table) Lookup(region string) (Schedule, bool) {
	s, ok := t.schedules[region]
	if !ok {
		return Schedule{}, false
	}
	s.Tiers = slices.Clone(s.Tiers)
	return s, true
}

// Resolve returns the region actually billed for region. Unknown regions
// silently use the fallback.
func (t *Table) Resolve(region string) string {
	if _, ok := t.schedules[region]; ok {
		return region
	}
	return t.fallback
}

func (t *Table) Fallback() string { return t.fallback }

// Regions returns the known regions in sorted order.
func (t *Table) Regions() []string {
	out := make([]string, 0, len(t.schedules))
	for r := range t.schedules {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// CalculateBill prices consumption with the region's schedule.
func (t *Table) CalculateBill(consumption float64, region string) float64 {
	return t.schedules[t.Resolve(region)].Bill(consumption)
}

// AverageRate is the blended per-unit price at ReferenceConsumption. It is not
// a marginal rate.
func (t *Table) AverageRate(region string) float64 {
	return t.CalculateBill(ReferenceConsumption, region) / ReferenceConsumption
}

// CalculateBill prices consumption with the bundled schedules.
func CalculateBill(consumption float64, region string) float64 {
	return Default().CalculateBill(consumption, region)
}

// AverageRate returns the blended rate of the bundled schedule for region.
func AverageRate(region string) float64 {
	return Default().AverageRate(region)
}
