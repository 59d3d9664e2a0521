package tariff

import "sync"

const (
	RegionSaudiArabia = "Saudi Arabia"
	RegionUAE         = "UAE"
	RegionKuwait      = "Kuwait"
	RegionEgypt       = "Egypt"
	RegionJordan      = "Jordan"

	// DefaultRegion is billed whenever a region has no schedule of its own.
	DefaultRegion = RegionSaudiArabia
)

func bundledSchedules() []Schedule {
	return []Schedule{
		{Region: RegionSaudiArabia, Tiers: []Tier{
			{0, 6000, 0.18},
			{6001, Unbounded, 0.30},
		}},
		{Region: RegionUAE, Tiers: []Tier{
			{0, 2000, 0.23},
			{2001, 4000, 0.28},
			{4001, 6000, 0.32},
			{6001, Unbounded, 0.38},
		}},
		{Region: RegionKuwait, Tiers: []Tier{
			{0, Unbounded, 0.02},
		}},
		{Region: RegionEgypt, Tiers: []Tier{
			{0, 50, 0.48},
			{51, 100, 0.58},
			{101, 200, 0.67},
			{201, 350, 0.78},
			{351, 650, 0.90},
			{651, 1000, 1.35},
			{1001, Unbounded, 1.45},
		}},
		{Region: RegionJordan, Tiers: []Tier{
			{0, 160, 0.068},
			{161, 300, 0.132},
			{301, 500, 0.198},
			{501, 600, 0.264},
			{601, 750, 0.346},
			{751, 1000, 0.396},
			{1001, Unbounded, 0.446},
		}},
	}
}

// Default returns the bundled five-region table. It is built on first use and
// shared read-only afterwards.
var Default = sync.OnceValue(func() *Table {
	t, err := NewTable(DefaultRegion, bundledSchedules()...)
	if err != nil {
		panic(err)
	}
	return t
})
