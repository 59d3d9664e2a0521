package domain

import "time"

// MeterType identifies the utility a meter measures.
type MeterType string

const (
	MeterElectricity MeterType = "electricity"
	MeterWater       MeterType = "water"
	MeterGas         MeterType = "gas"
)

// MeterTypes lists every supported meter type.
var MeterTypes = []MeterType{MeterElectricity, MeterWater, MeterGas}

func (t MeterType) Valid() bool {
	switch t {
	case MeterElectricity, MeterWater, MeterGas:
		return true
	}
	return false
}

// ReadingMethod records how a reading was captured.
type ReadingMethod string

const (
	MethodManual      ReadingMethod = "manual"
	MethodOpticalScan ReadingMethod = "ocr"
	MethodSmartMeter  ReadingMethod = "smart"
)

func (m ReadingMethod) Valid() bool {
	switch m {
	case MethodManual, MethodOpticalScan, MethodSmartMeter:
		return true
	}
	return false
}

// MeterReading is a cumulative meter counter observed at a point in time.
// Value is the running total, not a delta. Readings of the same meter type are
// expected to grow over time but a reset or correction may produce a lower
// later value.
type MeterReading struct {
	ID        string
	Value     float64
	Timestamp time.Time
	MeterType MeterType
	Method    ReadingMethod
	Notes     string
	ImageRef  string
}

// ConsumptionSample is the usage between two consecutive readings.
type ConsumptionSample struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Delta       float64
}

// CumulativeSample pairs a reading's cumulative value with the usage since the
// previous reading. The first sample of a series always has a zero Delta.
type CumulativeSample struct {
	Timestamp  time.Time
	Delta      float64
	Cumulative float64
}
