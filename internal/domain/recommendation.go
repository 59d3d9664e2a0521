package domain

type ACMode string

const (
	ACOff   ACMode = "off"
	ACFan   ACMode = "fan"
	ACCool  ACMode = "cool"
	ACEco   ACMode = "eco"
	ACSleep ACMode = "sleep"
)

// ACRecommendation suggests an air-conditioner setting for the current weather.
// TargetTemperature is in °C; 0 means the mode has no set point.
type ACRecommendation struct {
	Mode              ACMode
	TargetTemperature int
	Reason            string
	EstimatedSavings  string
}
