// Package advisor maps a weather observation to an air-conditioner setting.
package advisor

import "github.com/milad/energymonitor/internal/domain"

type band struct {
	minTemp float64
	rec     domain.ACRecommendation
}

// bands are checked from the hottest down; the first match wins.
var bands = []band{
	{35, domain.ACRecommendation{Mode: domain.ACCool, TargetTemperature: 24, Reason: "High temperature detected", EstimatedSavings: "15-20%"}},
	{28, domain.ACRecommendation{Mode: domain.ACEco, TargetTemperature: 26, Reason: "Moderate temperature - ECO mode recommended", EstimatedSavings: "25-30%"}},
	{22, domain.ACRecommendation{Mode: domain.ACFan, Reason: "Pleasant temperature - fan mode sufficient", EstimatedSavings: "60-70%"}},
}

var off = domain.ACRecommendation{Mode: domain.ACOff, Reason: "Cool temperature - AC not needed", EstimatedSavings: "100%"}

// Recommend classifies the outdoor temperature in °C. humidityPct and uvIndex
// are accepted for forward compatibility and do not affect the result.
func Recommend(temperatureC float64, humidityPct int, uvIndex float64) domain.ACRecommendation {
	for _, b := range bands {
		if temperatureC >= b.minTemp {
			return b.rec
		}
	}
	return off
}
