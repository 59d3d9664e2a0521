// Package energyv1 defines the energymonitor.v1.EnergyService RPC contract.
//
// Messages travel as google.protobuf.Struct values holding the JSON form of
// the Go types below, so the service needs no generated code. Timestamps are
// RFC 3339 strings.
package energyv1

type Reading struct {
	ID        string  `json:"id,omitempty"`
	Value     float64 `json:"value"`
	Time      string  `json:"time,omitempty"`
	MeterType string  `json:"meterType"`
	Method    string  `json:"method,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	ImageRef  string  `json:"imageRef,omitempty"`
}

type ListReadingsRequest struct {
	MeterType string `json:"meterType,omitempty"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	PageSize  int32  `json:"pageSize,omitempty"`
	PageToken string `json:"pageToken,omitempty"`
}

type ListReadingsResponse struct {
	Readings      []Reading `json:"readings"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

type AddReadingRequest struct {
	Reading Reading `json:"reading"`
}

type AddReadingResponse struct {
	Reading Reading `json:"reading"`
}

type DeleteReadingRequest struct {
	ID string `json:"id"`
}

type DeleteReadingResponse struct{}

type GetConsumptionRequest struct {
	MeterType string `json:"meterType"`
	Year      int32  `json:"year,omitempty"`
	Month     int32  `json:"month,omitempty"`
}

type CumulativeSample struct {
	Time       string  `json:"time"`
	Delta      float64 `json:"delta"`
	Cumulative float64 `json:"cumulative"`
}

type GetConsumptionResponse struct {
	MeterType string             `json:"meterType"`
	Year      int32              `json:"year"`
	Month     int32              `json:"month"`
	Total     float64            `json:"total"`
	Monthly   float64            `json:"monthly"`
	Series    []CumulativeSample `json:"series"`
}

type GetInsightsRequest struct {
	MeterType string `json:"meterType"`
}

type Insight struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Actionable bool   `json:"actionable"`
}

type GetInsightsResponse struct {
	Insights []Insight `json:"insights"`
}

type EstimateBillRequest struct {
	// Consumption is optional; when absent this month's usage is billed.
	Consumption *float64 `json:"consumption,omitempty"`
	Region      string   `json:"region,omitempty"`
}

type EstimateBillResponse struct {
	Region        string  `json:"region"`
	AppliedRegion string  `json:"appliedRegion"`
	RegionKnown   bool    `json:"regionKnown"`
	Consumption   float64 `json:"consumption"`
	Amount        float64 `json:"amount"`
	AverageRate   float64 `json:"averageRate"`
}

type ListRegionsRequest struct{}

type ListRegionsResponse struct {
	Regions []string `json:"regions"`
	Default string   `json:"default"`
}

type RecommendRequest struct {
	TemperatureC float64 `json:"temperatureC"`
	HumidityPct  int32   `json:"humidityPct"`
	UVIndex      float64 `json:"uvIndex"`
}

type RecommendResponse struct {
	Mode              string `json:"mode"`
	TargetTemperature int32  `json:"targetTemperature"`
	Reason            string `json:"reason"`
	EstimatedSavings  string `json:"estimatedSavings"`
}

type ExportCSVRequest struct {
	MeterType string `json:"meterType,omitempty"`
	Kind      string `json:"kind"`
}

type ExportCSVResponse struct {
	Content string `json:"content"`
}

type ListTipsRequest struct {
	Category string `json:"category,omitempty"`
	Query    string `json:"query,omitempty"`
	Language string `json:"language,omitempty"`
}

type Tip struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	EstimatedSavings string `json:"estimatedSavings"`
	Difficulty       string `json:"difficulty"`
	Icon             string `json:"icon"`
}

type ListTipsResponse struct {
	Language string `json:"language"`
	Tips     []Tip  `json:"tips"`
}

type DetectReadingRequest struct {
	Lines []string `json:"lines"`
}

type DetectReadingResponse struct {
	Value float64 `json:"value"`
}
