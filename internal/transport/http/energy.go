package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/milad/energymonitor/internal/rpc/energyv1"
)

// handleConsumption reports usage for ?meter_type=, optionally for ?year=&month=.
func (s *Server) handleConsumption(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()
	year, err := parseOptionalInt(q.Get("year"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid year")
		return
	}
	month, err := parseOptionalInt(q.Get("month"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid month")
		return
	}

	req := &energyv1.GetConsumptionRequest{
		MeterType: meterTypeOrDefault(q.Get("meter_type")),
		Year:      int32(year),
		Month:     int32(month),
	}
	var resp *energyv1.GetConsumptionResponse
	if !s.callUpstream(w, r, "GetConsumption", func(ctx context.Context) (err error) {
		resp, err = s.client.GetConsumption(ctx, req)
		return err
	}) {
		return
	}
	if resp.Series == nil {
		resp.Series = []energyv1.CumulativeSample{}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	req := &energyv1.GetInsightsRequest{MeterType: meterTypeOrDefault(r.URL.Query().Get("meter_type"))}
	var resp *energyv1.GetInsightsResponse
	if !s.callUpstream(w, r, "GetInsights", func(ctx context.Context) (err error) {
		resp, err = s.client.GetInsights(ctx, req)
		return err
	}) {
		return
	}
	if resp.Insights == nil {
		resp.Insights = []energyv1.Insight{}
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// handleBill estimates a bill for ?region=. Without ?consumption= the current
// month's electricity usage is billed.
func (s *Server) handleBill(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()
	kwh, err := parseOptionalFloat(q.Get("consumption"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid consumption")
		return
	}

	req := &energyv1.EstimateBillRequest{Consumption: kwh, Region: q.Get("region")}
	var resp *energyv1.EstimateBillResponse
	if !s.callUpstream(w, r, "EstimateBill", func(ctx context.Context) (err error) {
		resp, err = s.client.EstimateBill(ctx, req)
		return err
	}) {
		return
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	var resp *energyv1.ListRegionsResponse
	if !s.callUpstream(w, r, "ListRegions", func(ctx context.Context) (err error) {
		resp, err = s.client.ListRegions(ctx, &energyv1.ListRegionsRequest{})
		return err
	}) {
		return
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// handleRecommendation takes ?temperature= in °C, with optional ?humidity= and ?uv=.
func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()
	temp, err := parseOptionalFloat(q.Get("temperature"))
	if err != nil || temp == nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "temperature is required")
		return
	}
	humidity, err := parseOptionalInt(q.Get("humidity"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid humidity")
		return
	}
	uv, err := parseOptionalFloat(q.Get("uv"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", "invalid uv")
		return
	}

	req := &energyv1.RecommendRequest{TemperatureC: *temp, HumidityPct: int32(humidity)}
	if uv != nil {
		req.UVIndex = *uv
	}
	var resp *energyv1.RecommendResponse
	if !s.callUpstream(w, r, "Recommend", func(ctx context.Context) (err error) {
		resp, err = s.client.Recommend(ctx, req)
		return err
	}) {
		return
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// handleExport downloads ?kind=readings (default) or ?kind=consumption as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()
	kind := q.Get("kind")
	if kind == "" {
		kind = "readings"
	}
	meterType := q.Get("meter_type")
	if kind == "consumption" {
		meterType = meterTypeOrDefault(meterType)
	}

	req := &energyv1.ExportCSVRequest{MeterType: meterType, Kind: kind}
	var resp *energyv1.ExportCSVResponse
	if !s.callUpstream(w, r, "ExportCSV", func(ctx context.Context) (err error) {
		resp, err = s.client.ExportCSV(ctx, req)
		return err
	}) {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="energy-`+kind+`.csv"`)
	_, _ = w.Write([]byte(resp.Content))
}

// handleTips filters the tip catalog by ?category= and ?q=. The language comes
// from ?lang= or else the Accept-Language header.
func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	q := r.URL.Query()
	lang := q.Get("lang")
	if lang == "" {
		lang = r.Header.Get("Accept-Language")
	}

	req := &energyv1.ListTipsRequest{Category: q.Get("category"), Query: q.Get("q"), Language: lang}
	var resp *energyv1.ListTipsResponse
	if !s.callUpstream(w, r, "ListTips", func(ctx context.Context) (err error) {
		resp, err = s.client.ListTips(ctx, req)
		return err
	}) {
		return
	}
	if resp.Tips == nil {
		resp.Tips = []energyv1.Tip{}
	}
	if resp.Language != "" {
		w.Header().Set("Content-Language", resp.Language)
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// handleScan picks the meter value out of recognised text lines posted as
// {"lines": [...]}.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var in scanRequestJSON
	if err := readJSON(w, r, &in); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	var resp *energyv1.DetectReadingResponse
	if !s.callUpstream(w, r, "DetectReading", func(ctx context.Context) (err error) {
		resp, err = s.client.DetectReading(ctx, &energyv1.DetectReadingRequest{Lines: in.Lines})
		return err
	}) {
		return
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

func meterTypeOrDefault(v string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return "electricity"
}
