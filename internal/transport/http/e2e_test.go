package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/repo/csvrepo"
	"github.com/milad/energymonitor/internal/rpc/energyv1"
	"github.com/milad/energymonitor/internal/service"
	grpcserver "github.com/milad/energymonitor/internal/transport/grpc"
)

func newEndToEnd(t *testing.T, readings ...domain.MeterReading) *Server {
	t.Helper()

	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	svc := service.NewEnergyService(csvrepo.New(readings),
		service.WithClock(func() time.Time { return now }),
	)
	api := grpcserver.New(svc, zap.NewNop())

	lis := bufconn.Listen(1024 * 1024)
	g := grpc.NewServer()
	energyv1.RegisterEnergyServiceServer(g, api)
	go func() { _ = g.Serve(lis) }()
	t.Cleanup(g.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return New(energyv1.NewEnergyServiceClient(conn), zap.NewNop())
}

func reading(v float64, ts time.Time) domain.MeterReading {
	return domain.MeterReading{Value: v, Timestamp: ts, MeterType: domain.MeterElectricity, Method: domain.MethodManual}
}

// This is a light end-to-end test:
// HTTP handler -> gRPC client -> in-memory gRPC server -> service -> repo.
func TestHTTP_ToGRPC_EndToEnd(t *testing.T) {
	t.Parallel()

	base := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	httpSrv := newEndToEnd(t,
		reading(1.1, base.Add(15*time.Minute)),
		reading(2.2, base.Add(30*time.Minute)),
		reading(3.3, base.Add(45*time.Minute)),
	)

	rr := serve(httpSrv, http.MethodGet, "/api/readings?start=2019-01-01T00:30:00Z&end=2019-01-01T01:00:00Z", "")
	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("status=%d want %d, body=%s", got, want, rr.Body.String())
	}

	var got energyv1.ListReadingsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Readings) != 2 {
		t.Fatalf("len=%d want 2", len(got.Readings))
	}
	// start is inclusive: includes 00:30 and 00:45, but excludes 01:00.
	if got.Readings[0].Time != "2019-01-01T00:30:00Z" || got.Readings[1].Time != "2019-01-01T00:45:00Z" {
		t.Fatalf("unexpected times: %#v", got.Readings)
	}
	if got.Readings[0].Value != 2.2 || got.Readings[1].Value != 3.3 {
		t.Fatalf("unexpected values: %#v", got.Readings)
	}

	rr = serve(httpSrv, http.MethodGet, "/api/readings?start=2019-01-01T01:00:00Z&end=2019-01-01T00:00:00Z", "")
	if got, want := rr.Code, http.StatusBadRequest; got != want {
		t.Fatalf("inverted range: status=%d want %d", got, want)
	}
}

func TestHTTP_ToGRPC_ReadingLifecycle(t *testing.T) {
	t.Parallel()

	httpSrv := newEndToEnd(t, reading(1000, time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)))

	rr := serve(httpSrv, http.MethodPost, "/api/readings",
		`{"value": 1500, "meterType": "electricity", "time": "2025-03-11T08:00:00Z", "notes": "after trip"}`)
	if got, want := rr.Code, http.StatusCreated; got != want {
		t.Fatalf("add: status=%d want %d, body=%s", got, want, rr.Body.String())
	}
	var added energyv1.Reading
	if err := json.Unmarshal(rr.Body.Bytes(), &added); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if added.ID == "" || added.Method != "manual" {
		t.Fatalf("added=%+v", added)
	}

	rr = serve(httpSrv, http.MethodGet, "/api/consumption?meter_type=electricity", "")
	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("consumption: status=%d want %d", got, want)
	}
	var cons energyv1.GetConsumptionResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &cons); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cons.Monthly != 500 || cons.Month != 3 || cons.Year != 2025 {
		t.Fatalf("consumption=%+v", cons)
	}

	rr = serve(httpSrv, http.MethodGet, "/api/bill?region=Kuwait", "")
	var bill energyv1.EstimateBillResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &bill); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if bill.Consumption != 500 || bill.Amount != 10 {
		t.Fatalf("bill=%+v", bill)
	}

	rr = serve(httpSrv, http.MethodGet, "/api/export.csv?kind=consumption", "")
	if got, want := rr.Code, http.StatusOK; got != want {
		t.Fatalf("export: status=%d want %d", got, want)
	}
	if !strings.Contains(rr.Body.String(), "2025-03-11,500,1500") {
		t.Fatalf("export body=%q", rr.Body.String())
	}

	rr = serve(httpSrv, http.MethodDelete, "/api/readings/"+added.ID, "")
	if got, want := rr.Code, http.StatusNoContent; got != want {
		t.Fatalf("delete: status=%d want %d", got, want)
	}
	rr = serve(httpSrv, http.MethodDelete, "/api/readings/"+added.ID, "")
	if got, want := rr.Code, http.StatusNotFound; got != want {
		t.Fatalf("second delete: status=%d want %d", got, want)
	}
}

func TestHTTP_ToGRPC_AdviceEndpoints(t *testing.T) {
	t.Parallel()

	httpSrv := newEndToEnd(t)

	rr := serve(httpSrv, http.MethodGet, "/api/recommendation?temperature=30", "")
	var rec energyv1.RecommendResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.Mode != "eco" || rec.TargetTemperature != 26 {
		t.Fatalf("recommendation=%+v", rec)
	}

	rr = serve(httpSrv, http.MethodGet, "/api/regions", "")
	var regions energyv1.ListRegionsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &regions); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, want := len(regions.Regions), 5; got != want {
		t.Fatalf("regions=%v", regions.Regions)
	}
	if got, want := regions.Default, "Saudi Arabia"; got != want {
		t.Fatalf("default=%q want %q", got, want)
	}

	rr = serve(httpSrv, http.MethodGet, "/api/tips?category=lighting&lang=en", "")
	var tipsResp energyv1.ListTipsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &tipsResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got, want := len(tipsResp.Tips), 1; got != want {
		t.Fatalf("lighting tips=%d want %d", got, want)
	}

	rr = serve(httpSrv, http.MethodPost, "/api/scan", `{"lines": ["no digits here"]}`)
	if got, want := rr.Code, http.StatusNotFound; got != want {
		t.Fatalf("scan: status=%d want %d", got, want)
	}

	rr = serve(httpSrv, http.MethodGet, "/api/tips?category=garden", "")
	if got, want := rr.Code, http.StatusBadRequest; got != want {
		t.Fatalf("bad category: status=%d want %d", got, want)
	}
}
