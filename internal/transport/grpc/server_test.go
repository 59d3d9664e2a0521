package grpcserver

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/repo/csvrepo"
	"github.com/milad/energymonitor/internal/rpc/energyv1"
	"github.com/milad/energymonitor/internal/service"
)

var base = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

func elec(v float64, ts time.Time) domain.MeterReading {
	return domain.MeterReading{Value: v, Timestamp: ts, MeterType: domain.MeterElectricity, Method: domain.MethodManual}
}

func newClient(t *testing.T, readings ...domain.MeterReading) energyv1.EnergyServiceClient {
	t.Helper()

	svc := service.NewEnergyService(csvrepo.New(readings),
		service.WithClock(func() time.Time { return base.AddDate(0, 0, 19) }),
	)
	srv := New(svc, zap.NewNop())

	const bufSize = 1024 * 1024
	lis := bufconn.Listen(bufSize)

	g := grpc.NewServer(grpc.ChainUnaryInterceptor(UnaryMetrics(), UnaryLogging(zap.NewNop())))
	energyv1.RegisterEnergyServiceServer(g, srv)
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

	return energyv1.NewEnergyServiceClient(conn)
}

func TestServer_ListReadings_PreservesOrder(t *testing.T) {
	t.Parallel()

	client := newClient(t,
		elec(2, base.Add(30*time.Minute)),
		elec(1, base.Add(15*time.Minute)),
		elec(3, base.Add(45*time.Minute)),
	)

	resp, err := client.ListReadings(context.Background(), &energyv1.ListReadingsRequest{})
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if got, want := len(resp.Readings), 3; got != want {
		t.Fatalf("len(readings)=%d want %d", got, want)
	}
	for i, want := range []float64{1, 2, 3} {
		if got := resp.Readings[i].Value; got != want {
			t.Fatalf("readings[%d].value=%v want %v", i, got, want)
		}
		if resp.Readings[i].ID == "" {
			t.Fatalf("readings[%d] has no id", i)
		}
	}
}

func TestServer_ListReadings_FiltersRange(t *testing.T) {
	t.Parallel()

	client := newClient(t,
		elec(1, base.Add(15*time.Minute)),
		elec(2, base.Add(30*time.Minute)),
		elec(3, base.Add(45*time.Minute)),
	)

	resp, err := client.ListReadings(context.Background(), &energyv1.ListReadingsRequest{
		Start: base.Add(30 * time.Minute).Format(time.RFC3339),
		End:   base.Add(45 * time.Minute).Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("ListReadings: %v", err)
	}
	if got, want := len(resp.Readings), 1; got != want {
		t.Fatalf("len(readings)=%d want %d", got, want)
	}
	if got, want := resp.Readings[0].Value, 2.0; got != want {
		t.Fatalf("value=%v want %v", got, want)
	}
	if got, want := resp.Readings[0].Time, "2025-03-01T00:30:00Z"; got != want {
		t.Fatalf("time=%q want %q", got, want)
	}
}

func TestServer_ErrorCodes(t *testing.T) {
	t.Parallel()

	client := newClient(t, elec(1, base))
	ctx := context.Background()

	_, err := client.ListReadings(ctx, &energyv1.ListReadingsRequest{Start: "yesterday"})
	if got, want := status.Code(err), codes.InvalidArgument; got != want {
		t.Fatalf("bad start: code=%v want %v", got, want)
	}
	_, err = client.GetConsumption(ctx, &energyv1.GetConsumptionRequest{MeterType: "steam"})
	if got, want := status.Code(err), codes.InvalidArgument; got != want {
		t.Fatalf("bad meter type: code=%v want %v", got, want)
	}
	_, err = client.DeleteReading(ctx, &energyv1.DeleteReadingRequest{ID: "missing"})
	if got, want := status.Code(err), codes.NotFound; got != want {
		t.Fatalf("delete missing: code=%v want %v", got, want)
	}
	_, err = client.DetectReading(ctx, &energyv1.DetectReadingRequest{Lines: []string{"no digits"}})
	if got, want := status.Code(err), codes.NotFound; got != want {
		t.Fatalf("detect: code=%v want %v", got, want)
	}
}

func TestServer_AddConsumptionAndBill(t *testing.T) {
	t.Parallel()

	client := newClient(t, elec(1000, base.AddDate(0, 0, 1)))
	ctx := context.Background()

	added, err := client.AddReading(ctx, &energyv1.AddReadingRequest{Reading: energyv1.Reading{
		Value:     1500,
		Time:      base.AddDate(0, 0, 10).Format(time.RFC3339),
		MeterType: string(domain.MeterElectricity),
	}})
	if err != nil {
		t.Fatalf("AddReading: %v", err)
	}
	if added.Reading.ID == "" || added.Reading.Method != string(domain.MethodManual) {
		t.Fatalf("added=%+v", added.Reading)
	}

	cons, err := client.GetConsumption(ctx, &energyv1.GetConsumptionRequest{MeterType: "electricity"})
	if err != nil {
		t.Fatalf("GetConsumption: %v", err)
	}
	if cons.Year != 2025 || cons.Month != 3 || cons.Monthly != 500 || cons.Total != 500 {
		t.Fatalf("consumption=%+v", cons)
	}
	if got, want := len(cons.Series), 2; got != want {
		t.Fatalf("len(series)=%d want %d", got, want)
	}

	bill, err := client.EstimateBill(ctx, &energyv1.EstimateBillRequest{Region: "Kuwait"})
	if err != nil {
		t.Fatalf("EstimateBill: %v", err)
	}
	if bill.Consumption != 500 || bill.Amount != 10 || !bill.RegionKnown {
		t.Fatalf("bill=%+v", bill)
	}

	kwh := 7000.0
	bill, err = client.EstimateBill(ctx, &energyv1.EstimateBillRequest{Consumption: &kwh, Region: "Atlantis"})
	if err != nil {
		t.Fatalf("EstimateBill(fallback): %v", err)
	}
	if bill.Amount != 1380 || bill.RegionKnown || bill.AppliedRegion != "Saudi Arabia" {
		t.Fatalf("fallback bill=%+v", bill)
	}
}

func TestServer_AdviceAndExport(t *testing.T) {
	t.Parallel()

	client := newClient(t, elec(100, base), elec(150, base.Add(time.Hour)))
	ctx := context.Background()

	rec, err := client.Recommend(ctx, &energyv1.RecommendRequest{TemperatureC: 40})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.Mode != string(domain.ACCool) || rec.TargetTemperature != 24 {
		t.Fatalf("recommendation=%+v", rec)
	}

	tipsResp, err := client.ListTips(ctx, &energyv1.ListTipsRequest{Category: "cooling", Language: "ar-SA"})
	if err != nil {
		t.Fatalf("ListTips: %v", err)
	}
	if tipsResp.Language != "ar" || len(tipsResp.Tips) == 0 {
		t.Fatalf("tips=%+v", tipsResp)
	}

	csv, err := client.ExportCSV(ctx, &energyv1.ExportCSVRequest{Kind: "readings"})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if got, want := strings.Count(csv.Content, "\n"), 3; got != want {
		t.Fatalf("csv lines=%d want %d:\n%s", got, want, csv.Content)
	}

	insights, err := client.GetInsights(ctx, &energyv1.GetInsightsRequest{MeterType: "electricity"})
	if err != nil {
		t.Fatalf("GetInsights: %v", err)
	}
	if len(insights.Insights) == 0 {
		t.Fatal("expected at least the monthly comparison insight")
	}
}
