package csvrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/repo"
)

func mustUTC(t *testing.T, s string) time.Time {
	t.Helper()
	got, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("parse time %q: %v", s, err)
	}
	return got
}

func TestRepo_ListFiltersByTimeRange(t *testing.T) {
	t.Parallel()

	r := New([]domain.MeterReading{
		{Timestamp: mustUTC(t, "2019-01-01 00:15:00"), Value: 1, MeterType: domain.MeterElectricity},
		{Timestamp: mustUTC(t, "2019-01-01 00:30:00"), Value: 2, MeterType: domain.MeterElectricity},
		{Timestamp: mustUTC(t, "2019-01-01 00:45:00"), Value: 3, MeterType: domain.MeterElectricity},
	})

	start := mustUTC(t, "2019-01-01 00:30:00")
	end := mustUTC(t, "2019-01-01 00:45:00")

	out, err := r.List(context.Background(), "", &start, &end)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got, want := len(out), 1; got != want {
		t.Fatalf("len(out)=%d want %d", got, want)
	}
	if got, want := out[0].Value, 2.0; got != want {
		t.Fatalf("out[0].Value=%v want %v", got, want)
	}
	if out[0].ID == "" {
		t.Fatalf("expected an assigned ID")
	}
}

func TestRepo_ListFiltersByMeterType(t *testing.T) {
	t.Parallel()

	r := New([]domain.MeterReading{
		{Timestamp: mustUTC(t, "2019-01-01 00:15:00"), Value: 1, MeterType: domain.MeterElectricity},
		{Timestamp: mustUTC(t, "2019-01-01 00:30:00"), Value: 2, MeterType: domain.MeterWater},
		{Timestamp: mustUTC(t, "2019-01-01 00:45:00"), Value: 3, MeterType: domain.MeterElectricity},
	})

	out, err := r.List(context.Background(), domain.MeterWater, nil, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 1 || out[0].Value != 2 {
		t.Fatalf("water readings=%+v", out)
	}
}

func TestRepo_AddKeepsOrderAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := New([]domain.MeterReading{
		{Timestamp: mustUTC(t, "2019-01-01 00:15:00"), Value: 1},
		{Timestamp: mustUTC(t, "2019-01-01 00:45:00"), Value: 3},
	})

	added, err := r.Add(ctx, domain.MeterReading{Timestamp: mustUTC(t, "2019-01-01 00:30:00"), Value: 2})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("Add did not assign an ID")
	}

	out, _ := r.List(ctx, "", nil, nil)
	for i, want := range []float64{1, 2, 3} {
		if out[i].Value != want {
			t.Fatalf("out[%d].Value=%v want %v", i, out[i].Value, want)
		}
	}

	if err := r.Delete(ctx, added.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := r.Delete(ctx, added.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("second Delete err=%v want ErrNotFound", err)
	}
	if out, _ := r.List(ctx, "", nil, nil); len(out) != 2 {
		t.Fatalf("len after delete=%d want 2", len(out))
	}
}

func TestNewFromFile_PartialErrors(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "readings.csv")
	data := "time,value\n2025-01-01 00:00:00,10\n2025-01-02 00:00:00,oops\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := NewFromFile(path)
	if err == nil {
		t.Fatalf("expected a warning error")
	}
	if r == nil {
		t.Fatalf("expected a usable repo")
	}
	out, _ := r.List(context.Background(), "", nil, nil)
	if len(out) != 1 {
		t.Fatalf("len=%d want 1", len(out))
	}
}
