package httpserver

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/milad/energymonitor/internal/rpc/energyv1"
)

// EnergyClient is the gRPC client the gateway forwards to. Tests substitute a fake.
type EnergyClient interface {
	energyv1.EnergyServiceClient
}

func parseOptionalRFC3339(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		// allow nano timestamps too (RFC3339Nano is a superset)
		t2, err2 := time.Parse(time.RFC3339Nano, v)
		if err2 != nil {
			return "", err
		}
		t = t2
	}
	return formatTime(t), nil
}

func parseOptionalInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func parseOptionalFloat(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.New("not a finite number")
	}
	return &f, nil
}
