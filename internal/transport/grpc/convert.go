package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/repo"
	"github.com/milad/energymonitor/internal/rpc/energyv1"
	"github.com/milad/energymonitor/internal/scan"
	"github.com/milad/energymonitor/internal/service"
)

// toStatus maps service errors onto gRPC codes. Unexpected errors are logged
// and reported without detail.
func (s *Server) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidPagination),
		errors.Is(err, service.ErrInvalidReading),
		errors.Is(err, service.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, scan.ErrNoReading):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	s.log.Error("request failed",
		zap.String("method", method),
		zap.Error(err),
		zap.NamedError("ctx_err", ctx.Err()),
	)
	return status.Error(codes.Internal, "internal error")
}

func toWireReading(r domain.MeterReading) energyv1.Reading {
	return energyv1.Reading{
		ID:        r.ID,
		Value:     r.Value,
		Time:      formatTime(r.Timestamp),
		MeterType: string(r.MeterType),
		Method:    string(r.Method),
		Notes:     r.Notes,
		ImageRef:  r.ImageRef,
	}
}

func fromWireReading(r energyv1.Reading) (domain.MeterReading, error) {
	ts, err := parseOptionalTime(r.Time)
	if err != nil {
		return domain.MeterReading{}, fmt.Errorf("invalid time: %w", err)
	}
	out := domain.MeterReading{
		ID:        r.ID,
		Value:     r.Value,
		MeterType: domain.MeterType(r.MeterType),
		Method:    domain.ReadingMethod(r.Method),
		Notes:     r.Notes,
		ImageRef:  r.ImageRef,
	}
	if ts != nil {
		out.Timestamp = *ts
	}
	return out, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseOptionalTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
