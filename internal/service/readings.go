package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/scan"
)

const (
	// MaxUnpagedRange is a guardrail against accidentally returning huge responses
	// when pagination is not used.
	MaxUnpagedRange = 366 * 24 * time.Hour
	MaxPageSize     = 5_000
)

type ListReadingsPageResult struct {
	Readings      []domain.MeterReading
	NextPageToken string
}

func (s *EnergyService) ListReadings(ctx context.Context, meterType domain.MeterType, startInclusive *time.Time, endExclusive *time.Time) ([]domain.MeterReading, error) {
	res, err := s.ListReadingsPage(ctx, meterType, startInclusive, endExclusive, 0, "")
	return res.Readings, err
}

func (s *EnergyService) ListReadingsPage(
	ctx context.Context,
	meterType domain.MeterType,
	startInclusive *time.Time,
	endExclusive *time.Time,
	pageSize int,
	pageToken string,
) (ListReadingsPageResult, error) {
	if err := checkMeterType(meterType, true); err != nil {
		return ListReadingsPageResult{}, err
	}
	if startInclusive != nil && endExclusive != nil {
		// Keep it strict and predictable: [start, end) where start must be < end.
		if !startInclusive.Before(*endExclusive) {
			return ListReadingsPageResult{}, fmt.Errorf("%w: start must be before end", ErrInvalidTimeRange)
		}
		if pageSize <= 0 && endExclusive.Sub(*startInclusive) > MaxUnpagedRange {
			return ListReadingsPageResult{}, fmt.Errorf("%w: range too large without pagination (max %s)", ErrInvalidTimeRange, MaxUnpagedRange)
		}
	}

	offset, err := parseOffsetToken(pageSize, pageToken)
	if err != nil {
		return ListReadingsPageResult{}, err
	}
	if pageSize < 0 {
		return ListReadingsPageResult{}, fmt.Errorf("%w: page_size must be >= 0", ErrInvalidPagination)
	}
	if pageSize > MaxPageSize {
		return ListReadingsPageResult{}, fmt.Errorf("%w: page_size too large (max %d)", ErrInvalidPagination, MaxPageSize)
	}

	readings, err := s.repo.List(ctx, meterType, startInclusive, endExclusive)
	if err != nil {
		return ListReadingsPageResult{}, err
	}
	if offset > len(readings) {
		return ListReadingsPageResult{}, fmt.Errorf("%w: page_token out of range", ErrInvalidPagination)
	}

	if pageSize == 0 {
		return ListReadingsPageResult{Readings: readings}, nil
	}
	if offset == len(readings) {
		return ListReadingsPageResult{}, nil
	}

	end := min(offset+pageSize, len(readings))
	next := ""
	if end < len(readings) {
		next = strconv.Itoa(end)
	}
	return ListReadingsPageResult{
		Readings:      readings[offset:end],
		NextPageToken: next,
	}, nil
}

// AddReading validates and stores a reading. A zero timestamp means "now" and
// an empty method means manual entry.
func (s *EnergyService) AddReading(ctx context.Context, r domain.MeterReading) (domain.MeterReading, error) {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) || r.Value < 0 {
		return domain.MeterReading{}, fmt.Errorf("%w: value must be a finite number >= 0", ErrInvalidReading)
	}
	if !r.MeterType.Valid() {
		return domain.MeterReading{}, fmt.Errorf("%w: unknown meter type %q", ErrInvalidReading, r.MeterType)
	}
	if r.Method == "" {
		r.Method = domain.MethodManual
	}
	if !r.Method.Valid() {
		return domain.MeterReading{}, fmt.Errorf("%w: unknown reading method %q", ErrInvalidReading, r.Method)
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = s.now()
	}
	r.ID = ""

	added, err := s.repo.Add(ctx, r)
	if err != nil {
		return domain.MeterReading{}, err
	}
	s.log.Debug("reading added",
		zap.String("id", added.ID),
		zap.String("meter_type", string(added.MeterType)),
		zap.String("method", string(added.Method)),
		zap.Float64("value", added.Value),
	)
	return added, nil
}

func (s *EnergyService) DeleteReading(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidArgument)
	}
	return s.repo.Delete(ctx, id)
}

// DetectReading picks the most likely cumulative value out of text recognised
// on a meter photo. It returns scan.ErrNoReading when nothing plausible is
// found.
func (s *EnergyService) DetectReading(lines []string) (float64, error) {
	return scan.Detect(lines)
}

func checkMeterType(t domain.MeterType, allowEmpty bool) error {
	if t == "" && allowEmpty {
		return nil
	}
	if !t.Valid() {
		return fmt.Errorf("%w: unknown meter type %q", ErrInvalidArgument, t)
	}
	return nil
}

func parseOffsetToken(pageSize int, pageToken string) (int, error) {
	if pageToken == "" {
		return 0, nil
	}
	if pageSize <= 0 {
		return 0, fmt.Errorf("%w: page_token requires page_size", ErrInvalidPagination)
	}
	n, err := strconv.Atoi(pageToken)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid page_token", ErrInvalidPagination)
	}
	return n, nil
}
