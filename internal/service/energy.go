package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/milad/energymonitor/internal/advisor"
	"github.com/milad/energymonitor/internal/consumption"
	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/export"
	"github.com/milad/energymonitor/internal/insight"
	"github.com/milad/energymonitor/internal/tips"
)

// ConsumptionReport summarises one meter's history.
type ConsumptionReport struct {
	MeterType domain.MeterType
	Year      int
	Month     time.Month
	// Total spans the whole history, Monthly only the requested month.
	Total   float64
	Monthly float64
	Series  []domain.CumulativeSample
}

// BillEstimate is a bill computed for a region. AppliedRegion differs from
// Region when the requested region has no schedule and the fallback was billed.
type BillEstimate struct {
	Region        string
	AppliedRegion string
	RegionKnown   bool
	Consumption   float64
	Amount        float64
	AverageRate   float64
}

// Consumption reports usage for meterType. A zero year and month select the
// current month.
func (s *EnergyService) Consumption(ctx context.Context, meterType domain.MeterType, year int, month time.Month) (ConsumptionReport, error) {
	if err := checkMeterType(meterType, false); err != nil {
		return ConsumptionReport{}, err
	}
	year, month, err := s.resolveMonth(year, month)
	if err != nil {
		return ConsumptionReport{}, err
	}
	readings, err := s.repo.List(ctx, meterType, nil, nil)
	if err != nil {
		return ConsumptionReport{}, err
	}
	return ConsumptionReport{
		MeterType: meterType,
		Year:      year,
		Month:     month,
		Total:     consumption.Total(readings),
		Monthly:   consumption.Monthly(readings, year, month, s.loc),
		Series:    consumption.DeriveCumulative(readings),
	}, nil
}

// Insights analyses the full history of meterType as of now.
func (s *EnergyService) Insights(ctx context.Context, meterType domain.MeterType) ([]domain.EnergyInsight, error) {
	if err := checkMeterType(meterType, false); err != nil {
		return nil, err
	}
	readings, err := s.repo.List(ctx, meterType, nil, nil)
	if err != nil {
		return nil, err
	}
	out := insight.Generate(readings, s.now(), s.loc)
	s.log.Debug("insights generated",
		zap.String("meter_type", string(meterType)),
		zap.Int("readings", len(readings)),
		zap.Int("insights", len(out)),
	)
	return out, nil
}

// EstimateBill prices consumption for region. A nil consumption bills this
// month's electricity usage; an empty region bills the default region.
func (s *EnergyService) EstimateBill(ctx context.Context, consumptionKWh *float64, region string) (BillEstimate, error) {
	if region == "" {
		region = s.defaultRegion
	}

	var used float64
	if consumptionKWh != nil {
		used = *consumptionKWh
		if math.IsNaN(used) || math.IsInf(used, 0) || used < 0 {
			return BillEstimate{}, fmt.Errorf("%w: consumption must be a finite number >= 0", ErrInvalidArgument)
		}
	} else {
		readings, err := s.repo.List(ctx, domain.MeterElectricity, nil, nil)
		if err != nil {
			return BillEstimate{}, err
		}
		now := s.now().In(s.loc)
		used = consumption.Monthly(readings, now.Year(), now.Month(), s.loc)
	}

	_, known := s.tariffs.Lookup(region)
	if !known {
		s.log.Warn("no tariff schedule for region, billing fallback",
			zap.String("region", region),
			zap.String("fallback", s.tariffs.Fallback()),
		)
	}
	return BillEstimate{
		Region:        region,
		AppliedRegion: s.tariffs.Resolve(region),
		RegionKnown:   known,
		Consumption:   used,
		Amount:        s.tariffs.CalculateBill(used, region),
		AverageRate:   s.tariffs.AverageRate(region),
	}, nil
}

// Regions lists the regions with a tariff schedule.
func (s *EnergyService) Regions() []string { return s.tariffs.Regions() }

// DefaultRegion is the region billed when a request names none.
func (s *EnergyService) DefaultRegion() string { return s.defaultRegion }

func (s *EnergyService) Recommend(temperatureC float64, humidityPct int, uvIndex float64) domain.ACRecommendation {
	return advisor.Recommend(temperatureC, humidityPct, uvIndex)
}

// ExportCSV renders the history of meterType (all types when empty).
func (s *EnergyService) ExportCSV(ctx context.Context, meterType domain.MeterType, kind export.Kind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown export kind %q", ErrInvalidArgument, kind)
	}
	if err := checkMeterType(meterType, kind == export.KindReadings); err != nil {
		return "", err
	}
	readings, err := s.repo.List(ctx, meterType, nil, nil)
	if err != nil {
		return "", err
	}
	return export.Render(kind, readings, s.loc), nil
}

// Tips filters the tip catalog. lang is an Accept-Language style string.
func (s *EnergyService) Tips(category tips.Category, query, lang string) ([]tips.Tip, tips.Lang, error) {
	if category != "" && !category.Valid() {
		return nil, "", fmt.Errorf("%w: unknown tip category %q", ErrInvalidArgument, category)
	}
	l := tips.ParseLanguage(lang)
	return s.tips.Filter(category, query, l), l, nil
}

func (s *EnergyService) resolveMonth(year int, month time.Month) (int, time.Month, error) {
	if year == 0 && month == 0 {
		now := s.now().In(s.loc)
		return now.Year(), now.Month(), nil
	}
	if year <= 0 || month < time.January || month > time.December {
		return 0, 0, fmt.Errorf("%w: invalid month %d-%02d", ErrInvalidArgument, year, month)
	}
	return year, month, nil
}
