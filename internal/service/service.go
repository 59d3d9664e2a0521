package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/milad/energymonitor/internal/repo"
	"github.com/milad/energymonitor/internal/tariff"
	"github.com/milad/energymonitor/internal/tips"
)

var (
	ErrInvalidTimeRange  = errors.New("invalid time range")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrInvalidReading    = errors.New("invalid reading")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// EnergyService answers reading, consumption, billing and advice queries for
// one user's reading collection. Calendar months, days and hours are taken in
// the service's location.
type EnergyService struct {
	repo          repo.ReadingRepository
	tariffs       *tariff.Table
	tips          *tips.Catalog
	loc           *time.Location
	now           func() time.Time
	defaultRegion string
	log           *zap.Logger
}

type Option func(*EnergyService)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *EnergyService) { s.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(s *EnergyService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithTariffs(t *tariff.Table) Option {
	return func(s *EnergyService) { s.tariffs = t }
}

func WithTips(c *tips.Catalog) Option {
	return func(s *EnergyService) { s.tips = c }
}

// WithDefaultRegion sets the region billed when a request names none.
func WithDefaultRegion(region string) Option {
	return func(s *EnergyService) { s.defaultRegion = region }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *EnergyService) { s.log = l }
}

func NewEnergyService(r repo.ReadingRepository, opts ...Option) *EnergyService {
	s := &EnergyService{
		repo:    r,
		tariffs: tariff.Default(),
		tips:    tips.Default(),
		loc:     time.UTC,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultRegion == "" {
		s.defaultRegion = s.tariffs.Fallback()
	}
	return s
}

func (s *EnergyService) Location() *time.Location { return s.loc }
