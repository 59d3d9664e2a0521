package csvrepo

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/milad/energymonitor/internal/domain"
	"github.com/milad/energymonitor/internal/repo"
)

var _ repo.ReadingRepository = (*Repo)(nil)

// Repo is an in-memory repository seeded from a CSV file at startup.
type Repo struct {
	mu       sync.RWMutex
	readings []domain.MeterReading // sorted ascending by Timestamp
	newID    func() string
}

func NewFromFile(path string) (*Repo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %q: %w", path, err)
	}
	defer f.Close()

	readings, parseErr := ParseReadingsCSV(f)
	if len(readings) == 0 && parseErr != nil {
		return nil, fmt.Errorf("parse csv %q: %w", path, parseErr)
	}
	r := New(readings)

	// Parsing can be partially successful; surface warnings to the caller.
	if parseErr != nil {
		return r, fmt.Errorf("parse csv %q: %w", path, parseErr)
	}
	return r, nil
}

// New returns a repository holding a copy of readings. Readings without an ID
// are assigned one.
func New(readings []domain.MeterReading) *Repo {
	r := &Repo{newID: uuid.NewString}
	cp := append([]domain.MeterReading(nil), readings...)
	for i := range cp {
		if cp[i].ID == "" {
			cp[i].ID = r.newID()
		}
	}
	slices.SortStableFunc(cp, func(a, b domain.MeterReading) int { return a.Timestamp.Compare(b.Timestamp) })
	r.readings = cp
	return r
}

func (r *Repo) List(ctx context.Context, meterType domain.MeterType, startInclusive *time.Time, endExclusive *time.Time) ([]domain.MeterReading, error) {
	_ = ctx // reserved for future cancellation-aware backends

	r.mu.RLock()
	defer r.mu.RUnlock()

	readings := r.readings
	if startInclusive != nil {
		start := *startInclusive
		i := sort.Search(len(readings), func(i int) bool { return !readings[i].Timestamp.Before(start) })
		readings = readings[i:]
	}
	if endExclusive != nil {
		end := *endExclusive
		j := sort.Search(len(readings), func(i int) bool { return !readings[i].Timestamp.Before(end) })
		readings = readings[:j]
	}

	out := make([]domain.MeterReading, 0, len(readings))
	for _, rd := range readings {
		if meterType == "" || rd.MeterType == meterType {
			out = append(out, rd)
		}
	}
	return out, nil
}

func (r *Repo) Add(ctx context.Context, rd domain.MeterReading) (domain.MeterReading, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if rd.ID == "" {
		rd.ID = r.newID()
	}
	// Insert after any reading sharing the timestamp to keep entry order.
	i := sort.Search(len(r.readings), func(i int) bool { return r.readings[i].Timestamp.After(rd.Timestamp) })
	r.readings = slices.Insert(r.readings, i, rd)
	return rd, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.readings, func(rd domain.MeterReading) bool { return rd.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", repo.ErrNotFound, id)
	}
	r.readings = slices.Delete(r.readings, i, i+1)
	return nil
}
