package snapshot

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rollhouse/salesdash/internal/domain"
)

// Store is the in-memory record store plus the three auxiliary snapshots.
// It is populated once by Load and read-only afterwards; every derived
// view is a pure function of (Store, Filters).
type Store struct {
	records     []domain.TransactionRecord
	summary     *domain.SummarySnapshot
	specialty   []string
	forecast    *domain.ForecastSnapshot
	fingerprint string
	loadErrs    []string
}

// Load fetches and decodes the four snapshot documents concurrently. A
// document that fails to fetch or decode degrades to empty data and a
// recorded load error; Load itself never fails.
func Load(ctx context.Context, src Source) *Store {
	store := &Store{}
	errs := make([]error, 4)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := src.Fetch(ctx, TransactionsFile)
		if err == nil {
			store.records, err = decodeRecords(data)
		}
		if err == nil {
			sum := sha1.Sum(data)
			store.fingerprint = hex.EncodeToString(sum[:])
		}
		errs[0] = err
		return nil
	})
	g.Go(func() error {
		data, err := src.Fetch(ctx, SummaryFile)
		if err == nil {
			store.summary, err = decodeSummary(data)
		}
		errs[1] = err
		return nil
	})
	g.Go(func() error {
		data, err := src.Fetch(ctx, SpecialtyFile)
		if err == nil {
			store.specialty, err = decodeSpecialty(data)
		}
		errs[2] = err
		return nil
	})
	g.Go(func() error {
		data, err := src.Fetch(ctx, ForecastFile)
		if err == nil {
			store.forecast, err = decodeForecast(data)
		}
		errs[3] = err
		return nil
	})
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			log.Error().Err(err).Msg("snapshot load failed")
			store.loadErrs = append(store.loadErrs, err.Error())
		}
	}

	log.Info().
		Int("records", len(store.records)).
		Int("specialty", len(store.specialty)).
		Int("errors", len(store.loadErrs)).
		Msg("snapshots loaded")

	return store
}

// Records returns the full record set. Callers must not mutate it.
func (s *Store) Records() []domain.TransactionRecord { return s.records }

func (s *Store) Summary() *domain.SummarySnapshot { return s.summary }

func (s *Store) Specialty() []string { return s.specialty }

func (s *Store) Forecast() *domain.ForecastSnapshot { return s.forecast }

// Fingerprint identifies the loaded record set, for memoization keys.
func (s *Store) Fingerprint() string { return s.fingerprint }

// LoadErrors lists the documents that failed to load, if any.
func (s *Store) LoadErrors() []string { return s.loadErrs }

func (s *Store) Healthy() bool { return len(s.loadErrs) == 0 }

func decodeRecords(data []byte) ([]domain.TransactionRecord, error) {
	var records []domain.TransactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", TransactionsFile, err)
	}
	for i, r := range records {
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return nil, fmt.Errorf("decode %s: record %d: invalid date %q", TransactionsFile, i, r.Date)
		}
		if r.Name == "" {
			return nil, fmt.Errorf("decode %s: record %d: missing name", TransactionsFile, i)
		}
		if r.Quantity < 0 {
			return nil, fmt.Errorf("decode %s: record %d: negative quantity %d", TransactionsFile, i, r.Quantity)
		}
		if r.Transactions < 0 {
			return nil, fmt.Errorf("decode %s: record %d: negative transaction count %d", TransactionsFile, i, r.Transactions)
		}
	}
	return records, nil
}

func decodeSummary(data []byte) (*domain.SummarySnapshot, error) {
	var summary domain.SummarySnapshot
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("decode %s: %w", SummaryFile, err)
	}
	return &summary, nil
}

func decodeSpecialty(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decode %s: %w", SpecialtyFile, err)
	}
	return names, nil
}

func decodeForecast(data []byte) (*domain.ForecastSnapshot, error) {
	var forecast domain.ForecastSnapshot
	if err := json.Unmarshal(data, &forecast); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ForecastFile, err)
	}
	for series, points := range forecast.Forecasts {
		for i, p := range points {
			if _, err := time.Parse("2006-01-02", p.WeekStart); err != nil {
				return nil, fmt.Errorf("decode %s: series %s point %d: invalid weekStart %q",
					ForecastFile, series, i, p.WeekStart)
			}
		}
	}
	return &forecast, nil
}
