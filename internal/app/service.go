// Package service wires acquisition, normalization, ranking and benchmarks
// into the read API used by the HTTP server and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/brokerscore/internal/adapters/repository"
	"github.com/okian/brokerscore/internal/adapters/source"
	"github.com/okian/brokerscore/internal/domain/benchmark"
	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/normalize"
	"github.com/okian/brokerscore/internal/domain/ranking"
	"github.com/okian/brokerscore/internal/domain/scoring"
	"github.com/okian/brokerscore/internal/domain/types"
	"github.com/okian/brokerscore/pkg/logger"
	"github.com/okian/brokerscore/pkg/metrics"
)

// Load outcomes, used as metric labels.
const (
	OutcomeSuccess           = "success"
	OutcomeEmpty             = "empty"
	OutcomeAcquisitionFailed = "acquisition_failed"
	OutcomeFailed            = "failed"
)

// defaultSummarySize is how many strongest/weakest categories Summary lists.
const defaultSummarySize = 2

// LoadReport describes the dataset produced by one successful Load.
type LoadReport struct {
	DatasetID string                 `json:"dataset_id"`
	Rows      int                    `json:"rows"`
	Missing   int                    `json:"missing_fields"`
	Malformed int                    `json:"malformed_values"`
	Problems  []normalize.Diagnostic `json:"problems,omitempty"`
	LoadedAt  time.Time              `json:"loaded_at"`
	Took      time.Duration          `json:"took"`
}

// Service implements the API dependencies for the scoring engine.
type Service struct {
	mu sync.RWMutex
	// loadMu serializes loads; readers only take mu.
	loadMu sync.Mutex

	source     source.Source
	normalizer *normalize.Normalizer
	store      repository.Store
	bench      benchmark.Provider
	population bool
	logger     logger.Logger
	now        func() time.Time

	reloadInterval time.Duration

	loaded bool
	report LoadReport

	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the raw-row acquisition collaborator.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithNormalizer sets the record normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithStore sets the evaluation store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithBenchmark sets the benchmark provider used until (and, in static mode,
// after) a dataset is loaded.
func WithBenchmark(p benchmark.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.bench = p
		}
	}
}

// WithPopulationBenchmark recomputes the benchmark from every loaded dataset.
func WithPopulationBenchmark(enabled bool) Option {
	return func(s *Service) {
		s.population = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReloadInterval makes Start reload the dataset periodically. Zero
// disables periodic reloads.
func WithReloadInterval(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.reloadInterval = d
		}
	}
}

// WithClock overrides the wall clock used for load timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		normalizer: normalize.New(),
		store:      repository.NewTreapStore(),
		bench:      benchmark.Static(benchmark.Default()),
		logger:     logger.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset once and, when a reload interval is set, keeps
// reloading it in the background until Stop or ctx is done.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	stop := make(chan struct{})
	s.stopCh = stop
	s.mu.Unlock()

	s.logger.Info(ctx, "starting scoring service...")
	if _, err := s.Load(ctx); err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return err
	}

	if s.reloadInterval > 0 {
		s.wg.Add(1)
		go s.reloadLoop(ctx, stop)
	}
	s.logger.Info(ctx, "scoring service started",
		logger.String("reloadInterval", s.reloadInterval.String()),
		logger.Bool("populationBenchmark", s.population),
	)
	return nil
}

func (s *Service) reloadLoop(ctx context.Context, stop <-chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.reloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			// Failures keep the previous dataset and are already logged.
			_, _ = s.Load(ctx)
		}
	}
}

// Stop ends periodic reloads.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "scoring service stopped")
}

// Load runs acquisition, normalization and the store swap. On any failure
// the previously loaded dataset stays active and the error is returned.
func (s *Service) Load(ctx context.Context) (LoadReport, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := s.now()
	report, err := s.load(ctx, start)
	took := s.now().Sub(start)
	if err != nil {
		outcome := classify(err)
		metrics.RecordLoad(outcome, took)
		s.logger.Error(ctx, "dataset load failed",
			logger.String("outcome", outcome),
			logger.Error(err),
		)
		return LoadReport{}, err
	}

	report.Took = took
	s.mu.Lock()
	s.loaded = true
	s.report = report
	s.mu.Unlock()

	metrics.RecordLoad(OutcomeSuccess, took)
	metrics.UpdateEvaluations(report.Rows, report.LoadedAt)
	s.logger.Info(ctx, "dataset loaded",
		logger.String("datasetId", report.DatasetID),
		logger.Int("rows", report.Rows),
		logger.Int("missing", report.Missing),
		logger.Int("malformed", report.Malformed),
		logger.Duration("took", took),
	)
	return report, nil
}

func (s *Service) load(ctx context.Context, start time.Time) (LoadReport, error) {
	if s.source == nil {
		return LoadReport{}, ErrNoSource
	}
	rows, err := s.source.Fetch(ctx)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrEmptyDataset), errors.Is(err, model.ErrAcquisition):
		return LoadReport{}, fmt.Errorf("load: %w", err)
	default:
		return LoadReport{}, fmt.Errorf("load: %w: %w", model.ErrAcquisition, err)
	}
	evals, nr, err := s.normalizer.NormalizeAll(ctx, rows)
	if err != nil {
		return LoadReport{}, fmt.Errorf("load: %w", err)
	}

	var stats benchmark.Statistics
	if s.population {
		if stats, err = benchmark.FromPopulation(evals); err != nil {
			return LoadReport{}, fmt.Errorf("load: %w", err)
		}
	}
	if err := s.store.Replace(ctx, evals); err != nil {
		return LoadReport{}, fmt.Errorf("load: %w", err)
	}
	if s.population {
		s.mu.Lock()
		s.bench = benchmark.Static(stats)
		s.mu.Unlock()
	}

	report := LoadReport{
		DatasetID: model.Fingerprint(evals),
		Rows:      nr.Rows,
		Missing:   nr.Missing,
		Malformed: nr.Malformed,
		Problems:  nr.Problems,
		LoadedAt:  start,
	}
	return report, nil
}

func classify(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyDataset):
		return OutcomeEmpty
	case errors.Is(err, model.ErrAcquisition):
		return OutcomeAcquisitionFailed
	default:
		return OutcomeFailed
	}
}

func (s *Service) ensureLoaded() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// LastReport returns the report of the active dataset.
func (s *Service) LastReport() (LoadReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return LoadReport{}, ErrNotLoaded
	}
	return s.report, nil
}

// All returns every evaluation in id order.
func (s *Service) All(ctx context.Context) ([]model.Evaluation, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return s.store.All(ctx), nil
}

// GetByID returns one evaluation or repository.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int) (model.Evaluation, error) {
	if err := s.ensureLoaded(); err != nil {
		return model.Evaluation{}, err
	}
	return s.store.GetByID(ctx, id)
}

// GetByName looks an evaluation up by name, ignoring case.
func (s *Service) GetByName(ctx context.Context, name string) (model.Evaluation, error) {
	if err := s.ensureLoaded(); err != nil {
		return model.Evaluation{}, err
	}
	return s.store.GetByName(ctx, name)
}

// Rank returns the position of a loaded evaluation among its peers.
func (s *Service) Rank(ctx context.Context, id int) (ranking.Position, error) {
	if err := s.ensureLoaded(); err != nil {
		return ranking.Position{}, err
	}
	entry, err := s.store.Rank(ctx, id)
	if err != nil {
		return ranking.Position{}, err
	}
	return ranking.Position{
		ID:    entry.ID,
		Name:  entry.Name,
		Total: entry.TotalScore,
		Rank:  entry.Rank,
		Of:    s.store.Count(ctx),
	}, nil
}

// Locate ranks an arbitrary evaluation against the loaded population. When
// it is not part of that population, or nothing is loaded, the rank is
// estimated from the benchmark population size and flagged as such.
func (s *Service) Locate(ctx context.Context, e model.Evaluation) ranking.Position {
	var population []model.Evaluation
	if s.ensureLoaded() == nil {
		population = s.store.All(ctx)
	}
	p := ranking.Locate(e, population, s.Benchmark(ctx).Size)
	if p.Estimated {
		metrics.RecordRankEstimation()
		s.logger.Debug(ctx, "rank estimated",
			logger.Int("id", e.ID),
			logger.Float64("total", e.TotalScore),
			logger.Int("rank", p.Rank),
		)
	}
	return p
}

// TopN returns the top n leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return s.store.TopN(ctx, n)
}

// Benchmark returns the active benchmark snapshot.
func (s *Service) Benchmark(_ context.Context) benchmark.Statistics {
	s.mu.RLock()
	p := s.bench
	s.mu.RUnlock()
	return p.Get()
}

// Summary lists the strongest and weakest categories of one evaluation.
func (s *Service) Summary(ctx context.Context, id int) (scoring.Summary, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return scoring.Summary{}, err
	}
	return scoring.Summarize(e.Categories, defaultSummarySize), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":             s.started,
		"loaded":              s.loaded,
		"populationBenchmark": s.population,
		"benchmarkVersion":    s.bench.Get().Version,
		"evaluations":         s.store.Count(context.Background()),
	}
	if s.loaded {
		stats["datasetId"] = s.report.DatasetID
		stats["loadedAt"] = s.report.LoadedAt
		stats["missingFields"] = s.report.Missing
		stats["malformedValues"] = s.report.Malformed
	}
	return stats
}
