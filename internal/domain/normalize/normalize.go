// Package normalize turns raw source rows into scored canonical evaluations.
//
// A row missing any subset of fields still produces an evaluation: absent and
// malformed values fall back to documented defaults and are reported as
// diagnostics, never as errors. Only an empty dataset fails a pass.
package normalize

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/okian/brokerscore/internal/domain/duration"
	"github.com/okian/brokerscore/internal/domain/fields"
	"github.com/okian/brokerscore/internal/domain/model"
	"github.com/okian/brokerscore/internal/domain/numeric"
	"github.com/okian/brokerscore/internal/domain/scoring"
	"github.com/okian/brokerscore/pkg/logger"
	"github.com/okian/brokerscore/pkg/metrics"
)

// declaredTotalTolerance bounds how far a sheet-declared total may drift from
// the computed one before it is logged.
const declaredTotalTolerance = 0.5

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithResolver sets the field resolver.
func WithResolver(r *fields.Resolver) Option {
	return func(n *Normalizer) {
		if r != nil {
			n.resolver = r
		}
	}
}

// WithClassifier sets the tier classifier.
func WithClassifier(c *scoring.Classifier) Option {
	return func(n *Normalizer) {
		if c != nil {
			n.classifier = c
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithWorkers bounds per-row parallelism in NormalizeAll. Output order and
// content do not depend on the worker count.
func WithWorkers(count int) Option {
	return func(n *Normalizer) {
		if count > 0 {
			n.workers = count
		}
	}
}

// Normalizer orchestrates field resolution, numeric coercion, duration
// parsing, tier classification and aggregation for each row.
type Normalizer struct {
	resolver   *fields.Resolver
	classifier *scoring.Classifier
	logger     logger.Logger
	workers    int
}

// New creates a Normalizer. Defaults: plain resolver, table A, one worker,
// no logging.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		resolver:   fields.NewResolver(),
		classifier: scoring.NewClassifier(),
		logger:     logger.Nop(),
		workers:    1,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NormalizeAll converts rows into evaluations with ids 1..len(rows), in input
// order. It returns model.ErrEmptyDataset when rows is empty.
func (n *Normalizer) NormalizeAll(ctx context.Context, rows []model.RawRecord) ([]model.Evaluation, *Report, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("normalize: %w", model.ErrEmptyDataset)
	}

	out := make([]model.Evaluation, len(rows))
	diags := make([][]Diagnostic, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.workers)
	for i := range rows {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("normalize: %w", err)
			}
			out[i], diags[i] = n.Normalize(gctx, i+1, rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	report := &Report{Rows: len(rows)}
	for _, d := range diags {
		report.add(d)
	}
	n.logger.Info(ctx, "dataset normalized",
		logger.Int("rows", report.Rows),
		logger.Int("missing", report.Missing),
		logger.Int("malformed", report.Malformed),
	)
	return out, report, nil
}

// Normalize converts one row. id must be the row's 1-based ingestion index.
func (n *Normalizer) Normalize(ctx context.Context, id int, row model.RawRecord) (model.Evaluation, []Diagnostic) {
	r := &rowReader{n: n, ctx: ctx, id: id, row: row}

	firstSecs, firstOK, firstKey := r.duration(fields.FirstResponseTime)
	handoffSecs, handoffOK, handoffKey := r.duration(fields.BrokerHandoffTime)

	itemsSent := r.flag(fields.ItemsSentFlag)
	itemsCount, itemsCounted := r.number(fields.ItemsSentCount)
	followUps, followUpsCounted := r.number(fields.FollowUpCount)

	var s model.SubScores
	if firstOK {
		s.FirstResponse = n.classifier.FirstResponse(firstSecs, true)
	} else {
		s.FirstResponse = r.scoreExcluding(fields.FirstResponse, firstKey)
	}
	if handoffOK {
		s.BrokerHandoff = n.classifier.BrokerHandoff(handoffSecs, true)
	} else {
		s.BrokerHandoff = r.scoreExcluding(fields.BrokerHandoff, handoffKey)
	}
	s.AverageSpeed = r.score(fields.AverageSpeed)

	s.Personalization = r.score(fields.Personalization)
	s.Professionalism = r.score(fields.Professionalism)
	s.ClientQualification = r.score(fields.ClientQualification)
	s.Explanations = r.score(fields.Explanations)

	if v, ok := r.number(fields.QuantitySent); ok {
		s.QuantitySent = v
	} else if itemsCounted || itemsSent == model.ItemsSentYes {
		s.QuantitySent = n.classifier.ItemsPresented(itemsCount, itemsSent == model.ItemsSentYes)
	}
	s.CriteriaAdherence = r.score(fields.CriteriaAdherence)
	s.MaterialQuality = r.score(fields.MaterialQuality)

	if v, ok := r.number(fields.Persistence); ok {
		s.Persistence = v
	} else if followUpsCounted {
		s.Persistence = n.classifier.FollowUps(followUps)
	}
	s.FollowUpQuality = r.score(fields.FollowUpQuality)

	s.Adaptability = r.score(fields.Adaptability)
	s.ObjectionHandling = r.score(fields.ObjectionHandling)
	s.OverallEfficiency = r.score(fields.OverallEfficiency)

	b := scoring.Aggregate(s)

	e := model.Evaluation{
		ID:                    id,
		Name:                  r.name(),
		LogoURL:               r.text(fields.LogoURL),
		Recommendations:       r.text(fields.Recommendations),
		FirstResponseDuration: duration.FormatParsed(firstSecs, firstOK),
		BrokerHandoffDuration: duration.FormatParsed(handoffSecs, handoffOK),
		Scores:                b.Scores,
		Categories:            b.Categories,
		TotalScore:            b.Total,
		ItemsPresented:        itemsCount,
		FollowUps:             followUps,
		ItemsSent:             itemsSent,
	}

	if declared, ok := r.number(fields.DeclaredTotal); ok {
		e.DeclaredTotal = declared
		if math.Abs(declared-e.TotalScore) > declaredTotalTolerance {
			n.logger.Debug(ctx, "declared total differs from computed total",
				logger.Int("row", id),
				logger.Float64("declared", declared),
				logger.Float64("computed", e.TotalScore),
			)
		}
	}

	metrics.RecordRowNormalized()
	return e, r.diags
}

// rowReader resolves canonical fields of one row and records diagnostics.
type rowReader struct {
	n     *Normalizer
	ctx   context.Context
	id    int
	row   model.RawRecord
	diags []Diagnostic
}

func (r *rowReader) missing(f fields.Field) {
	r.diags = append(r.diags, Diagnostic{Row: r.id, Field: f, Kind: KindMissing})
	metrics.RecordFieldDefault(KindMissing.String())
	r.n.logger.Debug(r.ctx, "field missing; using default",
		logger.Int("row", r.id),
		logger.String("field", string(f)),
	)
}

func (r *rowReader) malformed(f fields.Field, key string, raw any) {
	r.diags = append(r.diags, Diagnostic{Row: r.id, Field: f, Kind: KindMalformed, Key: key, Raw: fmt.Sprint(raw)})
	metrics.RecordFieldDefault(KindMalformed.String())
	r.n.logger.Warn(r.ctx, "malformed value; using default",
		logger.Int("row", r.id),
		logger.String("field", string(f)),
		logger.String("column", key),
		logger.Any("value", raw),
	)
}

func (r *rowReader) lookup(f fields.Field) (fields.Match, bool) {
	return r.n.resolver.Lookup(r.row, fields.Aliases[f])
}

// number resolves f as a float. ok is false when the default (0) was used.
func (r *rowReader) number(f fields.Field) (float64, bool) {
	m, found := r.lookup(f)
	if !found {
		r.missing(f)
		return 0, false
	}
	return r.coerce(f, m)
}

func (r *rowReader) coerce(f fields.Field, m fields.Match) (float64, bool) {
	v, outcome := numeric.Inspect(m.Value, 0)
	switch outcome {
	case numeric.OutcomeAbsent:
		r.missing(f)
		return 0, false
	case numeric.OutcomeMalformed:
		r.malformed(f, m.Key, m.Value)
		return 0, false
	default:
		return v, true
	}
}

func (r *rowReader) score(f fields.Field) float64 {
	v, _ := r.number(f)
	return v
}

// scoreExcluding is score but ignores a match on column key, which already
// fed a duration. Without it "PrimeiraResposta" would substring-match the
// "TempoPrimeiraResposta" column.
func (r *rowReader) scoreExcluding(f fields.Field, key string) float64 {
	if key == "" {
		return r.score(f)
	}
	m, found := r.lookup(f)
	if !found || m.Key == key {
		r.missing(f)
		return 0
	}
	v, _ := r.coerce(f, m)
	return v
}

// duration resolves f as a latency. Text must be "HH:MM:SS"; a numeric cell
// is taken as seconds. key is the matched column, "" when absent.
func (r *rowReader) duration(f fields.Field) (secs int64, ok bool, key string) {
	m, found := r.lookup(f)
	if !found {
		r.missing(f)
		return 0, false, ""
	}

	switch v := m.Value.(type) {
	case string:
		t := strings.TrimSpace(v)
		if t == "" {
			r.missing(f)
			return 0, false, m.Key
		}
		if t == duration.NotAvailable {
			r.missing(f)
			return 0, false, m.Key
		}
		if s, parsed := duration.Parse(t); parsed {
			return s, true, m.Key
		}
	default:
		if n, outcome := numeric.Inspect(v, 0); outcome == numeric.OutcomeParsed && n >= 0 && n < math.MaxInt64 {
			return int64(math.Round(n)), true, m.Key
		}
	}
	r.malformed(f, m.Key, m.Value)
	return 0, false, m.Key
}

func (r *rowReader) text(f fields.Field) string {
	m, found := r.lookup(f)
	if !found {
		r.missing(f)
		return ""
	}
	return sanitize(m.Value)
}

// name returns the collapsed display name or "Entity {id}".
func (r *rowReader) name() string {
	if s := r.text(fields.Name); s != "" {
		return s
	}
	return fmt.Sprintf("Entity %d", r.id)
}

// flag normalizes the items-sent flag to model.ItemsSentYes/No.
func (r *rowReader) flag(f fields.Field) string {
	m, found := r.lookup(f)
	if !found {
		r.missing(f)
		return model.ItemsSentNo
	}
	switch v := m.Value.(type) {
	case bool:
		if v {
			return model.ItemsSentYes
		}
		return model.ItemsSentNo
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "sim", "s", "yes", "y", "true", "1", "x":
			return model.ItemsSentYes
		case "não", "nao", "n", "no", "false", "0":
			return model.ItemsSentNo
		case "":
			r.missing(f)
			return model.ItemsSentNo
		}
	default:
		if n, outcome := numeric.Inspect(v, 0); outcome == numeric.OutcomeParsed {
			if n > 0 {
				return model.ItemsSentYes
			}
			return model.ItemsSentNo
		}
	}
	r.malformed(f, m.Key, m.Value)
	return model.ItemsSentNo
}

// sanitize renders a scalar as trimmed text with internal whitespace runs
// collapsed to one space.
func sanitize(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	return strings.Join(strings.Fields(s), " ")
}
