// Package scanner walks directory trees concurrently, filters every entry
// through a parsed query and projects or aggregates the matching rows.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ZanzyTHEbar/fsquery/fsq/config"
	"github.com/ZanzyTHEbar/fsquery/fsq/field"
	"github.com/ZanzyTHEbar/fsquery/fsq/fileinfo"
	"github.com/ZanzyTHEbar/fsquery/fsq/function"
	"github.com/ZanzyTHEbar/fsquery/fsq/query"
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Result is the projected output of a scan.
type Result struct {
	Header []string
	Rows   [][]string
}

// Stats tracks counters during a scan
type Stats struct {
	DirsProcessed   int64
	EntriesVisited  int64
	RowsMatched     int64
	ErrorsFound     int64
	ArchivesOpened  int64
	ContentsSkipped int64
}

// Scanner evaluates a query against one or more directory trees.
type Scanner struct {
	cfg    config.ScanConfig
	eval   *function.Evaluator
	logger zerolog.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a scanner. A nil evaluator gets the default one.
func New(cfg config.ScanConfig, eval *function.Evaluator, opts ...Option) *Scanner {
	if eval == nil {
		eval = function.NewEvaluator()
	}
	s := &Scanner{cfg: cfg, eval: eval, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// plan is the per-query state shared by every worker of one run.
type plan struct {
	q       *query.Query
	preds   []query.Predicate
	fields  *field.Set
	grouped bool
	logger  zerolog.Logger
	stats   *Stats

	mu      sync.Mutex
	rows    []projected
	groups  map[string]*group
	visited sync.Map // real directory path -> struct{}
}

type projected struct {
	path  string
	cells []string
}

// Run scans roots and returns the projected rows, sorted by path, or one
// row per group when the query aggregates. The only error a row can raise
// is a malformed function argument, which aborts the scan.
func (s *Scanner) Run(ctx context.Context, roots []string, q *query.Query) (*Result, error) {
	if len(q.Columns) == 0 {
		return nil, errors.New("no columns selected")
	}

	runID := uuid.New()
	logger := s.logger.With().Str("run", runID.String()).Logger()

	p := &plan{
		q:       q,
		preds:   orderPredicates(q.Where),
		fields:  q.Fields(),
		grouped: q.HasAggregate() || len(q.GroupBy) > 0,
		logger:  logger,
		stats:   &Stats{},
		groups:  make(map[string]*group),
	}

	start := time.Now()
	logger.Debug().
		Strs("roots", roots).
		Int("workers", s.cfg.EffectiveWorkers()).
		Bool("stat", p.fields.AnyMetadata()).
		Bool("exif", p.fields.AnyExif()).
		Bool("media", p.fields.AnyMedia()).
		Bool("grouped", p.grouped).
		Msg("scan started")

	if err := s.walk(ctx, roots, p); err != nil {
		return nil, err
	}

	res := &Result{Header: q.Header()}
	if p.grouped {
		res.Rows = p.finalizeGroups()
	} else {
		sort.SliceStable(p.rows, func(i, j int) bool { return p.rows[i].path < p.rows[j].path })
		res.Rows = make([][]string, len(p.rows))
		for i, r := range p.rows {
			res.Rows[i] = r.cells
		}
	}

	logger.Debug().
		Int64("dirs", atomic.LoadInt64(&p.stats.DirsProcessed)).
		Int64("entries", atomic.LoadInt64(&p.stats.EntriesVisited)).
		Int64("matched", atomic.LoadInt64(&p.stats.RowsMatched)).
		Int64("errors", atomic.LoadInt64(&p.stats.ErrorsFound)).
		Int64("archives", atomic.LoadInt64(&p.stats.ArchivesOpened)).
		Int64("content_skipped", atomic.LoadInt64(&p.stats.ContentsSkipped)).
		Dur("elapsed", time.Since(start)).
		Msg("scan finished")

	return res, nil
}

// orderPredicates sorts where terms by ascending function weight, keeping
// the written order among equal weights.
func orderPredicates(preds []query.Predicate) []query.Predicate {
	out := make([]query.Predicate, len(preds))
	copy(out, preds)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight() < out[j].Weight() })
	return out
}

// visit evaluates one row and records it when it matches.
func (s *Scanner) visit(p *plan, rec *fileinfo.Record) error {
	atomic.AddInt64(&p.stats.EntriesVisited, 1)

	if p.fields.AnyMetadata() {
		if rec.Stat() == nil {
			atomic.AddInt64(&p.stats.ErrorsFound, 1)
		}
	}

	ok, err := s.matches(p, rec)
	if err != nil || !ok {
		return err
	}
	atomic.AddInt64(&p.stats.RowsMatched, 1)

	if p.grouped {
		return s.accumulate(p, rec)
	}

	cells := make([]string, len(p.q.Columns))
	for i, col := range p.q.Columns {
		text, err := s.project(rec, col)
		if err != nil {
			return err
		}
		cells[i] = text
	}
	p.mu.Lock()
	p.rows = append(p.rows, projected{path: rec.Path(), cells: cells})
	p.mu.Unlock()
	return nil
}

func (s *Scanner) matches(p *plan, rec *fileinfo.Record) (bool, error) {
	for _, pred := range p.preds {
		if pred.Column.Function == function.Contains && !s.contentEligible(rec) {
			atomic.AddInt64(&p.stats.ContentsSkipped, 1)
			return false, nil
		}
		v, err := s.value(rec, pred.Column)
		if err != nil {
			return false, err
		}
		if !pred.Match(v) {
			return false, nil
		}
	}
	return true, nil
}

// contentEligible reports whether a row's content may be searched: it must
// be a regular file on disk within the configured size limit.
func (s *Scanner) contentEligible(rec *fileinfo.Record) bool {
	if rec.Info != nil || rec.Entry == nil {
		return false
	}
	st := rec.Stat()
	if st == nil || !st.Mode.IsRegular() {
		return false
	}
	return s.cfg.MaxContentBytes == 0 || st.Size <= uint64(s.cfg.MaxContentBytes)
}

// argument is the primary text handed to a column's function.
func argument(rec *fileinfo.Record, col query.Column) string {
	if col.HasField {
		return rec.Text(col.Field)
	}
	return col.Literal
}

// aggregateArgument is the text buffered for an aggregate column. It uses
// the comparison key, so sum(fsize) adds byte counts.
func aggregateArgument(rec *fileinfo.Record, col query.Column) string {
	if col.HasField {
		return rec.Key(col.Field).String()
	}
	return col.Literal
}

func (s *Scanner) evaluate(rec *fileinfo.Record, col query.Column) (variant.Value, error) {
	v, err := s.eval.Evaluate(col.Function, argument(rec, col), col.Args, rec.Entry, rec.Info)
	if err != nil {
		return v, fmt.Errorf("column %s: %w", col.Key(), err)
	}
	return v, nil
}

// value is the comparable value of a column for filtering.
func (s *Scanner) value(rec *fileinfo.Record, col query.Column) (variant.Value, error) {
	if col.Function == function.None {
		if col.HasField {
			return rec.Key(col.Field), nil
		}
		return variant.FromString(col.Literal), nil
	}
	return s.evaluate(rec, col)
}

// project renders a column for output. Without a function the field's raw
// text stands in for the evaluator's empty result.
func (s *Scanner) project(rec *fileinfo.Record, col query.Column) (string, error) {
	v, err := s.evaluate(rec, col)
	if err != nil {
		return "", err
	}
	if col.Function == function.None && v.IsEmpty() {
		if col.HasField {
			return rec.Text(col.Field), nil
		}
		return col.Literal, nil
	}
	return v.String(), nil
}
