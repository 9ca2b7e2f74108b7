// Package pipeline runs text through parsing, compound layout and option selection.
// Both the CLI and the HTTP server go through the Runner.
package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/sitelen/cache"
	"github.com/ByLCY/sitelen/config"
	"github.com/ByLCY/sitelen/grammar"
	"github.com/ByLCY/sitelen/layout"
)

// Options configures a Runner.
type Options struct {
	Layout  layout.Options
	Mode    layout.Mode
	Target  float64
	Min     float64
	Max     float64
	Seed    uint64
	Workers int
	TTL     time.Duration
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return FromConfig(config.Default())
}

// FromConfig converts file configuration into runner options.
func FromConfig(cfg config.Config) Options {
	mode, _ := layout.ParseMode(cfg.Layout.Mode)
	return Options{
		Layout:  cfg.LayoutOptions(),
		Mode:    mode,
		Target:  cfg.Layout.TargetRatio,
		Min:     cfg.Layout.MinRatio,
		Max:     cfg.Layout.MaxRatio,
		Seed:    cfg.Layout.Seed,
		Workers: cfg.Layout.Workers,
		TTL:     cfg.Cache.TTL.Duration,
	}
}

// Runner is stateless apart from its cache and logger; one Runner may serve
// concurrent calls.
type Runner struct {
	Parser   *grammar.Parser
	Composer layout.Composer
	Selector layout.Selector
	Lexicon  *grammar.Lexicon
	Logger   *log.Logger
	Workers  int
	Seed     uint64
}

// NewRunner creates a runner. A nil cache disables memoization and a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger, opts Options) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	parser := grammar.NewParser(c, opts.TTL)
	parser.OnCacheError = func(key string, err error) {
		logger.Warn("cache unavailable", "key", key, "err", err)
	}
	return &Runner{
		Parser:   parser,
		Composer: layout.NewComposer(opts.Layout),
		Selector: layout.Selector{Mode: opts.Mode, Target: opts.Target, Min: opts.Min, Max: opts.Max},
		Lexicon:  grammar.DefaultLexicon(),
		Logger:   logger,
		Workers:  opts.Workers,
		Seed:     opts.Seed,
	}
}

// Stats records per-stage timing and counts.
type Stats struct {
	ParseTime  time.Duration `json:"parse_time"`
	LayoutTime time.Duration `json:"layout_time"`
	SelectTime time.Duration `json:"select_time"`
	Sentences  int           `json:"sentences"`
	Compounds  int           `json:"compounds"`
	Options    int           `json:"options"`
	Implicit   int           `json:"implicit"`
	Unknown    []string      `json:"unknown,omitempty"`
}

// Result is the output of Run.
type Result struct {
	Sentences []grammar.Sentence `json:"sentences"`
	Document  *layout.Document   `json:"document"`
	Stats     Stats              `json:"stats"`
}

// compoundJob is one compound waiting for layout.
type compoundJob struct {
	sentence int
	parts    []grammar.Part
}

// Parse runs only the grammar stage and logs warnings.
func (r *Runner) Parse(ctx context.Context, text string) ([]grammar.Sentence, Stats, error) {
	var stats Stats
	start := time.Now()
	sentences, err := r.Parser.Parse(ctx, text)
	if err != nil {
		return nil, stats, fmt.Errorf("parse: %w", err)
	}
	stats.ParseTime = time.Since(start)
	stats.Sentences = len(sentences)
	if len(sentences) == 0 {
		return nil, stats, fmt.Errorf("parse: %w", layout.ErrEmptyInput)
	}

	var unknown []string
	for _, s := range sentences {
		if s.Implicit {
			stats.Implicit++
			r.Logger.Warn("sentence has no terminator", "sentence", s.Raw)
		}
		for _, w := range r.Lexicon.Unknown(s.Parts) {
			if !slices.Contains(unknown, w) {
				unknown = append(unknown, w)
			}
		}
	}
	if len(unknown) > 0 {
		r.Logger.Warn("unknown words", "words", unknown)
	}
	stats.Unknown = unknown

	r.Logger.Debug("parsed text", "sentences", len(sentences), "duration", stats.ParseTime)
	return sentences, stats, nil
}

// Run executes the complete parse → compose → select pipeline.
func (r *Runner) Run(ctx context.Context, text string) (*Result, error) {
	sentences, stats, err := r.Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	jobs := splitCompounds(sentences)
	layoutStart := time.Now()
	candidates, err := r.composeAll(ctx, jobs)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	stats.LayoutTime = time.Since(layoutStart)
	stats.Compounds = len(jobs)
	for _, c := range candidates {
		stats.Options += len(c)
	}
	r.Logger.Info("computed layouts",
		"compounds", stats.Compounds,
		"options", stats.Options,
		"duration", stats.LayoutTime)

	selectStart := time.Now()
	sel := r.selector()
	doc := &layout.Document{Compounds: make([]layout.Compound, 0, len(jobs))}
	for i, job := range jobs {
		best, err := sel.Select(candidates[i])
		if err != nil {
			return nil, fmt.Errorf("select: 第 %d 段 (第 %d 句): %w", i+1, job.sentence+1, err)
		}
		doc.Compounds = append(doc.Compounds, layout.Compound{
			Sentence:   job.sentence,
			Option:     best,
			Candidates: len(candidates[i]),
		})
	}
	stats.SelectTime = time.Since(selectStart)

	return &Result{Sentences: sentences, Document: doc, Stats: stats}, nil
}

// Candidate lists the ranked options of one compound.
type Candidate struct {
	Sentence int             `json:"sentence"`
	Parts    []grammar.Part  `json:"parts"`
	Options  []layout.Option `json:"options"`
}

// Candidates returns the ranked, filtered options for every compound of text.
func (r *Runner) Candidates(ctx context.Context, text string) ([]Candidate, error) {
	sentences, _, err := r.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	jobs := splitCompounds(sentences)
	all, err := r.composeAll(ctx, jobs)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	sel := r.selector()
	out := make([]Candidate, len(jobs))
	for i, job := range jobs {
		ranked, err := sel.Rank(all[i])
		if err != nil {
			return nil, fmt.Errorf("select: 第 %d 段 (第 %d 句): %w", i+1, job.sentence+1, err)
		}
		out[i] = Candidate{Sentence: job.sentence, Parts: job.parts, Options: ranked}
	}
	return out, nil
}

// selector returns a copy with a fresh seeded source, so random picks are
// reproducible per call and never shared between goroutines.
func (r *Runner) selector() layout.Selector {
	sel := r.Selector
	if sel.Mode == layout.Random && sel.Rand == nil {
		sel.Rand = rand.New(rand.NewPCG(r.Seed, 0))
	}
	return sel
}

func splitCompounds(sentences []grammar.Sentence) []compoundJob {
	var jobs []compoundJob
	for i, s := range sentences {
		for _, parts := range grammar.Compounds(s) {
			jobs = append(jobs, compoundJob{sentence: i, parts: parts})
		}
	}
	return jobs
}

// composeAll lays out every compound. With Workers > 1 compounds run concurrently;
// results keep the input order.
func (r *Runner) composeAll(ctx context.Context, jobs []compoundJob) ([][]layout.Option, error) {
	out := make([][]layout.Option, len(jobs))
	if r.Workers <= 1 {
		for i, job := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			opts, err := r.Composer.ComposeContext(ctx, job.parts)
			if err != nil {
				return nil, fmt.Errorf("第 %d 段: %w", i+1, err)
			}
			out[i] = opts
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts, err := r.Composer.ComposeContext(gctx, job.parts)
			if err != nil {
				return fmt.Errorf("第 %d 段: %w", i+1, err)
			}
			out[i] = opts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
