// Package partition splits names into balanced teams while keeping forbidden pairs apart.
// It runs a bounded number of randomized greedy trials and keeps the best scored one.
// It is a pure computation: no I/O, no state shared between calls.
package partition

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"team-roulette/domain"
	"team-roulette/errors"

	"golang.org/x/sync/errgroup"
)

const (
	// ConflictFreeScore is granted to a team with no forbidden partner and withdrawn from the others.
	// It has to stay above any BalanceWeight bonus so conflicts always outweigh balance.
	ConflictFreeScore = 10000.0
	// BalanceWeight rewards each missing member below the average team size.
	BalanceWeight = 100.0
	// DefaultConflictWeight is the trial penalty for each violated pair.
	DefaultConflictWeight = 100.0
	DefaultTrials         = 10
)

// RandomSource yields floats in [0, 1). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// Result is the best partition found.
type Result struct {
	Teams     [][]string
	Conflicts []domain.Pair
	Score     float64
}

type Engine struct {
	mu             sync.Mutex // guards source
	source         RandomSource
	conflictWeight float64
	parallelism    int
	log            *slog.Logger
}

type Option func(*Engine)

// WithRandomSource injects the generator used to seed every trial.
func WithRandomSource(source RandomSource) Option {
	return func(e *Engine) {
		e.source = source
	}
}

func WithConflictWeight(weight float64) Option {
	return func(e *Engine) {
		e.conflictWeight = weight
	}
}

// WithParallelism bounds how many trials run at once. Values below 2 run trials sequentially.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		conflictWeight: DefaultConflictWeight,
		parallelism:    1,
		log:            slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.source == nil {
		e.source = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// Partition splits names into teamCount teams with a fresh time-seeded generator.
func Partition(names []string, teamCount int, pairs []domain.Pair, trials int) (Result, error) {
	return NewEngine().Partition(names, teamCount, pairs, trials)
}

// Partition runs trials randomized constructions and returns the best one along with
// the forbidden pairs it could not keep apart.
//
// Every trial draws its own generator from the engine source, in trial order, so the
// result only depends on the source sequence and not on parallelism.
func (e *Engine) Partition(names []string, teamCount int, pairs []domain.Pair, trials int) (Result, error) {
	if len(names) == 0 {
		return Result{}, errors.ErrEmptyNames
	}
	if teamCount < 1 || teamCount > len(names) {
		return Result{}, fmt.Errorf("%w: %d teams for %d names", errors.ErrInvalidTeamCount, teamCount, len(names))
	}
	if trials < 1 {
		return Result{}, fmt.Errorf("%w: %d", errors.ErrInvalidTrials, trials)
	}

	sources := e.trialSources(trials)
	partners := newPartnerIndex(pairs)
	candidates := make([][][]string, trials)
	scores := make([]float64, trials)

	runTrial := func(i int) {
		candidates[i] = buildTeams(sources[i], names, teamCount, partners)
		scores[i] = Score(candidates[i], pairs, e.conflictWeight)
	}

	if e.parallelism > 1 {
		var g errgroup.Group
		g.SetLimit(e.parallelism)
		for i := range trials {
			g.Go(func() error {
				runTrial(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range trials {
			runTrial(i)
		}
	}

	best := bestTrial(scores)

	conflicts := Conflicts(candidates[best], pairs)
	e.log.Debug("Partition done",
		"names", len(names), "teams", teamCount, "pairs", len(pairs),
		"trials", trials, "best_trial", best, "score", scores[best], "conflicts", len(conflicts))

	return Result{
		Teams:     candidates[best],
		Conflicts: conflicts,
		Score:     scores[best],
	}, nil
}

// bestTrial returns the index of the highest score, the earliest one on ties.
func bestTrial(scores []float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

func (e *Engine) trialSources(trials int) []RandomSource {
	e.mu.Lock()
	defer e.mu.Unlock()

	sources := make([]RandomSource, trials)
	for i := range sources {
		sources[i] = rand.New(rand.NewPCG(seed(e.source), seed(e.source)))
	}
	return sources
}

// seed turns one draw into a 53-bit integer, the full precision of a float64 in [0, 1).
func seed(source RandomSource) uint64 {
	return uint64(source.Float64() * (1 << 53))
}
