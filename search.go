package main

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
)

// ── Anchor policy ───────────────────────────────────────────────────

// AnchorPolicy selects the units appended as the last member of every team.
// Origins is the number of origins an anchor is guaranteed to contribute.
type AnchorPolicy struct {
	Name     string
	Eligible func(u *Unit) bool
	Origins  int
}

// TraitAnchor anchors on units whose only trait is trait.
func TraitAnchor(trait string) *AnchorPolicy {
	return &AnchorPolicy{
		Name: trait,
		Eligible: func(u *Unit) bool {
			return len(u.Traits) == 1 && u.Traits[0] == trait
		},
		Origins: 1,
	}
}

// ── Solver ──────────────────────────────────────────────────────────

// Solver searches a catalog for teams that activate enough origins. It holds
// no per-call state, so one Solver may serve concurrent calls.
type Solver struct {
	cat    *Catalog
	cfg    Config
	anchor *AnchorPolicy
	log    *zap.Logger
}

// NewSolver creates a solver over cat. The anchor policy comes from cfg.
// cat is never modified and may be shared by several solvers.
func NewSolver(cat *Catalog, cfg Config, log *zap.Logger) (*Solver, error) {
	if cat == nil {
		return nil, ErrNoCatalog
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	own := *cat
	own.index()
	return &Solver{cat: &own, cfg: cfg, anchor: cfg.Anchor(), log: log}, nil
}

// WithAnchor returns a copy of the solver using p; nil disables the anchor step.
func (s *Solver) WithAnchor(p *AnchorPolicy) *Solver {
	c := *s
	c.anchor = p
	return &c
}

func (s *Solver) Config() Config { return s.cfg }

func (s *Solver) Catalog() *Catalog { return s.cat }

// SolveStats describes the work done by one solve call.
type SolveStats struct {
	Pool      int
	Anchors   int
	Bases     int // base teams enumerated (anchor mode)
	Pruned    int // bases rejected by the origin pre-check
	Evaluated int // full teams evaluated precisely
	Accepted  int
	Capped    bool
	Elapsed   time.Duration
}

// solveCtx is the call-scoped state of a solve: the resolved modifiers and
// the scratch buffers. Nothing in it outlives the call.
type solveCtx struct {
	cat          *Catalog
	bonus        []string
	optIn        map[string]bool
	tankTarget   float64
	originTarget int
	anchorBound  int

	pool    []*Unit
	anchors []*Unit
	tally   *traitTally
}

func (s *Solver) newSolveCtx(bonusTraits, optInPool []string, opts Options) *solveCtx {
	sc := &solveCtx{
		cat:          s.cat,
		optIn:        make(map[string]bool, len(optInPool)),
		tankTarget:   opts.TankRatioTarget,
		originTarget: s.cfg.OriginTarget,
		tally:        newTraitTally(),
	}
	for _, name := range bonusTraits {
		if s.cat.IsOrigin(name) {
			sc.bonus = append(sc.bonus, name)
		}
	}
	for _, name := range optInPool {
		sc.optIn[name] = true
	}
	blacklist := make(map[string]bool, len(opts.Blacklist))
	for _, name := range opts.Blacklist {
		blacklist[name] = true
	}

	seen := make(map[string]bool, len(s.cat.Units))
	addPool := func(u *Unit) {
		if blacklist[u.Name] || seen[u.Name] {
			return
		}
		seen[u.Name] = true
		if s.anchor != nil && s.anchor.Eligible(u) {
			sc.anchors = append(sc.anchors, u)
			return
		}
		sc.pool = append(sc.pool, u)
	}
	for i := range s.cat.Units {
		addPool(&s.cat.Units[i])
	}
	for i := range s.cat.Reserve {
		if sc.optIn[s.cat.Reserve[i].Name] {
			addPool(&s.cat.Reserve[i])
		}
	}

	if s.anchor != nil {
		sc.anchorBound = s.anchor.Origins
		for _, a := range sc.anchors {
			if n := distinctOrigins(s.cat, a); n > sc.anchorBound {
				sc.anchorBound = n
			}
		}
	}
	return sc
}

func distinctOrigins(cat *Catalog, u *Unit) int {
	seen := make(map[string]bool, len(u.Traits))
	for _, t := range u.Traits {
		if cat.IsOrigin(t) {
			seen[t] = true
		}
	}
	return len(seen)
}

// evaluate runs the precise check on a full team and builds its result.
func (sc *solveCtx) evaluate(team []*Unit) (TeamResult, bool) {
	traits := sc.activeTraits(team)
	origins := 0
	for _, t := range traits {
		if t.IsOrigin {
			origins++
		}
	}
	if origins < sc.originTarget {
		return TeamResult{}, false
	}

	units := make([]Unit, len(team))
	for i, u := range team {
		units[i] = *u
	}
	tanks := tankCount(team)
	cost := sc.effectiveCost(team)
	return TeamResult{
		Units:        units,
		Score:        computeScore(traits, len(team), tanks, cost, sc.tankTarget),
		Size:         len(team),
		TankCount:    tanks,
		CarryCount:   len(team) - tanks,
		TotalCost:    cost,
		ActiveTraits: traits,
	}, true
}

// Solve returns the ranked teams for the given emblems, opt-in units and
// options. It never fails; an empty pool yields an empty slice.
func (s *Solver) Solve(bonusTraits, optInPool []string, opts Options) []TeamResult {
	results, _, _ := s.SolveWithStats(context.Background(), bonusTraits, optInPool, opts)
	return results
}

// SolveContext is Solve with cooperative cancellation between enumerated
// subsets. On cancellation it returns the sorted teams found so far.
func (s *Solver) SolveContext(ctx context.Context, bonusTraits, optInPool []string, opts Options) ([]TeamResult, error) {
	results, _, err := s.SolveWithStats(ctx, bonusTraits, optInPool, opts)
	return results, err
}

// ctxCheckEvery is how many subsets pass between cancellation checks. The
// context is also checked once before enumeration starts.
const ctxCheckEvery = 64

func (s *Solver) SolveWithStats(ctx context.Context, bonusTraits, optInPool []string, opts Options) ([]TeamResult, SolveStats, error) {
	start := time.Now()
	sc := s.newSolveCtx(bonusTraits, optInPool, opts)
	stats := SolveStats{Pool: len(sc.pool), Anchors: len(sc.anchors)}
	results := make([]TeamResult, 0)

	s.log.Debug("solve started",
		zap.Int("pool", stats.Pool),
		zap.Int("anchors", stats.Anchors),
		zap.Strings("bonus", sc.bonus),
		zap.Int("anchor_bound", sc.anchorBound))

	var err error
	steps := 0
	cancelled := func() bool {
		steps++
		if steps%ctxCheckEvery != 0 {
			return false
		}
		err = ctx.Err()
		return err != nil
	}
	// accept reports whether the search must stop.
	accept := func(team []*Unit) bool {
		stats.Evaluated++
		if r, ok := sc.evaluate(team); ok {
			results = append(results, r)
			if len(results) >= s.cfg.ResultCap {
				stats.Capped = true
				return true
			}
		}
		return false
	}

	team := make([]*Unit, 0, s.cfg.MaxSize)
	err = ctx.Err()
search:
	for size := s.cfg.MinSize; err == nil && size <= s.cfg.MaxSize; size++ {
		before := len(results)
		if s.anchor == nil {
			for idx := range Combinations(len(sc.pool), size) {
				if cancelled() {
					break search
				}
				team = team[:0]
				for _, i := range idx {
					team = append(team, sc.pool[i])
				}
				if accept(team) {
					break search
				}
			}
		} else {
			if len(sc.anchors) == 0 {
				break
			}
			for idx := range Combinations(len(sc.pool), size-1) {
				if cancelled() {
					break search
				}
				stats.Bases++
				team = team[:0]
				for _, i := range idx {
					team = append(team, sc.pool[i])
				}
				if !sc.canReachOriginTarget(team) {
					stats.Pruned++
					continue
				}
				for _, a := range sc.anchors {
					if accept(append(team[:size-1], a)) {
						break search
					}
				}
			}
		}
		s.log.Debug("team size done", zap.Int("size", size), zap.Int("accepted", len(results)-before))
	}
	if stats.Capped {
		s.log.Debug("result cap reached", zap.Int("cap", s.cfg.ResultCap))
	}

	SortResults(results)
	stats.Accepted = len(results)
	stats.Elapsed = time.Since(start)
	s.log.Info("solve finished",
		zap.Int("results", stats.Accepted),
		zap.Int("evaluated", stats.Evaluated),
		zap.Int("pruned", stats.Pruned),
		zap.Bool("capped", stats.Capped),
		zap.Duration("elapsed", stats.Elapsed))
	return results, stats, err
}

// compareResults orders by size ascending, score descending, cost ascending.
func compareResults(a, b TeamResult) int {
	if n := cmp.Compare(a.Size, b.Size); n != 0 {
		return n
	}
	if n := cmp.Compare(b.Score, a.Score); n != 0 {
		return n
	}
	return cmp.Compare(a.TotalCost, b.TotalCost)
}

// SortResults sorts in place; ties keep discovery order.
func SortResults(results []TeamResult) {
	slices.SortStableFunc(results, compareResults)
}
