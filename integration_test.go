package main

import (
	"context"
	"slices"
	"strings"
	"testing"
)

type fixtureRequest struct {
	name      string
	emblems   []string
	optIn     []string
	blacklist []string
	tank      float64
}

var fixtureRequests = []fixtureRequest{
	{name: "plain", tank: 60},
	{name: "diana", optIn: []string{"Diana"}, tank: 60},
	{name: "yordle_emblem", emblems: []string{"Yordle"}, tank: 50},
	{name: "two_emblems_no_kennen", emblems: []string{"Yordle", "Void"}, blacklist: []string{"Kennen"}, tank: 80},
	{name: "all_reserve", optIn: []string{"Aphelios", "Diana", "Ambessa", "Lissandra", "Seraphine"}, tank: 0},
}

// verifyTeams runs the full checklist against a solve result.
func verifyTeams(t *testing.T, s *Solver, req fixtureRequest, results []TeamResult, stats SolveStats) {
	t.Helper()
	cfg := s.Config()
	cat := s.Catalog()

	// 1. never more than the cap, and capped only at the cap
	if len(results) > cfg.ResultCap {
		t.Errorf("%d results exceed cap %d", len(results), cfg.ResultCap)
	}
	if stats.Capped != (len(results) == cfg.ResultCap) {
		t.Errorf("capped=%v with %d results", stats.Capped, len(results))
	}

	seenTeams := make(map[string]bool, len(results))
	for i := range results {
		r := &results[i]
		names := r.Names()

		// 2. size within bounds and consistent
		if r.Size < cfg.MinSize || r.Size > cfg.MaxSize || r.Size != len(r.Units) {
			t.Errorf("team %v: size %d out of [%d,%d]", names, r.Size, cfg.MinSize, cfg.MaxSize)
		}

		// 3. no unit twice, no blacklisted unit, reserve units only when opted in
		seen := make(map[string]bool, len(names))
		for _, u := range r.Units {
			if seen[u.Name] {
				t.Errorf("team %v: %s appears twice", names, u.Name)
			}
			seen[u.Name] = true
			if slices.Contains(req.blacklist, u.Name) {
				t.Errorf("team %v: blacklisted %s", names, u.Name)
			}
			if slices.Contains(cat.ReserveNames(), u.Name) && !slices.Contains(req.optIn, u.Name) {
				t.Errorf("team %v: reserve unit %s was not opted in", names, u.Name)
			}
		}

		// 4. the last unit is an anchor
		last := r.Units[len(r.Units)-1]
		if len(last.Traits) != 1 || last.Traits[0] != cfg.AnchorTrait {
			t.Errorf("team %v: last unit %s is not a %s anchor", names, last.Name, cfg.AnchorTrait)
		}

		// 5. enough origins
		if len(r.Origins()) < cfg.OriginTarget {
			t.Errorf("team %v: %d origins, want >= %d", names, len(r.Origins()), cfg.OriginTarget)
		}

		// 6. tank and carry counts
		tanks := 0
		for _, u := range r.Units {
			if u.IsTank {
				tanks++
			}
		}
		if r.TankCount != tanks || r.CarryCount != r.Size-tanks {
			t.Errorf("team %v: tanks %d carries %d, want %d/%d", names, r.TankCount, r.CarryCount, tanks, r.Size-tanks)
		}

		// 7. cost excludes opted-in units
		cost := 0
		for _, u := range r.Units {
			if !slices.Contains(req.optIn, u.Name) {
				cost += u.Cost
			}
		}
		if r.TotalCost != cost {
			t.Errorf("team %v: cost %d, want %d", names, r.TotalCost, cost)
		}

		// 8. score recomputation matches
		if got := computeScore(r.ActiveTraits, r.Size, r.TankCount, r.TotalCost, req.tank); got != r.Score {
			t.Errorf("team %v: score %d, recomputed %d", names, r.Score, got)
		}

		// 9. every active trait reaches a breakpoint
		for _, at := range r.ActiveTraits {
			def := cat.Trait(at.Name)
			if def == nil || at.Count < def.MinBreakpoint() {
				t.Errorf("team %v: trait %s at %d is not active", names, at.Name, at.Count)
			}
		}

		// 10. no two results share the same unit set
		key := slices.Clone(names)
		slices.Sort(key)
		k := strings.Join(key, "\x00")
		if seenTeams[k] {
			t.Errorf("team %v reported twice", names)
		}
		seenTeams[k] = true

		// 11. ordering
		if i > 0 && compareResults(results[i-1], *r) > 0 {
			t.Errorf("results %d and %d out of order", i-1, i)
		}
	}
}

func TestFixtureRequests(t *testing.T) {
	s := newSolver(t, loadFixture(t), DefaultConfig())

	reqs := fixtureRequests
	if testing.Short() {
		reqs = reqs[:1]
	}
	for _, req := range reqs {
		t.Run(req.name, func(t *testing.T) {
			t.Parallel()
			results, stats, err := s.SolveWithStats(context.Background(), req.emblems, req.optIn,
				Options{TankRatioTarget: req.tank, Blacklist: req.blacklist})
			if err != nil {
				t.Fatalf("solve: %v", err)
			}
			t.Logf("%s: %d teams, evaluated=%d pruned=%d elapsed=%v", req.name, len(results), stats.Evaluated, stats.Pruned, stats.Elapsed)
			verifyTeams(t, s, req, results, stats)
		})
	}
}
