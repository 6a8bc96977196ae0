package main

// ── Trait activation ────────────────────────────────────────────────

// traitTally is the scratch state of one counting pass. It belongs to a
// single solve call and is reused between teams.
type traitTally struct {
	counts map[string]int
	bonus  map[string]int
	order  []string // first-appearance order of counted traits
}

func newTraitTally() *traitTally {
	return &traitTally{
		counts: make(map[string]int),
		bonus:  make(map[string]int),
	}
}

func (t *traitTally) add(name string, fromBonus bool) {
	if _, ok := t.counts[name]; !ok {
		t.order = append(t.order, name)
	}
	t.counts[name]++
	if fromBonus {
		t.bonus[name]++
	}
}

// count tallies unit traits, then bonus traits. Bonus traits only count
// toward origins.
func (sc *solveCtx) count(team []*Unit) *traitTally {
	t := sc.tally
	clear(t.counts)
	clear(t.bonus)
	t.order = t.order[:0]
	for _, u := range team {
		for _, name := range u.Traits {
			t.add(name, false)
		}
	}
	for _, name := range sc.bonus {
		t.add(name, true)
	}
	return t
}

// activeOriginCount is the number of origins at or above their first breakpoint.
func (sc *solveCtx) activeOriginCount(team []*Unit) int {
	t := sc.count(team)
	n := 0
	for _, name := range t.order {
		tr := sc.cat.Trait(name)
		if tr == nil || tr.Category != CategoryOrigin {
			continue
		}
		if bp := tr.MinBreakpoint(); bp > 0 && t.counts[name] >= bp {
			n++
		}
	}
	return n
}

// activeOrigins lists the active origins with their counts.
func (sc *solveCtx) activeOrigins(team []*Unit) []ActiveTrait {
	var out []ActiveTrait
	for _, at := range sc.activeTraits(team) {
		if at.IsOrigin {
			out = append(out, at)
		}
	}
	return out
}

// activeTraits lists every trait that met at least one breakpoint, in
// first-appearance order. Undefined traits never activate.
func (sc *solveCtx) activeTraits(team []*Unit) []ActiveTrait {
	t := sc.count(team)
	var out []ActiveTrait
	for _, name := range t.order {
		tr := sc.cat.Trait(name)
		if tr == nil {
			continue
		}
		c := t.counts[name]
		tier, met := tr.Tier(c)
		if met == 0 {
			continue
		}
		out = append(out, ActiveTrait{
			Name:      name,
			Count:     c,
			Tier:      tier,
			TiersMet:  met,
			IsOrigin:  tr.Category == CategoryOrigin,
			FromBonus: t.bonus[name],
		})
	}
	return out
}

// canReachOriginTarget is the pruning check run on a base team before an
// anchor is appended. An anchor raises counts only for its own traits, so it
// can activate at most anchorBound further origins; the check therefore never
// rejects a base that some anchor would complete.
func (sc *solveCtx) canReachOriginTarget(base []*Unit) bool {
	return sc.activeOriginCount(base)+sc.anchorBound >= sc.originTarget
}
