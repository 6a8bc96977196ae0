package main

import "strings"

type Category int

const (
	CategoryNone Category = iota
	CategoryOrigin
	CategoryClass
)

func (c Category) String() string {
	switch c {
	case CategoryOrigin:
		return "origin"
	case CategoryClass:
		return "class"
	}
	return "none"
}

func parseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "origin", "origins":
		return CategoryOrigin
	case "class", "classes":
		return CategoryClass
	}
	return CategoryNone
}

// Unit is an immutable catalog entry.
type Unit struct {
	Name            string   `json:"name"`
	Cost            int      `json:"cost"`
	Traits          []string `json:"traits"`
	IsTank          bool     `json:"isTank"`
	UnlockCondition string   `json:"unlockCondition,omitempty"`
}

func (u *Unit) HasTrait(name string) bool {
	for _, t := range u.Traits {
		if t == name {
			return true
		}
	}
	return false
}

// Trait is an immutable synergy definition. Breakpoints are strictly increasing.
type Trait struct {
	Name        string
	Category    Category
	Breakpoints []int
	Emblem      bool // a bonus token exists for this trait
}

// MinBreakpoint returns the activation threshold, or 0 when the trait has no breakpoints.
func (t *Trait) MinBreakpoint() int {
	if len(t.Breakpoints) == 0 {
		return 0
	}
	return t.Breakpoints[0]
}

// Tier returns the highest breakpoint met by count and how many breakpoints
// were met. tier is 0 when the trait is inactive.
func (t *Trait) Tier(count int) (tier, met int) {
	for _, bp := range t.Breakpoints {
		if count < bp {
			break
		}
		tier = bp
		met++
	}
	return tier, met
}

// Catalog is the static input of the solver. Reserve holds the high-cost
// units that are only available when opted in.
type Catalog struct {
	Units   []Unit
	Reserve []Unit
	Traits  []Trait

	traitByName map[string]*Trait
}

// Options carries the per-request preferences of a solve.
type Options struct {
	TankRatioTarget float64  `json:"tankRatioTarget" yaml:"tank_ratio_target"`
	Blacklist       []string `json:"blacklist" yaml:"blacklist"`
}

// ActiveTrait is a trait whose count reached at least one breakpoint.
type ActiveTrait struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Tier      int    `json:"breakpoint"`
	TiersMet  int    `json:"tiersMet"`
	IsOrigin  bool   `json:"isOrigin"`
	FromBonus int    `json:"fromBonus,omitempty"` // part of Count contributed by bonus traits
}

// TeamResult is one accepted team with its derived statistics.
type TeamResult struct {
	Units        []Unit        `json:"units"`
	Score        int           `json:"score"`
	Size         int           `json:"size"`
	TankCount    int           `json:"tankCount"`
	CarryCount   int           `json:"carryCount"`
	TotalCost    int           `json:"totalCost"`
	ActiveTraits []ActiveTrait `json:"traits"`
}

// Names returns the unit names in team order.
func (r *TeamResult) Names() []string {
	out := make([]string, len(r.Units))
	for i := range r.Units {
		out[i] = r.Units[i].Name
	}
	return out
}

// Origins and Classes split the active traits, preserving order.
func (r *TeamResult) Origins() []ActiveTrait {
	var out []ActiveTrait
	for _, t := range r.ActiveTraits {
		if t.IsOrigin {
			out = append(out, t)
		}
	}
	return out
}

func (r *TeamResult) Classes() []ActiveTrait {
	var out []ActiveTrait
	for _, t := range r.ActiveTraits {
		if !t.IsOrigin {
			out = append(out, t)
		}
	}
	return out
}
