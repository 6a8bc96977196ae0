package main

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrNoCatalog is returned when a solver is built without a catalog.
var ErrNoCatalog = errors.New("no catalog loaded")

// Validate checks the structural rules of the catalog. Units referencing
// undefined traits are allowed; see UnknownTraits.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Units)+len(c.Reserve))
	checkUnit := func(list string, i int, u *Unit) {
		if u.Name == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: missing name", list, i))
			return
		}
		if seen[u.Name] {
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate unit %q", list, i, u.Name))
		}
		seen[u.Name] = true
		if u.Cost <= 0 {
			errs = append(errs, fmt.Errorf("unit %q: cost must be positive, got %d", u.Name, u.Cost))
		}
		if len(u.Traits) == 0 {
			errs = append(errs, fmt.Errorf("unit %q: no traits", u.Name))
		}
	}
	for i := range c.Units {
		checkUnit("champions", i, &c.Units[i])
	}
	for i := range c.Reserve {
		checkUnit("fourCostChampions", i, &c.Reserve[i])
	}

	traits := make(map[string]bool, len(c.Traits))
	for i := range c.Traits {
		t := &c.Traits[i]
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("traits[%d]: missing name", i))
			continue
		}
		if traits[t.Name] {
			errs = append(errs, fmt.Errorf("traits[%d]: duplicate trait %q", i, t.Name))
		}
		traits[t.Name] = true
		if len(t.Breakpoints) == 0 {
			errs = append(errs, fmt.Errorf("trait %q: no breakpoints", t.Name))
		}
		prev := 0
		for _, bp := range t.Breakpoints {
			if bp <= prev {
				errs = append(errs, fmt.Errorf("trait %q: breakpoints must be positive and strictly increasing, got %v", t.Name, t.Breakpoints))
				break
			}
			prev = bp
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) index() {
	c.traitByName = make(map[string]*Trait, len(c.Traits))
	for i := range c.Traits {
		c.traitByName[c.Traits[i].Name] = &c.Traits[i]
	}
}

// Trait returns the trait definition for name, or nil when it is not defined.
func (c *Catalog) Trait(name string) *Trait {
	if c.traitByName == nil {
		for i := range c.Traits {
			if c.Traits[i].Name == name {
				return &c.Traits[i]
			}
		}
		return nil
	}
	return c.traitByName[name]
}

func (c *Catalog) IsOrigin(name string) bool {
	t := c.Trait(name)
	return t != nil && t.Category == CategoryOrigin
}

// FindUnit looks a unit up in the regular pool, then in the reserve.
func (c *Catalog) FindUnit(name string) (*Unit, bool) {
	for i := range c.Units {
		if c.Units[i].Name == name {
			return &c.Units[i], true
		}
	}
	for i := range c.Reserve {
		if c.Reserve[i].Name == name {
			return &c.Reserve[i], true
		}
	}
	return nil, false
}

// UnknownTraits lists, in first-seen order, trait names used by units but
// not defined in the catalog. Such traits never activate.
func (c *Catalog) UnknownTraits() []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range [][]Unit{c.Units, c.Reserve} {
		for i := range list {
			for _, t := range list[i].Traits {
				if c.Trait(t) == nil && !seen[t] {
					seen[t] = true
					out = append(out, t)
				}
			}
		}
	}
	return out
}

// EmblemTraits returns the origins a bonus token can be chosen for, by name.
func (c *Catalog) EmblemTraits() []string {
	var out []string
	for i := range c.Traits {
		if c.Traits[i].Category == CategoryOrigin && c.Traits[i].Emblem {
			out = append(out, c.Traits[i].Name)
		}
	}
	slices.Sort(out)
	return out
}

// ReserveNames returns the opt-in units by name.
func (c *Catalog) ReserveNames() []string {
	out := make([]string, 0, len(c.Reserve))
	for i := range c.Reserve {
		out = append(out, c.Reserve[i].Name)
	}
	slices.Sort(out)
	return out
}

// Unlockables returns the regular units with an unlock condition and cost up
// to maxCost, sorted by cost then name.
func (c *Catalog) Unlockables(maxCost int) []Unit {
	var out []Unit
	for _, u := range c.Units {
		if u.UnlockCondition != "" && u.Cost <= maxCost {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b Unit) int {
		if n := cmp.Compare(a.Cost, b.Cost); n != 0 {
			return n
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// ValidateRequest reports caller errors in a solve request. Unknown
// blacklist names are harmless and not reported.
func ValidateRequest(c *Catalog, bonusTraits, optInPool []string) error {
	if c == nil {
		return ErrNoCatalog
	}
	var errs []error
	for _, name := range bonusTraits {
		t := c.Trait(name)
		switch {
		case t == nil:
			errs = append(errs, fmt.Errorf("unknown emblem trait %q", name))
		case t.Category != CategoryOrigin:
			errs = append(errs, fmt.Errorf("emblem trait %q is a %s, not an origin", name, t.Category))
		}
	}
	for _, name := range optInPool {
		if !slices.ContainsFunc(c.Reserve, func(u Unit) bool { return u.Name == name }) {
			errs = append(errs, fmt.Errorf("unknown opt-in unit %q", name))
		}
	}
	return errors.Join(errs...)
}
