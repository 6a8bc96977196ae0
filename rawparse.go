package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// rawTraitRef is an entry of the "origins" / "classes" lists.
type rawTraitRef struct {
	name   string
	emblem bool
}

func parseUnit(v gjson.Result) Unit {
	u := Unit{
		Name:            v.Get("name").String(),
		Cost:            int(v.Get("cost").Int()),
		IsTank:          v.Get("isTank").Bool(),
		UnlockCondition: v.Get("unlockCondition").String(),
	}
	v.Get("traits").ForEach(func(_, t gjson.Result) bool {
		u.Traits = append(u.Traits, t.String())
		return true
	})
	return u
}

func parseUnits(dataJSON, path string) []Unit {
	var out []Unit
	gjson.Get(dataJSON, path).ForEach(func(_, v gjson.Result) bool {
		out = append(out, parseUnit(v))
		return true
	})
	return out
}

func parseTraitRefs(dataJSON, path string) map[string]rawTraitRef {
	m := make(map[string]rawTraitRef)
	gjson.Get(dataJSON, path).ForEach(func(_, v gjson.Result) bool {
		name := v.Get("name").String()
		if !v.IsObject() {
			name = v.String()
		}
		icon := v.Get("emblemIcon")
		// origins without an emblem carry "emblemIcon": null
		emblem := v.Get("emblem").Bool() || (icon.Exists() && icon.Type != gjson.Null && icon.String() != "")
		m[name] = rawTraitRef{name: name, emblem: emblem}
		return true
	})
	return m
}

func parseTraits(dataJSON string) []Trait {
	origins := parseTraitRefs(dataJSON, "origins")
	classes := parseTraitRefs(dataJSON, "classes")

	var out []Trait
	gjson.Get(dataJSON, "traits").ForEach(func(_, v gjson.Result) bool {
		t := Trait{Name: v.Get("name").String()}
		v.Get("breakpoints").ForEach(func(_, bp gjson.Result) bool {
			t.Breakpoints = append(t.Breakpoints, int(bp.Int()))
			return true
		})

		cat := v.Get("category")
		if !cat.Exists() {
			cat = v.Get("type")
		}
		t.Category = parseCategory(cat.String())
		if t.Category == CategoryNone {
			_, isOrigin := origins[t.Name]
			_, isClass := classes[t.Name]
			switch {
			case isOrigin:
				t.Category = CategoryOrigin
			case isClass:
				t.Category = CategoryClass
			default:
				// listed in neither: treated as a class
				t.Category = CategoryClass
			}
		}
		t.Emblem = v.Get("emblem").Bool() || origins[t.Name].emblem
		out = append(out, t)
		return true
	})
	return out
}

// ParseCatalog builds a catalog from the raw catalog JSON.
func ParseCatalog(dataJSON string) (*Catalog, error) {
	if !gjson.Valid(dataJSON) {
		return nil, errors.New("catalog is not valid JSON")
	}
	cat := &Catalog{
		Units:   parseUnits(dataJSON, "champions"),
		Reserve: parseUnits(dataJSON, "fourCostChampions"),
		Traits:  parseTraits(dataJSON),
	}
	if len(cat.Units) == 0 {
		cat.Units = parseUnits(dataJSON, "units")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	cat.index()
	return cat, nil
}

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	cat, err := ParseCatalog(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cat, nil
}
