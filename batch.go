package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Scenario is one named request of a batch file. A nil TankRatioTarget falls
// back to the config default.
type Scenario struct {
	Name            string   `yaml:"name"`
	Emblems         []string `yaml:"emblems"`
	OptIn           []string `yaml:"opt_in"`
	Blacklist       []string `yaml:"blacklist"`
	TankRatioTarget *float64 `yaml:"tank_ratio_target"`
}

type BatchFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// ScenarioResult holds the outcome of one scenario.
type ScenarioResult struct {
	Name    string
	Results []TeamResult
	Stats   SolveStats
}

func ParseBatch(b []byte) (*BatchFile, error) {
	var bf BatchFile
	if err := yaml.Unmarshal(b, &bf); err != nil {
		return nil, fmt.Errorf("parse batch: %w", err)
	}
	if len(bf.Scenarios) == 0 {
		return nil, errors.New("batch has no scenarios")
	}
	seen := make(map[string]bool, len(bf.Scenarios))
	for i := range bf.Scenarios {
		name := strings.TrimSpace(bf.Scenarios[i].Name)
		if name == "" {
			return nil, fmt.Errorf("scenarios[%d]: each scenario must have a non-empty name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("scenarios: duplicate name %q", name)
		}
		seen[name] = true
		bf.Scenarios[i].Name = name
	}
	return &bf, nil
}

func LoadBatch(path string) (*BatchFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch (%s): %w", path, err)
	}
	return ParseBatch(b)
}

func (sc Scenario) options(cfg Config) Options {
	opts := Options{TankRatioTarget: cfg.TankRatioTarget, Blacklist: sc.Blacklist}
	if sc.TankRatioTarget != nil {
		opts.TankRatioTarget = *sc.TankRatioTarget
	}
	return opts
}

// RunBatch validates every scenario, then solves them concurrently. Results
// are returned in scenario order.
func RunBatch(ctx context.Context, s *Solver, bf *BatchFile) ([]ScenarioResult, error) {
	for _, sc := range bf.Scenarios {
		if err := ValidateRequest(s.Catalog(), sc.Emblems, sc.OptIn); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
	}

	out := make([]ScenarioResult, len(bf.Scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range bf.Scenarios {
		g.Go(func() error {
			results, stats, err := s.SolveWithStats(gctx, sc.Emblems, sc.OptIn, sc.options(s.Config()))
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			out[i] = ScenarioResult{Name: sc.Name, Results: results, Stats: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
