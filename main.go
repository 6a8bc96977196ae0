//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SolveOutput is the JSON form of a solve run.
type SolveOutput struct {
	RunID     string       `json:"runId"`
	Total     int          `json:"total"`
	Shown     int          `json:"shown"`
	Capped    bool         `json:"capped"`
	ElapsedMs int64        `json:"elapsedMs"`
	Teams     []TeamResult `json:"teams"`
}

type cliState struct {
	verbose    bool
	configPath string
	logger     *zap.Logger
	cfg        Config
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// loadSolver reads the catalog and builds a solver with the loaded config.
func (st *cliState) loadSolver(path string) (*Solver, error) {
	cat, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	if unknown := cat.UnknownTraits(); len(unknown) > 0 {
		st.logger.Warn("units reference undefined traits; they will never activate", zap.Strings("traits", unknown))
	}
	return NewSolver(cat, st.cfg, st.logger)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	st := &cliState{}
	root := &cobra.Command{
		Use:   "runes-solver",
		Short: "Find teams that activate several origin traits at once",
		Long: `runes-solver enumerates teams from a unit catalog, keeps those that activate
enough origin traits (one anchor unit is appended last to every team) and
ranks them by size, score and cost.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			st.logger, err = newLogger(st.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			st.cfg, err = LoadConfig(st.configPath)
			if err != nil {
				return ExitWithError(2, err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.logger != nil {
				_ = st.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&st.verbose, "verbose", "v", false, "Log search progress to stderr")
	root.PersistentFlags().StringVar(&st.configPath, "config", "", "YAML file overriding the search parameters")

	root.AddCommand(newSolveCmd(st), newBatchCmd(st), newCatalogCmd(st))
	return root
}

func newSolveCmd(st *cliState) *cobra.Command {
	var (
		emblems, optIn, blacklist []string
		tank                      float64
		limit                     int
		jsonOut                   bool
		xlsxPath                  string
		timeout                   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "solve <catalog.json>",
		Short: "Solve one request and print the ranked teams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := st.loadSolver(args[0])
			if err != nil {
				return err
			}
			if err := ValidateRequest(s.Catalog(), emblems, optIn); err != nil {
				return ExitWithError(2, err)
			}
			opts := Options{TankRatioTarget: st.cfg.TankRatioTarget, Blacklist: blacklist}
			if cmd.Flags().Changed("tank") {
				opts.TankRatioTarget = tank
			}
			if !cmd.Flags().Changed("limit") {
				limit = st.cfg.DisplayLimit
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			results, stats, err := s.SolveWithStats(ctx, emblems, optIn, opts)
			if err != nil {
				st.logger.Warn("search stopped early; results are partial", zap.Error(err))
			}

			if xlsxPath != "" {
				if err := ExportResultsXLSX(xlsxPath, results, limit); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			if jsonOut {
				shown := results
				if limit > 0 && len(shown) > limit {
					shown = shown[:limit]
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(SolveOutput{
					RunID:     uuid.New().String(),
					Total:     len(results),
					Shown:     len(shown),
					Capped:    stats.Capped,
					ElapsedMs: stats.Elapsed.Milliseconds(),
					Teams:     shown,
				})
			}
			_, err = io.WriteString(out, FormatResults(results, limit))
			return err
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&emblems, "emblem", "e", nil, "Emblem (bonus origin trait); repeat for several")
	f.StringArrayVar(&optIn, "opt-in", nil, "Reserve unit already owned; repeat for several")
	f.StringArrayVarP(&blacklist, "blacklist", "b", nil, "Unit to exclude; repeat for several")
	f.Float64Var(&tank, "tank", 0, "Target tank percentage (default from config)")
	f.IntVar(&limit, "limit", 0, "Number of teams to show, 0 for all (default from config)")
	f.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	f.StringVar(&xlsxPath, "xlsx", "", "Also export the shown teams to this .xlsx file")
	f.DurationVar(&timeout, "timeout", 0, "Stop searching after this long and keep partial results")
	return cmd
}

func newBatchCmd(st *cliState) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "batch <catalog.json> <scenarios.yaml>",
		Short: "Solve every scenario of a YAML file concurrently",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := st.loadSolver(args[0])
			if err != nil {
				return err
			}
			bf, err := LoadBatch(args[1])
			if err != nil {
				return ExitWithError(2, err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			runs, err := RunBatch(ctx, s, bf)
			if err != nil {
				return ExitWithError(2, err)
			}

			out := cmd.OutOrStdout()
			limit := st.cfg.DisplayLimit
			if jsonOut {
				outputs := make(map[string]SolveOutput, len(runs))
				for _, r := range runs {
					shown := r.Results
					if limit > 0 && len(shown) > limit {
						shown = shown[:limit]
					}
					outputs[r.Name] = SolveOutput{
						RunID:     uuid.New().String(),
						Total:     len(r.Results),
						Shown:     len(shown),
						Capped:    r.Stats.Capped,
						ElapsedMs: r.Stats.Elapsed.Milliseconds(),
						Teams:     shown,
					}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(outputs)
			}
			for i, r := range runs {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s\n%s\n", headerStyle.Render("== "+r.Name), strings.Repeat("-", len(r.Name)+3))
				fmt.Fprint(out, FormatResults(r.Results, limit))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output results as JSON keyed by scenario name")
	return cmd
}

func newCatalogCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <catalog.json>",
		Short: "List the emblems, opt-in units and unlockable units of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := LoadCatalog(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", headerStyle.Render("Emblems:"), strings.Join(cat.EmblemTraits(), ", "))
			fmt.Fprintf(out, "%s %s\n", headerStyle.Render("Opt-in units:"), strings.Join(cat.ReserveNames(), ", "))
			fmt.Fprintln(out, headerStyle.Render("Unlockable units:"))
			for _, u := range cat.Unlockables(3) {
				fmt.Fprintf(out, "  %s (%d): %s\n", u.Name, u.Cost, u.UnlockCondition)
			}
			if unknown := cat.UnknownTraits(); len(unknown) > 0 {
				fmt.Fprintf(out, "%s %s\n", headerStyle.Render("Undefined traits:"), strings.Join(unknown, ", "))
			}
			return nil
		},
	}
}

func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
