package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/conwaylife/ofind/pkg/ca"
	"github.com/conwaylife/ofind/pkg/config"
	"github.com/conwaylife/ofind/pkg/result"
	"github.com/conwaylife/ofind/pkg/rule"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ofind",
		Short: "ofind — search for periodic oscillators in 2-state outer-totalistic rules",
	}

	rootCmd.AddCommand(newSearchCmd(), newRuleCmd(), newSimulateCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newSearchCmd() *cobra.Command {
	var (
		ruleStr     string
		period      int
		rotor       int
		leftStator  int
		rightStator int
		symmetryStr string
		allowRowSym bool
		zeroLotLine bool
		maxDeepen   int
		sparkLevel  int
		seedStr     string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for a periodic oscillator matching the given shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rule.Parse(ruleStr)
			if err != nil {
				return err
			}
			sym, err := parseSymmetry(symmetryStr)
			if err != nil {
				return err
			}

			cfg := config.Default()
			cfg.Rule = r
			cfg.Period = period
			cfg.RotorWidth = rotor
			cfg.LeftStator = leftStator
			cfg.RightStator = rightStator
			cfg.Symmetry = sym
			cfg.AllowRowSym = allowRowSym
			cfg.ZeroLotLine = zeroLotLine
			cfg.MaxDeepen = maxDeepen
			cfg.SparkLevel = sparkLevel

			if seedStr != "" {
				seed, err := parseSeedHistory(seedStr, cfg.Period, cfg.Width())
				if err != nil {
					return err
				}
				cfg.SeedRows = seed
			}

			if err := config.Validate(cfg); err != nil {
				return err
			}

			cmd.Printf("ofind: rule %s, period %d, width %d (rotor %d + stator %d/%d)\n",
				r, cfg.Period, cfg.Width(), rotor, leftStator, rightStator)

			outcome, err := ca.Run(cfg, func(s ca.Stats) {
				st := result.Status{
					Depth: s.Depth, Deepening: s.Deepening,
					QueueUsed: s.QueueUsed, QueueCap: s.QueueCap,
					ArenaUsed: s.ArenaUsed, ArenaCap: s.ArenaCap,
				}
				fmt.Fprintln(cmd.ErrOrStderr(), st.Line())
			})
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			if !outcome.Found {
				cmd.Println("No patterns found")
				if len(outcome.Deepest) > 0 {
					cmd.Print(ca.Print(outcome.Deepest, cfg))
				}
				return nil
			}
			if !ca.VerifyOscillator(cfg, outcome.History) {
				return fmt.Errorf("search: found candidate failed independent verification")
			}
			cmd.Printf("Found oscillator at depth %d:\n\n", outcome.Depth)
			cmd.Print(ca.PrintOutcome(outcome, cfg))
			return nil
		},
	}

	cmd.Flags().StringVar(&ruleStr, "rule", "B3/S23", "Outer-totalistic rule, e.g. B3/S23")
	cmd.Flags().IntVar(&period, "period", 2, "Oscillator period")
	cmd.Flags().IntVar(&rotor, "rotor", 4, "Rotor width in columns")
	cmd.Flags().IntVar(&leftStator, "left-stator", 0, "Left stator width in columns")
	cmd.Flags().IntVar(&rightStator, "right-stator", 0, "Right stator width in columns")
	cmd.Flags().StringVar(&symmetryStr, "symmetry", "none", "Row symmetry: none, odd, or even")
	cmd.Flags().BoolVar(&allowRowSym, "allow-row-sym", false, "Allow the search to close branches via row-time symmetry")
	cmd.Flags().BoolVar(&zeroLotLine, "zero-lot-line", false, "Force the first generation to carry no live cells off the lot line")
	cmd.Flags().IntVar(&maxDeepen, "max-deepen", 64, "Maximum iterative-deepening bound (0 = unlimited)")
	cmd.Flags().IntVar(&sparkLevel, "spark", 0, "Spark level: 0, 1, or 2 extra free columns at the rotor edges")
	cmd.Flags().StringVar(&seedStr, "seed", "", "Up to 2 ancestor generations, oldest first, each a semicolon-separated group of Period comma-separated rows")

	return cmd
}

// parseSeedHistory parses --seed into up to two ancestor generations,
// each exactly period rows, installed oldest-first as the root's
// history chain.
func parseSeedHistory(s string, period, width int) ([][]ca.Row, error) {
	var out [][]ca.Row
	for _, gen := range strings.Split(s, ";") {
		rows, err := parseRows(gen, width)
		if err != nil {
			return nil, err
		}
		if len(rows) != period {
			return nil, fmt.Errorf("seed: each generation needs exactly %d rows, got %d", period, len(rows))
		}
		out = append(out, rows)
	}
	if len(out) > 2 {
		return nil, fmt.Errorf("seed: at most 2 ancestor generations allowed")
	}
	return out, nil
}

func newRuleCmd() *cobra.Command {
	var ruleStr string
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Parse and describe a rule string",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rule.Parse(ruleStr)
			if err != nil {
				return err
			}
			fmt.Printf("rule: %s\n", r)
			fmt.Printf("births:    %v\n", r.BirthCounts())
			fmt.Printf("survivals: %v\n", r.SurvivalCounts())
			return nil
		},
	}
	cmd.Flags().StringVar(&ruleStr, "rule", "B3/S23", "Outer-totalistic rule, e.g. B3/S23")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	var ruleStr string
	var rows int
	var widthFlag int
	var seedStr string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a single row-window forward under a rule (debug aid)",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rule.Parse(ruleStr)
			if err != nil {
				return err
			}
			seedRows, err := parseRows(seedStr, widthFlag)
			if err != nil {
				return err
			}
			if len(seedRows) < 2 {
				return fmt.Errorf("simulate: need at least 2 seed rows (above, self)")
			}

			cur := seedRows
			for g := 0; g < rows; g++ {
				above, self := cur[len(cur)-2], cur[len(cur)-1]
				next := ca.Evolve3(above, self, 0, widthFlag, r)
				cur = append(cur, next)
			}
			for _, row := range cur {
				fmt.Println(renderRow(row, widthFlag))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ruleStr, "rule", "B3/S23", "Outer-totalistic rule, e.g. B3/S23")
	cmd.Flags().IntVar(&rows, "rows", 8, "Number of additional rows to generate")
	cmd.Flags().IntVar(&widthFlag, "width", 16, "Row width in columns")
	cmd.Flags().StringVar(&seedStr, "seed", "", "Comma-separated seed rows, each as a string of . and o")
	return cmd
}

func parseSymmetry(s string) (ca.Symmetry, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ca.SymNone, nil
	case "odd":
		return ca.SymOdd, nil
	case "even":
		return ca.SymEven, nil
	default:
		return 0, fmt.Errorf("unknown symmetry %q: use none, odd, or even", s)
	}
}

func parseRows(s string, width int) ([]ca.Row, error) {
	if s == "" {
		return nil, fmt.Errorf("--seed is required")
	}
	var out []ca.Row
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		var row ca.Row
		for i, c := range part {
			if i >= width {
				break
			}
			if c == 'o' || c == 'O' || c == '1' {
				row |= 1 << uint(i)
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func renderRow(r ca.Row, w int) string {
	var b strings.Builder
	for i := 0; i < w; i++ {
		if r&(1<<uint(i)) != 0 {
			b.WriteByte('o')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
