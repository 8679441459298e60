package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/southpaw/internal/combo"
	"github.com/abhisek/southpaw/internal/config"
	"github.com/abhisek/southpaw/internal/moves"
	"github.com/abhisek/southpaw/internal/ui/components"
	"github.com/abhisek/southpaw/internal/ui/theme"
)

var comboCmd = &cobra.Command{
	Use:   "combo",
	Short: "Call out combos built from your unlocked moves",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		diff, err := difficultyFlag(cmd, rt.cfg.Difficulty())
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			return fmt.Errorf("--count must be positive")
		}
		target, _ := cmd.Flags().GetString("target")
		if target != "" {
			if _, ok := moves.ByCode(target); !ok {
				return fmt.Errorf("unknown move %q: see `southpaw moves list`", target)
			}
		}
		all, _ := cmd.Flags().GetBool("all")

		var allowed []string
		if !all {
			allowed = rt.coach.UnlockedMoveCodes()
		}
		gen := newGenerator(cmd, rt.cfg)
		legend, _ := cmd.Flags().GetBool("legend")

		w := cmd.OutOrStdout()
		var prev *combo.Combo
		for i := 0; i < count; i++ {
			var c combo.Combo
			if target != "" {
				c = gen.GenerateWeighted(diff, target, allowed, prev)
			} else {
				c = gen.Generate(diff, prev, allowed)
			}
			fmt.Fprintf(w, "%2d. %s  %s\n", i+1, components.ComboLine(c, moves.Default(), target), theme.Hint.Render(c.Name))
			if legend {
				fmt.Fprintln(w, indent(components.MoveLegend(c, moves.Default()), "    "))
			}
			prev = &c
		}
		return nil
	},
}

// difficultyFlag returns --difficulty, or def when the flag is unset.
func difficultyFlag(cmd *cobra.Command, def combo.Difficulty) (combo.Difficulty, error) {
	if !cmd.Flags().Changed("difficulty") {
		return def, nil
	}
	s, _ := cmd.Flags().GetString("difficulty")
	return combo.ParseDifficulty(s)
}

// newGenerator seeds from --seed, then the configured seed, else randomly,
// and applies the configured weight range.
func newGenerator(cmd *cobra.Command, cfg *config.Config) *combo.RandomGenerator {
	opts := []combo.Option{combo.WithWeightRange(cfg.WeightRange())}
	seed := cfg.Combo.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetUint64("seed")
	}
	if seed != 0 {
		opts = append(opts, combo.WithSeed(seed))
	}
	return combo.New(opts...)
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

func init() {
	comboCmd.Flags().String("difficulty", "", "beginner, intermediate or advanced (default from config)")
	comboCmd.Flags().Int("count", 5, "Number of combos")
	comboCmd.Flags().String("target", "", "Move code every combo must include")
	comboCmd.Flags().Uint64("seed", 0, "PRNG seed for reproducible combos")
	comboCmd.Flags().Bool("all", false, "Use the whole catalog instead of unlocked moves")
	comboCmd.Flags().Bool("legend", false, "Name each move under its combo")
}
