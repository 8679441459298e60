package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/moves"
	"github.com/abhisek/southpaw/internal/ui/theme"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Browse the curriculum",
}

var curriculumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List curriculum units in unlock order",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		cur := curriculum.Default()
		w := cmd.OutOrStdout()

		levels := cur.Levels()
		if level != 0 {
			if len(cur.ByLevel(level)) == 0 {
				return fmt.Errorf("unknown level %d", level)
			}
			levels = []int{level}
		}

		for _, l := range levels {
			fmt.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("Level %d: %s", l, cur.LevelName(l))))
			for _, u := range cur.ByLevel(l) {
				fmt.Fprintf(w, "  %3d  %-24s %s\n", u.ID, theme.Body.Render(u.Name),
					theme.Hint.Render(strings.Join(u.MoveCodes, ", ")))
			}
		}
		return nil
	},
}

var movesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Browse the move catalog",
}

var movesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List moves by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		w := cmd.OutOrStdout()

		cats := moves.AllCategories()
		if category != "" {
			c := moves.Category(strings.ToLower(category))
			if !c.Valid() {
				return fmt.Errorf("invalid category %q: must be punch, defense, footwork or deception", category)
			}
			cats = []moves.Category{c}
		}

		for _, c := range cats {
			fmt.Fprintln(w, theme.CategoryColor(c).Bold(true).Render(moves.CategoryDisplayName(c)))
			for _, m := range moves.ByCategory(c) {
				fmt.Fprintf(w, "  %-14s %s\n", theme.CategoryColor(c).Render(m.Code), theme.Body.Render(m.Name))
				if m.Description != "" {
					fmt.Fprintf(w, "  %-14s %s\n", "", theme.Hint.Render(m.Description))
				}
			}
		}
		return nil
	},
}

func init() {
	curriculumListCmd.Flags().Int("level", 0, "Only show this level")
	curriculumCmd.AddCommand(curriculumListCmd)

	movesListCmd.Flags().String("category", "", "Only show this category (punch, defense, footwork, deception)")
	movesCmd.AddCommand(movesListCmd)
}
