package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current branch",
	Long: `Merge the given branch into the current one with a three-way merge against
their split point. Files changed differently on both sides are written with
conflict markers and committed as they are.`,
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			result, err := repo.Merge(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.FastForward {
				fmt.Fprintln(out, "Current branch fast-forwarded.")
			}
			if result.Conflict {
				fmt.Fprintln(out, unstagedColor.Sprint("Encountered a merge conflict."))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}
