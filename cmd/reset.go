package cmd

import (
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <commit>",
	Short: "Move the current branch to a commit",
	Long: `Replace the working directory with the files of the given commit and move
the current branch to it. The commit id may be abbreviated.`,
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			return repo.Reset(args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
