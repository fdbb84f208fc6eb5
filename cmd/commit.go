package cmd

import (
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Record the staged changes",
	// The message is taken verbatim, even when it starts with a dash.
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			_, err := repo.Commit(args[0])
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}
