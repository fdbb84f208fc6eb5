package cmd

import (
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Unstage a file and stage its removal",
	Long: `Unstage a file and stage its removal. If the current commit tracks it,
the file is also deleted from the working directory.`,
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			return repo.Remove(args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
