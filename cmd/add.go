package cmd

import (
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Stage a file for the next commit",
	Long: `Stage the current contents of a file. Staging a file whose contents equal
the current commit's version removes it from the staging area instead.`,
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			return repo.Add(args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
