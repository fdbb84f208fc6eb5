package cmd

import (
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var branchCmd = &cobra.Command{
	Use:                "branch <name>",
	Short:              "Create a branch at the current commit",
	Long:               `Create a branch pointing at the current commit. The active branch does not change.`,
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			return repo.CreateBranch(args[0])
		})
	},
}

var rmBranchCmd = &cobra.Command{
	Use:                "rm-branch <name>",
	Short:              "Delete a branch pointer",
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			return repo.RemoveBranch(args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(branchCmd)
	rootCmd.AddCommand(rmBranchCmd)
}
