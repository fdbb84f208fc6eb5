package cmd

import (
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the history of the current branch",
	Long:  `Show the current commit and its first-parent ancestors, newest first.`,
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			history, err := repo.Log()
			if err != nil {
				return err
			}
			for _, commit := range history {
				printCommit(cmd.OutOrStdout(), commit)
			}
			return nil
		})
	},
}

var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Show every commit ever made",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			commits, err := repo.GlobalLog()
			if err != nil {
				return err
			}
			for _, commit := range commits {
				printCommit(cmd.OutOrStdout(), commit)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(globalLogCmd)
}
