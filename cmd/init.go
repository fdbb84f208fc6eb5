package cmd

import (
	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new gitlet repository",
	Long: `The 'init' command sets up a new gitlet repository in the current directory.
It creates a .gitlet directory holding the initial commit and the main branch.
If a repository already exists, the command will not overwrite existing data.`,
	Args: noArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// noArgs rejects operands; init is the one command that runs outside a
// repository.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return apperr.ErrIncorrectOperands
	}
	return nil
}

// runInit initializes a repository in the current directory.
func runInit(cmd *cobra.Command, args []string) error {
	return repository.Init(".")
}
