package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

// rootCmd defines the base command for the gitlet CLI.
// All subcommands (init, add, commit, etc.) register under this root.
var rootCmd = &cobra.Command{
	Use:   "gitlet",
	Short: "A small single-user version-control system",
	Long: `Gitlet snapshots the files of a directory as commits, keeps branches of
history and merges them back together with a three-way merge.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return apperr.ErrNoCommand
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(flagError)
}

// flagError turns an unknown flag into an operand error. Commands that
// need a repository report a missing one first, as exactArgs does.
func flagError(cmd *cobra.Command, err error) error {
	if cmd.HasParent() && cmd != initCmd && cmd != hashObjectCmd {
		if err := requireRepository(); err != nil {
			return err
		}
	}
	return apperr.ErrIncorrectOperands
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	os.Exit(execute(rootCmd, os.Args[1:]))
}

// execute runs root with args and returns the process exit status.
// Messages of user errors go to stdout and still exit 0; anything else is
// an internal failure reported on stderr.
func execute(root *cobra.Command, args []string) int {
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		err = apperr.ErrUnknownCommand
	}

	if msg, ok := apperr.Message(err); ok {
		fmt.Fprintln(root.OutOrStdout(), msg)
		return 0
	}
	fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	return 1
}

// exactArgs validates that the current directory is a repository and the
// command received exactly n operands.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireRepository(); err != nil {
			return err
		}
		if len(args) != n {
			return apperr.ErrIncorrectOperands
		}
		return nil
	}
}

func requireRepository() error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if !repository.IsRepository(dir) {
		return apperr.ErrNotInitialized
	}
	return nil
}

// withRepository opens the repository in the current directory for the
// duration of fn.
func withRepository(fn func(repo *repository.Repository) error) (err error) {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	repo, err := repository.Open(dir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := repo.Close(); err == nil {
			err = closeErr
		}
	}()

	return fn(repo)
}
