package cmd

import (
	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout (-- <file> | <commit> -- <file> | <branch>)",
	Short: "Restore a file or switch branches",
	Long: `checkout -- <file>            restore a file from the current commit
checkout <commit> -- <file>   restore a file from the given commit
checkout <branch>             replace the working directory with a branch`,
	// "--" is an operand here, so cobra must not consume it.
	DisableFlagParsing: true,
	Args:               checkoutArgs,
	RunE:               runCheckout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}

func checkoutArgs(cmd *cobra.Command, args []string) error {
	if err := requireRepository(); err != nil {
		return err
	}
	switch {
	case len(args) == 1:
	case len(args) == 2 && args[0] == "--":
	case len(args) == 3 && args[1] == "--":
	default:
		return apperr.ErrIncorrectOperands
	}
	return nil
}

func runCheckout(cmd *cobra.Command, args []string) error {
	return withRepository(func(repo *repository.Repository) error {
		switch len(args) {
		case 2:
			return repo.CheckoutFile(args[1])
		case 3:
			return repo.CheckoutFileAt(args[0], args[2])
		default:
			return repo.CheckoutBranch(args[0])
		}
	})
}
