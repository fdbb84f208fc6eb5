package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object id (SHA-1 digest) for a file's content.
Optionally write the resulting blob into the repository's object store.

Examples:
  # Compute hash without storing
  gitlet hash-object myfile.txt

  # Compute hash and store in .gitlet/objects
  gitlet hash-object -w myfile.txt`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return apperr.ErrIncorrectOperands
		}
		return nil
	},
	RunE: runHashObject,
}

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolP("write", "w", false, "Write the object into the object store")
}

// runHashObject computes hash and optionally stores blob object.
func runHashObject(cmd *cobra.Command, args []string) error {
	blob, err := objects.NewBlobFromFile(args[0])
	if err != nil {
		return err
	}

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	if write {
		if err := requireRepository(); err != nil {
			return err
		}
		err := withRepository(func(repo *repository.Repository) error {
			_, err := repo.WriteBlob(blob.Content())
			return err
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), blob.Hash())
	return nil
}
