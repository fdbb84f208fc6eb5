package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:                "find <message>",
	Short:              "Print the ids of commits with the given message",
	DisableFlagParsing: true,
	Args:               exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			ids, err := repo.Find(args[0])
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
