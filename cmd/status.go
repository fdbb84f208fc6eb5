package cmd

import (
	"fmt"

	"github.com/KostasZigo/gitlet/internal/repository"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show branches, staged files and working directory changes",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepository(func(repo *repository.Repository) error {
			status, err := repo.Status()
			if err != nil {
				return err
			}
			printStatus(cmd, status)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printStatus(cmd *cobra.Command, status *repository.Status) {
	out := cmd.OutOrStdout()

	branches := make([]string, 0, len(status.Branches))
	for _, name := range status.Branches {
		if name == status.CurrentBranch {
			name = currentColor.Sprint("*" + name)
		}
		branches = append(branches, name)
	}
	printSection(out, "Branches", branches, nil)

	printSection(out, "Staged Files", status.Staged, stagedColor)
	printSection(out, "Removed Files", status.Removed, stagedColor)

	modified := make([]string, 0, len(status.Modified))
	for _, change := range status.Modified {
		modified = append(modified, fmt.Sprintf("%s (%s)", change.Name, change.Kind))
	}
	printSection(out, "Modifications Not Staged For Commit", modified, unstagedColor)

	printSection(out, "Untracked Files", status.Untracked, unstagedColor)
}
