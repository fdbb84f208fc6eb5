package cmd

import (
	"fmt"
	"io"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/utils"
	"github.com/fatih/color"
)

// Colors are dropped automatically when stdout is not a terminal.
var (
	headerColor   = color.New(color.Bold)
	commitColor   = color.New(color.FgYellow)
	currentColor  = color.New(color.FgGreen, color.Bold)
	stagedColor   = color.New(color.FgGreen)
	unstagedColor = color.New(color.FgRed)
)

// printCommit writes one log entry followed by a blank line.
func printCommit(w io.Writer, commit *objects.Commit) {
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, commitColor.Sprintf("commit %s", commit.Hash()))
	if commit.IsMerge() {
		fmt.Fprintf(w, "Merge: %s %s\n",
			utils.ShortHash(commit.ParentHash()),
			utils.ShortHash(commit.MergeParentHash()))
	}
	fmt.Fprintf(w, "Date: %s\n", commit.Timestamp().Local().Format(constants.LogDateFormat))
	fmt.Fprintln(w, commit.Message())
	fmt.Fprintln(w)
}

// printSection writes a status section: header, entries, blank line.
func printSection(w io.Writer, title string, entries []string, paint *color.Color) {
	fmt.Fprintln(w, headerColor.Sprintf("=== %s ===", title))
	for _, entry := range entries {
		if paint != nil {
			entry = paint.Sprint(entry)
		}
		fmt.Fprintln(w, entry)
	}
	fmt.Fprintln(w)
}
