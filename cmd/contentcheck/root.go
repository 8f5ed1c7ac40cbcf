package main

import (
	"fmt"
	"io"
	"os"

	"github.com/quicksay/quicksay-web/internal/content"
	"github.com/spf13/cobra"
)

var exit = os.Exit

// newRootCmd builds the contentcheck command. With no arguments every
// collection is checked.
func newRootCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "contentcheck [collection...]",
		Short: "Validate site content frontmatter against the collection schemas",
		Run: func(cmd *cobra.Command, args []string) {
			failures, err := check(cmd.OutOrStdout(), cmd.ErrOrStderr(), root, args)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "contentcheck: %v\n", err)
				exit(2)
				return
			}
			if failures > 0 {
				exit(1)
			}
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "Site root containing src/content")
	return cmd
}

// check validates the named collections under root and reports how many
// collections had at least one invalid document.
func check(stdout, stderr io.Writer, root string, names []string) (int, error) {
	var cols []*content.Collection
	if len(names) == 0 {
		all, err := content.Collections()
		if err != nil {
			return 0, err
		}
		cols = all
	}
	for _, name := range names {
		c, err := content.Lookup(name)
		if err != nil {
			return 0, err
		}
		cols = append(cols, c)
	}

	failures := 0
	for _, c := range cols {
		entries, err := content.LoadDir(root, c)
		if err != nil {
			failures++
			fmt.Fprintf(stderr, "%s: %v\n", c.Name, err)
			continue
		}
		fmt.Fprintf(stdout, "%s: %d entries OK\n", c.Name, len(entries))
	}
	return failures, nil
}
