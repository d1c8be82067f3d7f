package cmd

import (
	"fmt"

	"folio/app/content"

	"github.com/spf13/cobra"
)

func newContentCommand(opts *options) *cobra.Command {
	contentCmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect the bundled posts and authors",
	}

	var strict bool
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load the catalog and report dangling references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := content.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d posts, %d authors\n", len(catalog.Posts), len(catalog.Authors))

			warnings := catalog.Check()
			for _, w := range warnings {
				fmt.Fprintln(out, "warning:", w)
			}
			if strict && len(warnings) > 0 {
				return fmt.Errorf("%d content warnings", len(warnings))
			}
			return nil
		},
	}
	checkCmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when warnings are found")

	contentCmd.AddCommand(checkCmd)
	return contentCmd
}
