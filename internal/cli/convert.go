package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/karantnn/GitCode/pkg/convert"
)

func newConvertCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <input.json>",
		Short: "Convert a single JSON analysis file to a Word document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			converter := convert.New(convert.WithLogger(a.logger))
			path, err := converter.One(cmd.Context(), args[0], output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s created: %s\n", color.GreenString("[+]"), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (defaults to the input name with .docx)")
	return cmd
}
