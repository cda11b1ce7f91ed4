package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/karantnn/GitCode/pkg/record"
	"github.com/karantnn/GitCode/pkg/render"
	"github.com/karantnn/GitCode/pkg/renderers/list"
	"github.com/karantnn/GitCode/pkg/renderers/table"
	"github.com/karantnn/GitCode/pkg/renderers/tree"
)

func newFormatCommand(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "format <input.json>",
		Short: "Render a JSON analysis file as list, table, or tree text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := render.NewRegistry()
			registry.MustRegister(list.New())
			registry.MustRegister(table.New())
			registry.MustRegister(tree.New())

			renderer, err := registry.Get(format)
			if err != nil {
				return fmt.Errorf("unknown format %q (choose one of: list, table, tree)", format)
			}

			loader := record.NewLoader(nil)
			rec, err := loader.Load(cmd.Context(), record.SourceFromFile(args[0]))
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), rec, render.Options{})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Infof("wrote %s output to %s", format, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "list", "output layout: list, table, or tree")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
