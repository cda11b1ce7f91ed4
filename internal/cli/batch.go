package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/karantnn/GitCode/pkg/convert"
)

func newBatchCommand(a *app) *cobra.Command {
	var (
		pattern   string
		outputDir string
		combine   bool
		workers   int
	)

	cmd := &cobra.Command{
		Use:   "batch <input-dir>",
		Short: "Convert every matching JSON file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			converter := convert.New(
				convert.WithLogger(a.logger),
				convert.WithWorkers(workers),
			)
			created, err := converter.Batch(cmd.Context(), convert.BatchOptions{
				InputDir:  args[0],
				Pattern:   pattern,
				OutputDir: outputDir,
				Combine:   combine,
			})
			if err != nil {
				return err
			}

			for _, path := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s created: %s\n", color.GreenString("[+]"), path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d document(s)\n", len(created))
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", convert.DefaultPattern, "file pattern to match")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (defaults to the input directory)")
	cmd.Flags().BoolVarP(&combine, "combine", "c", false, "combine all analyses into a single document")
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel conversions (non-combine mode)")
	return cmd
}
