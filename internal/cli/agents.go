package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/karantnn/GitCode/pkg/workflow"
)

func newAgentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the available analysis agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, agent := range workflow.Agents() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", color.CyanString(agent.ID), agent.Name, agent.Description)
			}
			return w.Flush()
		},
	}
}
