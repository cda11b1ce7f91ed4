package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/karantnn/GitCode/pkg/convert"
	"github.com/karantnn/GitCode/pkg/workflow"
)

func newWorkflowCommand(a *app) *cobra.Command {
	var (
		agents      []string
		configPath  string
		outputDir   string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "workflow <ticker> [date]",
		Short: "Run agents, collect their JSON, and produce Word reports",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := workflow.DefaultConfig()
			if configPath != "" {
				loaded, err := workflow.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}
			if concurrency > 0 {
				cfg.Concurrency = concurrency
			}

			date := ""
			if len(args) == 2 {
				date = args[1]
			}

			orchestrator := workflow.New(
				workflow.WithConfig(cfg),
				workflow.WithLogger(a.logger),
				workflow.WithConverter(convert.New(convert.WithLogger(a.logger))),
			)

			summary, err := orchestrator.Run(cmd.Context(), args[0], date, agents)
			printSummary(cmd, summary)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s workflow completed successfully\n", color.GreenString("[+]"))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&agents, "agents", "a", nil, "agents to run (defaults to market, fundamentals, news)")
	cmd.Flags().StringVar(&configPath, "config", "", "workflow config file (YAML)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output root directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel agent invocations (default sequential)")
	return cmd
}

func printSummary(cmd *cobra.Command, s workflow.Summary) {
	out := cmd.OutOrStdout()

	row := func(label string, value any) {
		fmt.Fprintf(out, "| %-22s %-30v |\n", label+":", value)
	}

	fmt.Fprintln(out, "+- EXECUTION SUMMARY "+strings.Repeat("-", 35)+"+")
	row("Stock Symbol", s.Ticker)
	row("Analysis Date", s.Date)
	row("Agents Run", s.AgentsRequested)
	row("Agents Succeeded", s.AgentsSucceeded)
	row("JSON Files Found", s.JSONFound)
	row("Word Documents", s.Documents)
	row("Total Time", s.Elapsed.Round(100*time.Millisecond))
	fmt.Fprintln(out, "+"+strings.Repeat("-", 55)+"+")

	if len(s.FailedAgents) > 0 {
		fmt.Fprintf(out, "%s failed agents: %s\n", color.YellowString("[!]"), strings.Join(s.FailedAgents, ", "))
	}
	for _, artifact := range s.Artifacts {
		fmt.Fprintf(out, "  %s\n", artifact)
	}
}
