// Package cli wires the agentreport command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karantnn/GitCode/internal/log"
)

type app struct {
	verbose bool
	logger  *zap.SugaredLogger
}

// NewRootCommand builds the agentreport CLI.
func NewRootCommand() *cobra.Command {
	a := &app{logger: log.NewNop()}

	root := &cobra.Command{
		Use:           "agentreport",
		Short:         "Convert agent analysis JSON into Word documents and text reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Project .env files carry API keys for the external pipeline;
			// missing files are fine.
			_ = godotenv.Load()
			a.logger = log.New(a.verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug output")

	root.AddCommand(
		newConvertCommand(a),
		newBatchCommand(a),
		newFormatCommand(a),
		newWorkflowCommand(a),
		newAgentsCommand(),
	)
	return root
}
