// Package gitcli wires the gitops command tree.
package gitcli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karantnn/GitCode/internal/gitops"
	"github.com/karantnn/GitCode/internal/log"
)

type app struct {
	verbose bool
	logger  *zap.SugaredLogger
}

func (a *app) client() *gitops.Client {
	return gitops.NewClient(a.logger)
}

// NewRootCommand builds the gitops CLI.
func NewRootCommand() *cobra.Command {
	a := &app{logger: log.NewNop()}

	root := &cobra.Command{
		Use:           "gitops",
		Short:         "Routine git repository automation: clone, push, init, sync, delete",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = log.New(a.verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug output")

	root.AddCommand(
		newCloneCommand(a),
		newPushCommand(a),
		newInitCommand(a),
		newSyncCommand(a),
		newDeleteCommand(a),
	)
	return root
}

func newCloneCommand(a *app) *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "clone <url> [destination]",
		Short: "Clone a repository, or pull the latest changes if it already exists",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := ""
			if len(args) == 2 {
				dest = args[1]
			}
			return a.client().CloneOrUpdate(cmd.Context(), args[0], dest, branch)
		},
	}

	cmd.Flags().StringVarP(&branch, "branch", "b", "", "branch to clone")
	return cmd
}

func newPushCommand(a *app) *cobra.Command {
	var (
		filename  string
		sourceDir string
		repoPath  string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Commit and push a single file to a repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client().PushFile(cmd.Context(), filename, sourceDir, repoPath)
		},
	}

	cmd.Flags().StringVar(&filename, "filename", "", "name of the file to commit")
	cmd.Flags().StringVar(&sourceDir, "source-dir", ".", "directory containing the file")
	cmd.Flags().StringVar(&repoPath, "repo", "", "path to the git repository")
	_ = cmd.MarkFlagRequired("filename")
	_ = cmd.MarkFlagRequired("repo")
	return cmd
}

func newInitCommand(a *app) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "init <directory>",
		Short: "Create a new repository, optionally wiring an origin remote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client().Init(cmd.Context(), args[0], remote)
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "origin remote URL")
	return cmd
}

func newSyncCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <repository>",
		Short: "Fetch, pull, and push to bring a repository up to date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.client().Sync(cmd.Context(), args[0])
		},
	}
}

func newDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <repository>",
		Short: "Remove a local clone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				confirmed := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Delete repository %s?", args[0]),
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s aborted\n", color.YellowString("[!]"))
					return nil
				}
			}
			return a.client().Delete(args[0])
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
