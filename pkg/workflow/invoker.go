package workflow

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// InvokeRequest identifies one agent run.
type InvokeRequest struct {
	Agent     string
	Ticker    string
	Date      string
	OutputDir string
}

// Invoker launches the external agent-execution command. Implementations
// must be safe for concurrent use; each request writes to its own output
// file, so no coordination beyond that is needed.
type Invoker interface {
	Invoke(ctx context.Context, req InvokeRequest) error
}

// AgentInvocationError reports a failed external command. The workflow
// records it and continues with the remaining agents.
type AgentInvocationError struct {
	Agent string
	Err   error
}

func (e *AgentInvocationError) Error() string {
	return fmt.Sprintf("workflow: agent %s: %v", e.Agent, e.Err)
}

func (e *AgentInvocationError) Unwrap() error {
	return e.Err
}

// execInvoker runs the configured command as a child process, expanding the
// placeholders {agent}, {ticker}, {date}, and {output} in each argument.
type execInvoker struct {
	command []string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func (inv *execInvoker) Invoke(ctx context.Context, req InvokeRequest) error {
	if len(inv.command) == 0 {
		return &AgentInvocationError{Agent: req.Agent, Err: fmt.Errorf("no agent command configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, inv.timeout)
	defer cancel()

	args := make([]string, len(inv.command))
	replacer := strings.NewReplacer(
		"{agent}", req.Agent,
		"{ticker}", req.Ticker,
		"{date}", req.Date,
		"{output}", req.OutputDir,
	)
	for i, arg := range inv.command {
		args[i] = replacer.Replace(arg)
	}

	inv.logger.Debugf("running agent command: %s", strings.Join(args, " "))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = os.Environ()
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, firstLine(msg))
		}
		return &AgentInvocationError{Agent: req.Agent, Err: err}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
