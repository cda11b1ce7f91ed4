// Package workflow sequences the complete analysis run: external agent
// invocations, JSON discovery, and document conversion.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/karantnn/GitCode/internal/log"
	"github.com/karantnn/GitCode/pkg/convert"
)

// Orchestrator coordinates the run-agents → discover-JSON → convert pipeline.
// Missing dependencies are initialised with built-in implementations so
// callers can start with a single constructor call.
type Orchestrator struct {
	cfg       Config
	invoker   Invoker
	converter *convert.Converter
	logger    *zap.SugaredLogger
	now       func() time.Time
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *Orchestrator) {
		o.cfg = cfg
	}
}

// WithInvoker injects a custom agent invoker. Tests use this to fake the
// external pipeline.
func WithInvoker(inv Invoker) Option {
	return func(o *Orchestrator) {
		if inv != nil {
			o.invoker = inv
		}
	}
}

// WithConverter injects a configured document converter.
func WithConverter(c *convert.Converter) Option {
	return func(o *Orchestrator) {
		if c != nil {
			o.converter = c
		}
	}
}

// WithLogger injects the progress logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock injects the time source used for elapsed-time reporting and the
// default analysis date.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:    DefaultConfig(),
		logger: log.NewNop(),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.cfg.Concurrency < 1 {
		o.cfg.Concurrency = 1
	}
	if o.invoker == nil {
		o.invoker = &execInvoker{
			command: o.cfg.Command,
			timeout: o.cfg.Timeout,
			logger:  o.logger,
		}
	}
	if o.converter == nil {
		o.converter = convert.New(convert.WithLogger(o.logger))
	}
	return o
}

// Summary reports what a workflow run accomplished.
type Summary struct {
	Ticker          string
	Date            string
	AgentsRequested int
	AgentsSucceeded int
	FailedAgents    []string
	JSONFound       int
	Documents       int
	Artifacts       []string
	Elapsed         time.Duration
}

// Run executes the complete workflow for one ticker/date. Individual agent
// failures are recorded and do not abort the remaining agents; the returned
// error is non-nil only when zero agents succeed or the conversion step
// itself fails.
func (o *Orchestrator) Run(ctx context.Context, ticker, date string, agents []string) (Summary, error) {
	start := o.now()
	summary := Summary{}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return summary, fmt.Errorf("workflow: ticker is required")
	}

	if date == "" {
		date = o.now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return summary, fmt.Errorf("workflow: invalid date %q, use YYYY-MM-DD", date)
	}

	if len(agents) == 0 {
		agents = o.cfg.Agents
	}
	if len(agents) == 0 {
		agents = DefaultAgents()
	}
	var unknown []string
	for _, id := range agents {
		if _, ok := Lookup(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return summary, fmt.Errorf("workflow: unknown agents: %s", strings.Join(unknown, ", "))
	}

	summary.Ticker = ticker
	summary.Date = date
	summary.AgentsRequested = len(agents)

	resultsDir := filepath.Join(o.cfg.OutputDir, ticker, date)
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return summary, fmt.Errorf("workflow: create results dir: %w", err)
	}

	summary.FailedAgents = o.invokeAgents(ctx, agents, ticker, date)
	summary.AgentsSucceeded = len(agents) - len(summary.FailedAgents)
	if len(summary.FailedAgents) > 0 {
		o.logger.Warnf("%d agent(s) failed: %s", len(summary.FailedAgents), strings.Join(summary.FailedAgents, ", "))
	}

	jsonFiles, err := filepath.Glob(filepath.Join(resultsDir, "*.json"))
	if err != nil {
		return summary, fmt.Errorf("workflow: scan results dir: %w", err)
	}
	sort.Strings(jsonFiles)
	summary.JSONFound = len(jsonFiles)
	o.logger.Infof("found %d JSON file(s) in %s", len(jsonFiles), resultsDir)

	reportsDir := filepath.Join(resultsDir, "reports")

	individual, err := o.converter.Batch(ctx, convert.BatchOptions{
		InputDir:  resultsDir,
		OutputDir: reportsDir,
	})
	if err != nil {
		return summary, err
	}

	combined, err := o.converter.Batch(ctx, convert.BatchOptions{
		InputDir:  resultsDir,
		OutputDir: reportsDir,
		Combine:   true,
		Title:     fmt.Sprintf("%s Analysis - %s", ticker, date),
	})
	if err != nil {
		return summary, err
	}

	summary.Artifacts = append(summary.Artifacts, individual...)
	summary.Artifacts = append(summary.Artifacts, combined...)
	summary.Documents = len(summary.Artifacts)
	summary.Elapsed = o.now().Sub(start)

	if summary.AgentsSucceeded == 0 {
		return summary, fmt.Errorf("workflow: all %d agent(s) failed", summary.AgentsRequested)
	}
	return summary, nil
}

// invokeAgents runs every agent, bounded by the configured concurrency, and
// returns the ids that failed. Agents never abort each other: each failure is
// recorded and the rest continue.
func (o *Orchestrator) invokeAgents(ctx context.Context, agents []string, ticker, date string) []string {
	var (
		mu     sync.Mutex
		failed []string
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(o.cfg.Concurrency)

	for _, id := range agents {
		id := id
		info, _ := Lookup(id)
		group.Go(func() error {
			o.logger.Infof("running %s...", info.Name)
			err := o.invoker.Invoke(groupCtx, InvokeRequest{
				Agent:     id,
				Ticker:    ticker,
				Date:      date,
				OutputDir: o.cfg.OutputDir,
			})
			if err != nil {
				o.logger.Warnf("%s failed: %v", info.Name, err)
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
				return nil
			}
			o.logger.Infof("%s completed", info.Name)
			return nil
		})
	}
	// Goroutines report failures through the shared slice, never as errors.
	_ = group.Wait()

	sort.Strings(failed)
	return failed
}
