// Package convert turns JSON analysis artifacts into Word documents, one per
// input or combined into a single report.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/karantnn/GitCode/internal/log"
	"github.com/karantnn/GitCode/pkg/record"
	"github.com/karantnn/GitCode/pkg/render"
	"github.com/karantnn/GitCode/pkg/renderers/docx"
)

// CombinedName is the artifact produced by combine-mode batches.
const CombinedName = "Combined_Analysis.docx"

// DefaultPattern selects batch inputs when no pattern is given.
const DefaultPattern = "*.json"

// Converter drives document rendering for single files and batches.
type Converter struct {
	renderer *docx.Renderer
	logger   *zap.SugaredLogger
	workers  int
}

// Option customises the converter.
type Option func(*Converter)

// WithRenderer injects a configured document renderer.
func WithRenderer(r *docx.Renderer) Option {
	return func(c *Converter) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithLogger injects the logger used for batch warnings.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWorkers bounds per-file parallelism in non-combine batches. Values
// below 1 keep the sequential default.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New constructs a Converter applying any provided options.
func New(options ...Option) *Converter {
	c := &Converter{
		renderer: docx.New(),
		logger:   log.NewNop(),
		workers:  1,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// One converts a single JSON artifact. An empty outputPath derives the target
// by replacing the input's extension with .docx. Returns the written path.
// Fails fast: missing input, malformed JSON, and write failures are all
// fatal here.
func (c *Converter) One(ctx context.Context, inputPath, outputPath string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &InputNotFoundError{Path: inputPath}
		}
		return "", fmt.Errorf("convert: read %s: %w", inputPath, err)
	}

	rec, err := record.Parse(data)
	if err != nil {
		var parseErr *record.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = inputPath
		}
		return "", err
	}

	if outputPath == "" {
		outputPath = replaceExt(inputPath, ".docx")
	}

	out, err := c.renderer.Render(ctx, rec, render.Options{SourceName: filepath.Base(inputPath)})
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return "", &OutputWriteError{Path: outputPath, Err: err}
	}
	return outputPath, nil
}

// BatchOptions describes one batch invocation.
type BatchOptions struct {
	InputDir  string
	Pattern   string // defaults to DefaultPattern
	OutputDir string // defaults to InputDir
	Combine   bool
	Title     string // combined-document title page override
}

// Batch converts every matching file in InputDir. Inputs are processed in
// filename-sorted order regardless of filesystem enumeration order. Files
// that fail to parse are skipped with a warning; the returned slice lists
// only artifacts that were actually produced. Combine mode yields exactly one
// artifact and no per-file documents.
func (c *Converter) Batch(ctx context.Context, opts BatchOptions) ([]string, error) {
	info, err := os.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return nil, &InputNotFoundError{Path: opts.InputDir}
	}

	pattern := opts.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	matches, err := filepath.Glob(filepath.Join(opts.InputDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("convert: bad pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = opts.InputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &OutputWriteError{Path: outputDir, Err: err}
	}

	if opts.Combine {
		return c.combine(ctx, matches, outputDir, opts.Title)
	}
	if len(matches) == 0 {
		c.logger.Warnf("no files matching %q in %s", pattern, opts.InputDir)
		return []string{}, nil
	}
	return c.individual(ctx, matches, outputDir)
}

func (c *Converter) individual(ctx context.Context, inputs []string, outputDir string) ([]string, error) {
	produced := make([]string, len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers)

	for i, input := range inputs {
		i, input := i, input
		group.Go(func() error {
			target := filepath.Join(outputDir, replaceExt(filepath.Base(input), ".docx"))
			path, err := c.One(groupCtx, input, target)
			if err != nil {
				// Parse failures skip the file; everything else aborts the
				// batch.
				var parseErr *record.ParseError
				if errors.As(err, &parseErr) {
					c.logger.Warnf("skipping %s: %v", filepath.Base(input), err)
					return nil
				}
				return err
			}
			produced[i] = path
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	// Results keep input order; drop the slots of skipped files.
	out := make([]string, 0, len(produced))
	for _, path := range produced {
		if path != "" {
			out = append(out, path)
		}
	}
	return out, nil
}

func (c *Converter) combine(ctx context.Context, inputs []string, outputDir, title string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := c.renderer.NewDocument()
	c.renderer.WriteTitlePage(doc, title)

	sections := 0
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			c.logger.Warnf("skipping %s: %v", filepath.Base(input), err)
			continue
		}
		rec, err := record.Parse(data)
		if err != nil {
			c.logger.Warnf("skipping %s: %v", filepath.Base(input), err)
			continue
		}

		c.renderer.WriteSection(doc, rec)
		c.renderer.AddPageBreak(doc)
		sections++
		c.logger.Debugf("added %s to combined document", filepath.Base(input))
	}

	outputPath := filepath.Join(outputDir, CombinedName)
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, &OutputWriteError{Path: outputPath, Err: err}
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return nil, &OutputWriteError{Path: outputPath, Err: err}
	}

	c.logger.Infof("combined document created with %d section(s): %s", sections, outputPath)
	return []string{outputPath}, nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
