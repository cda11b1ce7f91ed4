// Package gitops automates routine git repository maintenance: clone or
// update, single-file push, init, sync, and local removal. Git plumbing
// itself stays external; everything here shells out to the git binary.
package gitops

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/karantnn/GitCode/internal/log"
)

// Client runs git commands against local repositories.
type Client struct {
	logger *zap.SugaredLogger
}

// NewClient constructs a Client. A nil logger disables output.
func NewClient(logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Client{logger: logger}
}

// Available reports whether the git binary can be found.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// DeriveDestination extracts the repository directory name from a clone URL.
func DeriveDestination(url string) string {
	name := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// CloneOrUpdate clones url into dest, or pulls the latest changes when dest
// already holds a clone. An empty dest derives the directory name from the
// URL. A non-empty branch selects what to clone.
func (c *Client) CloneOrUpdate(ctx context.Context, url, dest, branch string) error {
	if !Available() {
		return fmt.Errorf("gitops: git command is not available, you have to install it first")
	}
	if dest == "" {
		dest = DeriveDestination(url)
	}
	dest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("gitops: resolve destination: %w", err)
	}

	if _, err := os.Stat(dest); err == nil {
		if !isRepository(dest) {
			return fmt.Errorf("gitops: directory exists but is not a git repository: %s", dest)
		}
		c.logger.Infof("repository already exists at %s, pulling latest changes", dest)
		if _, err := c.runRetry(ctx, dest, "fetch", "--all"); err != nil {
			return err
		}
		if _, err := c.runRetry(ctx, dest, "pull"); err != nil {
			return err
		}
		c.logger.Info("repository updated")
		return nil
	}

	c.logger.Infof("cloning %s into %s", url, dest)
	args := []string{"clone"}
	if branch != "" {
		args = append(args, "-b", branch)
	}
	args = append(args, "--", url, dest)
	if _, err := c.runRetry(ctx, "", args...); err != nil {
		return err
	}
	c.logger.Info("repository cloned")
	return nil
}

// PushFile commits and pushes a single file. When sourceDir differs from the
// repository, the file is copied in first.
func (c *Client) PushFile(ctx context.Context, filename, sourceDir, repoPath string) error {
	source := filepath.Join(sourceDir, filename)
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("gitops: file does not exist: %s", source)
	}
	if !isRepository(repoPath) {
		return fmt.Errorf("gitops: not a git repository: %s", repoPath)
	}

	absSource, _ := filepath.Abs(sourceDir)
	absRepo, _ := filepath.Abs(repoPath)
	if absSource != absRepo {
		if err := copyFile(source, filepath.Join(repoPath, filename)); err != nil {
			return fmt.Errorf("gitops: copy into repository: %w", err)
		}
	}

	if _, err := c.run(ctx, repoPath, "add", "--", filename); err != nil {
		return err
	}
	if _, err := c.run(ctx, repoPath, "commit", "-m", "Update "+filename); err != nil {
		return err
	}
	if _, err := c.runRetry(ctx, repoPath, "push"); err != nil {
		return err
	}

	c.logger.Infof("pushed %s", filename)
	return nil
}

// Init creates a new repository in dir, optionally wiring an origin remote.
func (c *Client) Init(ctx context.Context, dir, remote string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gitops: create directory: %w", err)
	}
	if _, err := c.run(ctx, "", "init", "--", dir); err != nil {
		return err
	}
	if remote != "" {
		if _, err := c.run(ctx, dir, "remote", "add", "origin", remote); err != nil {
			return err
		}
	}
	c.logger.Infof("initialized repository at %s", dir)
	return nil
}

// Sync brings a repository up to date with its remote: fetch, pull, then
// push local commits.
func (c *Client) Sync(ctx context.Context, repoPath string) error {
	if !isRepository(repoPath) {
		return fmt.Errorf("gitops: not a git repository: %s", repoPath)
	}
	if _, err := c.runRetry(ctx, repoPath, "fetch", "origin"); err != nil {
		return err
	}
	if _, err := c.runRetry(ctx, repoPath, "pull"); err != nil {
		return err
	}
	if _, err := c.runRetry(ctx, repoPath, "push"); err != nil {
		return err
	}
	c.logger.Infof("synchronized %s", repoPath)
	return nil
}

// Delete removes a local clone. The caller is responsible for confirming the
// operation; Delete refuses paths that are not git repositories.
func (c *Client) Delete(repoPath string) error {
	if !isRepository(repoPath) {
		return fmt.Errorf("gitops: refusing to delete, not a git repository: %s", repoPath)
	}
	if err := os.RemoveAll(repoPath); err != nil {
		return fmt.Errorf("gitops: delete repository: %w", err)
	}
	c.logger.Infof("deleted %s", repoPath)
	return nil
}

type cmdResult struct {
	exitCode int
	stdOut   string
	stdErr   string
}

// runRetry repeats transient failures (network hiccups on clone/fetch/pull/
// push) with exponential backoff.
func (c *Client) runRetry(ctx context.Context, dir string, args ...string) (cmdResult, error) {
	retry := newBackoff()
	for {
		result, err := c.run(ctx, dir, args...)
		if err == nil {
			return result, nil
		}
		delay := retry.NextBackOff()
		if delay == backoff.Stop || ctx.Err() != nil {
			return result, err
		}
		time.Sleep(delay)
	}
}

func (c *Client) run(ctx context.Context, dir string, args ...string) (cmdResult, error) {
	c.logger.Debugf("running git command: git %s", strings.Join(args, " "))

	var stdOut, stdErr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdOut
	cmd.Stderr = &stdErr
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	err := cmd.Run()
	result := cmdResult{
		stdOut: stdOut.String(),
		stdErr: stdErr.String(),
	}
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			result.exitCode = exitError.ExitCode()
		}
		msg := strings.TrimSpace(result.stdErr)
		if msg == "" {
			msg = err.Error()
		}
		return result, fmt.Errorf("gitops: git %s: %s", args[0], msg)
	}
	return result, nil
}

func newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.Multiplier = 2
	b.MaxInterval = 3 * time.Second
	b.MaxElapsedTime = 15 * time.Second
	b.Reset()
	return b
}

func isRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
