package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDestination(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/reports.git", "reports"},
		{"https://github.com/acme/reports", "reports"},
		{"https://github.com/acme/reports/", "reports"},
		{"git@github.com:acme/reports.git", "reports"},
		{"reports", "reports"},
	}
	for _, tc := range tests {
		if got := DeriveDestination(tc.url); got != tc.want {
			t.Fatalf("DeriveDestination(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func skipWithoutGit(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("git binary not available")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

// newSourceRepo creates a local repository with one commit to clone from.
func newSourceRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.name", "test")
	runGit(t, dir, "config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("readme\n"), 0o644))
	runGit(t, dir, "add", "README.md")
	runGit(t, dir, "commit", "-m", "initial commit")
	return dir
}

func TestInitCreatesRepository(t *testing.T) {
	skipWithoutGit(t)

	dir := filepath.Join(t.TempDir(), "fresh")
	client := NewClient(nil)
	require.NoError(t, client.Init(context.Background(), dir, ""))
	assert.True(t, isRepository(dir))
}

func TestCloneOrUpdate(t *testing.T) {
	skipWithoutGit(t)

	source := newSourceRepo(t)
	dest := filepath.Join(t.TempDir(), "clone")
	client := NewClient(nil)

	require.NoError(t, client.CloneOrUpdate(context.Background(), source, dest, ""))
	assert.FileExists(t, filepath.Join(dest, "README.md"))

	// Second call takes the fetch-and-pull path.
	require.NoError(t, client.CloneOrUpdate(context.Background(), source, dest, ""))
}

func TestCloneOrUpdateRejectsNonRepoDirectory(t *testing.T) {
	skipWithoutGit(t)

	dest := t.TempDir()
	err := NewClient(nil).CloneOrUpdate(context.Background(), "https://example.com/repo.git", dest, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestPushFile(t *testing.T) {
	skipWithoutGit(t)

	origin := t.TempDir()
	runGit(t, origin, "init", "--bare")

	repo := filepath.Join(t.TempDir(), "work")
	client := NewClient(nil)
	require.NoError(t, client.CloneOrUpdate(context.Background(), origin, repo, ""))
	runGit(t, repo, "config", "user.name", "test")
	runGit(t, repo, "config", "user.email", "test@example.com")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "seed.txt"), []byte("seed\n"), 0o644))
	runGit(t, repo, "add", "seed.txt")
	runGit(t, repo, "commit", "-m", "seed")
	runGit(t, repo, "push", "-u", "origin", "HEAD")

	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "report.docx"), []byte("doc"), 0o644))

	require.NoError(t, client.PushFile(context.Background(), "report.docx", source, repo))
	assert.FileExists(t, filepath.Join(repo, "report.docx"))
}

func TestPushFileMissingSource(t *testing.T) {
	err := NewClient(nil).PushFile(context.Background(), "absent.docx", t.TempDir(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestDeleteRefusesNonRepository(t *testing.T) {
	dir := t.TempDir()
	err := NewClient(nil).Delete(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to delete")
	assert.DirExists(t, dir)
}

func TestDeleteRemovesRepository(t *testing.T) {
	skipWithoutGit(t)

	dir := filepath.Join(t.TempDir(), "victim")
	client := NewClient(nil)
	require.NoError(t, client.Init(context.Background(), dir, "https://example.com/repo.git"))
	require.NoError(t, client.Delete(dir))
	assert.NoDirExists(t, dir)
}
