package cli_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/gitinfo"
	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gitFixture copies the passing fixture into a temp dir and turns it into a
// git repository with one commit and an origin remote.
func gitFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	entries, err := os.ReadDir(perfectFixture)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(perfectFixture, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0644))
	}

	git(t, dir, "init")
	git(t, dir, "config", "user.email", "test@test.com")
	git(t, dir, "config", "user.name", "Test")
	git(t, dir, "remote", "add", "origin", "https://example.com/alpha/demo-bot.git")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-m", "init")
	return dir
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}

func TestSubmitCommand_RecordsCommitFooter(t *testing.T) {
	dir := gitFixture(t)
	storePath := filepath.Join(t.TempDir(), "submissions.json")

	hash, err := gitinfo.New().CommitHash(dir)
	require.NoError(t, err)

	out, err := run(t, "submit", dir,
		"--bot", "demo-bot", "--team", "Alpha",
		"--description", "first entry",
		"--store", storePath, "--json")
	require.NoError(t, err)

	var result struct {
		Submission domain.Submission          `json:"submission"`
		Report     *domain.VerificationReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, domain.StatusApproved, result.Submission.Status)
	assert.Equal(t, "https://example.com/alpha/demo-bot.git", result.Submission.RepositoryURL)
	assert.Equal(t, "first entry\n(commit "+hash+")", result.Submission.Description)
}

func TestSubmitCommand_CommitFooterWithoutDescription(t *testing.T) {
	dir := gitFixture(t)
	storePath := filepath.Join(t.TempDir(), "submissions.json")

	hash, err := gitinfo.New().CommitHash(dir)
	require.NoError(t, err)

	out, err := run(t, "submit", dir,
		"--bot", "demo-bot", "--team", "Alpha",
		"--store", storePath, "--json")
	require.NoError(t, err)

	var result struct {
		Submission domain.Submission `json:"submission"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "(commit "+hash+")", result.Submission.Description)
}

func TestSubmitCommand_NoGitRepo(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "submissions.json")

	out, err := run(t, "submit", perfectFixture,
		"--bot", "demo-bot", "--team", "Alpha",
		"--description", "plain dir",
		"--store", storePath, "--json")
	require.NoError(t, err)

	var result struct {
		Submission domain.Submission `json:"submission"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "plain dir", result.Submission.Description)
	assert.Empty(t, result.Submission.RepositoryURL)
}
