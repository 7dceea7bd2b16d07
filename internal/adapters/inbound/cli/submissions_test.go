package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/inbar-marom/botverify/internal/adapters/inbound/cli"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/store"
	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) (string, domain.Submission) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submissions.json")
	st, err := store.Open(path)
	require.NoError(t, err)
	sub, err := st.Create(domain.Submission{
		BotName:  "demo-bot",
		TeamName: "Alpha",
		Version:  "1.0.0",
		Language: "csharp",
	})
	require.NoError(t, err)
	return path, sub
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSubmissionsList(t *testing.T) {
	path, _ := seedStore(t)

	out, err := run(t, "submissions", "list", "--store", path)
	require.NoError(t, err)
	assert.Contains(t, out, "demo-bot")
	assert.Contains(t, out, "pending")
}

func TestSubmissionsList_JSON(t *testing.T) {
	path, sub := seedStore(t)

	out, err := run(t, "submissions", "list", "--store", path, "--json")
	require.NoError(t, err)

	var subs []domain.Submission
	require.NoError(t, json.Unmarshal([]byte(out), &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, sub.ID, subs[0].ID)
}

func TestSubmissionsGet(t *testing.T) {
	path, sub := seedStore(t)

	out, err := run(t, "submissions", "get", sub.ID, "--store", path)
	require.NoError(t, err)
	assert.Contains(t, out, sub.ID)
	assert.Contains(t, out, "team: Alpha")
}

func TestSubmissionsGet_Unknown(t *testing.T) {
	path, _ := seedStore(t)

	_, err := run(t, "submissions", "get", "sub_nope_00000000", "--store", path)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionsUpdate(t *testing.T) {
	path, sub := seedStore(t)

	out, err := run(t, "submissions", "update", sub.ID, "--store", path, "--status", "approved", "--version", "2.0.0")
	require.NoError(t, err)
	assert.Contains(t, out, "approved")
	assert.Contains(t, out, "2.0.0")
}

func TestSubmissionsUpdate_BadStatus(t *testing.T) {
	path, sub := seedStore(t)

	_, err := run(t, "submissions", "update", sub.ID, "--store", path, "--status", "bogus")
	assert.ErrorContains(t, err, "unknown status")
}

func TestSubmissionsDelete(t *testing.T) {
	path, sub := seedStore(t)

	out, err := run(t, "submissions", "delete", sub.ID, "--store", path)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+sub.ID)

	_, err = run(t, "submissions", "get", sub.ID, "--store", path)
	assert.Error(t, err)
}

func TestSubmissionsStats(t *testing.T) {
	path, _ := seedStore(t)

	out, err := run(t, "submissions", "stats", "--store", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 submissions")
	assert.Contains(t, out, "pending: 1")
	assert.Contains(t, out, "csharp: 1")
}
