package mcp_test

import (
	"testing"

	mcpadapter "github.com/inbar-marom/botverify/internal/adapters/inbound/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBotverifyMCPServer(t *testing.T) {
	s := mcpadapter.NewBotverifyMCPServer(".botverify/submissions.json", "")
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewBotverifyMCPServer(".botverify/submissions.json", "")
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"botverify_verify",
		"botverify_register",
		"botverify_get_submission",
		"botverify_submission_status",
		"botverify_list_submissions",
		"botverify_update_submission",
		"botverify_delete_submission",
		"botverify_statistics",
		"botverify_verify_archive",
		"botverify_submit_archive",
		"botverify_download_template",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
