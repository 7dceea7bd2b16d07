package registryapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/registryapi"
	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadTemplate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/resources/templates/csharp-starter", r.URL.Path)
		w.Write([]byte("zip-bytes"))
	}))
	defer srv.Close()

	data, err := registryapi.New(srv.URL).DownloadTemplate(context.Background(), "csharp-starter")
	require.NoError(t, err)
	assert.Equal(t, []byte("zip-bytes"), data)
}

func TestDownloadTemplate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such template", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := registryapi.New(srv.URL).DownloadTemplate(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestVerifySubmission_WireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bots/verify", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "RocketTeam", payload["TeamName"])

		files, ok := payload["Files"].([]any)
		require.True(t, ok)
		first := files[0].(map[string]any)
		assert.Equal(t, "Bot.cs", first["FileName"])
		assert.Equal(t, "class Bot {}", first["Code"])

		json.NewEncoder(w).Encode(map[string]any{
			"isValid":  true,
			"message":  "looks good",
			"warnings": []string{"minor style issue"},
		})
	}))
	defer srv.Close()

	result, err := registryapi.New(srv.URL).VerifySubmission(context.Background(), "RocketTeam",
		[]domain.ArchiveFile{{FileName: "Bot.cs", Code: "class Bot {}"}})
	require.NoError(t, err)

	assert.True(t, result.Accepted)
	assert.Equal(t, "looks good", result.Message)
	assert.Equal(t, []string{"minor style issue"}, result.Warnings)
}

func TestVerifySubmission_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"isValid": false,
			"errors":  []string{"missing Bot.cs"},
		})
	}))
	defer srv.Close()

	result, err := registryapi.New(srv.URL).VerifySubmission(context.Background(), "T", nil)
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, []string{"missing Bot.cs"}, result.Errors)
}

func TestSubmitArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bots/submit", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, true, payload["Overwrite"])

		json.NewEncoder(w).Encode(map[string]any{
			"Success":      true,
			"TeamName":     "RocketTeam",
			"SubmissionId": "abc123",
			"Message":      "accepted",
		})
	}))
	defer srv.Close()

	result, err := registryapi.New(srv.URL).SubmitArchive(context.Background(), "RocketTeam",
		[]domain.ArchiveFile{{FileName: "Bot.cs", Code: "x"}}, true)
	require.NoError(t, err)

	assert.True(t, result.Accepted)
	assert.Equal(t, "abc123", result.SubmissionID)
	assert.Equal(t, "RocketTeam", result.TeamName)
}

func TestSubmitArchive_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := registryapi.New(srv.URL).SubmitArchive(context.Background(), "T", nil, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
