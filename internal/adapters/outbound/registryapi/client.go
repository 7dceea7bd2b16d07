package registryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inbar-marom/botverify/internal/domain"
)

// Client implements domain.RegistryClient against the tournament HTTP API.
// The wire format keeps the API's original field casing.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

type uploadPayload struct {
	TeamName  string               `json:"TeamName"`
	Files     []domain.ArchiveFile `json:"Files"`
	Overwrite bool                 `json:"Overwrite,omitempty"`
}

type verifyResponse struct {
	Success  bool     `json:"success"`
	IsValid  bool     `json:"isValid"`
	Message  string   `json:"message"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

type submitResponse struct {
	Success      bool     `json:"Success"`
	TeamName     string   `json:"TeamName"`
	SubmissionID string   `json:"SubmissionId"`
	Message      string   `json:"Message"`
	Errors       []string `json:"Errors"`
}

// DownloadTemplate fetches a bot template archive as raw ZIP bytes.
func (c *Client) DownloadTemplate(ctx context.Context, name string) ([]byte, error) {
	url := c.baseURL + "/api/resources/templates/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading template %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("template download returned status %d: %s", resp.StatusCode, body)
	}
	return io.ReadAll(resp.Body)
}

// VerifySubmission uploads extracted submission files for remote validation.
func (c *Client) VerifySubmission(ctx context.Context, teamName string, files []domain.ArchiveFile) (*domain.UploadResult, error) {
	var out verifyResponse
	payload := uploadPayload{TeamName: teamName, Files: files}
	if err := c.postJSON(ctx, "/api/bots/verify", payload, &out); err != nil {
		return nil, err
	}
	return &domain.UploadResult{
		Accepted: out.Success || out.IsValid,
		Message:  out.Message,
		Errors:   out.Errors,
		Warnings: out.Warnings,
	}, nil
}

// SubmitArchive uploads extracted submission files as a tournament entry.
func (c *Client) SubmitArchive(ctx context.Context, teamName string, files []domain.ArchiveFile, overwrite bool) (*domain.SubmitResult, error) {
	var out submitResponse
	payload := uploadPayload{TeamName: teamName, Files: files, Overwrite: overwrite}
	if err := c.postJSON(ctx, "/api/bots/submit", payload, &out); err != nil {
		return nil, err
	}
	return &domain.SubmitResult{
		Accepted:     out.Success,
		TeamName:     out.TeamName,
		SubmissionID: out.SubmissionID,
		Message:      out.Message,
		Errors:       out.Errors,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, detail)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
