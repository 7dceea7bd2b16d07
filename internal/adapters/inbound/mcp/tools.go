package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/archive"
	configAdapter "github.com/inbar-marom/botverify/internal/adapters/outbound/config"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/coverage"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/registryapi"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/scanner"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/store"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/toolchain"
	"github.com/inbar-marom/botverify/internal/application"
	"github.com/inbar-marom/botverify/internal/domain"
)

// registerTools registers all botverify MCP tools on the given server.
func registerTools(s *server.MCPServer, storePath, registryURL string) {
	// 1. botverify_verify
	s.AddTool(
		mcplib.NewTool("botverify_verify",
			mcplib.WithDescription("Run the full verification pipeline on a submission directory and return the report as JSON"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path to the submission directory"),
			),
		),
		handleVerify(),
	)

	// 2. botverify_register
	s.AddTool(
		mcplib.NewTool("botverify_register",
			mcplib.WithDescription("Register a new bot submission in the registry"),
			mcplib.WithString("bot_name", mcplib.Required(), mcplib.Description("Bot name")),
			mcplib.WithString("team_name", mcplib.Required(), mcplib.Description("Team name")),
			mcplib.WithString("version", mcplib.Description("Bot version (default 1.0.0)")),
			mcplib.WithString("repository_url", mcplib.Description("Repository URL")),
			mcplib.WithString("description", mcplib.Description("Short description")),
			mcplib.WithString("language", mcplib.Description("Implementation language")),
			mcplib.WithString("framework", mcplib.Description("Framework used by the bot")),
		),
		handleRegister(storePath),
	)

	// 3. botverify_get_submission
	s.AddTool(
		mcplib.NewTool("botverify_get_submission",
			mcplib.WithDescription("Return a single submission by id"),
			mcplib.WithString("id", mcplib.Required(), mcplib.Description("Submission id")),
		),
		handleGetSubmission(storePath),
	)

	// 4. botverify_submission_status
	s.AddTool(
		mcplib.NewTool("botverify_submission_status",
			mcplib.WithDescription("Return only the status of a submission"),
			mcplib.WithString("id", mcplib.Required(), mcplib.Description("Submission id")),
		),
		handleSubmissionStatus(storePath),
	)

	// 5. botverify_list_submissions
	s.AddTool(
		mcplib.NewTool("botverify_list_submissions",
			mcplib.WithDescription("List submissions, optionally filtered by team or status"),
			mcplib.WithString("team_name", mcplib.Description("Filter by team name")),
			mcplib.WithString("status", mcplib.Description("Filter by status (pending, approved, rejected, testing)")),
			mcplib.WithNumber("limit", mcplib.Description("Maximum number of submissions to return")),
		),
		handleListSubmissions(storePath),
	)

	// 6. botverify_update_submission
	s.AddTool(
		mcplib.NewTool("botverify_update_submission",
			mcplib.WithDescription("Update fields of an existing submission"),
			mcplib.WithString("id", mcplib.Required(), mcplib.Description("Submission id")),
			mcplib.WithString("version", mcplib.Description("New version")),
			mcplib.WithString("description", mcplib.Description("New description")),
			mcplib.WithString("repository_url", mcplib.Description("New repository URL")),
			mcplib.WithString("status", mcplib.Description("New status (pending, approved, rejected, testing)")),
		),
		handleUpdateSubmission(storePath),
	)

	// 7. botverify_delete_submission
	s.AddTool(
		mcplib.NewTool("botverify_delete_submission",
			mcplib.WithDescription("Delete a submission from the registry"),
			mcplib.WithString("id", mcplib.Required(), mcplib.Description("Submission id")),
		),
		handleDeleteSubmission(storePath),
	)

	// 8. botverify_statistics
	s.AddTool(
		mcplib.NewTool("botverify_statistics",
			mcplib.WithDescription("Return registry statistics: totals by status, team and language"),
		),
		handleStatistics(storePath),
	)

	// 9. botverify_verify_archive
	s.AddTool(
		mcplib.NewTool("botverify_verify_archive",
			mcplib.WithDescription("Extract a ZIP archive, run the local style preflight and have the registry verify it"),
			mcplib.WithString("zip_path", mcplib.Required(), mcplib.Description("Path to the submission archive")),
			mcplib.WithString("team_name", mcplib.Required(), mcplib.Description("Team name")),
		),
		handleVerifyArchive(registryURL),
	)

	// 10. botverify_submit_archive
	s.AddTool(
		mcplib.NewTool("botverify_submit_archive",
			mcplib.WithDescription("Upload a submission archive to the tournament registry"),
			mcplib.WithString("zip_path", mcplib.Required(), mcplib.Description("Path to the submission archive")),
			mcplib.WithString("team_name", mcplib.Required(), mcplib.Description("Team name")),
			mcplib.WithBoolean("overwrite", mcplib.Description("Replace an existing submission for the team")),
		),
		handleSubmitArchive(registryURL),
	)

	// 11. botverify_download_template
	s.AddTool(
		mcplib.NewTool("botverify_download_template",
			mcplib.WithDescription("Download a starter template from the registry and extract it"),
			mcplib.WithString("name", mcplib.Required(), mcplib.Description("Template name")),
			mcplib.WithString("output_dir", mcplib.Description("Directory to extract into (default current directory)")),
		),
		handleDownloadTemplate(registryURL),
	)
}

func openRegistry(storePath string) (*application.SubmissionService, error) {
	st, err := store.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("opening submission store: %w", err)
	}
	return application.NewSubmissionService(st), nil
}

func newPortal(registryURL string) *application.PortalService {
	if registryURL == "" {
		cfg, _ := configAdapter.New().Load(".")
		registryURL = cfg.RegistryURL
	}
	return application.NewPortalService(archive.New(), registryapi.New(registryURL))
}

func handleVerify() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		path, err := request.RequireString("path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return errorResult(fmt.Sprintf("resolving path: %v", err)), nil
		}

		cfg, err := configAdapter.New().Load(absPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		svc := application.NewVerifyService(
			scanner.New(cfg.SourceExtensions, cfg.ExcludePaths...),
			toolchain.New(cfg.Toolchain),
			coverage.New(),
			cfg,
		)
		report, err := svc.Verify(ctx, absPath)
		if err != nil {
			return errorResult(fmt.Sprintf("verification failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleRegister(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		botName, err := request.RequireString("bot_name")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		teamName, err := request.RequireString("team_name")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		version, _ := args["version"].(string)
		if version == "" {
			version = "1.0.0"
		}
		repoURL, _ := args["repository_url"].(string)
		description, _ := args["description"].(string)
		language, _ := args["language"].(string)
		framework, _ := args["framework"].(string)

		svc, err := openRegistry(storePath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		sub, err := svc.Create(domain.Submission{
			BotName:       botName,
			TeamName:      teamName,
			Version:       version,
			RepositoryURL: repoURL,
			Description:   description,
			Language:      language,
			Framework:     framework,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("registering submission: %v", err)), nil
		}
		return jsonResult(sub)
	}
}

func handleGetSubmission(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		svc, err := openRegistry(storePath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		sub, err := svc.Get(id)
		if err != nil {
			return errorResult(fmt.Sprintf("submission %s: %v", id, err)), nil
		}
		return jsonResult(sub)
	}
}

func handleSubmissionStatus(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		svc, err := openRegistry(storePath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		sub, err := svc.Get(id)
		if err != nil {
			return errorResult(fmt.Sprintf("submission %s: %v", id, err)), nil
		}
		return jsonResult(struct {
			ID        string                  `json:"id"`
			Status    domain.SubmissionStatus `json:"status"`
			UpdatedAt time.Time               `json:"updated_at"`
		}{sub.ID, sub.Status, sub.UpdatedAt})
	}
}

func handleListSubmissions(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		teamName, _ := args["team_name"].(string)
		status, _ := args["status"].(string)
		limit, _ := args["limit"].(float64)

		svc, err := openRegistry(storePath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		subs, err := svc.List(domain.SubmissionFilter{
			TeamName: teamName,
			Status:   domain.SubmissionStatus(status),
			Limit:    int(limit),
		})
		if err != nil {
			return errorResult(fmt.Sprintf("listing submissions: %v", err)), nil
		}
		return jsonResult(subs)
	}
}

func handleUpdateSubmission(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		args := request.GetArguments()
		var upd domain.SubmissionUpdate
		if v, ok := args["version"].(string); ok && v != "" {
			upd.Version = &v
		}
		if d, ok := args["description"].(string); ok && d != "" {
			upd.Description = &d
		}
		if r, ok := args["repository_url"].(string); ok && r != "" {
			upd.RepositoryURL = &r
		}
		if s, ok := args["status"].(string); ok && s != "" {
			status := domain.SubmissionStatus(s)
			upd.Status = &status
		}

		svc, err := openRegistry(storePath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		sub, err := svc.Update(id, upd)
		if err != nil {
			return errorResult(fmt.Sprintf("updating submission %s: %v", id, err)), nil
		}
		return jsonResult(sub)
	}
}

func handleDeleteSubmission(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		svc, err := openRegistry(storePath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		sub, err := svc.Delete(id)
		if err != nil {
			return errorResult(fmt.Sprintf("deleting submission %s: %v", id, err)), nil
		}
		return textResult(fmt.Sprintf("deleted %s (%s / %s)", sub.ID, sub.TeamName, sub.BotName)), nil
	}
}

func handleStatistics(storePath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		svc, err := openRegistry(storePath)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		stats, err := svc.Statistics()
		if err != nil {
			return errorResult(fmt.Sprintf("computing statistics: %v", err)), nil
		}
		return jsonResult(stats)
	}
}

func handleVerifyArchive(registryURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		zipPath, err := request.RequireString("zip_path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		teamName, err := request.RequireString("team_name")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := newPortal(registryURL).VerifyArchive(ctx, zipPath, teamName)
		if err != nil {
			return errorResult(fmt.Sprintf("verifying archive: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleSubmitArchive(registryURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		zipPath, err := request.RequireString("zip_path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		teamName, err := request.RequireString("team_name")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		overwrite, _ := request.GetArguments()["overwrite"].(bool)

		result, err := newPortal(registryURL).SubmitArchive(ctx, zipPath, teamName, overwrite)
		if err != nil {
			return errorResult(fmt.Sprintf("submitting archive: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleDownloadTemplate(registryURL string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		outputDir, _ := request.GetArguments()["output_dir"].(string)
		if outputDir == "" {
			outputDir = "."
		}

		names, err := newPortal(registryURL).DownloadTemplate(ctx, name, outputDir)
		if err != nil {
			return errorResult(fmt.Sprintf("downloading template %q: %v", name, err)), nil
		}
		return jsonResult(struct {
			Template  string   `json:"template"`
			OutputDir string   `json:"output_dir"`
			Files     []string `json:"files"`
		}{name, outputDir, names})
	}
}

// jsonResult marshals v and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
