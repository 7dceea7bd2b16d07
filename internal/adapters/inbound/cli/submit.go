package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	configAdapter "github.com/inbar-marom/botverify/internal/adapters/outbound/config"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/coverage"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/gitinfo"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/scanner"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/store"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/toolchain"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/tui"
	"github.com/inbar-marom/botverify/internal/application"
	"github.com/inbar-marom/botverify/internal/domain"
)

const defaultStorePath = ".botverify/submissions.json"

func newSubmitCmd() *cobra.Command {
	var (
		botName     string
		teamName    string
		botVersion  string
		repoURL     string
		description string
		language    string
		framework   string
		storePath   string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "submit [path]",
		Short: "Verify a submission and record it in the registry",
		Long:  "Run the verification pipeline on a submission directory and register the result. The submission is approved when every check passes and rejected otherwise.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := configAdapter.New().Load(absPath)
			if err != nil {
				return err
			}

			// Fill repository metadata from git when available. The repo URL
			// comes from the origin remote unless given on the command line,
			// and the HEAD commit is recorded in the description footer.
			gi := gitinfo.New()
			if gi.IsGitRepo(absPath) {
				if repoURL == "" {
					if url, err := gi.RemoteURL(absPath); err == nil {
						repoURL = url
					}
				}
				if hash, err := gi.CommitHash(absPath); err == nil {
					description = strings.TrimSpace(description + fmt.Sprintf("\n(commit %s)", hash))
				}
			}

			st, err := store.Open(storePath)
			if err != nil {
				return fmt.Errorf("opening submission store: %w", err)
			}

			regSvc := application.NewSubmissionService(st)
			sub, err := regSvc.Create(domain.Submission{
				BotName:       botName,
				TeamName:      teamName,
				Version:       botVersion,
				RepositoryURL: repoURL,
				Description:   description,
				Language:      language,
				Framework:     framework,
				Status:        domain.StatusTesting,
			})
			if err != nil {
				return err
			}

			verifySvc := application.NewVerifyService(
				scanner.New(cfg.SourceExtensions, cfg.ExcludePaths...),
				toolchain.New(cfg.Toolchain),
				coverage.New(),
				cfg,
			)
			report, err := verifySvc.Verify(cmd.Context(), absPath)
			if err != nil {
				return err
			}

			sub, err = regSvc.ApplyReport(sub.ID, report)
			if err != nil {
				return err
			}

			if jsonOutput {
				if err := renderJSON(cmd, struct {
					Submission domain.Submission          `json:"submission"`
					Report     *domain.VerificationReport `json:"report"`
				}{sub, report}); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSubmission(sub))
			}

			if !report.OverallPassed() {
				return fmt.Errorf("submission %s rejected: %s check failed", sub.ID, fatalCheck(report))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&botName, "bot", "", "Bot name (required)")
	cmd.Flags().StringVar(&teamName, "team", "", "Team name (required)")
	cmd.Flags().StringVar(&botVersion, "version", "1.0.0", "Bot version")
	cmd.Flags().StringVar(&repoURL, "repo", "", "Repository URL (defaults to the git origin remote)")
	cmd.Flags().StringVar(&description, "description", "", "Short description of the bot")
	cmd.Flags().StringVar(&language, "language", "", "Implementation language")
	cmd.Flags().StringVar(&framework, "framework", "", "Framework used by the bot")
	cmd.Flags().StringVar(&storePath, "store", defaultStorePath, "Path to the submission store file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output submission and report as JSON")

	return cmd
}
