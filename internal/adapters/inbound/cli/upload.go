package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/archive"
	configAdapter "github.com/inbar-marom/botverify/internal/adapters/outbound/config"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/registryapi"
	"github.com/inbar-marom/botverify/internal/application"
)

func newUploadCmd() *cobra.Command {
	var (
		teamName    string
		registryURL string
		verifyOnly  bool
		overwrite   bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "upload <archive.zip>",
		Short: "Upload a submission archive to the tournament registry",
		Long:  "Extract a ZIP archive, run the local style preflight, have the registry verify it and, unless --verify-only is set, submit it for the team.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamName == "" {
				return fmt.Errorf("--team is required")
			}

			cfg, err := configAdapter.New().Load(".")
			if err != nil {
				return err
			}
			if registryURL == "" {
				registryURL = cfg.RegistryURL
			}

			svc := application.NewPortalService(archive.New(), registryapi.New(registryURL))

			verify, err := svc.VerifyArchive(cmd.Context(), args[0], teamName)
			if err != nil {
				return fmt.Errorf("verifying archive: %w", err)
			}
			for _, w := range verify.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			if !verify.Accepted {
				for _, e := range verify.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", e)
				}
				return fmt.Errorf("archive rejected by registry: %s", verify.Message)
			}
			if verifyOnly {
				if jsonOutput {
					return renderJSON(cmd, verify)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "archive verified")
				return nil
			}

			result, err := svc.SubmitArchive(cmd.Context(), args[0], teamName, overwrite)
			if err != nil {
				return fmt.Errorf("submitting archive: %w", err)
			}
			if jsonOutput {
				return renderJSON(cmd, result)
			}
			if !result.Accepted {
				return fmt.Errorf("submission rejected: %s", result.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted as %s for team %s\n", result.SubmissionID, result.TeamName)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamName, "team", "", "Team name (required)")
	cmd.Flags().StringVar(&registryURL, "registry", "", "Registry base URL (defaults to the configured registry)")
	cmd.Flags().BoolVar(&verifyOnly, "verify-only", false, "Verify the archive without submitting it")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing submission for the team")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the registry response as JSON")

	return cmd
}
