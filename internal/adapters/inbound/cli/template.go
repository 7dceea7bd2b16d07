package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/archive"
	configAdapter "github.com/inbar-marom/botverify/internal/adapters/outbound/config"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/registryapi"
	"github.com/inbar-marom/botverify/internal/application"
)

func newTemplateCmd() *cobra.Command {
	var (
		registryURL string
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "template <name>",
		Short: "Download and unpack a starter template",
		Long:  "Fetch a bot starter template from the registry and extract it into the output directory.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configAdapter.New().Load(".")
			if err != nil {
				return err
			}
			if registryURL == "" {
				registryURL = cfg.RegistryURL
			}

			svc := application.NewPortalService(archive.New(), registryapi.New(registryURL))
			names, err := svc.DownloadTemplate(cmd.Context(), args[0], outputDir)
			if err != nil {
				return fmt.Errorf("downloading template %q: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "extracted %d files into %s\n", len(names), outputDir)
			for _, n := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&registryURL, "registry", "", "Registry base URL (defaults to the configured registry)")
	cmd.Flags().StringVar(&outputDir, "output", ".", "Directory to extract the template into")

	return cmd
}
