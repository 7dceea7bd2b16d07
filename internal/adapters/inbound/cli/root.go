package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "botverify",
		Short:         "Verify bot submissions before they reach the arena",
		Long:          "Botverify runs a submission through the full verification pipeline (build, style rules, coverage, latency) and manages the submission registry.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newSubmitCmd())
	cmd.AddCommand(newSubmissionsCmd())
	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
