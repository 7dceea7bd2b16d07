package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inbar-marom/botverify/internal/adapters/outbound/store"
	"github.com/inbar-marom/botverify/internal/adapters/outbound/tui"
	"github.com/inbar-marom/botverify/internal/application"
	"github.com/inbar-marom/botverify/internal/domain"
)

func newSubmissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Manage the submission registry",
		Long:  "List, inspect, update and delete recorded submissions.",
	}
	cmd.PersistentFlags().String("store", defaultStorePath, "Path to the submission store file")
	cmd.AddCommand(newSubmissionsListCmd())
	cmd.AddCommand(newSubmissionsGetCmd())
	cmd.AddCommand(newSubmissionsUpdateCmd())
	cmd.AddCommand(newSubmissionsDeleteCmd())
	cmd.AddCommand(newSubmissionsStatsCmd())
	return cmd
}

func openRegistry(cmd *cobra.Command) (*application.SubmissionService, error) {
	path, err := cmd.Flags().GetString("store")
	if err != nil {
		return nil, err
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening submission store: %w", err)
	}
	return application.NewSubmissionService(st), nil
}

func newSubmissionsListCmd() *cobra.Command {
	var (
		teamName   string
		status     string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openRegistry(cmd)
			if err != nil {
				return err
			}
			subs, err := svc.List(domain.SubmissionFilter{
				TeamName: teamName,
				Status:   domain.SubmissionStatus(status),
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, subs)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSubmissionList(subs))
			return nil
		},
	}

	cmd.Flags().StringVar(&teamName, "team", "", "Filter by team name")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (pending, approved, rejected, testing)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of submissions to return")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output submissions as JSON")

	return cmd
}

func newSubmissionsGetCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openRegistry(cmd)
			if err != nil {
				return err
			}
			sub, err := svc.Get(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, sub)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSubmission(sub))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the submission as JSON")

	return cmd
}

func newSubmissionsUpdateCmd() *cobra.Command {
	var (
		status      string
		botVersion  string
		description string
		repoURL     string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openRegistry(cmd)
			if err != nil {
				return err
			}

			var upd domain.SubmissionUpdate
			if cmd.Flags().Changed("status") {
				s := domain.SubmissionStatus(status)
				upd.Status = &s
			}
			if cmd.Flags().Changed("version") {
				upd.Version = &botVersion
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("repo") {
				upd.RepositoryURL = &repoURL
			}

			sub, err := svc.Update(args[0], upd)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, sub)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSubmission(sub))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "New status (pending, approved, rejected, testing)")
	cmd.Flags().StringVar(&botVersion, "version", "", "New version")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&repoURL, "repo", "", "New repository URL")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the submission as JSON")

	return cmd
}

func newSubmissionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openRegistry(cmd)
			if err != nil {
				return err
			}
			sub, err := svc.Delete(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s / %s)\n", sub.ID, sub.TeamName, sub.BotName)
			return nil
		},
	}
}

func newSubmissionsStatsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show registry statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openRegistry(cmd)
			if err != nil {
				return err
			}
			stats, err := svc.Statistics()
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, stats)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderStatistics(stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output statistics as JSON")

	return cmd
}
