package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fadilmartias/talent-match/internal/client"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	baseURL  string
	adminKey string
	timeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "matchctl",
	Short: "Operate the talent-match search index",
	Long: `matchctl drives the talent-match admin API.

Examples:
  matchctl rebuild                      # Rebuild both index tables
  matchctl rebuild --target projects    # Rebuild project_search only
  matchctl upsert project 42            # Re-index one project
  matchctl stats                        # Rows per index table
  matchctl recommend --member 7         # Recommendations as member 7

Configuration:
  MATCHCTL_URL    API base URL (default http://localhost:8080)
  ADMIN_API_KEY   Bearer key for /admin endpoints`,
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", envOr("MATCHCTL_URL", "http://localhost:8080"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&adminKey, "key", os.Getenv("ADMIN_API_KEY"), "admin API key")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "request timeout")

	rootCmd.AddCommand(rebuildCmd(), upsertCmd(), statsCmd(), recommendCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(baseURL, adminKey, timeout)
}

func rebuildCmd() *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Truncate and repopulate the search index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := newClient().Rebuild(cmd.Context(), target)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Projects != nil {
				fmt.Fprintf(out, "project_search:    %d rows\n", *res.Projects)
			}
			if res.Freelancers != nil {
				fmt.Fprintf(out, "freelancer_search: %d rows\n", *res.Freelancers)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "all", "all, projects or freelancers")
	return cmd
}

func upsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Re-index one project or freelancer",
	}

	entity := func(name string, upsert func(c *client.Client, ctx context.Context, id uint) (int64, error)) *cobra.Command {
		return &cobra.Command{
			Use:   name + " <id>",
			Short: "Re-index one " + name,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				rows, err := upsert(newClient(), cmd.Context(), id)
				if err != nil {
					return err
				}
				if rows == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %d does not exist, nothing indexed\n", name, id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d indexed\n", name, id)
				return nil
			},
		}
	}

	cmd.AddCommand(
		entity("project", (*client.Client).UpsertProject),
		entity("freelancer", (*client.Client).UpsertFreelancer),
	)
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts of the index tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newClient().Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "project_search:    %d rows\nfreelancer_search: %d rows\n", stats.Projects, stats.Freelancers)
			return nil
		},
	}
}

func recommendCmd() *cobra.Command {
	var req client.RecommendRequest
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show recommendations as a member would see them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.MemberID == 0 {
				return fmt.Errorf("--member is required")
			}
			res, err := newClient().Recommend(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: page %d, %d of %d\n", res.Kind, res.Page, len(res.Items), res.Total)
			if len(res.Items) == 0 {
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCORE\tNAME")
			for _, it := range res.Items {
				fmt.Fprintf(w, "%d\t%.4f\t%s\n", it.ID, it.Score, it.Label)
			}
			return w.Flush()
		},
	}
	cmd.Flags().UintVar(&req.MemberID, "member", 0, "member id to act as")
	cmd.Flags().UintVar(&req.ProjectID, "project", 0, "target project (clients only)")
	cmd.Flags().IntVar(&req.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&req.Size, "size", 10, "page size")
	cmd.Flags().StringVar(&req.Match, "match", "any", "any or all")
	return cmd
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
