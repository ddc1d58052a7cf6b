package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ibeckermayer/feedcommenter/internal/store"
)

var generationsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show comment counters and today's authors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ResolvePaths(); err != nil {
			return err
		}
		st, err := store.New(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		counts, err := st.Counters().Snapshot(ctx)
		if err != nil {
			return err
		}
		authors, err := st.Ledger().Authors(ctx)
		if err != nil {
			return err
		}
		rs, err := st.LoadRunState(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Date:      %s\n", st.DateKey())
		fmt.Fprintf(out, "Today:     %d\n", counts.Today)
		fmt.Fprintf(out, "All time:  %d\n", counts.AllTime)
		fmt.Fprintf(out, "Last run:  %d posted (running: %t)\n", rs.CommentCount, rs.IsRunning)

		if len(authors) > 0 {
			fmt.Fprintln(out, "\nCommented on today:")
			for _, a := range authors {
				fmt.Fprintf(out, "  - %s\n", a)
			}
		}

		if generationsLimit > 0 {
			recs, err := st.RecentGenerations(ctx, generationsLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "\nRecent generations:")
			for _, r := range recs {
				outcome := "ok"
				if r.ErrorKind != "" {
					outcome = r.ErrorKind
				}
				fmt.Fprintf(out, "  %s  %-10s %-18s %s\n", r.CreatedAt.Format("Jan 2 15:04"), r.Provider, outcome, truncate(r.Response, 60))
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&generationsLimit, "generations", 0, "also list the last N generation attempts")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
