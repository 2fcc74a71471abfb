package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hyperifyio/gopoem/internal/app"
	"github.com/hyperifyio/gopoem/internal/usage"
)

func newUsageCmd() *cobra.Command {
	var usageFile string

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show API usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := usageFile
			if path == "" {
				path = app.DefaultUsageFile()
			}
			tr := &usage.Tracker{Path: path}
			s, err := tr.Summary()
			if err != nil {
				fmt.Println("No usage data available.")
				return nil
			}

			fmt.Printf("Total requests: %d\n", s.TotalRequests)
			fmt.Printf("Total tokens:   %d\n", s.TotalTokens)
			if !s.LastUpdated.IsZero() {
				fmt.Printf("Last updated:   %s\n", s.LastUpdated.Format("2006-01-02 15:04:05"))
			}
			if len(s.RequestsByDate) == 0 {
				return nil
			}

			dates := make([]string, 0, len(s.RequestsByDate))
			for d := range s.RequestsByDate {
				dates = append(dates, d)
			}
			sort.Strings(dates)

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tREQUESTS\tOK\tFAILED\tTOKENS")
			for _, d := range dates {
				day := s.RequestsByDate[d]
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
					d, day.Requests, day.SuccessfulRequests, day.FailedRequests, day.Tokens)

				models := make([]string, 0, len(day.Models))
				for m := range day.Models {
					models = append(models, m)
				}
				sort.Strings(models)
				for _, m := range models {
					ms := day.Models[m]
					fmt.Fprintf(w, "  %s\t%d\t\t\t%d\n", m, ms.Requests, ms.Tokens)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&usageFile, "file", "", "Usage store path (default ~/.gopoem/usage.json)")
	return cmd
}
