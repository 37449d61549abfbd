package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"text/tabwriter"

	"go-timely/internal/triggerlog"

	"github.com/spf13/cobra"
)

func newTriggersCmd(root *rootOptions) *cobra.Command {
	var (
		source  string
		outcome string
		page    int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "triggers",
		Short: "List triggers the agent handled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			if source != "" {
				q.Set("source", source)
			}
			if outcome != "" {
				q.Set("outcome", outcome)
			}
			q.Set("page", strconv.Itoa(page))
			q.Set("page_size", strconv.Itoa(limit))

			env, err := newAgentClient(root).do(cmd.Context(), http.MethodGet, "/api/v1/triggers?"+q.Encode(), nil)
			if err != nil {
				return err
			}

			var rows []triggerlog.TriggerLogResponse
			if err := json.Unmarshal(env.Data, &rows); err != nil {
				return fmt.Errorf("decode agent response: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tSOURCE\tACTION\tOUTCOME\tKEY")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					r.Source, deref(r.Action), r.Outcome, r.SourceKey)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "filter by trigger source")
	cmd.Flags().StringVar(&outcome, "outcome", "", "filter by outcome")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")

	return cmd
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
