package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-timely/internal/deeplink"
	"go-timely/internal/domain"

	"github.com/spf13/cobra"
)

var deeplinkRoutes = map[string]string{
	"open":    "/api/v1/deeplinks/open",
	"initial": "/api/v1/deeplinks/initial",
}

type deeplinkOptions struct {
	scheme    string
	route     string
	printOnly bool
}

func newDeeplinkCmd(root *rootOptions) *cobra.Command {
	opts := &deeplinkOptions{}

	cmd := &cobra.Command{
		Use:   "deeplink [entry|exit] [time]",
		Short: "Send a clock deeplink to the agent",
		Long: `Builds scheme://clock?time=<time>&type=<entry|exit> and delivers it as if
the OS had opened the app with it. time defaults to now and accepts RFC 3339.`,
		Example: `  timelyctl deeplink entry
  timelyctl deeplink exit 2024-01-01T18:00:00Z
  timelyctl deeplink entry --route initial
  timelyctl deeplink exit --print`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			link, err := buildDeeplink(opts.scheme, args, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.printOnly {
				fmt.Fprintln(out, link)
				return nil
			}

			path, ok := deeplinkRoutes[opts.route]
			if !ok {
				return fmt.Errorf("unknown route %q (want open or initial)", opts.route)
			}

			fmt.Fprintf(out, "sending %s\n", link)
			env, err := newAgentClient(root).do(cmd.Context(), http.MethodPost, path, deeplink.URLRequest{URL: link})
			if err != nil {
				return err
			}

			var result deeplink.Result
			if err := json.Unmarshal(env.Data, &result); err != nil {
				return fmt.Errorf("decode agent response: %w", err)
			}
			if result.Outcome != "" {
				fmt.Fprintf(out, "%s: %s\n", result.Disposition, result.Outcome)
			} else {
				fmt.Fprintln(out, result.Disposition)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.scheme, "scheme", envOr("DEEPLINK_SCHEME", "timely"), "URL scheme")
	cmd.Flags().StringVar(&opts.route, "route", "open", "delivery route: open (warm start) or initial (cold start)")
	cmd.Flags().BoolVar(&opts.printOnly, "print", false, "print the URL without sending it")

	return cmd
}

func buildDeeplink(scheme string, args []string, now time.Time) (string, error) {
	action := domain.ActionClockIn
	if len(args) > 0 {
		switch args[0] {
		case "entry":
		case "exit":
			action = domain.ActionClockOut
		default:
			return "", fmt.Errorf("unknown type %q (want entry or exit)", args[0])
		}
	}

	at := now
	if len(args) > 1 {
		parsed, err := time.Parse(time.RFC3339Nano, args[1])
		if err != nil {
			return "", fmt.Errorf("invalid time %q: %w", args[1], err)
		}
		at = parsed
	}

	return deeplink.ClockURL(scheme, at, action), nil
}
