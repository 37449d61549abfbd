package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	agentURL string
	token    string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "timelyctl",
		Short: "Drive a running timely agent from the command line",
		Long: `timelyctl sends triggers to a timely agent the way the device would.

Use it to exercise deeplink handling without a phone or simulator.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&opts.agentURL, "agent", envOr("TIMELY_AGENT_URL", "http://localhost:3000"), "agent base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("TIMELY_TOKEN"), "bearer token (default $TIMELY_TOKEN)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	cmd.AddCommand(newDeeplinkCmd(opts))
	cmd.AddCommand(newTriggersCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
