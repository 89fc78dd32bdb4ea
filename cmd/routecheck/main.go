package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "routecheck",
		Short:         "Resolve clinic routes and issue API tokens against the configured services",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(tokenCmd())

	return rootCmd
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a driving route and its camera region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			jsonMode, _ := cmd.Flags().GetBool("json")

			if from == "" || to == "" {
				return errors.New("--from and --to are required")
			}

			return runResolve(cmd.Context(), cmd.OutOrStdout(), from, to, jsonMode)
		},
	}

	cmd.Flags().String("from", "", "Origin as lat,lng")
	cmd.Flags().String("to", "", "Destination as lat,lng")
	cmd.Flags().Bool("json", false, "Print the full route as JSON")

	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, _ := cmd.Flags().GetString("user")

			return runToken(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().String("user", "", "User ID (a new one is generated when empty)")

	return cmd
}
