package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rundash/internal/di"
	"rundash/internal/strava"
	"rundash/internal/structures"
)

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	root := &cobra.Command{
		Use:           "rundash",
		Short:         "Personal running dashboard backed by the Strava API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "./config/config.yaml", "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&flags.TablePath, "table", "t", "", "activity table path (overrides config)")

	root.AddCommand(newFetchCmd(flags), newServeCmd(flags))
	return root
}

func newFetchCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download all runs from Strava and rewrite the activity table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetcher, err := di.InitFetcher(flags)
			if err != nil {
				return err
			}
			defer fetcher.Close()

			report, err := fetcher.Run(cmd.Context())
			if err != nil {
				var authErr *strava.AuthError
				if errors.As(err, &authErr) {
					return fmt.Errorf("check CLIENT_ID, CLIENT_SECRET and REFRESH_TOKEN: %w", err)
				}
				return err
			}

			color.Green("Success!")
			fmt.Fprintf(cmd.OutOrStdout(), "%d runs written to %s (%d pages, %d activities seen, %d without route, %d undecodable)\n",
				report.Kept, report.Path, report.Pages, report.Seen, report.SkippedNoRoute, report.SkippedDecode)
			return nil
		},
	}
}

func newServeCmd(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard from the stored activity table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := di.InitServer(flags)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Run(cmd.Context())
		},
	}
}
