package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-taskboard/internal/app"
	"github.com/adanyl0v/go-taskboard/internal/models"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Single-user task board backed by a durable key-value slot",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap()
			defer app.CloseStorage()

			app.MustListenAndServeHTTP()
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the saved tasks as CSV or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.UseStderrForLogs()
			bootstrap()
			defer app.CloseStorage()

			return app.Export(format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format (csv, yaml)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func statsCmd() *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print task counts per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if today != "" {
				date, err := models.ParseDate(today)
				if err != nil {
					return err
				}
				day = time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.Local)
			}

			app.UseStderrForLogs()
			bootstrap()
			defer app.CloseStorage()

			return app.PrintStats(cmd.OutOrStdout(), day)
		},
	}

	cmd.Flags().StringVar(&today, "today", "", "Reference date as YYYY-MM-DD (default: current date)")

	return cmd
}

func bootstrap() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenStorage()
	app.InitStore()
}
