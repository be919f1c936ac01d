package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"career-backend/internal/bootstrap"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/telemetry"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Regenerate insights for every stored industry",
	Long:  "Runs one sweep now, the same work the weekly schedule performs. Failures are reported per industry.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
			report, err := app.InsightsService.Sweep(ctx)
			if err != nil {
				return err
			}
			return writeOutput(cmd, report)
		})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh <industry>",
	Short: "Regenerate the insight for one industry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		industry := strings.TrimSpace(args[0])
		return withApp(cmd.Context(), func(ctx context.Context, app *bootstrap.App) error {
			insight, err := app.InsightsService.Regenerate(ctx, industry)
			if err != nil {
				return err
			}
			return writeOutput(cmd, insight)
		})
	},
}

var outputFormat string

func init() {
	for _, c := range []*cobra.Command{sweepCmd, refreshCmd} {
		c.Flags().StringVarP(&outputFormat, "output", "o", "json", "output format: json or yaml")
	}
	rootCmd.AddCommand(sweepCmd, refreshCmd)
}

func withApp(ctx context.Context, fn func(context.Context, *bootstrap.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	telemetry.Init(cfg.Env)
	cfg.SweepSchedule = "off"

	poolOpts := db.DefaultCLIOptions()
	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{DBOptions: &poolOpts})
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}

func writeOutput(cmd *cobra.Command, v any) error {
	switch strings.ToLower(strings.TrimSpace(outputFormat)) {
	case "", "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		// Round-trip through JSON so YAML keys follow the json tags.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
