package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"discsift/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [disc-description]",
		Short: "Verify directories, the history database, and optionally an input file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}

			status := newStatusWriter(cmd.OutOrStdout())
			status.section("Configuration")
			path := ctx.configPath
			if !ctx.configSeen {
				path = "defaults (no file at " + ctx.configPath + ")"
			}
			status.line("Config", statusInfo, path)
			status.line("History", statusInfo, historySummary(cfg.History.Enabled, cfg.History.MaxEntries))
			status.line("Language", statusInfo, formatLanguage(cfg.Detection.PreferredLanguage))
			status.blank()

			status.section("Preflight")
			results := preflight.RunAll(cmd.Context(), cfg, input)
			for _, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
				}
				status.line(result.Name, kind, result.Detail)
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}
}

func historySummary(enabled bool, maxEntries int) string {
	if !enabled {
		return "disabled"
	}
	if maxEntries == 0 {
		return "enabled (unlimited)"
	}
	return fmt.Sprintf("enabled (keeps %d runs)", maxEntries)
}
