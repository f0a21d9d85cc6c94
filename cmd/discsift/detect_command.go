package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"discsift/internal/autodetect"
	"discsift/internal/config"
	"discsift/internal/discreader"
	"discsift/internal/history"
	"discsift/internal/language"
	"discsift/internal/logging"
	"discsift/internal/preflight"
	"discsift/internal/report"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput   bool
		languageFlag string
		noHistory    bool
		allTracks    bool
	)

	cmd := &cobra.Command{
		Use:   "detect <disc-description>",
		Short: "Classify the playlists and tracks of a described disc",
		Long: "Read a JSON or YAML disc description, mark duplicates, assign playlist and\n" +
			"track roles, and pick the main feature with its default tracks.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if languageFlag != "" {
				code := language.ToISO3(languageFlag)
				if code == language.Undetermined {
					return fmt.Errorf("unrecognised language %q", languageFlag)
				}
				cfg.Detection.PreferredLanguage = code
			}

			input := args[0]
			if check := preflight.CheckFileReadable("Disc description", input); !check.Passed {
				return fmt.Errorf("%s: %s", check.Name, check.Detail)
			}

			logger, err := ctx.commandLogger(cmd)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := discreader.NewFileReader().ReadDisc(runCtx, input)
			if err != nil {
				return fmt.Errorf("read disc description: %w", err)
			}

			progress := newProgressLine(cmd.ErrOrStderr(), !jsonOutput && isTerminal(cmd.ErrOrStderr()))
			detector := autodetect.New(autodetect.OptionsFromConfig(cfg), logger, progress)
			job := autodetect.NewJob(d)
			outcome := detector.AutoDetect(runCtx, job)
			progress.finish()

			rep := report.Build(job, outcome)

			var previous []*history.Run
			if cfg.History.Enabled && !noHistory {
				// History failures only warn.
				previous, err = recordRun(cmd.Context(), cfg, input, rep)
				if err != nil {
					logging.WarnWithContext(logger, "detection history not updated", "history_record_failed",
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "run discsift check to inspect the history database"),
						logging.String(logging.FieldImpact, "this run will not appear in discsift history"),
					)
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				renderReport(cmd.OutOrStdout(), rep, previous, allTracks)
			}

			if outcome.Canceled {
				return context.Canceled
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Preferred language (ISO 639-1 or 639-2)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().BoolVar(&allTracks, "all-tracks", false, "Show the track table of every playlist, not only the selected one")
	return cmd
}

// recordRun stores rep and returns the earlier runs for the same disc.
func recordRun(ctx context.Context, cfg *config.Config, source string, rep report.Report) ([]*history.Run, error) {
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()

	previous, err := store.ForFingerprint(ctx, rep.Disc.Fingerprint)
	if err != nil {
		return nil, err
	}
	if abs, absErr := filepath.Abs(source); absErr == nil {
		source = abs
	}
	run, err := history.NewRun(source, rep)
	if err != nil {
		return previous, err
	}
	if err := store.Record(ctx, run); err != nil {
		return previous, fmt.Errorf("record run: %w", err)
	}
	return previous, nil
}
