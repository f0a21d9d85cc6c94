package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"discsift/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage recorded detection runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent detection runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, historyEntries(runs))
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No detection runs recorded")
					return nil
				}
				fmt.Fprintln(out, tableSpec{
					headers: []string{"Run", "Started", "Disc", "Selected", "Playlists", "Main", "Status"},
					aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
					rows:    buildHistoryRows(runs),
				}.render())
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		allTracks  bool
	)
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the full report of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					if errors.Is(err, history.ErrAmbiguous) {
						return fmt.Errorf("%w; use more characters of the run id", err)
					}
					return err
				}
				rep, err := run.Report()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, rep)
				}
				out := cmd.OutOrStdout()
				if run.SourcePath != "" {
					fmt.Fprintf(out, "Source:      %s\n", run.SourcePath)
				}
				fmt.Fprintf(out, "Started:     %s\n", formatDisplayTime(run.StartedAt))
				renderReport(out, rep, nil, allTracks)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&allTracks, "all-tracks", false, "Show the track table of every playlist")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must be zero or positive")
			}
			return ctx.withHistory(func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), keep)
				if err != nil {
					return err
				}
				noun := "runs"
				if removed == 1 {
					noun = "run"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s\n", removed, noun)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "Keep this many of the newest runs")
	return cmd
}

type historyEntry struct {
	RunID            string `json:"run_id"`
	StartedAt        string `json:"started_at"`
	DurationMillis   int64  `json:"duration_ms"`
	SourcePath       string `json:"source_path,omitempty"`
	DiscTitle        string `json:"disc_title,omitempty"`
	DiscFingerprint  string `json:"disc_fingerprint"`
	SelectedPlaylist string `json:"selected_playlist,omitempty"`
	PlaylistCount    int    `json:"playlist_count"`
	MainFeatureCount int    `json:"main_feature_count"`
	Canceled         bool   `json:"canceled"`
}

func historyEntries(runs []*history.Run) []historyEntry {
	entries := make([]historyEntry, 0, len(runs))
	for _, run := range runs {
		entries = append(entries, historyEntry{
			RunID:            run.RunID,
			StartedAt:        run.StartedAt.UTC().Format(time.RFC3339),
			DurationMillis:   run.Duration().Milliseconds(),
			SourcePath:       run.SourcePath,
			DiscTitle:        run.DiscTitle,
			DiscFingerprint:  run.DiscFingerprint,
			SelectedPlaylist: run.SelectedPlaylist,
			PlaylistCount:    run.PlaylistCount,
			MainFeatureCount: run.MainFeatureCount,
			Canceled:         run.Canceled,
		})
	}
	return entries
}
