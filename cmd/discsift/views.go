package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"discsift/internal/disc"
	"discsift/internal/history"
	"discsift/internal/language"
	"discsift/internal/report"
)

func renderReport(out io.Writer, rep report.Report, previous []*history.Run, allTracks bool) {
	title := rep.Disc.Title
	if rep.Disc.VolumeLabel != "" && rep.Disc.VolumeLabel != title {
		title = fmt.Sprintf("%s (%s)", title, rep.Disc.VolumeLabel)
	}
	fmt.Fprintf(out, "Disc:        %s\n", title)
	fmt.Fprintf(out, "Run:         %s\n", shortID(rep.RunID))
	fmt.Fprintf(out, "Fingerprint: %s\n", formatFingerprint(rep.Disc.Fingerprint))
	fmt.Fprintf(out, "Language:    %s\n", formatLanguage(rep.Disc.PrimaryLanguage))
	if len(rep.Disc.Languages) > 0 {
		fmt.Fprintf(out, "Languages:   %s\n", strings.Join(rep.Disc.Languages, ", "))
	}
	if rep.Disc.FeatureBaseline > 0 {
		fmt.Fprintf(out, "Baseline:    %s\n", formatLength(secondsToDuration(rep.Disc.FeatureBaseline)))
	}
	selected := rep.SelectedPlaylist
	if selected == "" {
		selected = "none"
	}
	fmt.Fprintf(out, "Selected:    %s\n", selected)
	if rep.Canceled {
		fmt.Fprintf(out, "Status:      canceled after %s\n", lastPhase(rep.Phases))
	}
	if len(previous) > 0 {
		fmt.Fprintf(out, "Seen before: %s\n", describePrevious(previous, rep.SelectedPlaylist))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, tableSpec{
		headers: []string{"Playlist", "Type", "Length", "Size", "Chapters", "Clips", "Flags", "Selected"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignCenter},
		rows:    buildPlaylistRows(rep.Playlists),
	}.render())

	for _, playlist := range rep.Playlists {
		if !allTracks && !playlist.Selected {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, tableSpec{
			title:   "Tracks: " + playlist.FileName,
			headers: []string{"#", "Kind", "Language", "Codec", "Details", "Type", "Keep"},
			aligns:  []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignCenter},
			rows:    buildTrackRows(playlist.Tracks),
		}.render())
	}
}

func buildPlaylistRows(playlists []report.PlaylistReport) [][]string {
	rows := make([][]string, 0, len(playlists))
	for _, p := range playlists {
		selected := ""
		if p.Selected {
			selected = "*"
		}
		rows = append(rows, []string{
			p.FileName,
			formatRole(p.Type),
			formatLength(p.Length()),
			formatSize(p.SizeBytes),
			strconv.Itoa(p.Chapters),
			strconv.Itoa(p.Clips),
			formatFlags(p.Flags),
			selected,
		})
	}
	return rows
}

func buildTrackRows(tracks []report.TrackReport) [][]string {
	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		keep := ""
		switch {
		case t.Keep && t.BestGuess:
			keep = "default"
		case t.Keep:
			keep = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(t.Index),
			string(t.Kind),
			formatLanguage(t.Language),
			dashIfEmpty(t.Codec),
			trackDetails(t),
			formatRole(t.Type),
			keep,
		})
	}
	return rows
}

func buildHistoryRows(runs []*history.Run) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := "Completed"
		if run.Canceled {
			status = "Canceled"
		}
		rows = append(rows, []string{
			shortID(run.RunID),
			formatDisplayTime(run.StartedAt),
			dashIfEmpty(run.DiscTitle),
			dashIfEmpty(run.SelectedPlaylist),
			strconv.Itoa(run.PlaylistCount),
			strconv.Itoa(run.MainFeatureCount),
			status,
		})
	}
	return rows
}

func trackDetails(t report.TrackReport) string {
	var parts []string
	switch t.Kind {
	case disc.TrackKindVideo:
		if t.VideoHeight > 0 {
			parts = append(parts, fmt.Sprintf("%dp", t.VideoHeight))
		}
	case disc.TrackKindAudio:
		if t.Channels > 0 {
			parts = append(parts, fmt.Sprintf("%dch", t.Channels))
		}
	}
	if t.Hidden {
		parts = append(parts, "hidden")
	}
	return dashIfEmpty(strings.Join(parts, " "))
}

func describePrevious(previous []*history.Run, selected string) string {
	last := previous[0]
	noun := "run"
	if len(previous) != 1 {
		noun = "runs"
	}
	summary := fmt.Sprintf("%d %s, last %s (%s)", len(previous), noun, humanize.Time(last.StartedAt), shortID(last.RunID))
	if last.SelectedPlaylist != "" && last.SelectedPlaylist != selected {
		summary += fmt.Sprintf(", previously selected %s", last.SelectedPlaylist)
	}
	return summary
}

func formatRole(role disc.Role) string {
	if !role.IsSet() {
		return "-"
	}
	return role.Label()
}

func formatFlags(flags []string) string {
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ", ")
}

func formatLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || code == language.Undetermined {
		return "-"
	}
	name := language.DisplayName(code)
	if name == "" || strings.EqualFold(name, code) {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

// formatLength renders a duration as h:mm:ss.
func formatLength(d time.Duration) string {
	if d <= 0 {
		return "0:00:00"
	}
	total := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func formatSize(bytes uint64) string {
	if bytes == 0 {
		return "-"
	}
	return humanize.IBytes(bytes)
}

func formatDisplayTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatFingerprint(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	if len(value) > 12 {
		return value[:12]
	}
	return value
}

func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return dashIfEmpty(runID)
}

func lastPhase(phases []string) string {
	if len(phases) == 0 {
		return "start"
	}
	return phases[len(phases)-1]
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func dashIfEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
