package logging

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type infoField struct {
	label string
	value string
}

const infoAttrLimit = 8

// infoHighlightKeys are shown first, in this order, on info-level lines.
var infoHighlightKeys = []string{
	FieldAlert,
	FieldEventType,
	FieldDecisionType,
	"decision_result",
	"decision_reason",
	"decision_selected",
	FieldPlaylist,
	"disc_title",
	"playlist_count",
	"primary_language",
	"progress_percent",
	"progress_message",
	"error",
	FieldErrorHint,
	FieldImpact,
	"pass_duration",
}

// selectInfoFields returns formatted info-level fields and a count of hidden entries.
// limit=0 means no limit.
func selectInfoFields(attrs []kv, limit int) ([]infoField, int) {
	if len(attrs) == 0 {
		return nil, 0
	}
	if limit < 0 {
		limit = 0
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, infoAttrLimit)
	hidden := 0

	add := func(idx int) {
		used[idx] = true
		value := formatValueForKey(attrs[idx].key, attrs[idx].value)
		if shouldHideInfoValue(attrs[idx].key, value) {
			hidden++
			return
		}
		if limit > 0 && len(result) >= limit {
			hidden++
			return
		}
		result = append(result, infoField{label: displayLabel(attrs[idx].key), value: value})
	}

	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				add(idx)
			}
		}
	}
	for idx, attr := range attrs {
		if used[idx] || skipInfoKey(attr.key) {
			continue
		}
		if isDebugOnlyKey(attr.key) {
			used[idx] = true
			continue
		}
		add(idx)
	}
	return result, hidden
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	switch {
	case isByteSizeKey(key) && v.Kind() == slog.KindUint64:
		return humanize.IBytes(v.Uint64())
	case isByteSizeKey(key) && v.Kind() == slog.KindInt64 && v.Int64() >= 0:
		return humanize.IBytes(uint64(v.Int64()))
	case v.Kind() == slog.KindDuration:
		return formatDurationHuman(v.Duration())
	case isPercentKey(key) && v.Kind() == slog.KindFloat64:
		return fmt.Sprintf("%.0f%%", v.Float64())
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	return formatValue(v)
}

func formatDurationHuman(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	if d < time.Minute {
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}

func isByteSizeKey(key string) bool {
	return strings.HasSuffix(key, "_bytes") || strings.HasSuffix(key, "_size") || key == "size"
}

func isPercentKey(key string) bool {
	return strings.HasSuffix(key, "_percent")
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldRunID, FieldPhase, FieldComponent:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case "fingerprint", "full_path", "clip_count", "hidden_tracks", "badness":
		return true
	}
	return strings.Contains(key, "fingerprint") || strings.HasSuffix(key, "_path")
}

func shouldHideInfoValue(key, value string) bool {
	if key == "error" {
		return false
	}
	return len(value) > 160
}

func displayLabel(key string) string {
	switch key {
	case FieldAlert:
		return "Alert"
	case FieldEventType:
		return "Event"
	case FieldDecisionType:
		return "Decision"
	case "decision_result":
		return "Result"
	case "decision_reason":
		return "Reason"
	case "decision_selected":
		return "Selected"
	case FieldErrorHint:
		return "Hint"
	case "disc_title":
		return "Disc"
	case "progress_message":
		return "Progress"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = capitalizeASCII(part)
	}
	return strings.Join(parts, " ")
}

func capitalizeASCII(value string) string {
	switch len(value) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(value)
	default:
		lower := strings.ToLower(value)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}
