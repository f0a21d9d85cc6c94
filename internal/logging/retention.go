package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RetentionTarget specifies a directory and filename pattern to prune.
type RetentionTarget struct {
	Dir     string
	Pattern string
	Exclude []string
}

// CleanupOldLogs removes files matching the targets whose modification time is
// older than retentionDays and returns how many were removed. A retentionDays
// value of 0 disables pruning.
func CleanupOldLogs(logger *slog.Logger, retentionDays int, targets ...RetentionTarget) int {
	if retentionDays <= 0 {
		return 0
	}
	if logger == nil {
		logger = NewNop()
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	removed := 0
	for _, target := range targets {
		for _, path := range target.expired(cutoff) {
			if err := os.Remove(path); err != nil {
				WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
					String("log_path", path),
					Error(err),
					String(FieldErrorHint, "check file permissions and log_dir ownership"),
					String(FieldImpact, "old log file remains on disk"),
				)
				continue
			}
			logger.Debug("log pruned", String("log_path", path))
			removed++
		}
	}
	if removed > 0 {
		logger.Info("old logs pruned",
			String(FieldEventType, "log_pruned"),
			Int("removed_count", removed),
			Int("retention_days", retentionDays),
		)
	}
	return removed
}

// expired lists the files in the target directory older than cutoff.
func (t RetentionTarget) expired(cutoff time.Time) []string {
	dir := strings.TrimSpace(t.Dir)
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	excluded := t.excluded()
	pattern := strings.TrimSpace(t.Pattern)

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern != "" {
			if matched, err := filepath.Match(pattern, entry.Name()); err != nil || !matched {
				continue
			}
		}
		path := absPath(filepath.Join(dir, entry.Name()))
		if _, skip := excluded[path]; skip {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func (t RetentionTarget) excluded() map[string]struct{} {
	set := make(map[string]struct{}, len(t.Exclude))
	for _, path := range t.Exclude {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			set[absPath(trimmed)] = struct{}{}
		}
	}
	return set
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
