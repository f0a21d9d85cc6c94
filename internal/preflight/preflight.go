package preflight

import (
	"context"

	"discsift/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// inputPath is optional; when set the disc description is checked too.
func RunAll(ctx context.Context, cfg *config.Config, inputPath string) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	if cfg.History.Enabled {
		results = append(results, CheckHistory(ctx, cfg))
	}

	if inputPath != "" {
		results = append(results, CheckFileReadable("Disc description", inputPath))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
