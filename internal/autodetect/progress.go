package autodetect

// ProgressSource identifies detection progress to reporters.
const ProgressSource = "autodetect"

// ProgressReporter receives progress milestones. Calls are synchronous on
// the detection goroutine.
type ProgressReporter interface {
	ReportProgress(source string, percent float64, status string)
}

// ProgressFunc adapts a function to ProgressReporter.
type ProgressFunc func(source string, percent float64, status string)

// ReportProgress calls f.
func (f ProgressFunc) ReportProgress(source string, percent float64, status string) {
	if f != nil {
		f(source, percent, status)
	}
}

type noopProgress struct{}

func (noopProgress) ReportProgress(string, float64, string) {}
