package disc

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	allDigitsPattern = regexp.MustCompile(`^\d+$`)
	shortCodePattern = regexp.MustCompile(`^[A-Z0-9_]{1,4}$`)
)

// genericLabelMarkers appear in authoring-tool default volume labels.
var genericLabelMarkers = []string{
	"LOGICAL_VOLUME_ID", "VOLUME_ID", "DVD_VIDEO", "BLURAY", "BD_ROM",
	"UNTITLED", "UNKNOWN DISC", "VOLUME_", "VOLUME ID", "DISK_", "TRACK_",
}

// IsUnusableLabel returns true if a volume label is too generic to show as a
// disc title.
func IsUnusableLabel(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return true
	}
	upper := strings.ToUpper(label)
	for _, marker := range genericLabelMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	switch {
	case allDigitsPattern.MatchString(label):
		return true
	case shortCodePattern.MatchString(upper):
		return true
	case (strings.Contains(upper, "DISC") || strings.Contains(upper, "DISK")) && strings.Contains(upper, "_"):
		return true
	}
	return false
}

// DisplayTitle returns the best human-readable name for the disc.
func (d *Disc) DisplayTitle() string {
	if d == nil {
		return "Unknown Disc"
	}
	if name := strings.TrimSpace(d.DiscName); name != "" {
		return name
	}
	label := strings.TrimSpace(d.VolumeLabel)
	if IsUnusableLabel(label) {
		return "Unknown Disc"
	}
	if strings.Contains(label, "_") {
		label = strings.ReplaceAll(label, "_", " ")
		return cases.Title(language.Und).String(strings.ToLower(label))
	}
	return label
}
