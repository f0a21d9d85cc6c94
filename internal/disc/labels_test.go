package disc

import "testing"

func TestIsUnusableLabel(t *testing.T) {
	tests := []struct {
		label    string
		unusable bool
	}{
		{"", true},
		{"   ", true},
		{"LOGICAL_VOLUME_ID", true},
		{"DVD_VIDEO", true},
		{"BD_ROM", true},
		{"UNTITLED", true},
		{"12345", true},
		{"ABCD", true},
		{"X1", true},
		{"MOVIE_DISC_1", true},
		{"SOME_MOVIE_TITLE", false},
		{"The Matrix", false},
		{"Avatar 2", false},
		{"ABCDE", false},
		{"Heat_1995", false},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			if got := IsUnusableLabel(tc.label); got != tc.unusable {
				t.Errorf("IsUnusableLabel(%q) = %v, want %v", tc.label, got, tc.unusable)
			}
		})
	}
}

func TestDisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		disc *Disc
		want string
	}{
		{"nil disc", nil, "Unknown Disc"},
		{"disc name wins", &Disc{DiscName: "Heat", VolumeLabel: "HEAT"}, "Heat"},
		{"generic label", &Disc{VolumeLabel: "BLURAY"}, "Unknown Disc"},
		{"plain label", &Disc{VolumeLabel: "Inception"}, "Inception"},
		{"underscored label", &Disc{VolumeLabel: "Heat_1995"}, "Heat 1995"},
		{"upper-case label", &Disc{VolumeLabel: "THE_BIG_SLEEP"}, "The Big Sleep"},
		{"numbered disc label", &Disc{VolumeLabel: "MOVIE_DISC_2"}, "Unknown Disc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.disc.DisplayTitle(); got != tc.want {
				t.Fatalf("DisplayTitle() = %q, want %q", got, tc.want)
			}
		})
	}
}
