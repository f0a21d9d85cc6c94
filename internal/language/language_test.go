package language

import (
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"spa", "es"},
		{"fre", "fr"},
		{"ger", "de"},
		{"chi", "zh"},
		{"dut", "nl"},
		{"cze", "cs"},
		{"english", "en"},
		{"GERMAN", "de"},
		{"en-US", "en"},
		{"hun", "hu"},
		{"abcd", ""},
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO2(tt.input); result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"fr", "fra"},
		{"fre", "fra"},
		{"de", "deu"},
		{"zh", "zho"},
		{"eng", "eng"},
		{"French", "fra"},
		{"hu", "hun"},
		{"hun", "hun"},
		{"en_GB", "eng"},
		{"abcd", "und"},
		{"", "und"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO3(tt.input); result != tt.expected {
				t.Errorf("ToISO3(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"eng", "en", true},
		{"fre", "fra", true},
		{"English", "eng", true},
		{"eng", "fra", false},
		{"", "", false},
		{"und", "und", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.a, tt.b); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"fre", "French"},
		{"ger", "German"},
		{"zho", "Chinese"},
		{"hun", "Hungarian"},
		{"", "Unknown"},
		{"und", "Unknown"},
		{"abcd", "ABCD"},
		{"english", "English"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := DisplayName(tt.input); result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
