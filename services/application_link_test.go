package services

import "testing"

func TestApplicationSlug(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		suffix string
		want   string
	}{
		{"plain", "Harbour View 2026", "", "harbour-view-2026"},
		{"punctuation", "Elm Court: Spring Intake!", "", "elm-court-spring-intake"},
		{"suffix", "Elm Court", "AB12CD34", "elm-court-ab12cd"},
		{"empty name", "   ", "x1", "application-x1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplicationSlug(tt.title, tt.suffix); got != tt.want {
				t.Errorf("ApplicationSlug(%q, %q) = %q, want %q", tt.title, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestApplicationLink(t *testing.T) {
	if got := ApplicationLink("elm-court"); got != "/apply/elm-court" {
		t.Errorf("ApplicationLink() = %q", got)
	}
}
