package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorYellow, "3"},
		{ColorBrightWhite, "15"},
		{ColorGray, "245"},
		{colorCount, ""},
		{Color(200), ""},
	}

	for _, tt := range tests {
		if got := tt.color.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestPaletteHasCodes(t *testing.T) {
	for c := ColorDefault + 1; c < colorCount; c++ {
		if c.ANSI() == "" {
			t.Errorf("Color(%d) has no ANSI code", c)
		}
	}
}
