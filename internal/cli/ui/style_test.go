package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatStatus(t *testing.T) {
	tests := []struct {
		status string
		icon   string
		color  string
		text   string
	}{
		{"passed", IconCheckmark, ColorGreen, "успешно"},
		{"failed", IconCross, ColorRed, "упал"},
		{"broken", IconCross, ColorYellow, "сломан"},
		{"skipped", IconSkip, ColorGray, "пропущен"},
		{"running", IconClock, ColorYellow, "running"},
	}

	for _, tt := range tests {
		icon, color, text := FormatStatus(tt.status)
		assert.Equal(t, tt.icon, icon, tt.status)
		assert.Equal(t, tt.color, color, tt.status)
		assert.Equal(t, tt.text, text, tt.status)
	}
}

func TestColorsAreEscapeSequences(t *testing.T) {
	assert.Equal(t, "\033[0m", ColorReset)
	assert.Equal(t, "\033[31m", ColorRed)
	assert.Equal(t, "\033[90m", ColorGray)
}
