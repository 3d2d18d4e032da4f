package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsNoDateMessage(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"Дата объявлено позже", true},
		{"Дата уточняется", true},
		{"Старт будет объявлено", true},
		{"Дата не указана", true},
		{"Скоро объявим", true},
		{"ДАТА СТАРТА УТОЧНЯЕТСЯ", true},
		{"В любой момент", true},
		{"15 января 2025", true},
		{"15 января, 2025 · 5 месяцев", false},
		{"3 марта, 2026", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoDateMessage(tt.text))
		})
	}
}

func TestExtractDatePart(t *testing.T) {
	assert.Equal(t, "", ExtractDatePart(""))
	assert.Equal(t, "15 января, 2025", ExtractDatePart("15 января, 2025 · 5 месяцев"))
	assert.Equal(t, "15 января, 2025", ExtractDatePart("  15 января, 2025  "))
	assert.Equal(t, "", ExtractDatePart("· 5 месяцев"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{"genitive with comma", "15 января, 2025", date(2025, time.January, 15), true},
		{"single digit day", "3 марта, 2026", date(2026, time.March, 3), true},
		{"without comma", "28 декабря 2024", date(2024, time.December, 28), true},
		{"nominative month", "1 май 2025", date(2025, time.May, 1), true},
		{"capitalized month", "10 Октября, 2025", date(2025, time.October, 10), true},
		{"bullets stripped", "• 5 июня, 2025 ·", date(2025, time.June, 5), true},
		{"trailing text ignored", "7 июля, 2025 5 месяцев", date(2025, time.July, 7), true},
		{"leap day", "29 февраля, 2028", date(2028, time.February, 29), true},
		{"empty", "", time.Time{}, false},
		{"sentinel", "Дата уточняется", time.Time{}, false},
		{"too short", "15 января", time.Time{}, false},
		{"unknown month", "15 jan, 2025", time.Time{}, false},
		{"february overflow clamped", "31 февраля, 2025", date(2025, time.February, 28), true},
		{"non leap clamped", "29 февраля, 2025", date(2025, time.February, 28), true},
		{"leap overflow clamped", "30 февраля, 2024", date(2024, time.February, 29), true},
		{"april overflow clamped", "31 апреля 2025", date(2025, time.April, 30), true},
		{"last day kept", "31 декабря, 2025", date(2025, time.December, 31), true},
		{"zero day", "0 января, 2025", time.Time{}, false},
		{"day above 31", "32 января, 2025", time.Time{}, false},
		{"bad year", "15 января, 25", time.Time{}, false},
		{"bad day", "первое января, 2025", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.text)
			require.Equal(t, tt.ok, ok)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Дата не указана", FormatDate(time.Time{}))
	assert.Equal(t, "05 марта 2025", FormatDate(date(2025, time.March, 5)))
	assert.Equal(t, "31 декабря 2024", FormatDate(date(2024, time.December, 31)))
}

func TestFormatDateRoundTrip(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		d := date(2025, m, 12)
		got, ok := ParseDate(FormatDate(d))
		require.True(t, ok, m.String())
		assert.True(t, d.Equal(got))
	}
}
