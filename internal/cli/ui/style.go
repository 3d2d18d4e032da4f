// Package ui хранит оформление вывода команд в терминале.
package ui

const csi = "\033["

const (
	ColorReset  = csi + "0m"
	ColorBold   = csi + "1m"
	ColorRed    = csi + "31m"
	ColorGreen  = csi + "32m"
	ColorYellow = csi + "33m"
	ColorCyan   = csi + "36m"
	ColorGray   = csi + "90m"
)

// Иконки статусов прогона
const (
	IconCheckmark = "✓"
	IconCross     = "✗"
	IconSkip      = "⏭"
	IconClock     = "⏳"
)

// Иконки заголовков в выводе dates, course и runs
const (
	IconList     = "📋"
	IconChart    = "📊"
	IconTime     = "🕐"
	IconDocument = "📝"
	IconCalendar = "📅"
	IconGlobe    = "🌐"
)

type statusStyle struct {
	icon, color, text string
}

var statusStyles = map[string]statusStyle{
	"passed":  {IconCheckmark, ColorGreen, "успешно"},
	"failed":  {IconCross, ColorRed, "упал"},
	"broken":  {IconCross, ColorYellow, "сломан"},
	"skipped": {IconSkip, ColorGray, "пропущен"},
}

// FormatStatus возвращает иконку, цвет и текст для статуса прогона.
// Неизвестный статус печатается как есть.
func FormatStatus(status string) (icon, color, text string) {
	if s, ok := statusStyles[status]; ok {
		return s.icon, s.color, s.text
	}
	return IconClock, ColorYellow, status
}
