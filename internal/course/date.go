package course

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Фразы, которыми каталог обозначает отсутствие даты старта.
var noDatePhrases = []string{
	"объявлено позже",
	"дата уточняется",
	"будет объявлено",
	"не указана",
	"скоро объявим",
	"дата старта уточняется",
}

// Формат карточки каталога: "15 января, 2025 · 5 месяцев".
var cardDatePattern = regexp.MustCompile(`\d{1,2}\s+[а-я]+,\s+\d{4}`)

var months = map[string]time.Month{
	"января": time.January, "январь": time.January,
	"февраля": time.February, "февраль": time.February,
	"марта": time.March, "март": time.March,
	"апреля": time.April, "апрель": time.April,
	"мая": time.May, "май": time.May,
	"июня": time.June, "июнь": time.June,
	"июля": time.July, "июль": time.July,
	"августа": time.August, "август": time.August,
	"сентября": time.September, "сентябрь": time.September,
	"октября": time.October, "октябрь": time.October,
	"ноября": time.November, "ноябрь": time.November,
	"декабря": time.December, "декабрь": time.December,
}

var genitiveMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

func lower(s string) string {
	// Caser хранит состояние, поэтому создаётся на каждый вызов.
	return cases.Lower(language.Russian).String(s)
}

func hasNoDatePhrase(lowerText string) bool {
	for _, phrase := range noDatePhrases {
		if strings.Contains(lowerText, phrase) {
			return true
		}
	}
	return false
}

// IsNoDateMessage сообщает, что текст карточки не содержит конкретной даты старта:
// он пуст, содержит одну из фраз-заглушек или не похож на "15 января, 2025".
func IsNoDateMessage(text string) bool {
	if strings.TrimSpace(text) == "" {
		return true
	}
	if hasNoDatePhrase(lower(text)) {
		return true
	}
	return !cardDatePattern.MatchString(text)
}

// ExtractDatePart возвращает часть текста до первого "·".
func ExtractDatePart(text string) string {
	if text == "" {
		return ""
	}
	part, _, _ := strings.Cut(text, "·")
	return strings.TrimSpace(part)
}

// ParseDate разбирает "15 января, 2025" в дату (UTC, полночь).
// Пустой текст, фраза-заглушка и нераспознанный формат дают false.
func ParseDate(text string) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}

	lowerText := lower(text)
	if hasNoDatePhrase(lowerText) {
		return time.Time{}, false
	}

	clean := strings.NewReplacer("·", "", "•", "").Replace(lowerText)
	parts := strings.Fields(clean)
	if len(parts) < 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 {
		return time.Time{}, false
	}

	month, ok := months[strings.ReplaceAll(parts[1], ",", "")]
	if !ok {
		return time.Time{}, false
	}

	if len(parts[2]) != 4 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, false
	}

	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	// 31 февраля сдвигается на последний день месяца
	if last := daysIn(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatDate печатает дату как "05 марта 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Дата не указана"
	}
	return t.Format("02") + " " + genitiveMonths[t.Month()-1] + " " + t.Format("2006")
}
