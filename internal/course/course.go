// Package course содержит разбор дат старта курсов и выбор самых ранних и поздних курсов.
// Одни и те же функции применяются к карточкам из живого DOM и из статического HTML.
package course

import (
	"fmt"
	"strings"
	"time"
)

type Course struct {
	Title string
	URL   string
	Start time.Time
}

func (c Course) HasDate() bool {
	return !c.Start.IsZero()
}

func (c Course) String() string {
	start := "не указана"
	if c.HasDate() {
		start = c.Start.Format(time.DateOnly)
	}
	return fmt.Sprintf("Course{title='%s', startDate=%s, hasDate=%t, url='%s'}", c.Title, start, c.HasDate(), c.URL)
}

// Card хранит сырой текст одной карточки каталога, независимо от источника.
type Card struct {
	Title    string
	DateText string
	Href     string
}

// FromCard превращает карточку в курс. Карточки без названия или ссылки пропускаются,
// нераспознанная дата даёт курс без даты.
func FromCard(card Card, baseURL string) (Course, bool) {
	title := strings.TrimSpace(card.Title)
	if title == "" {
		return Course{}, false
	}

	href := strings.TrimSpace(card.Href)
	if href == "" {
		return Course{}, false
	}

	c := Course{Title: title, URL: AbsoluteURL(baseURL, href)}

	dateText := strings.TrimSpace(card.DateText)
	if IsNoDateMessage(dateText) {
		return c, true
	}

	if start, ok := ParseDate(ExtractDatePart(dateText)); ok {
		c.Start = start
	}
	return c, true
}

// AbsoluteURL дополняет относительную ссылку базовым адресом сайта.
func AbsoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
}

func WithDate(courses []Course) []Course {
	var out []Course
	for _, c := range courses {
		if c.HasDate() {
			out = append(out, c)
		}
	}
	return out
}

func WithoutDate(courses []Course) []Course {
	var out []Course
	for _, c := range courses {
		if !c.HasDate() {
			out = append(out, c)
		}
	}
	return out
}

// Distinct убирает повторы одной и той же карточки, первая встреченная остаётся.
func Distinct(courses []Course) []Course {
	seen := make(map[string]bool, len(courses))
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		key := c.Title + "|" + c.URL + "|" + c.Start.Format(time.DateOnly)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// Earliest возвращает все курсы с минимальной датой старта.
func Earliest(courses []Course) []Course {
	return selectBy(courses, func(a, b time.Time) bool { return a.Before(b) })
}

// Latest возвращает все курсы с максимальной датой старта.
func Latest(courses []Course) []Course {
	return selectBy(courses, func(a, b time.Time) bool { return a.After(b) })
}

func selectBy(courses []Course, better func(a, b time.Time) bool) []Course {
	dated := WithDate(courses)
	if len(dated) == 0 {
		return []Course{}
	}

	best := dated[0].Start
	for _, c := range dated[1:] {
		if better(c.Start, best) {
			best = c.Start
		}
	}

	out := []Course{}
	for _, c := range dated {
		if c.Start.Equal(best) {
			out = append(out, c)
		}
	}
	return out
}

// FirstDate возвращает дату первого курса подборки, нулевую для пустой.
func FirstDate(courses []Course) time.Time {
	if len(courses) == 0 {
		return time.Time{}
	}
	return courses[0].Start
}

type Stats struct {
	Total       int
	WithDate    int
	WithoutDate int
}

func CountStats(courses []Course) Stats {
	withDate := len(WithDate(courses))
	return Stats{
		Total:       len(courses),
		WithDate:    withDate,
		WithoutDate: len(courses) - withDate,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("Всего курсов: %d\nС указанной датой: %d\nБез даты: %d", s.Total, s.WithDate, s.WithoutDate)
}

// FormatList печатает первые три курса и число оставшихся.
func FormatList(courses []Course) string {
	if len(courses) == 0 {
		return "Нет курсов"
	}

	var sb strings.Builder
	for i, c := range courses {
		if i == 3 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s - %s\n", i+1, c.Title, FormatDate(c.Start))
	}
	if len(courses) > 3 {
		fmt.Fprintf(&sb, "... и еще %d курсов", len(courses)-3)
	}
	return sb.String()
}
