//go:build e2e

package e2e

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogUI/internal/course"
	"catalogUI/internal/pages"
	"catalogUI/internal/parser"
	"catalogUI/internal/uitest"
)

func TestCatalogCoursesDates(t *testing.T) {
	var (
		catalog *pages.CatalogPage
		p       *parser.Parser
		fetcher *parser.Fetcher
	)
	ui := uitest.New(t, &catalog, &p, &fetcher)
	ui.Behavior("Каталог курсов Otus", "Сценарий 2: Поиск курсов по дате", "Поиск курсов с самой ранней и поздней датой начала")
	ui.Report.Label("severity", "critical")
	ui.Report.Description("Поиск курсов с минимальной и максимальной датой начала через page objects и статический разбор HTML")
	ctx := ui.Context()

	var (
		courses []course.Course
		html    string
	)

	ui.Step("Шаг 1: Открыть страницу каталога курсов", func() {
		require.NoError(t, catalog.Open(ctx))
		ui.AttachText("Каталог открыт", "URL: "+catalog.CurrentURL())
		time.Sleep(2 * time.Second)
	})

	// Карточки и DOM снимаются один раз, дальше все шаги сверяют этот снимок.
	ui.Step("Шаг 2: Собрать курсы и HTML каталога", func() {
		var err error
		courses, err = catalog.Courses(ctx)
		require.NoError(t, err)
		html, err = catalog.HTML()
		require.NoError(t, err)
		ui.AttachText("Статистика", course.CountStats(courses).String())
		require.NotEmpty(t, course.WithDate(courses), "в каталоге должны быть курсы с датой")
	})

	var earliestLive, latestLive []course.Course

	ui.Step("Шаг 3: Найти курсы с самой ранней датой (браузер)", func() {
		earliestLive = course.Earliest(courses)
		ui.AttachText("Ранние курсы (браузер)", fmt.Sprintf("Найдено: %d курсов\n%s", len(earliestLive), course.FormatList(earliestLive)))
		require.NotEmpty(t, earliestLive, "должны быть найдены курсы с самой ранней датой")
		ui.AttachText("Самая ранняя дата (браузер)", course.FormatDate(course.FirstDate(earliestLive)))
	})

	var earliestStatic, latestStatic []course.Course

	ui.Step("Шаг 4: Найти курсы с самой ранней датой (goquery)", func() {
		var err error
		earliestStatic, err = p.Earliest(html)
		require.NoError(t, err)
		ui.AttachText("Ранние курсы (goquery)", fmt.Sprintf("Найдено: %d курсов\n%s", len(earliestStatic), course.FormatList(earliestStatic)))
		require.NotEmpty(t, earliestStatic, "статический разбор должен найти курсы с самой ранней датой")
	})

	ui.Step("Шаг 5: Найти курсы с самой поздней датой (браузер)", func() {
		latestLive = course.Latest(courses)
		ui.AttachText("Поздние курсы (браузер)", fmt.Sprintf("Найдено: %d курсов\n%s", len(latestLive), course.FormatList(latestLive)))
		require.NotEmpty(t, latestLive, "должны быть найдены курсы с самой поздней датой")
		ui.AttachText("Самая поздняя дата (браузер)", course.FormatDate(course.FirstDate(latestLive)))
	})

	ui.Step("Шаг 6: Найти курсы с самой поздней датой (goquery)", func() {
		var err error
		latestStatic, err = p.Latest(html)
		require.NoError(t, err)
		ui.AttachText("Поздние курсы (goquery)", fmt.Sprintf("Найдено: %d курсов\n%s", len(latestStatic), course.FormatList(latestStatic)))
		require.NotEmpty(t, latestStatic, "статический разбор должен найти курсы с самой поздней датой")
	})

	ui.Step("Шаг 7: Сравнить результаты браузера и goquery", func() {
		ui.AttachText("Сравнение результатов", fmt.Sprintf(
			"Ранние курсы:\n  браузер: %d курсов\n  goquery: %d курсов\n\nПоздние курсы:\n  браузер: %d курсов\n  goquery: %d курсов",
			len(earliestLive), len(earliestStatic), len(latestLive), len(latestStatic)))

		assert.True(t, course.FirstDate(earliestStatic).Equal(course.FirstDate(earliestLive)),
			"самые ранние даты должны совпадать: %s и %s",
			course.FormatDate(course.FirstDate(earliestStatic)), course.FormatDate(course.FirstDate(earliestLive)))
		assert.True(t, course.FirstDate(latestStatic).Equal(course.FirstDate(latestLive)),
			"самые поздние даты должны совпадать: %s и %s",
			course.FormatDate(course.FirstDate(latestStatic)), course.FormatDate(course.FirstDate(latestLive)))
		assert.Equal(t, titles(earliestLive), titles(earliestStatic), "ранние курсы должны совпадать")
		assert.Equal(t, titles(latestLive), titles(latestStatic), "поздние курсы должны совпадать")
	})

	ui.Step("Шаг 8: Проверить данные на странице курса с помощью goquery", func() {
		if len(earliestLive) == 0 {
			return
		}
		first := earliestLive[0]
		ui.AttachText("Проверка курса", "Курс: "+first.Title+"\nURL: "+first.URL)

		info, err := fetcher.CoursePage(ctx, first.URL)
		require.NoError(t, err)
		ui.AttachText("Результат разбора", "Заголовок на странице: "+info.Title+"\nДата на странице: "+info.DateText)
		assert.NotEmpty(t, info.Title, "название курса на странице не должно быть пустым")
	})
}

func titles(courses []course.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Title)
	}
	sort.Strings(out)
	return out
}
