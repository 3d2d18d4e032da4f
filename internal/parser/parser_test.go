package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"catalogUI/internal/course"
)

func mustRead(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	return string(data)
}

func newParser(t *testing.T) *Parser {
	return New("https://otus.ru", zaptest.NewLogger(t))
}

func titles(courses []course.Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Title)
	}
	return out
}

func TestCourses(t *testing.T) {
	p := newParser(t)

	courses, err := p.CoursesString(mustRead(t, "testdata/catalog.html"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Angular Developer",
		"Golang Developer. Professional",
		"Kotlin Backend Developer",
		"Machine Learning",
		"Highload Architect",
		"QA Automation Engineer",
	}, titles(courses))

	assert.Equal(t, "https://otus.ru/lessons/angular/", courses[0].URL)
	assert.Equal(t, "https://otus.ru/lessons/kotlin/", courses[2].URL)
	assert.False(t, courses[3].HasDate())
	assert.False(t, courses[5].HasDate())
	assert.Equal(t, course.Stats{Total: 6, WithDate: 4, WithoutDate: 2}, course.CountStats(courses))
}

func TestCards(t *testing.T) {
	cards, err := newParser(t).Cards(strings.NewReader(mustRead(t, "testdata/catalog.html")))
	require.NoError(t, err)

	require.Len(t, cards, 9)
	assert.Equal(t, course.Card{
		Title:    "Angular Developer",
		DateText: "27 марта, 2025 · 5 месяцев",
		Href:     "/lessons/angular/",
	}, cards[0])
	assert.Empty(t, cards[7].Href)
}

func TestEarliestLatest(t *testing.T) {
	p := newParser(t)
	html := mustRead(t, "testdata/catalog.html")

	earliest, err := p.Earliest(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Golang Developer. Professional", "Kotlin Backend Developer"}, titles(earliest))
	assert.True(t, time.Date(2025, time.February, 12, 0, 0, 0, 0, time.UTC).Equal(earliest[0].Start))

	latest, err := p.Latest(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Highload Architect"}, titles(latest))
}

func TestEarliestNoCards(t *testing.T) {
	p := newParser(t)

	earliest, err := p.Earliest("<html><body><h1>Пусто</h1></body></html>")
	require.NoError(t, err)
	assert.Empty(t, earliest)

	latest, err := p.Latest("")
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestParseCoursePage(t *testing.T) {
	info, err := newParser(t).ParseCoursePage(strings.NewReader(mustRead(t, "testdata/course.html")), " https://otus.ru/lessons/angular/ ")
	require.NoError(t, err)

	assert.Equal(t, CoursePageInfo{
		Title:    "Angular Developer",
		DateText: "27 марта",
		URL:      "https://otus.ru/lessons/angular/",
	}, info)
}

func TestParseCoursePagePrefersCatalogDateSelector(t *testing.T) {
	html := `<h1>Go</h1><div class="start-date">позже</div>
<div class="sc-157icee-1"><span class="sc-hrqzy3-1">3 марта, 2026</span></div>`

	info, err := newParser(t).ParseCoursePage(strings.NewReader(html), "u")
	require.NoError(t, err)
	assert.Equal(t, "3 марта, 2026", info.DateText)
}

func TestFetcherCoursePage(t *testing.T) {
	page := mustRead(t, "testdata/course.html")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := NewFetcher(newParser(t), srv.Client())

	info, err := f.CoursePage(context.Background(), srv.URL+"/lessons/angular/")
	require.NoError(t, err)
	assert.Equal(t, "Angular Developer", info.Title)

	info, err = f.CoursePage(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Equal(t, srv.URL+"/missing", info.URL)
	assert.Empty(t, info.Title)
}
