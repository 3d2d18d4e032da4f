package course

import (
	"net/url"
	"regexp"
	"strings"
)

var categorySlugs = map[string]string{
	"программирование":        "programming",
	"архитектура":             "architecture",
	"инфраструктура":          "operations",
	"безопасность":            "information-security-courses",
	"управление":              "marketing-business",
	"аналитика и анализ":      "analytics",
	"бизнес и продукт в it":   "business-product",
	"it без программирования": "it-bez-programmirovanija",
	"импортозамещение":        "import-substitution",
	"корпоративные курсы":     "corporate",
}

var categoryInURL = regexp.MustCompile(`categories[/=]([a-z\-]+)`)

var categoryLinkExcludes = []string{"Мои курсы", "Показать все", "События", "Другое"}

// CategorySlug переводит название категории из меню в slug каталога.
func CategorySlug(name string) string {
	if name == "" {
		return ""
	}

	key := lower(strings.TrimSpace(name))
	if slug, ok := categorySlugs[key]; ok {
		return slug
	}

	slug := strings.NewReplacer(" ", "-", "(", "", ")", "").Replace(key)
	return strings.ReplaceAll(slug, "game-dev", "gamedev")
}

// CategorySlugFromURL достаёт slug из "/categories/<slug>" или "?categories=<slug>".
func CategorySlugFromURL(rawURL string) string {
	m := categoryInURL.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}
	return m[1]
}

// URLHasCategory сообщает, что адрес уже отфильтрован по категории.
func URLHasCategory(rawURL, slug string) bool {
	u := lower(rawURL)
	s := lower(slug)
	return strings.Contains(u, "/categories/"+s) || strings.Contains(u, "categories="+s)
}

// SlugFromURL возвращает последний непустой сегмент пути без query.
func SlugFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// LessonSlug возвращает часть адреса после "/lessons/".
func LessonSlug(rawURL string) string {
	_, rest, ok := strings.Cut(rawURL, "/lessons/")
	if !ok {
		return ""
	}
	rest, _, _ = strings.Cut(rest, "?")
	return strings.TrimSuffix(rest, "/")
}

// CardSlug возвращает хвост ссылки карточки курса.
func CardSlug(href string) string {
	href, _, _ = strings.Cut(href, "?")
	href = strings.TrimSuffix(href, "/")
	return href[strings.LastIndex(href, "/")+1:]
}

// TitlesMatch: заголовок страницы курса и название из каталога совпадают,
// если одно содержит другое.
func TitlesMatch(actual, expected string) bool {
	return strings.Contains(actual, expected) || strings.Contains(expected, actual)
}

// IsCourseCategoryLink отбирает ссылки меню "Обучение", ведущие на категории курсов.
func IsCourseCategoryLink(href, text string) bool {
	text = strings.TrimSpace(text)
	if href == "" || text == "" || !strings.Contains(href, "/categories/") {
		return false
	}
	for _, exclude := range categoryLinkExcludes {
		if strings.Contains(text, exclude) {
			return false
		}
	}
	return true
}
