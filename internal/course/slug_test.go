package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySlug(t *testing.T) {
	tests := map[string]string{
		"":                        "",
		"Программирование":        "programming",
		"Аналитика и анализ":      "analytics",
		"IT без программирования": "it-bez-programmirovanija",
		"Data Science":            "data-science",
		"Game Dev":                "gamedev",
		"Тестирование (QA)":       "тестирование-qa",
	}

	for name, want := range tests {
		assert.Equal(t, want, CategorySlug(name), name)
	}
}

func TestCategorySlugFromURL(t *testing.T) {
	assert.Equal(t, "programming", CategorySlugFromURL("https://otus.ru/categories/programming"))
	assert.Equal(t, "data-science", CategorySlugFromURL("https://otus.ru/catalog/courses?categories=data-science&page=2"))
	assert.Equal(t, "", CategorySlugFromURL("https://otus.ru/catalog/courses"))
}

func TestURLHasCategory(t *testing.T) {
	assert.True(t, URLHasCategory("https://otus.ru/categories/Programming", "programming"))
	assert.True(t, URLHasCategory("https://otus.ru/catalog/courses?categories=analytics", "analytics"))
	assert.False(t, URLHasCategory("https://otus.ru/catalog/courses", "analytics"))
}

func TestSlugFromURL(t *testing.T) {
	assert.Equal(t, "operations", SlugFromURL("https://otus.ru/categories/operations/?utm=menu"))
	assert.Equal(t, "", SlugFromURL("https://otus.ru/"))
	assert.Equal(t, "", SlugFromURL(""))
}

func TestLessonSlug(t *testing.T) {
	assert.Equal(t, "angular", LessonSlug("https://otus.ru/lessons/angular/?int_source=catalog"))
	assert.Equal(t, "angular", LessonSlug("https://otus.ru/lessons/angular"))
	assert.Equal(t, "", LessonSlug("https://otus.ru/catalog/courses"))
}

func TestCardSlug(t *testing.T) {
	assert.Equal(t, "angular", CardSlug("https://otus.ru/lessons/angular?from=catalog"))
	assert.Equal(t, "angular", CardSlug("https://otus.ru/lessons/angular/"))
	assert.Equal(t, "angular", CardSlug("angular"))
}

func TestTitlesMatch(t *testing.T) {
	assert.True(t, TitlesMatch("Angular Developer", "Angular Developer"))
	assert.True(t, TitlesMatch("Онлайн-курс Angular Developer", "Angular Developer"))
	assert.True(t, TitlesMatch("Angular", "Angular Developer"))
	assert.False(t, TitlesMatch("React Developer", "Angular Developer"))
}

func TestIsCourseCategoryLink(t *testing.T) {
	assert.True(t, IsCourseCategoryLink("https://otus.ru/categories/programming", "Программирование"))
	assert.False(t, IsCourseCategoryLink("https://otus.ru/categories/programming", " "))
	assert.False(t, IsCourseCategoryLink("https://otus.ru/events", "События"))
	assert.False(t, IsCourseCategoryLink("https://otus.ru/categories/all", "Показать все"))
	assert.False(t, IsCourseCategoryLink("", "Программирование"))
}
