//go:build e2e

package e2e

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogUI/internal/pages"
	"catalogUI/internal/uitest"
)

func TestTrainingMenuRandomCategory(t *testing.T) {
	var (
		mainPage *pages.MainPage
		catalog  *pages.CatalogPage
	)
	ui := uitest.New(t, &mainPage, &catalog)
	ui.Behavior("Главная страница Otus", "Сценарий 3: Навигация по меню", "Выбор случайной категории из меню 'Обучение'")
	ui.Report.Label("severity", "normal")
	ctx := ui.Context()

	var selected string

	ui.Step("Шаг 1: Открыть главную страницу Otus", func() {
		require.NoError(t, mainPage.Open(ctx))
		ui.AttachText("Главная страница", "URL: "+mainPage.CurrentURL())
		assert.True(t, strings.HasPrefix(mainPage.CurrentURL(), mainPage.URL()), "должна быть открыта главная страница")
	})

	ui.Step("Шаг 2: Навести курсор на меню 'Обучение'", func() {
		require.NoError(t, mainPage.HoverTrainingMenu(ctx))
	})

	ui.Step("Шаг 3: Получить список всех категорий", func() {
		names, err := mainPage.CategoryNames(ctx)
		require.NoError(t, err)

		shown := names
		if len(shown) > 5 {
			shown = shown[:5]
		}
		text := fmt.Sprintf("Найдено категорий: %d\n%s", len(names), strings.Join(shown, "\n"))
		if len(names) > 5 {
			text += fmt.Sprintf("\n... и еще %d категорий", len(names)-5)
		}
		ui.AttachText("Доступные категории", text)
		require.NotEmpty(t, names, "должны быть найдены категории курсов")
	})

	ui.Step("Шаг 4: Выбрать случайную категорию", func() {
		var err error
		selected, err = mainPage.SelectRandomCategory(ctx)
		require.NoError(t, err)
		ui.AttachText("Выбранная категория", "Название: "+selected+"\nSlug: "+mainPage.SelectedCategorySlug())
	})

	ui.Step("Шаг 5: Проверить что открыт каталог с выбранной категорией", func() {
		current := catalog.CurrentURL()
		ui.AttachText("Текущий URL", current)
		assert.Regexp(t, `(/catalog/|/categories/)`, current, "должен быть открыт каталог курсов")

		slug := catalog.CategorySlugFromURL()
		applied := catalog.IsCategoryFilterApplied(ctx, slug)
		ui.AttachText("Проверка категории", fmt.Sprintf(
			"Выбрано из меню: %s\nSlug из меню: %s\nSlug из URL: %s\nФильтр применен: %t",
			selected, mainPage.SelectedCategorySlug(), slug, applied))

		if slug != "" && mainPage.SelectedCategorySlug() != "" {
			assert.Equal(t, mainPage.SelectedCategorySlug(), slug, "slug в URL должен соответствовать выбранной категории")
		} else {
			assert.True(t, applied, "фильтр по категории должен быть применен")
		}
	})

	ui.Step("Шаг 6: Проверить что на странице есть курсы", func() {
		names, err := catalog.CourseNames(ctx)
		require.NoError(t, err)
		ui.AttachText("Количество курсов", fmt.Sprint(len(names)))
		require.NotEmpty(t, names, "на странице категории должны быть курсы")

		if len(names) > 3 {
			names = names[:3]
		}
		ui.AttachText("Примеры курсов", strings.Join(names, "\n"))
	})

	ui.Step("Шаг 7: Проверить заголовок страницы", func() {
		title, err := catalog.PageTitle()
		require.NoError(t, err)
		ui.AttachText("Заголовок страницы", title)
		assert.NotEmpty(t, title, "заголовок страницы не должен быть пустым")
	})
}
