package pages

import (
	"context"
	"errors"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"catalogUI/internal/browser"
	"catalogUI/internal/config"
	"catalogUI/internal/course"
)

const (
	trainingMenuSelector   = "xpath=//*[text()='Обучение' or contains(text(), 'Обучение')]"
	trainingMenuFallback   = "xpath=//div[contains(@class, 'sc-piuiz2-')]//ancestor::div[contains(text(), 'Обучение') or contains(@class, 'training')]"
	popupSelector          = "div.sc-piuiz2-1.kdOQht"
	allCoursesSection      = "xpath=//p[text()='Все курсы']/following-sibling::div"
	allCoursesCategoryLink = "xpath=//p[text()='Все курсы']/following-sibling::div//a[contains(@href, '/categories/')]"
	directionsSection      = "xpath=//p[text()='Направления']/following-sibling::div"
	categoryLinkSelector   = ".sc-4zz0i4-0.dZepSJ"

	// AllCourses возвращается SelectRandomCategory, когда в меню нет ни одной категории.
	AllCourses = "Все курсы"
)

var ErrTrainingMenuNotFound = errors.New("элемент 'Обучение' не найден на странице")

var categoryPageURL = regexp.MustCompile(`categories|catalog/courses`)

type MainPage struct {
	base
	selectedSlug string
}

func NewMainPage(d *browser.Driver, w *browser.Waiter, cfg *config.Cfg, log *zap.Logger) *MainPage {
	return &MainPage{base: newBase(d, w, cfg, log, "/", "main_page")}
}

// HoverTrainingMenu наводит курсор на "Обучение" и ждёт выпадающее меню.
func (p *MainPage) HoverTrainingMenu(ctx context.Context) error {
	el, err := p.findTrainingMenu()
	if err != nil {
		return err
	}

	text, _ := el.Text()
	p.log.Info("Найден элемент меню", zap.String("tag", el.TagName()), zap.String("text", text))

	p.Highlight(el, "3px solid #FF0000")
	if err := el.Hover(ctx); err != nil {
		return err
	}

	p.waitForPopup()
	return nil
}

func (p *MainPage) findTrainingMenu() (*browser.Element, error) {
	elements, err := p.driver.FindAll(trainingMenuSelector)
	if err != nil {
		return nil, err
	}
	for _, el := range elements {
		if el.Visible() {
			return el, nil
		}
	}

	el, err := p.driver.Find(trainingMenuFallback)
	if err != nil {
		return nil, err
	}
	if !el.Exists() {
		return nil, ErrTrainingMenuNotFound
	}
	return el, nil
}

func (p *MainPage) waitForPopup() {
	if p.waiter.WithTimeout(5 * time.Second).Visible(popupSelector) {
		p.log.Info("Попап появился")
		time.Sleep(time.Second)
		return
	}

	p.log.Info("Попап не появился, проверяем альтернативно")
	if sections, err := p.driver.FindAll(allCoursesSection); err == nil && len(sections) > 0 {
		p.log.Info("Секция 'Все курсы' найдена")
		return
	}
	if links, err := p.driver.FindAll(allCoursesCategoryLink); err == nil && len(links) > 0 {
		p.log.Info("Найдены ссылки на категории", zap.Int("count", len(links)))
		return
	}
	p.log.Warn("Попап не найден альтернативными методами")
}

// CourseCategories раскрывает меню и возвращает ссылки на категории курсов.
func (p *MainPage) CourseCategories(ctx context.Context) ([]*browser.Element, error) {
	if err := p.HoverTrainingMenu(ctx); err != nil {
		return nil, err
	}

	if !p.waiter.WithTimeout(5 * time.Second).Visible(directionsSection) {
		p.log.Warn("Секция 'Направления' не появилась")
	}

	links, err := p.driver.FindAll(categoryLinkSelector)
	if err != nil {
		return nil, err
	}
	p.log.Info("Найдено ссылок категорий", zap.Int("count", len(links)))

	categories := make([]*browser.Element, 0, len(links))
	for _, link := range links {
		href, err := link.Attr("href")
		if err != nil {
			continue
		}
		text, err := link.Text()
		if err != nil {
			continue
		}
		if course.IsCourseCategoryLink(href, text) {
			categories = append(categories, link)
		}
	}
	return categories, nil
}

func (p *MainPage) CategoryNames(ctx context.Context) ([]string, error) {
	categories, err := p.CourseCategories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(categories))
	names := make([]string, 0, len(categories))
	for _, el := range categories {
		text, err := el.Text()
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		names = append(names, text)
	}
	return names, nil
}

// SelectRandomCategory переходит в случайную категорию и возвращает её название.
// Slug категории запоминается и доступен через SelectedCategorySlug.
func (p *MainPage) SelectRandomCategory(ctx context.Context) (string, error) {
	categories, err := p.CourseCategories(ctx)
	if err != nil {
		return "", err
	}

	if len(categories) == 0 {
		p.log.Warn("Категории не найдены, открываем общий каталог")
		if err := p.driver.Open(ctx, p.baseURL+catalogPath); err != nil {
			return "", err
		}
		return AllCourses, nil
	}

	picked := categories[rand.IntN(len(categories))]
	name, _ := picked.Text()
	href, _ := picked.Attr("href")
	p.selectedSlug = course.SlugFromURL(href)

	p.log.Info("Выбрана категория",
		zap.String("name", name),
		zap.String("url", href),
		zap.String("slug", p.selectedSlug),
	)

	p.Highlight(picked, "3px solid #00FF00")

	err = picked.Click(ctx)
	switch {
	case err != nil:
		p.log.Warn("Ошибка при клике по категории", zap.Error(err))
	case p.waiter.URLMatches(ctx, categoryPageURL):
		p.log.Info("Переход на страницу категории выполнен")
		return name, nil
	default:
		p.log.Warn("Адрес не сменился после клика", zap.String("url", p.CurrentURL()))
	}

	p.log.Info("Открываем адрес категории напрямую", zap.String("url", href))
	if err := p.driver.Open(ctx, course.AbsoluteURL(p.baseURL, href)); err != nil {
		return "", err
	}
	return name, nil
}

func (p *MainPage) SelectedCategorySlug() string {
	return p.selectedSlug
}
