package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"catalogUI/internal/browser"
	"catalogUI/internal/config"
	"catalogUI/internal/course"
	"catalogUI/internal/parser"
)

const (
	catalogPath = "/catalog/courses"

	pageTitleSelector   = "h1.sc-hrqzy3-0"
	showMoreSelector    = "button.sc-1qig7zt-0.bYRRHi.sc-prqxfo-0.cXVWAS"
	activeFilterSelect  = "[value='true']"
	filterLabelSelector = "label.sc-1fry39v-1"

	availableNamesLimit = 10
)

var ErrCourseNotFound = errors.New("курс не найден")

type CatalogPage struct {
	base
}

func NewCatalogPage(d *browser.Driver, w *browser.Waiter, cfg *config.Cfg, log *zap.Logger) *CatalogPage {
	return &CatalogPage{base: newBase(d, w, cfg, log, catalogPath, "catalog_page")}
}

// Open открывает каталог и ждёт заголовок и хотя бы одну карточку.
func (p *CatalogPage) Open(ctx context.Context) error {
	return p.OpenURL(ctx, p.URL())
}

// OpenURL открывает произвольную страницу каталога, например отфильтрованную по категории.
func (p *CatalogPage) OpenURL(ctx context.Context, url string) error {
	if err := p.driver.Open(ctx, url); err != nil {
		return err
	}
	if !p.waiter.Present(pageTitleSelector) {
		return fmt.Errorf("заголовок каталога %s не появился", pageTitleSelector)
	}
	if !p.waiter.Present(parser.CardSelector) {
		return fmt.Errorf("карточки курсов %s не появились", parser.CardSelector)
	}
	return nil
}

// PageTitle возвращает текст первого h1, а без него заголовок документа.
func (p *CatalogPage) PageTitle() (string, error) {
	headers, err := p.driver.FindAll("h1")
	if err == nil && len(headers) > 0 {
		if text, err := headers[0].Text(); err == nil && text != "" {
			return text, nil
		}
	}
	return p.driver.Title()
}

// CourseCards возвращает все карточки, один раз нажимая "Показать еще".
func (p *CatalogPage) CourseCards(ctx context.Context) ([]*browser.Element, error) {
	cards, err := p.driver.FindAll(parser.CardSelector)
	if err != nil {
		return nil, err
	}
	p.log.Info("Найдено карточек", zap.Int("count", len(cards)))

	button, err := p.driver.Find(showMoreSelector)
	if err != nil || !button.Exists() || !button.Visible() {
		return cards, nil
	}

	p.log.Info("Нажимаем 'Показать еще'")
	if err := button.JSClick(ctx); err != nil {
		p.log.Warn("Кнопка 'Показать еще' не кликабельна", zap.Error(err))
		return cards, nil
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(2 * time.Second):
	}

	// Догруженные карточки рендерятся по мере прокрутки
	if err := p.driver.ScrollToBottom(); err != nil {
		p.log.Warn("Не удалось прокрутить каталог вниз", zap.Error(err))
	}

	cards, err = p.driver.FindAll(parser.CardSelector)
	if err != nil {
		return nil, err
	}
	p.log.Info("Карточек после 'Показать еще'", zap.Int("count", len(cards)))
	return cards, nil
}

func cardTitle(card *browser.Element) string {
	el, err := card.Find(parser.TitleSelector)
	if err != nil {
		return ""
	}
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return text
}

func cardDateText(card *browser.Element) string {
	el, err := card.Find(parser.DateSelector)
	if err != nil {
		return ""
	}
	text, _ := el.Text()
	return text
}

// CourseNames возвращает уникальные непустые названия курсов в порядке карточек.
func (p *CatalogPage) CourseNames(ctx context.Context) ([]string, error) {
	cards, err := p.CourseCards(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(cards))
	names := make([]string, 0, len(cards))
	for _, card := range cards {
		title := cardTitle(card)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		names = append(names, title)
	}
	return names, nil
}

func (p *CatalogPage) findCard(ctx context.Context, name string) (*browser.Element, error) {
	cards, err := p.CourseCards(ctx)
	if err != nil {
		return nil, err
	}
	for _, card := range cards {
		if cardTitle(card) == name {
			return card, nil
		}
	}

	names, _ := p.CourseNames(ctx)
	return nil, courseNotFound(name, names)
}

func courseNotFound(name string, available []string) error {
	if len(available) > availableNamesLimit {
		available = available[:availableNamesLimit]
	}
	return fmt.Errorf("%w: %s\nДоступные курсы (первые %d):\n- %s",
		ErrCourseNotFound, name, availableNamesLimit, strings.Join(available, "\n- "))
}

// ClickCourseByName кликает по карточке с точно совпадающим названием.
func (p *CatalogPage) ClickCourseByName(ctx context.Context, name string) error {
	p.log.Info("Ищем курс для клика", zap.String("name", name))

	card, err := p.findCard(ctx, name)
	if err != nil {
		return err
	}

	p.Highlight(card, "3px solid magenta")
	if err := card.Click(ctx); err != nil {
		return err
	}

	p.log.Info("Курс кликнут", zap.String("name", name))
	return nil
}

// CardSlug возвращает хвост ссылки карточки курса с названием name.
func (p *CatalogPage) CardSlug(ctx context.Context, name string) (string, error) {
	card, err := p.findCard(ctx, name)
	if err != nil {
		return "", err
	}
	href, err := card.Attr("href")
	if err != nil {
		return "", err
	}
	return course.CardSlug(href), nil
}

// Cards снимает текст карточек из живого DOM в том же виде, что и статический разбор.
func (p *CatalogPage) Cards(ctx context.Context) ([]course.Card, error) {
	elements, err := p.CourseCards(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]course.Card, 0, len(elements))
	for _, el := range elements {
		href, _ := el.Attr("href")
		cards = append(cards, course.Card{
			Title:    cardTitle(el),
			DateText: cardDateText(el),
			Href:     href,
		})
	}
	return cards, nil
}

func (p *CatalogPage) Courses(ctx context.Context) ([]course.Course, error) {
	cards, err := p.Cards(ctx)
	if err != nil {
		return nil, err
	}

	courses := make([]course.Course, 0, len(cards))
	for _, card := range cards {
		c, ok := course.FromCard(card, p.baseURL)
		if !ok {
			continue
		}
		if !c.HasDate() {
			p.log.Debug("Курс без даты", zap.String("title", c.Title), zap.String("date_text", card.DateText))
		}
		courses = append(courses, c)
	}
	return course.Distinct(courses), nil
}

func (p *CatalogPage) CoursesWithDate(ctx context.Context) ([]course.Course, error) {
	courses, err := p.Courses(ctx)
	if err != nil {
		return nil, err
	}
	return course.WithDate(courses), nil
}

func (p *CatalogPage) CoursesWithoutDate(ctx context.Context) ([]course.Course, error) {
	courses, err := p.Courses(ctx)
	if err != nil {
		return nil, err
	}
	return course.WithoutDate(courses), nil
}

// Earliest возвращает все курсы с минимальной датой старта.
func (p *CatalogPage) Earliest(ctx context.Context) ([]course.Course, error) {
	courses, err := p.Courses(ctx)
	if err != nil {
		return nil, err
	}
	earliest := course.Earliest(courses)
	p.log.Info("Курсы с самой ранней датой",
		zap.Int("with_date", len(course.WithDate(courses))),
		zap.Int("count", len(earliest)),
		zap.String("date", course.FormatDate(course.FirstDate(earliest))),
	)
	return earliest, nil
}

// Latest возвращает все курсы с максимальной датой старта.
func (p *CatalogPage) Latest(ctx context.Context) ([]course.Course, error) {
	courses, err := p.Courses(ctx)
	if err != nil {
		return nil, err
	}
	latest := course.Latest(courses)
	p.log.Info("Курсы с самой поздней датой",
		zap.Int("count", len(latest)),
		zap.String("date", course.FormatDate(course.FirstDate(latest))),
	)
	return latest, nil
}

func (p *CatalogPage) Stats(ctx context.Context) (course.Stats, error) {
	courses, err := p.Courses(ctx)
	if err != nil {
		return course.Stats{}, err
	}
	stats := course.CountStats(courses)
	p.log.Info("Статистика курсов",
		zap.Int("total", stats.Total),
		zap.Int("with_date", stats.WithDate),
		zap.Int("without_date", stats.WithoutDate),
	)
	return stats, nil
}

// HTML возвращает текущий DOM каталога для статического разбора.
func (p *CatalogPage) HTML() (string, error) {
	return p.driver.HTML()
}

// IsCategoryFilterApplied проверяет фильтр по адресу, затем по активным фильтрам,
// а на странице каталога довольствуется наличием карточек.
func (p *CatalogPage) IsCategoryFilterApplied(ctx context.Context, slug string) bool {
	current := p.CurrentURL()
	p.log.Info("Проверяем фильтр категории", zap.String("url", current), zap.String("slug", slug))

	if course.URLHasCategory(current, slug) {
		return true
	}

	if filters, err := p.driver.FindAll(activeFilterSelect); err == nil {
		for _, filter := range filters {
			label, err := filter.Find(filterLabelSelector)
			if err != nil {
				continue
			}
			text, err := label.Text()
			if err != nil {
				continue
			}
			if strings.EqualFold(course.CategorySlug(text), slug) {
				p.log.Info("Категория активна в фильтрах", zap.String("filter", text))
				return true
			}
		}
	}

	if strings.Contains(strings.ToLower(current), "/catalog/") {
		cards, err := p.CourseCards(ctx)
		if err == nil && len(cards) > 0 {
			p.log.Info("Каталог загружен с курсами", zap.Int("cards", len(cards)))
			return true
		}
	}
	return false
}

func (p *CatalogPage) CategorySlugFromURL() string {
	return course.CategorySlugFromURL(p.CurrentURL())
}
