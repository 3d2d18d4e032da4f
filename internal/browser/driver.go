package browser

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Driver оборачивает страницу сессии для page objects.
// Все взаимодействия с элементами проходят через слушателей.
type Driver struct {
	session   *Session
	listeners []Listener
	log       *zap.Logger
}

func NewDriver(session *Session, listeners []Listener, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		session:   session,
		listeners: listeners,
		log:       log.Named("driver"),
	}
}

func (d *Driver) Session() *Session {
	return d.session
}

func (d *Driver) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

// Open переходит по адресу, повторяя попытку при сетевых ошибках и таймаутах.
func (d *Driver) Open(ctx context.Context, url string) error {
	page, err := d.session.Page()
	if err != nil {
		return err
	}

	d.log.Info("открываем страницу", zap.String("url", url))

	return Retry(ctx, 3, time.Second, func() error {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
			Timeout:   playwright.Float(float64(4 * d.session.cfg.Timeout.Milliseconds())),
		})
		if err != nil {
			return fmt.Errorf("ошибка перехода на %s: %w", url, err)
		}
		return nil
	})
}

func (d *Driver) URL() string {
	page, err := d.session.Page()
	if err != nil {
		return ""
	}
	return page.URL()
}

func (d *Driver) Title() (string, error) {
	page, err := d.session.Page()
	if err != nil {
		return "", err
	}
	return page.Title()
}

// HTML возвращает текущий DOM страницы.
func (d *Driver) HTML() (string, error) {
	page, err := d.session.Page()
	if err != nil {
		return "", err
	}
	return page.Content()
}

func (d *Driver) Screenshot() ([]byte, error) {
	page, err := d.session.Page()
	if err != nil {
		return nil, err
	}
	return page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

func (d *Driver) Evaluate(expression string, arg any) (any, error) {
	page, err := d.session.Page()
	if err != nil {
		return nil, err
	}
	return page.Evaluate(expression, arg)
}

func (d *Driver) locator(selector string) (playwright.Locator, error) {
	page, err := d.session.Page()
	if err != nil {
		return nil, err
	}

	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	selector, _ = NormalizeSelector(selector)

	return page.Locator(selector), nil
}

// Find возвращает первый элемент по селектору. Наличие элемента не проверяется.
func (d *Driver) Find(selector string) (*Element, error) {
	loc, err := d.locator(selector)
	if err != nil {
		return nil, err
	}
	return &Element{loc: loc.First(), selector: selector, driver: d}, nil
}

// FindAll возвращает все элементы, найденные по селектору на момент вызова.
func (d *Driver) FindAll(selector string) ([]*Element, error) {
	loc, err := d.locator(selector)
	if err != nil {
		return nil, err
	}
	return wrapAll(d, selector, loc)
}

// WaitFor ждёт состояние элемента ("visible", "hidden", "attached").
func (d *Driver) WaitFor(selector, state string, timeout time.Duration) error {
	loc, err := d.locator(selector)
	if err != nil {
		return err
	}

	var st *playwright.WaitForSelectorState
	switch strings.ToLower(state) {
	case "hidden":
		st = playwright.WaitForSelectorStateHidden
	case "attached":
		st = playwright.WaitForSelectorStateAttached
	default:
		st = playwright.WaitForSelectorStateVisible
	}

	return loc.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   st,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// WaitForURL ждёт, пока адрес страницы не совпадёт с выражением.
func (d *Driver) WaitForURL(re *regexp.Regexp, timeout time.Duration) error {
	page, err := d.session.Page()
	if err != nil {
		return err
	}
	return page.WaitForURL(re, playwright.PageWaitForURLOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
}

func wrapAll(d *Driver, selector string, loc playwright.Locator) ([]*Element, error) {
	all, err := loc.All()
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска элементов %s: %w", selector, err)
	}

	elements := make([]*Element, 0, len(all))
	for i, l := range all {
		elements = append(elements, &Element{
			loc:      l,
			selector: fmt.Sprintf("%s >> nth=%d", selector, i),
			driver:   d,
		})
	}
	return elements, nil
}

func (d *Driver) before(ctx context.Context, el *Element, action Action) {
	for _, l := range d.listeners {
		l.BeforeAction(ctx, el, action)
	}
}

func (d *Driver) after(ctx context.Context, el *Element, action Action, err error) {
	for _, l := range d.listeners {
		l.AfterAction(ctx, el, action, err)
	}
}
