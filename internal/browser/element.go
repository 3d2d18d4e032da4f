package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

type Element struct {
	loc      playwright.Locator
	selector string
	driver   *Driver
}

func (e *Element) Selector() string {
	return e.selector
}

func (e *Element) Driver() *Driver {
	return e.driver
}

// Exists проверяет наличие элемента в DOM без ожидания.
func (e *Element) Exists() bool {
	n, err := e.loc.Count()
	return err == nil && n > 0
}

func (e *Element) Visible() bool {
	ok, err := e.loc.IsVisible()
	return err == nil && ok
}

func (e *Element) Find(selector string) (*Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	selector, _ = NormalizeSelector(selector)
	return &Element{
		loc:      e.loc.Locator(selector).First(),
		selector: e.selector + " " + selector,
		driver:   e.driver,
	}, nil
}

func (e *Element) FindAll(selector string) ([]*Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	selector, _ = NormalizeSelector(selector)
	return wrapAll(e.driver, e.selector+" "+selector, e.loc.Locator(selector))
}

// Text возвращает видимый текст элемента. Отсутствующий элемент даёт ErrElementNotFound сразу,
// без ожидания таймаута.
func (e *Element) Text() (string, error) {
	if !e.Exists() {
		return "", fmt.Errorf("%w: %s", ErrElementNotFound, e.selector)
	}
	text, err := e.loc.InnerText()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (e *Element) Attr(name string) (string, error) {
	if !e.Exists() {
		return "", fmt.Errorf("%w: %s", ErrElementNotFound, e.selector)
	}
	return e.loc.GetAttribute(name)
}

func (e *Element) TagName() string {
	v, err := e.loc.Evaluate(`el => el.tagName.toLowerCase()`, nil)
	if err != nil {
		return ""
	}
	tag, _ := v.(string)
	return tag
}

func (e *Element) Evaluate(expression string, arg any) (any, error) {
	return e.loc.Evaluate(expression, arg)
}

func (e *Element) Screenshot() ([]byte, error) {
	return e.loc.Screenshot()
}

func (e *Element) Click(ctx context.Context) error {
	return e.do(ctx, ActionClick, func() error {
		if err := e.ScrollIntoView(); err != nil {
			return err
		}
		return e.loc.Click()
	})
}

// JSClick прокручивает к элементу и кликает через JavaScript, минуя перекрывающие слои.
func (e *Element) JSClick(ctx context.Context) error {
	return e.do(ctx, ActionJSClick, func() error {
		_, err := e.loc.Evaluate(`el => { el.scrollIntoView({block: 'center'}); el.click(); }`, nil)
		return err
	})
}

func (e *Element) Hover(ctx context.Context) error {
	return e.do(ctx, ActionHover, func() error {
		return e.loc.Hover()
	})
}

func (e *Element) Fill(ctx context.Context, value string) error {
	return e.do(ctx, ActionFill, func() error {
		return e.loc.Fill(value)
	})
}

func (e *Element) Clear(ctx context.Context) error {
	return e.do(ctx, ActionClear, func() error {
		return e.loc.Clear()
	})
}

const highlightScript = `(el, border) => {
	const original = el.getAttribute('style');
	el.setAttribute('style', 'border: ' + border + ' !important; ' +
		'box-shadow: 0 0 10px rgba(0,0,0,0.5) !important; ' +
		'background-color: rgba(255,255,0,0.1) !important; z-index: 9999 !important;');
	return original;
}`

const restoreStyleScript = `(el, original) => {
	if (original == null) {
		el.removeAttribute('style');
	} else {
		el.setAttribute('style', original);
	}
}`

// Highlight обводит элемент рамкой на hold и возвращает исходный стиль.
func (e *Element) Highlight(border string, hold time.Duration) error {
	original, err := e.loc.Evaluate(highlightScript, border)
	if err != nil {
		return fmt.Errorf("не удалось выделить элемент: %w", err)
	}

	time.Sleep(hold)

	if _, err := e.loc.Evaluate(restoreStyleScript, original); err != nil {
		return fmt.Errorf("не удалось вернуть стиль элемента: %w", err)
	}
	return nil
}

func (e *Element) do(ctx context.Context, action Action, fn func() error) error {
	e.driver.before(ctx, e, action)
	err := fn()
	e.driver.after(ctx, e, action, err)
	if err != nil {
		return classifyError(string(action)+" "+e.selector, err)
	}
	return nil
}
