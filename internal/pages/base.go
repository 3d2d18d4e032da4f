// Package pages описывает страницы otus.ru, с которыми работают сценарии.
package pages

import (
	"context"
	"time"

	"go.uber.org/zap"

	"catalogUI/internal/browser"
	"catalogUI/internal/config"
)

const highlightHold = 250 * time.Millisecond

type base struct {
	driver  *browser.Driver
	waiter  *browser.Waiter
	baseURL string
	path    string
	log     *zap.Logger
}

func newBase(d *browser.Driver, w *browser.Waiter, cfg *config.Cfg, log *zap.Logger, path, name string) base {
	if log == nil {
		log = zap.NewNop()
	}
	return base{
		driver:  d,
		waiter:  w,
		baseURL: cfg.App.BaseURL,
		path:    path,
		log:     log.Named(name),
	}
}

func (b *base) Path() string {
	return b.path
}

// URL возвращает адрес страницы относительно BASE_URL.
func (b *base) URL() string {
	return b.baseURL + b.path
}

func (b *base) Open(ctx context.Context) error {
	return b.driver.Open(ctx, b.URL())
}

func (b *base) CurrentURL() string {
	return b.driver.URL()
}

// Highlight обводит элемент рамкой, если подсветка включена. Ошибки только логируются.
func (b *base) Highlight(el *browser.Element, border string) {
	if el == nil || !b.driver.Session().Config().Highlight {
		return
	}
	if err := el.Highlight(border, highlightHold); err != nil {
		b.log.Debug("Не удалось выделить элемент", zap.String("selector", el.Selector()), zap.Error(err))
	}
}
