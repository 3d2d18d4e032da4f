package report

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"catalogUI/internal/browser"
)

// Listener прикладывает к текущему тесту скриншот после неудачного взаимодействия.
type Listener struct {
	reporter *Reporter
	log      *zap.Logger
}

func NewListener(r *Reporter, log *zap.Logger) *Listener {
	if log == nil {
		log = zap.NewNop()
	}
	return &Listener{reporter: r, log: log.Named("report_listener")}
}

func (l *Listener) BeforeAction(context.Context, *browser.Element, browser.Action) {}

func (l *Listener) AfterAction(_ context.Context, el *browser.Element, action browser.Action, err error) {
	if err == nil || el == nil {
		return
	}
	name := fmt.Sprintf("Ошибка %s: %s", action, el.Selector())
	l.recordFailure(name, el.Driver().Screenshot, err)
}

func (l *Listener) recordFailure(name string, screenshot func() ([]byte, error), err error) {
	test := l.reporter.Current()
	if test == nil {
		return
	}

	if shot, serr := screenshot(); serr == nil {
		if aerr := test.Attach(name, "image/png", shot); aerr != nil {
			l.log.Warn("Не удалось приложить скриншот", zap.Error(aerr))
		}
	} else {
		l.log.Debug("Скриншот недоступен", zap.Error(serr))
	}

	if aerr := test.AttachText(name, err.Error()); aerr != nil {
		l.log.Warn("Не удалось приложить текст ошибки", zap.Error(aerr))
	}
}

// PageSource отдаёт состояние страницы для вложений.
type PageSource interface {
	Screenshot() ([]byte, error)
	HTML() (string, error)
	URL() string
	Title() (string, error)
}

// Attacher собирает вложения в конце теста.
type Attacher struct {
	page PageSource
	log  *zap.Logger
}

func NewAttacher(page PageSource, log *zap.Logger) *Attacher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Attacher{page: page, log: log.Named("attacher")}
}

// OnFailure прикладывает скриншот, HTML страницы, текст ошибки и её причину.
func (a *Attacher) OnFailure(test *Test, err error) {
	if shot, serr := a.page.Screenshot(); serr == nil {
		a.attach(test.Attach("Скриншот при ошибке", "image/png", shot))
	} else {
		a.log.Debug("Скриншот недоступен", zap.Error(serr))
	}

	if html, herr := a.page.HTML(); herr == nil {
		a.attach(test.Attach("HTML страницы", "text/html", []byte(html)))
	}

	if err == nil {
		return
	}
	a.attach(test.AttachText("Ошибка теста", err.Error()))
	if cause := errors.Unwrap(err); cause != nil {
		a.attach(test.AttachText("Причина ошибки", cause.Error()))
	}
}

// OnSuccess прикладывает адрес и заголовок открытой страницы.
func (a *Attacher) OnSuccess(test *Test) {
	a.attach(test.AttachText("URL страницы", a.page.URL()))
	if title, err := a.page.Title(); err == nil {
		a.attach(test.AttachText("Заголовок страницы", title))
	}
}

func (a *Attacher) attach(err error) {
	if err != nil {
		a.log.Warn("Не удалось приложить вложение", zap.Error(err))
	}
}
