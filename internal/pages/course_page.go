package pages

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"catalogUI/internal/browser"
	"catalogUI/internal/config"
	"catalogUI/internal/course"
)

const courseTitleSelector = "h1"

type CoursePage struct {
	base
}

func NewCoursePage(d *browser.Driver, w *browser.Waiter, cfg *config.Cfg, log *zap.Logger) *CoursePage {
	return &CoursePage{base: newBase(d, w, cfg, log, "/lessons/", "course_page")}
}

// WaitLoaded ждёт появления h1 с непустым текстом.
func (p *CoursePage) WaitLoaded(ctx context.Context) error {
	if !p.waiter.Present(courseTitleSelector) {
		return fmt.Errorf("заголовок курса не появился: %s", p.CurrentURL())
	}
	if !p.waiter.TextNotEmpty(ctx, courseTitleSelector) {
		return fmt.Errorf("заголовок курса пуст: %s", p.CurrentURL())
	}

	title, _ := p.Title()
	p.log.Info("Страница курса загружена", zap.String("title", title), zap.String("url", p.CurrentURL()))
	return nil
}

func (p *CoursePage) Title() (string, error) {
	if !p.waiter.WithTimeout(5 * time.Second).Visible(courseTitleSelector) {
		return "", fmt.Errorf("%w: %s", browser.ErrElementNotFound, courseTitleSelector)
	}
	el, err := p.driver.Find(courseTitleSelector)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Slug возвращает часть текущего адреса после "/lessons/".
func (p *CoursePage) Slug() string {
	return course.LessonSlug(p.CurrentURL())
}

func (p *CoursePage) IsCorrectCourseOpened(expected string) (bool, error) {
	title, err := p.Title()
	if err != nil {
		return false, err
	}
	return course.TitlesMatch(title, expected), nil
}
