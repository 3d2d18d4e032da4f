package commands

import (
	"context"
	"fmt"
	"io"

	"catalogUI/internal/cli/ui"
	"catalogUI/internal/parser"
)

// CourseHandler загружает страницу курса без браузера
type CourseHandler struct {
	fetcher *parser.Fetcher
	out     io.Writer
}

func NewCourseHandler(f *parser.Fetcher, out io.Writer) *CourseHandler {
	return &CourseHandler{fetcher: f, out: out}
}

func (h *CourseHandler) Show(ctx context.Context, url string) error {
	info, err := h.fetcher.CoursePage(ctx, url)
	if err != nil {
		return err
	}

	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconDocument+" Курс:"+ui.ColorReset+" %s\n", info.Title)
	date := info.DateText
	if date == "" {
		date = "не указана"
	}
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconCalendar+" Дата:"+ui.ColorReset+" %s\n", date)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconGlobe+" URL:"+ui.ColorReset+" %s\n", info.URL)
	return nil
}
