package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"catalogUI/internal/cli/ui"
	"catalogUI/internal/course"
	"catalogUI/internal/parser"
)

var ErrDatesMismatch = errors.New("даты браузера и статического разбора не совпали")

// LiveCatalog это каталог, отрисованный в браузере.
type LiveCatalog interface {
	OpenURL(ctx context.Context, url string) error
	Courses(ctx context.Context) ([]course.Course, error)
	HTML() (string, error)
}

// DatesHandler печатает статистику и курсы с самой ранней и поздней датой
type DatesHandler struct {
	parser *parser.Parser
	out    io.Writer
	log    *zap.Logger
}

func NewDatesHandler(p *parser.Parser, out io.Writer, log *zap.Logger) *DatesHandler {
	return &DatesHandler{parser: p, out: out, log: log}
}

// FromFile разбирает сохранённый HTML каталога.
func (h *DatesHandler) FromFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ошибка открытия %s: %w", path, err)
	}
	defer f.Close()

	courses, err := h.parser.Courses(f)
	if err != nil {
		return err
	}
	h.Print(courses)
	return nil
}

// FromLive открывает каталог в браузере и сверяет результат со статическим разбором того же DOM.
func (h *DatesHandler) FromLive(ctx context.Context, catalog LiveCatalog, url string) error {
	if err := catalog.OpenURL(ctx, url); err != nil {
		return err
	}

	live, err := catalog.Courses(ctx)
	if err != nil {
		return err
	}
	html, err := catalog.HTML()
	if err != nil {
		return err
	}
	static, err := h.parser.CoursesString(html)
	if err != nil {
		return err
	}

	h.Print(live)
	return h.crossCheck(live, static)
}

func (h *DatesHandler) Print(courses []course.Course) {
	stats := course.CountStats(courses)
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== "+ui.IconChart+" Статистика курсов ==="+ui.ColorReset+"\n%s\n", stats)

	earliest := course.Earliest(courses)
	fmt.Fprintf(h.out, "\n"+ui.ColorCyan+ui.IconCalendar+" Самая ранняя дата:"+ui.ColorReset+" %s\n", course.FormatDate(course.FirstDate(earliest)))
	fmt.Fprintln(h.out, course.FormatList(earliest))

	latest := course.Latest(courses)
	fmt.Fprintf(h.out, "\n"+ui.ColorCyan+ui.IconCalendar+" Самая поздняя дата:"+ui.ColorReset+" %s\n", course.FormatDate(course.FirstDate(latest)))
	fmt.Fprintln(h.out, course.FormatList(latest))
}

func (h *DatesHandler) crossCheck(live, static []course.Course) error {
	earliestOK := course.FirstDate(course.Earliest(live)).Equal(course.FirstDate(course.Earliest(static)))
	latestOK := course.FirstDate(course.Latest(live)).Equal(course.FirstDate(course.Latest(static)))

	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== Сравнение с goquery ==="+ui.ColorReset+"\nбраузер: %d курсов, goquery: %d курсов\n", len(live), len(static))
	if earliestOK && latestOK {
		fmt.Fprintln(h.out, ui.ColorGreen+ui.IconCheckmark+" Даты совпадают"+ui.ColorReset)
		return nil
	}

	h.log.Error("Даты не совпали",
		zap.Bool("earliest", earliestOK),
		zap.Bool("latest", latestOK),
	)
	fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Даты не совпадают"+ui.ColorReset)
	return ErrDatesMismatch
}
