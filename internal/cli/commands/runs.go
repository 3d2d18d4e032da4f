package commands

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"catalogUI/internal/cli/ui"
	"catalogUI/internal/database"
)

type RunStore interface {
	ListRuns(limit, offset int) ([]database.TestRun, error)
	GetRun(uuid string) (*database.TestRun, error)
}

// RunsHandler выводит сохранённые в БД прогоны
type RunsHandler struct {
	repo RunStore
	out  io.Writer
	log  *zap.Logger
}

func NewRunsHandler(repo RunStore, out io.Writer, log *zap.Logger) *RunsHandler {
	return &RunsHandler{repo: repo, out: out, log: log}
}

func (h *RunsHandler) List(limit, offset int) error {
	runs, err := h.repo.ListRuns(limit, offset)
	if err != nil {
		h.log.Error("Ошибка получения прогонов", zap.Error(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Прогоны не найдены"+ui.ColorReset)
		return nil
	}

	fmt.Fprintf(h.out, ui.ColorBold+"=== "+ui.IconList+" Прогоны (%d) ==="+ui.ColorReset+"\n", len(runs))
	for _, run := range runs {
		icon, color, text := ui.FormatStatus(run.Status)
		fmt.Fprintf(h.out, "%s%s %-8s%s %s  %s  "+ui.ColorGray+"%s, %d мс"+ui.ColorReset+"\n",
			color, icon, text, ui.ColorReset, run.UUID, run.FullName,
			run.StartedAt.Format("2006-01-02 15:04:05"), run.DurationMs)
	}
	return nil
}

// Show выводит прогон со всеми шагами
func (h *RunsHandler) Show(uuid string) error {
	run, err := h.repo.GetRun(uuid)
	if err != nil {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Прогон не найден"+ui.ColorReset)
		return err
	}

	_, _, statusText := ui.FormatStatus(run.Status)

	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== %s ==="+ui.ColorReset+"\n", run.FullName)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconChart+" Статус:"+ui.ColorReset+" %s\n", statusText)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Начало:"+ui.ColorReset+" %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.Message != "" {
		fmt.Fprintf(h.out, ui.ColorCyan+ui.IconDocument+" Ошибка:"+ui.ColorReset+" %s\n", run.Message)
	}

	if len(run.Steps) == 0 {
		fmt.Fprintln(h.out, "\n"+ui.ColorGray+"Шаги не найдены"+ui.ColorReset)
		return nil
	}

	depth := make(map[uint]int, len(run.Steps))
	fmt.Fprintf(h.out, "\nШаги (%d):\n", len(run.Steps))
	for _, step := range run.Steps {
		level := 0
		if step.ParentID != nil {
			level = depth[*step.ParentID] + 1
		}
		depth[step.ID] = level

		icon, color, _ := ui.FormatStatus(step.Status)
		fmt.Fprintf(h.out, "%*s%s%s%s %s\n", 2*(level+1), "", color, icon, ui.ColorReset, step.Name)
		if step.Message != "" {
			fmt.Fprintf(h.out, "%*s"+ui.ColorGray+"%s"+ui.ColorReset+"\n", 2*(level+2), "", step.Message)
		}
	}

	if len(run.Attachments) > 0 {
		fmt.Fprintf(h.out, "\nВложения (%d):\n", len(run.Attachments))
		for _, a := range run.Attachments {
			fmt.Fprintf(h.out, "  %s  "+ui.ColorGray+"%s"+ui.ColorReset+"\n", a.Name, a.Source)
		}
	}
	return nil
}
