package browser

import (
	"context"
	"time"
)

const highlightHold = 200 * time.Millisecond

var actionBorders = map[Action]string{
	ActionClick:   "4px solid magenta",
	ActionJSClick: "4px solid magenta",
	ActionFill:    "3px solid green",
}

// HighlightListener подсвечивает элемент перед взаимодействием с ним.
type HighlightListener struct {
	enabled bool
	hold    time.Duration
}

func NewHighlightListener(cfg Config) *HighlightListener {
	return &HighlightListener{enabled: cfg.Highlight, hold: highlightHold}
}

func BorderFor(action Action) string {
	if border, ok := actionBorders[action]; ok {
		return border
	}
	return "3px solid red"
}

func (h *HighlightListener) BeforeAction(_ context.Context, el *Element, action Action) {
	if !h.enabled || el == nil {
		return
	}
	// Ошибки выделения не должны ломать тест.
	_ = el.Highlight(BorderFor(action), h.hold)
}

func (h *HighlightListener) AfterAction(context.Context, *Element, Action, error) {}
