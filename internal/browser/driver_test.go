package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingListener struct {
	events []string
	errs   []error
}

func (r *recordingListener) BeforeAction(_ context.Context, el *Element, action Action) {
	r.events = append(r.events, "before "+string(action)+" "+el.Selector())
}

func (r *recordingListener) AfterAction(_ context.Context, el *Element, action Action, err error) {
	r.events = append(r.events, "after "+string(action)+" "+el.Selector())
	r.errs = append(r.errs, err)
}

func TestSessionNotLaunched(t *testing.T) {
	s := New(Config{}, zaptest.NewLogger(t))

	_, err := s.Page()
	assert.ErrorIs(t, err, ErrNotLaunched)
	assert.ErrorIs(t, s.Reset(context.Background()), ErrNotLaunched)
	assert.NoError(t, s.Close())

	cfg := s.Config()
	assert.Equal(t, "chromium", cfg.Name)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 1920, cfg.Width)
}

func TestDriverNotLaunched(t *testing.T) {
	d := NewDriver(New(Config{}, nil), nil, nil)

	assert.Empty(t, d.URL())
	assert.ErrorIs(t, d.Open(context.Background(), "https://otus.ru"), ErrNotLaunched)

	_, err := d.HTML()
	assert.ErrorIs(t, err, ErrNotLaunched)
	_, err = d.Find("h1")
	assert.ErrorIs(t, err, ErrNotLaunched)
	_, err = d.Screenshot()
	assert.ErrorIs(t, err, ErrNotLaunched)

	err = d.ScrollToBottom()
	assert.ErrorIs(t, err, ErrNotLaunched)
	assert.Contains(t, err.Error(), "ошибка прокрутки вниз")
}

func TestElementActionFiresListeners(t *testing.T) {
	rec := &recordingListener{}
	d := NewDriver(New(Config{}, nil), []Listener{rec}, nil)
	el := &Element{selector: "button.more", driver: d}

	require.NoError(t, el.do(context.Background(), ActionClick, func() error { return nil }))

	boom := errors.New("Timeout 5000ms exceeded")
	err := el.do(context.Background(), ActionHover, func() error { return boom })

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, ErrorTypeRetryable, actionErr.Type)
	assert.Equal(t, "hover button.more", actionErr.Action)

	assert.Equal(t, []string{
		"before click button.more",
		"after click button.more",
		"before hover button.more",
		"after hover button.more",
	}, rec.events)
	assert.Equal(t, []error{nil, boom}, rec.errs)
}

func TestHighlightListener(t *testing.T) {
	assert.Equal(t, "4px solid magenta", BorderFor(ActionClick))
	assert.Equal(t, "3px solid green", BorderFor(ActionFill))
	assert.Equal(t, "3px solid red", BorderFor(ActionHover))

	// Выключенная подсветка не трогает элемент.
	h := NewHighlightListener(Config{Highlight: false})
	h.BeforeAction(context.Background(), &Element{}, ActionClick)
	h.BeforeAction(context.Background(), nil, ActionClick)
}

func TestWaiterUntil(t *testing.T) {
	w := NewWaiter(NewDriver(New(Config{}, nil), nil, nil), Config{WaitersTimeout: 600 * time.Millisecond})

	calls := 0
	ok := w.Until(context.Background(), func() bool {
		calls++
		return calls == 2
	})
	assert.True(t, ok)

	start := time.Now()
	ok = w.WithTimeout(300*time.Millisecond).Until(context.Background(), func() bool { return false })
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 300*time.Millisecond)

	assert.False(t, w.WithTimeout(10*time.Millisecond).Visible("h1"))
}
