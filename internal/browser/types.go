package browser

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

var (
	ErrNotLaunched         = errors.New("браузер не запущен")
	ErrBrowserNotSupported = errors.New("браузер не поддерживается")
	ErrSelectorNotValid    = errors.New("невалидный селектор")
	ErrElementNotFound     = errors.New("элемент не найден")
)

type Config struct {
	Name           string
	RemoteURL      string
	Headless       bool
	Highlight      bool
	Timeout        time.Duration
	WaitersTimeout time.Duration
	Width          int
	Height         int
}

type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	cfg     Config
	log     *zap.Logger
	mu      sync.RWMutex
}

// Action описывает взаимодействие с элементом, о котором уведомляются слушатели.
type Action string

const (
	ActionClick   Action = "click"
	ActionJSClick Action = "js_click"
	ActionHover   Action = "hover"
	ActionFill    Action = "fill"
	ActionClear   Action = "clear"
)

// Listener получает события до и после каждого взаимодействия с элементом.
type Listener interface {
	BeforeAction(ctx context.Context, el *Element, action Action)
	AfterAction(ctx context.Context, el *Element, action Action, err error)
}
