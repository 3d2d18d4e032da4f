package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

func New(cfg Config, log *zap.Logger) *Session {
	if cfg.Name == "" {
		cfg.Name = "chromium"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.WaitersTimeout == 0 {
		cfg.WaitersTimeout = 10 * time.Second
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = 1920, 1080
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Session{
		cfg: cfg,
		log: log.Named("browser"),
	}
}

func (s *Session) Config() Config {
	return s.cfg
}

// Page безопасно возвращает текущую страницу с read lock.
func (s *Session) Page() (playwright.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.page == nil {
		return nil, ErrNotLaunched
	}
	return s.page, nil
}

func (s *Session) browserType(pw *playwright.Playwright) (playwright.BrowserType, error) {
	switch s.cfg.Name {
	case "chromium", "chrome":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit", "safari":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrBrowserNotSupported, s.cfg.Name)
	}
}

func (s *Session) browserArgs() []string {
	if s.cfg.Name == "chromium" || s.cfg.Name == "chrome" {
		return []string{"--no-sandbox", "--start-maximized"}
	}
	return nil
}

func (s *Session) Launch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("ошибка запуска playwright: %w", err)
	}

	bt, err := s.browserType(pw)
	if err != nil {
		_ = pw.Stop()
		return err
	}

	var br playwright.Browser
	if s.cfg.RemoteURL != "" {
		s.log.Info("подключаемся к удалённому браузеру", zap.String("url", s.cfg.RemoteURL))
		br, err = bt.Connect(s.cfg.RemoteURL)
	} else {
		br, err = bt.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(s.cfg.Headless),
			Args:     s.browserArgs(),
		})
	}
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("ошибка запуска браузера %s: %w", s.cfg.Name, err)
	}

	bctx, err := br.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: s.cfg.Width, Height: s.cfg.Height},
		Locale:   playwright.String("ru-RU"),
	})
	if err != nil {
		_ = br.Close()
		_ = pw.Stop()
		return fmt.Errorf("ошибка создания контекста браузера: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		_ = br.Close()
		_ = pw.Stop()
		return fmt.Errorf("ошибка открытия страницы: %w", err)
	}
	page.SetDefaultTimeout(float64(s.cfg.Timeout.Milliseconds()))

	s.mu.Lock()
	s.pw, s.browser, s.context, s.page = pw, br, bctx, page
	s.mu.Unlock()

	s.log.Info("браузер запущен",
		zap.String("name", s.cfg.Name),
		zap.Bool("headless", s.cfg.Headless),
		zap.Duration("timeout", s.cfg.Timeout),
	)
	return nil
}

// Reset очищает cookies и открывает пустую страницу.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.RLock()
	bctx, page := s.context, s.page
	s.mu.RUnlock()

	if bctx == nil || page == nil {
		return ErrNotLaunched
	}

	if err := bctx.ClearCookies(); err != nil {
		return fmt.Errorf("ошибка очистки cookies: %w", err)
	}
	if _, err := page.Goto("about:blank"); err != nil {
		return fmt.Errorf("ошибка открытия about:blank: %w", err)
	}

	s.log.Debug("состояние браузера сброшено")
	return nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			return err
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			return err
		}
		s.browser = nil
	}
	s.page = nil
	if s.pw != nil {
		err := s.pw.Stop()
		s.pw = nil
		return err
	}
	return nil
}
