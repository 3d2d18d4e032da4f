package browser

import (
	"context"
	"regexp"
	"time"
)

const pollInterval = 250 * time.Millisecond

// Waiter ждёт условий на странице. Методы возвращают false по таймауту и не возвращают ошибок.
type Waiter struct {
	driver  *Driver
	timeout time.Duration
}

func NewWaiter(d *Driver, cfg Config) *Waiter {
	timeout := cfg.WaitersTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Waiter{driver: d, timeout: timeout}
}

func (w *Waiter) Timeout() time.Duration {
	return w.timeout
}

// WithTimeout возвращает копию с другим таймаутом.
func (w *Waiter) WithTimeout(timeout time.Duration) *Waiter {
	return &Waiter{driver: w.driver, timeout: timeout}
}

// Until опрашивает cond, пока оно не вернёт true или не истечёт таймаут.
func (w *Waiter) Until(ctx context.Context, cond func() bool) bool {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if cond() {
			return true
		}
		select {
		case <-ctx.Done():
			return cond()
		case <-ticker.C:
		}
	}
}

func (w *Waiter) Visible(selector string) bool {
	return w.driver.WaitFor(selector, "visible", w.timeout) == nil
}

func (w *Waiter) Hidden(selector string) bool {
	return w.driver.WaitFor(selector, "hidden", w.timeout) == nil
}

func (w *Waiter) Present(selector string) bool {
	return w.driver.WaitFor(selector, "attached", w.timeout) == nil
}

// URLMatches ждёт адрес, совпадающий хотя бы с одним из выражений.
func (w *Waiter) URLMatches(ctx context.Context, patterns ...*regexp.Regexp) bool {
	return w.Until(ctx, func() bool {
		url := w.driver.URL()
		for _, re := range patterns {
			if re.MatchString(url) {
				return true
			}
		}
		return false
	})
}

// TextNotEmpty ждёт, пока у элемента не появится непустой текст.
func (w *Waiter) TextNotEmpty(ctx context.Context, selector string) bool {
	return w.Until(ctx, func() bool {
		el, err := w.driver.Find(selector)
		if err != nil {
			return false
		}
		text, err := el.Text()
		return err == nil && text != ""
	})
}
