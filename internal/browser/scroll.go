package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScrollIntoView прокручивает страницу к элементу, если он не виден.
func (e *Element) ScrollIntoView() error {
	if e.Visible() {
		inView, err := e.inViewport()
		if err == nil && inView {
			return nil
		}
	}

	err := e.loc.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(5000),
	})
	if err == nil {
		return nil
	}

	// ScrollIntoViewIfNeeded падает на элементах внутри fixed-контейнеров.
	_, err = e.loc.Evaluate(`el => {
		el.scrollIntoView({
			behavior: 'auto',
			block: 'center',
			inline: 'center'
		});
	}`, nil)
	if err != nil {
		return fmt.Errorf("ошибка прокрутки к элементу: %w", err)
	}
	time.Sleep(200 * time.Millisecond)
	return nil
}

func (e *Element) inViewport() (bool, error) {
	result, err := e.loc.Evaluate(`el => {
		const rect = el.getBoundingClientRect();
		const windowHeight = window.innerHeight || document.documentElement.clientHeight;
		const windowWidth = window.innerWidth || document.documentElement.clientWidth;

		const vertInView = (rect.top <= windowHeight) && ((rect.top + rect.height) >= 0);
		const horInView = (rect.left <= windowWidth) && ((rect.left + rect.width) >= 0);

		return vertInView && horInView;
	}`, nil)
	if err != nil {
		return false, err
	}

	inView, _ := result.(bool)
	return inView, nil
}

func (d *Driver) ScrollToBottom() error {
	if _, err := d.Evaluate(`() => window.scrollTo({top: document.body.scrollHeight, behavior: 'auto'})`, nil); err != nil {
		return fmt.Errorf("ошибка прокрутки вниз: %w", err)
	}
	time.Sleep(300 * time.Millisecond)
	return nil
}
