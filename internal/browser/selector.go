package browser

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	containsDouble   = regexp.MustCompile(`:contains\("([^"]*)"\)`)
	containsSingle   = regexp.MustCompile(`:contains\('([^']*)'\)`)
	containsNoQuotes = regexp.MustCompile(`:contains\(([^)"']+)\)`)
)

// NormalizeSelector преобразует jQuery :contains() в Playwright :has-text().
// Возвращает нормализованный селектор и флаг, указывающий, был ли селектор изменен.
func NormalizeSelector(selector string) (string, bool) {
	if selector == "" || !strings.Contains(selector, ":contains(") {
		return selector, false
	}

	normalized := containsDouble.ReplaceAllString(selector, `:has-text("$1")`)
	normalized = containsSingle.ReplaceAllString(normalized, `:has-text('$1')`)
	normalized = containsNoQuotes.ReplaceAllStringFunc(normalized, func(match string) string {
		text := strings.TrimSpace(containsNoQuotes.FindStringSubmatch(match)[1])
		return `:has-text("` + text + `")`
	})

	return normalized, normalized != selector
}

// ValidateSelector проверяет, что селектор является валидным CSS/Playwright селектором.
// Возвращает ErrSelectorNotValid, если селектор пуст или является URL.
func ValidateSelector(selector string) error {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return fmt.Errorf("%w: селектор не может быть пустым", ErrSelectorNotValid)
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return fmt.Errorf("%w: селектор не может быть URL, получен %s", ErrSelectorNotValid, selector)
	}

	if strings.Contains(trimmed, "://") {
		return fmt.Errorf("%w: селектор не может содержать протокол (://), получен %s", ErrSelectorNotValid, selector)
	}

	if strings.Count(trimmed, "[") != strings.Count(trimmed, "]") ||
		strings.Count(trimmed, "(") != strings.Count(trimmed, ")") {
		return fmt.Errorf("%w: несбалансированные скобки в %s", ErrSelectorNotValid, selector)
	}

	return nil
}
