// Package e2e содержит браузерные сценарии для каталога otus.ru.
// Запуск: go test -tags e2e ./e2e/...
package e2e
