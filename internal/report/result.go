// Package report ведёт результаты тестов в модели allure-go и пишет их в каталог результатов.
package report

import "github.com/ozontech/allure-go/pkg/allure"

type Status = allure.Status

const (
	StatusPassed  = allure.Passed
	StatusFailed  = allure.Failed
	StatusBroken  = allure.Broken
	StatusSkipped = allure.Skipped
)

const (
	stageRunning  = "running"
	stageFinished = "finished"
)

// LabelValue возвращает значение первой метки с именем name.
func LabelValue(res *allure.Result, name string) string {
	if l, ok := res.GetFirstLabel(allure.LabelType(name)); ok {
		return l.GetValue()
	}
	return ""
}
