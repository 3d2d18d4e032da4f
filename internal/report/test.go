package report

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ozontech/allure-go/pkg/allure"
)

// Test собирает результат одного теста. Шаги вкладываются через Step или StartStep/StopStep.
type Test struct {
	reporter *Reporter
	result   *allure.Result

	mu       sync.Mutex
	steps    []*allure.Step
	finished bool
}

func (t *Test) UUID() string {
	return t.result.UUID.String()
}

// Result возвращает текущее состояние результата.
func (t *Test) Result() *allure.Result {
	return t.result
}

func (t *Test) Label(name, value string) {
	t.result.AddLabel(allure.NewLabel(allure.LabelType(name), value))
}

func (t *Test) Parameter(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.result.Parameters = append(t.result.Parameters, allure.NewParameter(name, value))
}

func (t *Test) Link(name, url, typ string) {
	linkType := allure.LINK
	if typ != "" {
		linkType = allure.LinkTypes(typ)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.result.Links = append(t.result.Links, allure.NewLink(name, linkType, url))
}

func (t *Test) Description(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.result.Description = text
}

// StartStep открывает шаг внутри текущего шага или на верхнем уровне.
func (t *Test) StartStep(name string) *allure.Step {
	t.mu.Lock()
	defer t.mu.Unlock()

	step := allure.NewSimpleStep(name).Begin()
	if n := len(t.steps); n > 0 {
		step.WithParent(t.steps[n-1])
	} else {
		t.result.Steps = append(t.result.Steps, step)
	}
	t.steps = append(t.steps, step)
	return step
}

// StopStep закрывает последний открытый шаг.
func (t *Test) StopStep(status Status, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.steps)
	if n == 0 {
		return
	}
	step := t.steps[n-1]
	t.steps = t.steps[:n-1]

	step.Status = status
	step.Finish()
	if err != nil {
		step.WithStatusDetails(err.Error(), trace(err))
	}
}

// Step выполняет fn как шаг отчёта. Если fn не вернулся (паника или runtime.Goexit
// из t.FailNow), шаг отмечается упавшим, а паника пробрасывается дальше.
func (t *Test) Step(name string, fn func() error) error {
	t.StartStep(name)
	completed := false
	defer func() {
		if completed {
			return
		}
		r := recover()
		if r != nil {
			t.StopStep(StatusBroken, fmt.Errorf("паника: %v", r))
			panic(r)
		}
		t.StopStep(StatusFailed, errors.New("шаг прерван"))
	}()

	err := fn()
	completed = true
	t.StopStep(StatusFor(err), err)
	return err
}

// Attach сразу пишет вложение в каталог результатов и привязывает его к открытому шагу.
// Для неизвестного mime-типа файл получает расширение .bin.
func (t *Test) Attach(name, mime string, data []byte) error {
	att := allure.NewAttachment(name, allure.MimeType(mime), data)
	if att.Source == att.GetUUID()+"-attachment." {
		att.Source += "bin"
	}
	if err := t.reporter.writeFile(att.Source, data); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if n := len(t.steps); n > 0 {
		t.steps[n-1].WithAttachments(att)
	} else {
		t.result.Attachments = append(t.result.Attachments, att)
	}
	return nil
}

func (t *Test) AttachText(name, text string) error {
	return t.Attach(name, string(allure.Text), []byte(text))
}

// Finish закрывает открытые шаги, выставляет статус и записывает результат.
// Повторный вызов ничего не делает.
func (t *Test) Finish(ctx context.Context, status Status, err error) error {
	t.mu.Lock()
	if t.finished {
		t.mu.Unlock()
		return nil
	}
	t.finished = true
	t.mu.Unlock()

	for len(t.openSteps()) > 0 {
		t.StopStep(status, err)
	}

	t.mu.Lock()
	t.result.Status = status
	t.result.WithStage(stageFinished).Finish()
	if err != nil {
		t.result.SetStatusMessage(err.Error())
		t.result.SetStatusTrace(trace(err))
	}
	t.mu.Unlock()

	return t.reporter.finish(ctx, t)
}

func (t *Test) openSteps() []*allure.Step {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.steps
}

// trace возвращает текст причины ошибки, если она обёрнута.
func trace(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return ""
}

// StatusFor переводит ошибку в статус шага.
func StatusFor(err error) Status {
	if err != nil {
		return StatusFailed
	}
	return StatusPassed
}
