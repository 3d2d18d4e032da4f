// Package uitest готовит окружение для браузерных тестов: поднимает fx-приложение
// с браузером, страницами и отчётом, размечает результат и убирает за собой.
package uitest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"catalogUI/internal/browser"
	"catalogUI/internal/config"
	"catalogUI/internal/database"
	"catalogUI/internal/logger"
	"catalogUI/internal/migrations"
	"catalogUI/internal/pages"
	"catalogUI/internal/parser"
	"catalogUI/internal/report"
)

const (
	startTimeout = 60 * time.Second
	stopTimeout  = 15 * time.Second
)

var migrateOnce sync.Once

type UI struct {
	Cfg    *config.Cfg
	Log    *zap.Logger
	Report *report.Test

	t        *testing.T
	ctx      context.Context
	app      *fx.App
	session  *browser.Session
	reporter *report.Reporter
	attacher *report.Attacher
	testID   string
	started  time.Time
	lastErr  error
	panicked error
}

// New поднимает окружение и заполняет targets (указатели на страницы, парсер и т.п.).
// Всё останавливается в t.Cleanup.
func New(t *testing.T, targets ...any) *UI {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err, "конфигурация")

	zl, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	require.NoError(t, err, "логгер")
	log := zl.Named("uitest").Logger

	if cfg.Database.Enabled() {
		migrateOnce.Do(func() {
			if err := migrations.Run(cfg, log); err != nil {
				log.Warn("Миграции не применены", zap.Error(err))
			}
		})
	}

	u := &UI{
		Cfg:     cfg,
		Log:     log,
		t:       t,
		ctx:     context.Background(),
		testID:  uuid.NewString(),
		started: time.Now(),
	}

	u.app = fx.New(append(Options(cfg, zl.Logger, targets...),
		fx.Populate(&u.session, &u.reporter, &u.attacher),
	)...)
	require.NoError(t, u.app.Err(), "сборка приложения")
	t.Cleanup(u.stop)

	startCtx, cancel := context.WithTimeout(u.ctx, startTimeout)
	defer cancel()
	require.NoError(t, u.app.Start(startCtx), "запуск браузера")

	u.Report = u.reporter.Start(t.Name(), fullName(t.Name()))
	t.Cleanup(u.cleanup)

	u.label()
	u.attachSystemInfo()

	log.Info("Запуск теста", zap.String("test", t.Name()), zap.String("test_id", u.testID))

	u.Step("Настройка браузера", func() {
		require.NoError(t, u.session.Reset(u.ctx))
	})
	u.Step("Тестовое окружение настроено", func() {})
	return u
}

// Options собирает модули приложения. База данных подключается, только если задан DB_HOST.
func Options(cfg *config.Cfg, log *zap.Logger, targets ...any) []fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg, log),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx").WithOptions(zap.IncreaseLevel(zap.WarnLevel))}
		}),
		browser.Module,
		pages.Module,
		parser.Module,
		report.Module,
	}
	if cfg.Database.Enabled() {
		opts = append(opts, database.Module)
	}
	if len(targets) > 0 {
		opts = append(opts, fx.Populate(targets...))
	}
	return opts
}

func (u *UI) Context() context.Context {
	return u.ctx
}

// Behavior задаёт epic, feature и story результата.
func (u *UI) Behavior(epic, feature, story string) {
	u.Report.Label("epic", epic)
	u.Report.Label("feature", feature)
	u.Report.Label("story", story)
}

// Step выполняет fn как шаг отчёта. Упавшие внутри проверки, в том числе require,
// отмечают шаг упавшим.
func (u *UI) Step(name string, fn func()) {
	u.t.Helper()
	failedBefore := u.t.Failed()
	defer func() {
		if r := recover(); r != nil {
			u.panicked = fmt.Errorf("паника в шаге %q: %v", name, r)
			panic(r)
		}
	}()

	err := u.Report.Step(name, func() error {
		fn()
		if !failedBefore && u.t.Failed() {
			return fmt.Errorf("шаг %q: проверки не прошли", name)
		}
		return nil
	})
	if err != nil {
		u.lastErr = err
	}
}

// AttachText прикладывает текст к текущему шагу.
func (u *UI) AttachText(name, text string) {
	if err := u.Report.AttachText(name, text); err != nil {
		u.Log.Warn("Не удалось приложить текст", zap.String("name", name), zap.Error(err))
	}
}

func (u *UI) label() {
	class, method := splitName(u.t.Name())
	u.Report.Label("testClass", class)
	u.Report.Label("testMethod", method)
	u.Report.Label("testId", u.testID)
	u.Report.Label("startTime", u.started.Format("2006-01-02T15:04:05"))
	u.Report.Label("framework", "testing")
	if host, err := os.Hostname(); err == nil {
		u.Report.Label("host", host)
	}
	u.Report.Description(fmt.Sprintf("Тест: %s\nКласс: %s\nМетод: %s\nТест ID: %s\nВремя начала: %s",
		u.t.Name(), class, method, u.testID, u.started.Format(time.DateTime)))
}

func (u *UI) attachSystemInfo() {
	info := SystemInfo(u.Cfg, u.started)
	if err := u.reporter.WriteEnvironment(info); err != nil {
		u.Log.Warn("Не удалось записать environment.properties", zap.Error(err))
	}
	u.AttachText("System Information", FormatSystemInfo(info))
}

func (u *UI) cleanup() {
	duration := time.Since(u.started)
	u.Report.Label("duration", strconv.FormatInt(duration.Milliseconds(), 10))
	u.Report.Label("test_id", u.testID)

	status, err := u.status()
	switch status {
	case report.StatusFailed, report.StatusBroken:
		u.attacher.OnFailure(u.Report, err)
	case report.StatusPassed:
		u.attacher.OnSuccess(u.Report)
	}

	u.Report.StartStep("Сброс состояния браузера")
	resetErr := u.session.Reset(u.ctx)
	if resetErr != nil {
		u.Log.Warn("Ошибка при сбросе состояния", zap.Error(resetErr))
	}
	u.Report.StopStep(report.StatusFor(resetErr), resetErr)

	u.Log.Info("Время выполнения теста",
		zap.String("test", u.t.Name()),
		zap.Duration("duration", duration),
		zap.String("status", string(status)),
	)

	if err := u.Report.Finish(u.ctx, status, err); err != nil {
		u.t.Errorf("запись результата: %v", err)
	}
}

func (u *UI) stop() {
	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := u.app.Stop(stopCtx); err != nil {
		u.Log.Warn("Ошибка при остановке приложения", zap.Error(err))
	}
	_ = u.Log.Sync()
}

func (u *UI) status() (report.Status, error) {
	switch {
	case u.panicked != nil:
		return report.StatusBroken, u.panicked
	case u.t.Skipped():
		return report.StatusSkipped, nil
	case u.t.Failed():
		if u.lastErr != nil {
			return report.StatusFailed, u.lastErr
		}
		return report.StatusFailed, errors.New("тест завершился с ошибкой")
	default:
		return report.StatusPassed, nil
	}
}

// splitName делит имя теста на верхний тест и подтест.
func splitName(name string) (class, method string) {
	class, method, ok := strings.Cut(name, "/")
	if !ok {
		return name, name
	}
	return class, method
}

func fullName(name string) string {
	return "e2e." + strings.ReplaceAll(name, "/", ".")
}

// SystemInfo возвращает свойства окружения для environment.properties.
func SystemInfo(cfg *config.Cfg, now time.Time) map[string]string {
	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}
	return map[string]string{
		"OS":         runtime.GOOS,
		"OS.Arch":    runtime.GOARCH,
		"Go.Version": runtime.Version(),
		"User":       user,
		"Time":       now.Format(time.DateTime),
		"Browser":    cfg.Browser.Name,
		"Headless":   strconv.FormatBool(cfg.Browser.Headless),
		"Base.URL":   cfg.App.BaseURL,
	}
}

func FormatSystemInfo(info map[string]string) string {
	keys := []string{"OS", "OS.Arch", "Go.Version", "User", "Time", "Browser", "Headless", "Base.URL"}

	var b strings.Builder
	b.WriteString("=== System Information ===\n")
	for _, k := range keys {
		if v, ok := info[k]; ok {
			fmt.Fprintf(&b, "%s: %s\n", k, v)
		}
	}
	b.WriteString("==========================")
	return b.String()
}
