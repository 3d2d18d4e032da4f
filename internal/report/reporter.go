package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ozontech/allure-go/pkg/allure"
	"go.uber.org/zap"

	"catalogUI/internal/config"
)

const environmentFile = "environment.properties"

// Sink получает каждый завершённый результат, например для записи в БД.
type Sink interface {
	Save(ctx context.Context, result *allure.Result) error
}

type Reporter struct {
	dir   string
	files allure.FileManager
	sinks []Sink
	log   *zap.Logger

	mu      sync.Mutex
	current *Test
}

// NewReporter создаёт каталог результатов. Путь к нему allure-go берёт из
// ALLURE_OUTPUT_PATH и ALLURE_OUTPUT_FOLDER.
func NewReporter(cfg *config.Cfg, sinks []Sink, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{
		dir:   cfg.Report.ResultsDir(),
		files: allure.NewFileManager(),
		sinks: sinks,
		log:   log.Named("report"),
	}
}

func (r *Reporter) Dir() string {
	return r.dir
}

// Start создаёт результат теста и делает его текущим.
func (r *Reporter) Start(name, fullName string) *Test {
	t := &Test{
		reporter: r,
		result:   allure.NewResult(name, fullName).WithStage(stageRunning),
	}

	r.mu.Lock()
	r.current = t
	r.mu.Unlock()
	return t
}

// Current возвращает незавершённый тест или nil.
func (r *Reporter) Current() *Test {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// WriteEnvironment записывает environment.properties, ключи отсортированы.
func (r *Reporter) WriteEnvironment(props map[string]string) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, props[k])
	}
	return r.writeFile(environmentFile, []byte(b.String()))
}

func (r *Reporter) finish(ctx context.Context, t *Test) error {
	r.mu.Lock()
	if r.current == t {
		r.current = nil
	}
	r.mu.Unlock()

	data, err := t.result.ToJSON()
	if err != nil {
		return fmt.Errorf("ошибка сериализации результата: %w", err)
	}
	if err := r.writeFile(t.UUID()+"-result.json", data); err != nil {
		return err
	}

	r.log.Info("Результат теста записан",
		zap.String("name", t.result.FullName),
		zap.String("status", string(t.result.Status)),
		zap.String("uuid", t.UUID()),
	)

	for _, s := range r.sinks {
		if err := s.Save(ctx, t.result); err != nil {
			r.log.Warn("Не удалось сохранить результат", zap.Error(err))
		}
	}
	return nil
}

func (r *Reporter) writeFile(name string, data []byte) error {
	if err := r.files.CreateFile(name, data); err != nil {
		return fmt.Errorf("ошибка записи %s: %w", name, err)
	}
	return nil
}
