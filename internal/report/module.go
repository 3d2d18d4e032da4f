package report

import (
	"go.uber.org/fx"

	"catalogUI/internal/browser"
)

// Module предоставляет Reporter, слушатель браузера и Attacher.
// Хранилища результатов подключаются через группу "sinks".
var Module = fx.Module("report",
	fx.Provide(
		fx.Annotate(NewReporter, fx.ParamTags(``, `group:"sinks"`, ``)),
		fx.Annotate(NewListener, fx.As(new(browser.Listener)), fx.ResultTags(`group:"listeners"`)),
		pageSource,
		NewAttacher,
	),
)

func pageSource(d *browser.Driver) PageSource {
	return d
}
