package browser

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"catalogUI/internal/config"
)

// Module предоставляет сессию браузера, драйвер, ожидания и подсветку элементов.
// Браузер запускается в OnStart и закрывается в OnStop.
var Module = fx.Module("browser",
	fx.Provide(
		ConfigFrom,
		NewLifecycleSession,
		fx.Annotate(NewDriver, fx.ParamTags(``, `group:"listeners"`, ``)),
		NewWaiter,
		fx.Annotate(NewHighlightListener, fx.As(new(Listener)), fx.ResultTags(`group:"listeners"`)),
	),
)

func ConfigFrom(cfg *config.Cfg) Config {
	return Config{
		Name:           cfg.Browser.Name,
		RemoteURL:      cfg.Browser.RemoteURL,
		Headless:       cfg.Browser.Headless,
		Highlight:      cfg.Browser.Highlight,
		Timeout:        cfg.Browser.Timeout,
		WaitersTimeout: cfg.Browser.WaitersTimeout,
		Width:          cfg.Browser.Width,
		Height:         cfg.Browser.Height,
	}
}

func NewLifecycleSession(lc fx.Lifecycle, cfg Config, log *zap.Logger) *Session {
	s := New(cfg, log)
	lc.Append(fx.Hook{
		OnStart: s.Launch,
		OnStop: func(context.Context) error {
			return s.Close()
		},
	})
	return s
}
