package database

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"catalogUI/internal/config"
	"catalogUI/internal/report"
)

// Module подключает сохранение результатов в БД. Подключается, только если задан DB_HOST.
var Module = fx.Module("database",
	fx.Provide(
		NewLifecycleDB,
		NewResultRepository,
		fx.Annotate(asSink, fx.ResultTags(`group:"sinks"`)),
	),
)

func NewLifecycleDB(lc fx.Lifecycle, cfg *config.Cfg, log *zap.Logger) (*DB, error) {
	db, err := New(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			db.Close(log)
			return nil
		},
	})
	return db, nil
}

func asSink(r *ResultRepository) report.Sink {
	return r
}
