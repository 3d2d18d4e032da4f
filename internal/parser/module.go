package parser

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"catalogUI/internal/config"
)

var Module = fx.Module("parser",
	fx.Provide(
		NewFromConfig,
		newDefaultFetcher,
	),
)

func NewFromConfig(cfg *config.Cfg, log *zap.Logger) *Parser {
	return New(cfg.App.BaseURL, log.Named("parser"))
}

func newDefaultFetcher(p *Parser) *Fetcher {
	return NewFetcher(p, nil)
}
