package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"catalogUI/internal/config"
)

func TestRunSkipsWithoutDatabase(t *testing.T) {
	cfg := &config.Cfg{Migrations: config.Migrations{Path: "file://does-not-exist"}}
	assert.NoError(t, Run(cfg, zaptest.NewLogger(t)))
}

func TestRunFailsOnMissingSource(t *testing.T) {
	cfg := &config.Cfg{
		Database:   config.Database{Host: "127.0.0.1", Port: "1", Name: "reports", User: "qa", Password: "qa"},
		Migrations: config.Migrations{Path: "file://" + t.TempDir() + "/missing"},
	}
	err := Run(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ошибка инициализации миграций")
}
