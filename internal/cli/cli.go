// Package cli собирает команды утилиты catalog.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"catalogUI/internal/browser"
	"catalogUI/internal/cli/commands"
	"catalogUI/internal/config"
	"catalogUI/internal/database"
	"catalogUI/internal/logger"
	"catalogUI/internal/migrations"
	"catalogUI/internal/pages"
	"catalogUI/internal/parser"
	"catalogUI/internal/server"
)

var ErrDatabaseDisabled = errors.New("DB_HOST не задан")

type CLI struct {
	cfg *config.Cfg
	log *logger.Zap
}

// NewRootCmd возвращает корневую команду. Конфигурация и логгер создаются перед запуском подкоманды.
func NewRootCmd() *cobra.Command {
	c := &CLI{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Даты старта курсов каталога otus.ru",
		Long:          "catalog разбирает каталог курсов otus.ru: статистику, самые ранние и поздние курсы, страницы курсов и сохранённые прогоны тестов.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	root.AddCommand(
		c.datesCmd(),
		c.courseCmd(),
		c.migrateCmd(),
		c.runsCmd(),
		c.serveCmd(),
	)
	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (c *CLI) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		return err
	}
	c.cfg, c.log = cfg, log
	return nil
}

func (c *CLI) datesCmd() *cobra.Command {
	var file, url string

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Статистика и курсы с самой ранней и поздней датой старта",
		Example: `  catalog dates --file catalog.html
  catalog dates --url https://otus.ru/catalog/courses`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parser.NewFromConfig(c.cfg, c.log.Logger)
			h := commands.NewDatesHandler(p, cmd.OutOrStdout(), c.log.Logger)
			if file != "" {
				return h.FromFile(file)
			}
			return c.withCatalog(cmd.Context(), func(catalog *pages.CatalogPage) error {
				return h.FromLive(cmd.Context(), catalog, url)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "сохранённый HTML каталога")
	cmd.Flags().StringVar(&url, "url", "", "адрес каталога, открывается в браузере")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	cmd.MarkFlagsOneRequired("file", "url")
	return cmd
}

// withCatalog поднимает браузер на время fn.
func (c *CLI) withCatalog(ctx context.Context, fn func(*pages.CatalogPage) error) error {
	var catalog *pages.CatalogPage

	app := fx.New(
		fx.Supply(c.cfg, c.log.Logger),
		fx.NopLogger,
		browser.Module,
		pages.Module,
		fx.Populate(&catalog),
	)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("ошибка запуска браузера: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := app.Stop(stopCtx); err != nil {
			c.log.Warn("Ошибка остановки браузера", zap.Error(err))
		}
	}()

	return fn(catalog)
}

func (c *CLI) courseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "course <url>",
		Short: "Название и дата старта со страницы курса, без браузера",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parser.NewFromConfig(c.cfg, c.log.Logger)
			h := commands.NewCourseHandler(parser.NewFetcher(p, nil), cmd.OutOrStdout())
			return h.Show(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции БД результатов",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.Database.Enabled() {
				return ErrDatabaseDisabled
			}
			return migrations.Run(c.cfg, c.log.Logger)
		},
	}
}

func (c *CLI) runsCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Сохранённые прогоны тестов",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Последние прогоны",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuns(cmd, func(h *commands.RunsHandler) error {
				return h.List(limit, offset)
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "сколько прогонов вывести")
	list.Flags().IntVar(&offset, "offset", 0, "сколько прогонов пропустить")

	show := &cobra.Command{
		Use:   "show <uuid>",
		Short: "Прогон со всеми шагами",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withRuns(cmd, func(h *commands.RunsHandler) error {
				return h.Show(args[0])
			})
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func (c *CLI) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "HTTP API сохранённых прогонов",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.cfg.Database.Enabled() {
				return ErrDatabaseDisabled
			}
			db, err := database.New(c.cfg, c.log.Logger)
			if err != nil {
				return err
			}
			defer db.Close(c.log.Logger)

			srv := server.New(c.cfg, c.log.Logger, database.NewResultRepository(db))
			return srv.Run(cmd.Context())
		},
	}
}

func (c *CLI) withRuns(cmd *cobra.Command, fn func(*commands.RunsHandler) error) error {
	if !c.cfg.Database.Enabled() {
		return ErrDatabaseDisabled
	}

	db, err := database.New(c.cfg, c.log.Logger)
	if err != nil {
		return err
	}
	defer db.Close(c.log.Logger)

	return fn(commands.NewRunsHandler(database.NewResultRepository(db), cmd.OutOrStdout(), c.log.Logger))
}
