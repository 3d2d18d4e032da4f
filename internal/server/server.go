// Package server отдаёт сохранённые прогоны тестов по HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalogUI/internal/config"
	"catalogUI/internal/database"
)

type RunStore interface {
	ListRuns(limit, offset int) ([]database.TestRun, error)
	GetRun(uuid string) (*database.TestRun, error)
}

type Server struct {
	cfg  *config.Cfg
	log  *zap.Logger
	repo RunStore
}

func New(cfg *config.Cfg, log *zap.Logger, repo RunStore) *Server {
	return &Server{
		cfg:  cfg,
		log:  log.Named("server"),
		repo: repo,
	}
}

func (s *Server) Handler() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		s.log.Info("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Список прогонов, новые первыми
	r.GET("/api/runs", func(c *gin.Context) {
		limit, errLimit := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, errOffset := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if errLimit != nil || errOffset != nil || limit <= 0 || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad paging"})
			return
		}

		runs, err := s.repo.ListRuns(limit, offset)
		if err != nil {
			s.log.Error("db list runs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, runs)
	})

	// Прогон с шагами и вложениями
	r.GET("/api/runs/:uuid", func(c *gin.Context) {
		run, err := s.repo.GetRun(c.Param("uuid"))
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case err != nil:
			s.log.Error("db get run", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		default:
			c.JSON(http.StatusOK, run)
		}
	})

	return r
}

// Run блокируется до отмены ctx, затем останавливает сервер.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.App.Host, s.cfg.App.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Сервер запущен", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("Сервер остановлен")
	return nil
}
