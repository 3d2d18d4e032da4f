package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Cfg struct {
	App        App
	Database   Database
	Logger     Logger
	Browser    Browser
	Report     Report
	Migrations Migrations
}

type App struct {
	BaseURL string
	Host    string
	Port    string
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Enabled сообщает, настроено ли сохранение результатов в БД.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// DSN возвращает строку подключения для драйвера gorm.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// URL возвращает строку подключения для golang-migrate.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Migrations struct {
	Path string
}

type Logger struct {
	Env   string
	Level string
}

type Browser struct {
	Name           string
	RemoteURL      string
	Headless       bool
	Highlight      bool
	Timeout        time.Duration
	WaitersTimeout time.Duration
	Width          int
	Height         int
}

// Report читает те же переменные, что и allure-go при записи файлов.
type Report struct {
	OutputPath   string
	OutputFolder string
}

// ResultsDir возвращает каталог, в который allure-go пишет результаты.
func (r Report) ResultsDir() string {
	return filepath.Join(r.OutputPath, r.OutputFolder)
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		App: App{
			BaseURL: strings.TrimRight(env("BASE_URL", "https://otus.ru"), "/"),
			Host:    env("APP_HOST", "localhost"),
			Port:    env("APP_PORT", "8080"),
		},
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		Browser: Browser{
			Name:           strings.ToLower(env("BROWSER", "chromium")),
			RemoteURL:      os.Getenv("BROWSER_REMOTE_URL"),
			Headless:       envBool("PW_HEADLESS"),
			Highlight:      envBoolDefault("HIGHLIGHT", true),
			Timeout:        envDuration("BROWSER_TIMEOUT", 15*time.Second),
			WaitersTimeout: envDuration("WAITERS_TIMEOUT", 10*time.Second),
			Width:          envInt("BROWSER_WIDTH", 1920),
			Height:         envInt("BROWSER_HEIGHT", 1080),
		},
		Report: Report{
			OutputPath:   env("ALLURE_OUTPUT_PATH", "."),
			OutputFolder: env("ALLURE_OUTPUT_FOLDER", "allure-results"),
		},
		Migrations: Migrations{
			Path: env("MIGRATIONS_PATH", "file://migrations"),
		},
	}

	if cfg.Browser.Timeout <= 0 {
		return nil, fmt.Errorf("BROWSER_TIMEOUT должен быть положительным")
	}
	if cfg.Browser.WaitersTimeout <= 0 {
		return nil, fmt.Errorf("WAITERS_TIMEOUT должен быть положительным")
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envBoolDefault(key string, defaultValue bool) bool {
	if os.Getenv(key) == "" {
		return defaultValue
	}
	return envBool(key)
}

// envDuration принимает как "10s", так и число секунд ("10").
func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}
