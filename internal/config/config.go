package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultStoreURI   = "mongodb://127.0.0.1:27017/task_dashboard"
)

type ServerConfig struct {
	Port            int           `yaml:"port"`
	GinMode         string        `yaml:"gin_mode"`
	AllowOrigins    []string      `yaml:"allow_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// URI selects the backend by scheme: mongodb:// or mongodb+srv:// for the
	// document store, postgres:// or postgresql:// for Postgres, memory:// for
	// a throwaway in-process store.
	URI string `yaml:"url"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	LoginURL     string `yaml:"login_url"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type LoggerConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

type ReportsConfig struct {
	FontPath string `yaml:"font_path"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Email    EmailConfig    `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logger   LoggerConfig   `yaml:"logger"`
	Reports  ReportsConfig  `yaml:"reports"`
}

// Default returns the local development configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			GinMode:         "release",
			AllowOrigins:    []string{"*"},
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{URI: DefaultStoreURI},
		Email: EmailConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
			LoginURL: "http://localhost:5173/login",
		},
		Logger: LoggerConfig{Level: "info", Encoding: "json"},
	}
}

// Load reads the optional YAML file, then .env, then environment variables.
// Later sources win; anything left unset keeps its development default.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := Default()

	path := getString("TASKFLOW_CONFIG", DefaultConfigPath)
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)

	if cfg.Email.FromEmail == "" && cfg.Email.SMTPUser != "" {
		cfg.Email.FromEmail = fmt.Sprintf("%q <%s>", "TaskFlow Team", cfg.Email.SMTPUser)
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getInt("PORT", cfg.Server.Port)
	cfg.Server.GinMode = getString("GIN_MODE", cfg.Server.GinMode)
	cfg.Server.AllowOrigins = getList("CORS_ALLOW_ORIGINS", cfg.Server.AllowOrigins)
	cfg.Server.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Database.URI = getString("DATABASE_URL", cfg.Database.URI)
	cfg.Database.URI = getString("MONGO_URI", cfg.Database.URI)

	cfg.Email.SMTPHost = getString("EMAIL_HOST", cfg.Email.SMTPHost)
	cfg.Email.SMTPPort = getInt("EMAIL_PORT", cfg.Email.SMTPPort)
	cfg.Email.SMTPUser = getString("EMAIL_USER", cfg.Email.SMTPUser)
	cfg.Email.SMTPPassword = getString("EMAIL_PASS", cfg.Email.SMTPPassword)
	cfg.Email.FromEmail = getString("EMAIL_FROM", cfg.Email.FromEmail)
	cfg.Email.LoginURL = getString("APP_LOGIN_URL", cfg.Email.LoginURL)

	cfg.Telegram.BotToken = getString("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.ChatID = getInt64("TELEGRAM_CHAT_ID", cfg.Telegram.ChatID)

	cfg.Logger.Level = getString("LOG_LEVEL", cfg.Logger.Level)
	cfg.Logger.Encoding = getString("LOG_ENCODING", cfg.Logger.Encoding)

	cfg.Reports.FontPath = getString("REPORT_FONT_PATH", cfg.Reports.FontPath)
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// plain numbers are seconds
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func getList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// StoreDriver maps the database URI to a backend name.
func (c *Config) StoreDriver() (string, error) {
	uri := strings.ToLower(c.Database.URI)
	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return "mongo", nil
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return "postgres", nil
	case strings.HasPrefix(uri, "memory://"):
		return "memory", nil
	}
	return "", fmt.Errorf("unsupported database url scheme: %q", c.Database.URI)
}

// EmailEnabled is false when no SMTP credentials are configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.SMTPHost != "" && c.Email.SMTPUser != ""
}
