package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Env     string `yaml:"env"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // sqlite, postgres, mysql
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"` // пусто - rate limit отключен
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Security struct {
		SecretKey        string `yaml:"secret_key"`
		SessionName      string `yaml:"session_name"`
		RememberForHours int    `yaml:"remember_for_hours"`
		CSRFEnabled      bool   `yaml:"csrf_enabled"`
		ResetTokenTTL    int    `yaml:"reset_token_ttl"` // секунды
		SecureCookies    bool   `yaml:"secure_cookies"`
	} `yaml:"security"`

	Email struct {
		SMTPHost     string   `yaml:"smtp_host"`
		SMTPPort     int      `yaml:"smtp_port"`
		SMTPUsername string   `yaml:"smtp_user"`
		SMTPPassword string   `yaml:"smtp_password"`
		UseTLS       bool     `yaml:"use_tls"`
		Admins       []string `yaml:"admins"`
		Workers      int      `yaml:"workers"`
		QueueSize    int      `yaml:"queue_size"`
		MaxRetries   uint64   `yaml:"max_retries"`
	} `yaml:"email"`

	App struct {
		PostsPerPage int      `yaml:"posts_per_page"`
		Languages    []string `yaml:"languages"`
	} `yaml:"app"`

	Translator struct {
		Endpoint string `yaml:"endpoint"`
		Key      string `yaml:"key"`
		Region   string `yaml:"region"`
	} `yaml:"translator"`

	RateLimit struct {
		Requests int `yaml:"requests"`
		Window   int `yaml:"window_seconds"`
	} `yaml:"rate_limit"`

	Logging struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"logging"`
}

// Default возвращает конфигурацию, с которой приложение стартует без файла:
// sqlite в рабочей директории, письма только в лог, без переводчика.
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"
	cfg.Server.BaseURL = "http://localhost:5000"

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "microblog.db"

	cfg.Security.SecretKey = "you-will-never-guess"
	cfg.Security.SessionName = "microblog_session"
	cfg.Security.RememberForHours = 24 * 365
	cfg.Security.CSRFEnabled = true
	cfg.Security.ResetTokenTTL = 600

	cfg.Email.SMTPPort = 25
	cfg.Email.Admins = []string{"admin@example.com"}
	cfg.Email.Workers = 2
	cfg.Email.QueueSize = 100
	cfg.Email.MaxRetries = 3

	cfg.App.PostsPerPage = 25
	cfg.App.Languages = []string{"en", "es"}

	cfg.Translator.Endpoint = "https://api.cognitive.microsofttranslator.com"
	cfg.Translator.Region = "westus"

	cfg.RateLimit.Requests = 10
	cfg.RateLimit.Window = 60

	cfg.Logging.MaxSizeMB = 1
	cfg.Logging.MaxBackups = 10

	return &cfg
}

// Load читает .env, затем YAML (если файл есть), затем переменные окружения.
// path == "" означает CONFIG_PATH или config/config.yaml.
func Load(path string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// работаем на значениях по умолчанию
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = n
		}
		return nil
	}
	setBool := func(key string, dst *bool) error {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = b
		}
		return nil
	}

	setString("SERVER_ENV", &c.Server.Env)
	setString("BASE_URL", &c.Server.BaseURL)
	setString("DATABASE_DRIVER", &c.Database.Driver)
	setString("DATABASE_URL", &c.Database.DSN)
	setString("REDIS_ADDR", &c.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setString("SECRET_KEY", &c.Security.SecretKey)
	setString("MAIL_SERVER", &c.Email.SMTPHost)
	setString("MAIL_USERNAME", &c.Email.SMTPUsername)
	setString("MAIL_PASSWORD", &c.Email.SMTPPassword)
	setString("MS_TRANSLATOR_KEY", &c.Translator.Key)
	setString("MS_TRANSLATOR_REGION", &c.Translator.Region)
	setString("LOG_FILE", &c.Logging.File)

	if v, ok := os.LookupEnv("ADMINS"); ok {
		c.Email.Admins = splitList(v)
	}

	for key, dst := range map[string]*int{
		"SERVER_PORT":    &c.Server.Port,
		"MAIL_PORT":      &c.Email.SMTPPort,
		"POSTS_PER_PAGE": &c.App.PostsPerPage,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}
	if err := setBool("MAIL_USE_TLS", &c.Email.UseTLS); err != nil {
		return err
	}
	return setBool("CSRF_ENABLED", &c.Security.CSRFEnabled)
}

// Validate проверяет значения, без которых приложение работать не может.
func (c *Config) Validate() error {
	if c.Security.SecretKey == "" {
		return errors.New("security.secret_key must not be empty")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.App.PostsPerPage <= 0 {
		return errors.New("app.posts_per_page must be positive")
	}
	if len(c.App.Languages) == 0 {
		return errors.New("app.languages must not be empty")
	}
	return nil
}

// IsProduction - режим, в котором скрываются детали ошибок и логи пишутся в JSON.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// MailEnabled сообщает, настроен ли SMTP сервер.
func (c *Config) MailEnabled() bool {
	return c.Email.SMTPHost != ""
}

// Sender - адрес отправителя служебных писем (первый администратор).
func (c *Config) Sender() string {
	if len(c.Email.Admins) == 0 {
		return ""
	}
	return c.Email.Admins[0]
}

func (c *Config) RememberFor() time.Duration {
	return time.Duration(c.Security.RememberForHours) * time.Hour
}

func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.Security.ResetTokenTTL) * time.Second
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.Window) * time.Second
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
