package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quiz-session/internal/domain"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Services ServicesConfig
	Quiz     QuizConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

// ServicesConfig locates the remote generation and feedback services.
type ServicesConfig struct {
	BaseURL string
	Timeout time.Duration
}

// QuizConfig holds per-session defaults.
type QuizConfig struct {
	// UserID is sent with every feedback request. The authentication layer is
	// expected to override it; the default is only a placeholder.
	UserID       string
	NumQuestions int
	UserFocus    string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 180*time.Second)
	v.SetDefault("server.body_limit_mb", 20)

	v.SetDefault("services.base_url", "http://localhost:5000")
	v.SetDefault("services.timeout", 120*time.Second)

	v.SetDefault("quiz.user_id", "user")
	v.SetDefault("quiz.num_questions", 10)
	v.SetDefault("quiz.user_focus", "")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

// LoadConfig reads config.yaml from the given directories (or the defaults),
// then applies environment overrides such as SERVICES_BASE_URL or CACHE_ENABLED.
// A missing config file is not an error.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		if os.Getenv("ENV") == "test" {
			paths = []string{"../../config", "../../"}
		} else {
			paths = []string{".", "./config"}
		}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		Services: ServicesConfig{
			BaseURL: strings.TrimRight(v.GetString("services.base_url"), "/"),
			Timeout: v.GetDuration("services.timeout"),
		},
		Quiz: QuizConfig{
			UserID:       v.GetString("quiz.user_id"),
			NumQuestions: v.GetInt("quiz.num_questions"),
			UserFocus:    v.GetString("quiz.user_focus"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail much later.
func (c *Config) Validate() error {
	if c.Services.BaseURL == "" {
		return fmt.Errorf("services.base_url must not be empty")
	}
	if c.Services.Timeout <= 0 {
		return fmt.Errorf("services.timeout must be positive, got %s", c.Services.Timeout)
	}
	if c.Quiz.NumQuestions < domain.MinQuestions || c.Quiz.NumQuestions > domain.MaxQuestions {
		return fmt.Errorf("quiz.num_questions must be within [%d, %d], got %d",
			domain.MinQuestions, domain.MaxQuestions, c.Quiz.NumQuestions)
	}
	if c.Cache.Enabled && c.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when cache is enabled")
	}
	return nil
}
