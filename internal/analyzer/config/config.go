package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// App holds application configuration.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Database holds database configuration.
type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
}

// API holds API server configuration.
type API struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AI selects which model provider backs the classifier.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Anthropic holds the configuration for the Anthropic messages API.
type Anthropic struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxTokens           int    `mapstructure:"max_tokens"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Ollama holds the configuration for a locally run model server.
type Ollama struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Scheduler holds the pipeline schedule.
type Scheduler struct {
	CronExpression string `mapstructure:"cron_expression"`
}

// Pipeline holds ingestion pipeline tuning knobs.
type Pipeline struct {
	MaxArticlesPerFeed int           `mapstructure:"max_articles_per_feed"`
	ArticleDelay       time.Duration `mapstructure:"article_delay"`
}

// Telegram holds configuration for the optional run-summary notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Feed describes one configured news source.
type Feed struct {
	URL  string `mapstructure:"url"`
	Name string `mapstructure:"name"`
	Bias string `mapstructure:"bias"`
}

// Config holds the full configuration for the analyzer service.
type Config struct {
	App       App       `mapstructure:"app"`
	Logger    Logger    `mapstructure:"logger"`
	Database  Database  `mapstructure:"database"`
	API       API       `mapstructure:"api"`
	AI        AI        `mapstructure:"ai"`
	Anthropic Anthropic `mapstructure:"anthropic"`
	Gemini    Gemini    `mapstructure:"gemini"`
	Ollama    Ollama    `mapstructure:"ollama"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Pipeline  Pipeline  `mapstructure:"pipeline"`
	Telegram  Telegram  `mapstructure:"telegram"`
	Feeds     []Feed    `mapstructure:"feeds"`
}

// SourcesForBias returns the names of configured feeds carrying the given
// bias label. An empty label or "all" matches nothing and means no filter.
func (c *Config) SourcesForBias(bias string) []string {
	var sources []string
	for _, feed := range c.Feeds {
		if strings.EqualFold(feed.Bias, bias) {
			sources = append(sources, feed.Name)
		}
	}
	return sources
}

// Load loads configuration from a file, with environment variable overrides.
func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Failed to read config file, trying environment variables only")
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.Pipeline.MaxArticlesPerFeed <= 0 {
		cfg.Pipeline.MaxArticlesPerFeed = 5
	}
	if cfg.Pipeline.ArticleDelay <= 0 {
		cfg.Pipeline.ArticleDelay = time.Second
	}
	if cfg.Scheduler.CronExpression == "" {
		cfg.Scheduler.CronExpression = "0 2 * * 0"
	}
	if cfg.Anthropic.BaseURL == "" {
		cfg.Anthropic.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Anthropic.MaxTokens <= 0 {
		cfg.Anthropic.MaxTokens = 1024
	}

	return cfg, nil
}
