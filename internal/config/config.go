package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Server    Server    `mapstructure:"server"`
	AI        AI        `mapstructure:"ai"`
	Storage   Storage   `mapstructure:"storage"`
	Reddit    Reddit    `mapstructure:"reddit"`
	Site      Site      `mapstructure:"site"`
	Scheduler Scheduler `mapstructure:"scheduler"`
}

// App holds general application configuration
type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AI holds generative model configuration
type AI struct {
	Text  TextModel  `mapstructure:"text"`
	Image ImageModel `mapstructure:"image"`
}

// TextModel holds the generative-text model configuration
type TextModel struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int32  `mapstructure:"max_tokens"`
}

// ImageModel holds the generative-image model configuration
type ImageModel struct {
	AccountID string `mapstructure:"account_id"`
	APIToken  string `mapstructure:"api_token"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"`
	Steps     int    `mapstructure:"steps"`
}

// Storage holds persistence configuration
type Storage struct {
	DataDir  string `mapstructure:"data_dir"`
	MediaDir string `mapstructure:"media_dir"`
}

// Reddit holds social syndication credentials and targeting
type Reddit struct {
	ClientID  string `mapstructure:"client_id"`
	Secret    string `mapstructure:"secret"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Subreddit string `mapstructure:"subreddit"`
}

// Site holds the public-facing URLs and affiliate identity of the blog
type Site struct {
	PublicOrigin string `mapstructure:"public_origin"` // Origin serving /media/ image URLs
	WebsiteURL   string `mapstructure:"website_url"`   // Reader-facing site linked from social posts
	AffiliateTag string `mapstructure:"affiliate_tag"`
}

// Scheduler holds the autonomous run timer configuration
type Scheduler struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

var globalConfig *Config

// Load loads the configuration from .env, an optional config file, and the
// environment, in that order of increasing precedence.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".coolfinds")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached global configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

func setDefaults() {
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8787)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")

	viper.SetDefault("ai.text.model", "gemini-flash-lite-latest")
	viper.SetDefault("ai.text.max_tokens", 1500)
	viper.SetDefault("ai.image.model", "@cf/black-forest-labs/flux-1-schnell")
	viper.SetDefault("ai.image.base_url", "https://api.cloudflare.com/client/v4")
	viper.SetDefault("ai.image.steps", 4)

	viper.SetDefault("storage.data_dir", ".coolfinds")
	viper.SetDefault("storage.media_dir", ".coolfinds/media")

	viper.SetDefault("reddit.subreddit", "test")

	viper.SetDefault("site.public_origin", "https://article-generator.amazingcoolfinds.workers.dev")
	viper.SetDefault("site.website_url", "https://amazingcoolfinds.com")
	viper.SetDefault("site.affiliate_tag", "amazingcoolfinds-20")

	viper.SetDefault("scheduler.enabled", false)
	viper.SetDefault("scheduler.interval", "24h")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.text.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})
	bindEnvKeys("ai.image.account_id", []string{"CF_ACCOUNT_ID"})
	bindEnvKeys("ai.image.api_token", []string{"CF_API_TOKEN"})

	bindEnvKeys("reddit.client_id", []string{"REDDIT_CLIENT_ID"})
	bindEnvKeys("reddit.secret", []string{"REDDIT_SECRET"})
	bindEnvKeys("reddit.username", []string{"REDDIT_USERNAME"})
	bindEnvKeys("reddit.password", []string{"REDDIT_PASSWORD"})
	bindEnvKeys("reddit.subreddit", []string{"REDDIT_SUBREDDIT"})

	bindEnvKeys("site.website_url", []string{"WEBSITE_URL"})
	bindEnvKeys("site.public_origin", []string{"PUBLIC_ORIGIN"})
}

// bindEnvKeys binds a config key to the first set variable among candidates
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}

// validateConfig checks the invariants the pipeline relies on. Credentials
// are not required here: components that need them report their own skip.
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", config.Server.Port)
	}
	if config.AI.Image.Steps <= 0 {
		return fmt.Errorf("ai.image.steps must be positive, got %d", config.AI.Image.Steps)
	}
	if config.Scheduler.Enabled && config.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be positive when the scheduler is enabled")
	}
	if config.Storage.DataDir == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}
	return nil
}

// HasRedditCredentials reports whether all four credentials required for
// posting are present.
func (r Reddit) HasRedditCredentials() bool {
	return r.ClientID != "" && r.Secret != "" && r.Username != "" && r.Password != ""
}
