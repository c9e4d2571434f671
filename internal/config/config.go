// Package config loads bot configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved runtime configuration. All fields map to
// FUELREP_* environment variables (e.g. FUELREP_LISTEN_ADDR).
type Config struct {
	// BotToken authenticates against the Bot API. Also read from the bare
	// BOT_TOKEN variable for compatibility with older deployments.
	BotToken string `mapstructure:"bot_token"`

	ListenAddr  string `mapstructure:"listen_addr"`
	WebhookPath string `mapstructure:"webhook_path"`

	// DatabasePath is the SQLite file for fuel entries. Empty selects the
	// in-memory store (useful for smoke tests, data is lost on restart).
	DatabasePath string `mapstructure:"database_path"`

	// RedisAddr enables the Redis session store and distributed locking.
	// Empty keeps sessions in process memory.
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`

	// AdminChatIDs restricts backup/chart/import/delete to the listed chat
	// IDs. Empty means every chat is allowed.
	AdminChatIDs []string `mapstructure:"admin_chat_ids"`

	LogLevel string `mapstructure:"log_level"`

	// MessagesFile optionally overrides the built-in reply catalog with a
	// YAML file (labels and message templates).
	MessagesFile string `mapstructure:"messages_file"`
}

// Load reads a .env file if present, then the environment.
func Load() (Config, error) {
	// Missing .env is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FUELREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only surfaces keys viper already knows about, so every
	// field needs a default.
	v.SetDefault("bot_token", "")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("webhook_path", "/webhook")
	v.SetDefault("database_path", "fuel.db")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("admin_chat_ids", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("messages_file", "")

	if err := v.BindEnv("bot_token", "FUELREP_BOT_TOKEN", "BOT_TOKEN"); err != nil {
		return Config{}, fmt.Errorf("bind bot_token: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(
		mapstructure.StringToSliceHookFunc(","),
	)); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AdminChatIDs = trimEmpty(cfg.AdminChatIDs)
	return cfg, nil
}

// Validate reports configuration that cannot possibly run.
func (c Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token is required (set FUELREP_BOT_TOKEN)")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if !strings.HasPrefix(c.WebhookPath, "/") {
		return fmt.Errorf("webhook path must start with /, got %q", c.WebhookPath)
	}
	return nil
}

func trimEmpty(ids []string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
