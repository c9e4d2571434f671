package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "/webhook", cfg.WebhookPath)
	assert.Equal(t, "fuel.db", cfg.DatabasePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.AdminChatIDs)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FUELREP_BOT_TOKEN", "123:abc")
	t.Setenv("FUELREP_LISTEN_ADDR", ":9000")
	t.Setenv("FUELREP_REDIS_ADDR", "localhost:6379")
	t.Setenv("FUELREP_ADMIN_CHAT_IDS", "42, 99,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"42", "99"}, cfg.AdminChatIDs)
}

func TestLoad_BareBotTokenFallback(t *testing.T) {
	t.Setenv("BOT_TOKEN", "456:def")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "456:def", cfg.BotToken)
}

func TestValidate(t *testing.T) {
	valid := Config{BotToken: "123:abc", ListenAddr: ":8080", WebhookPath: "/webhook"}
	assert.NoError(t, valid.Validate())

	noToken := valid
	noToken.BotToken = ""
	assert.Error(t, noToken.Validate())

	badPath := valid
	badPath.WebhookPath = "webhook"
	assert.Error(t, badPath.Validate())
}
