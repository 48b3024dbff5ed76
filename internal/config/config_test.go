package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		LineChannelToken:        "token",
		LineChannelSecret:       "secret",
		Port:                    "10000",
		FirebaseCredentialsJSON: `{"type":"service_account"}`,
		DetailCacheSize:         256,
		DetailCacheTTL:          30 * time.Second,
		LoadingWorkers:          2,
		LoadingQueueSize:        64,
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing token", func(c *Config) { c.LineChannelToken = "" }, "LINE_CHANNEL_ACCESS_TOKEN"},
		{"missing secret", func(c *Config) { c.LineChannelSecret = "" }, "LINE_CHANNEL_SECRET"},
		{"missing firebase", func(c *Config) { c.FirebaseCredentialsJSON = "" }, "FIREBASE_CREDENTIALS"},
		{"bad cache size", func(c *Config) { c.DetailCacheSize = 0 }, "DETAIL_CACHE_SIZE"},
		{"bad cache ttl", func(c *Config) { c.DetailCacheTTL = 0 }, "DETAIL_CACHE_TTL"},
		{"bad workers", func(c *Config) { c.LoadingWorkers = 0 }, "LOADING_WORKERS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CredentialsFileAlone(t *testing.T) {
	cfg := validConfig()
	cfg.FirebaseCredentialsJSON = ""
	cfg.FirebaseCredentialsFile = "/secrets/sa.json"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FailsFastWithoutMessagingCredentials(t *testing.T) {
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "")
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("FIREBASE_CREDENTIALS", "{}")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LINE_CHANNEL_ACCESS_TOKEN")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("FIREBASE_CREDENTIALS", "{}")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.DetailCacheSize)
	assert.Equal(t, 30*time.Second, cfg.DetailCacheTTL)
	assert.Equal(t, 2, cfg.LoadingWorkers)
	assert.Equal(t, "10000", cfg.Port)
}

func TestLoadSeed_SkipsMessagingCredentials(t *testing.T) {
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "")
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("FIREBASE_CREDENTIALS", "{}")

	cfg, err := LoadSeed()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadSeed_RequiresFirebaseCredentials(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS", "")
	t.Setenv("FIREBASE_CREDENTIALS_FILE", "")

	_, err := LoadSeed()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_CREDENTIALS")
}

func TestLiffURLs(t *testing.T) {
	cfg := validConfig()
	cfg.LiffIDSubscribe = "200-sub"
	cfg.LiffIDShare = "200-share"

	assert.Equal(t, "https://liff.line.me/200-sub", cfg.SubscribeURL())
	assert.Equal(t, "https://liff.line.me/200-share?doc_id=h1", cfg.ShareURL("h1"))
	assert.Empty(t, cfg.BookingURL())
}
