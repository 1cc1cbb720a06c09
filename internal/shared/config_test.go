package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOSTAWAY_ACCOUNT_ID", "")
	t.Setenv("HOSTAWAY_API_KEY", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://api.hostaway.com/v1", cfg.HostawayBase)
	assert.Equal(t, 5, cfg.HostawayRPS)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.HasHostawayCredentials())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HOSTAWAY_ACCOUNT_ID", "61148")
	t.Setenv("HOSTAWAY_API_KEY", "secret")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("APPROVAL_WORKERS", "not-a-number")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg := Load()

	assert.True(t, cfg.HasHostawayCredentials())
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.ApprovalWorkers, "unparseable ints fall back to the default")
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
}
