package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FORUMCORE_MAX_BODY_SIZE", "12M")
	t.Setenv("FORUMCORE_MAX_NAME_LENGTH", "128")
	t.Setenv("FORUMCORE_RESET_VOTE_EXPIRES_IN", "PT2H")
	t.Setenv("FORUMCORE_CORS_ENABLED", "true")
	t.Setenv("FORUMCORE_THROTTLE_VOTE_MAX_COUNT", "7")
	t.Setenv("FORUMCORE_THROTTLE_VOTE_PERIOD_SECONDS", "120")
	t.Setenv("FORUMCORE_COLLATION_LOCALE", "fr")

	cfg := DefaultConfig()
	err := cfg.ApplyEnvOverrides()
	require.NoError(t, err)

	require.Equal(t, int64(12*1024*1024), cfg.MaxBodySize)
	require.Equal(t, 128, cfg.MaxNameLength)
	require.Equal(t, 2*time.Hour, cfg.ResetVoteExpiresIn)
	require.True(t, cfg.CORSEnabled)
	require.Equal(t, 7, cfg.ThrottleVote.MaxCount)
	require.Equal(t, int64(120), cfg.ThrottleVote.PeriodSeconds)
	require.Equal(t, "fr", cfg.CollationLocale)
}

func TestLoadAPIKeysFromEnv(t *testing.T) {
	t.Setenv("FORUMCORE_API_KEYS_ADMIN_CONSOLE", "key-one,key-two")

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnvOverrides())

	require.Equal(t, "admin_console", cfg.APIKeys["key-one"])
	require.Equal(t, "admin_console", cfg.APIKeys["key-two"])
}
