package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "NARS_CYCLE_DELAY", "NARS_SNAPSHOT_INTERVAL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	assert.Equal(t, ":8080", ServerAddr())
	assert.Equal(t, time.Duration(0), CycleDelay())
	assert.Equal(t, uint64(100), SnapshotInterval())
	assert.Equal(t, 100.0, RateLimitRPS())
	assert.Equal(t, 20, RateLimitBurst())
	assert.Equal(t, "info", LogLevel())
}

func TestGetters_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("NARS_CYCLE_DELAY", "5ms")
	t.Setenv("NARS_SNAPSHOT_INTERVAL", "10")
	t.Setenv("NARS_API_KEY", "secret")

	assert.Equal(t, ":9090", ServerAddr())
	assert.Equal(t, 5*time.Millisecond, CycleDelay())
	assert.Equal(t, uint64(10), SnapshotInterval())
	assert.Equal(t, "secret", APIKey())
}

func TestLoad_ReadsEnvFileAndSecret(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("NARS_TEST_PLAIN=plain\n"), 0o600))
	require.NoError(t, os.WriteFile(envFile+".secret", []byte("NARS_TEST_SECRET=hidden\n"), 0o600))
	t.Setenv("NARS_ENV", envFile)
	t.Cleanup(func() {
		os.Unsetenv("NARS_TEST_PLAIN")
		os.Unsetenv("NARS_TEST_SECRET")
	})

	require.NoError(t, Load())
	assert.Equal(t, "plain", os.Getenv("NARS_TEST_PLAIN"))
	assert.Equal(t, "hidden", os.Getenv("NARS_TEST_SECRET"))
}
