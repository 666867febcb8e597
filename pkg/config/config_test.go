package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 12, cfg.Engine.SectionMin)
	assert.Equal(t, 40, cfg.Engine.SectionMax)
	assert.Equal(t, "07:00", cfg.Engine.WindowStart)
	assert.Equal(t, 3*time.Hour, cfg.Engine.LabSplitThreshold)
	assert.Equal(t, 30*time.Minute, cfg.Scheduler.ProposalTTL)
	assert.Equal(t, 3, cfg.Exports.WorkerRetries)
	assert.Nil(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scheduler.env")
	content := "SECTION_MAX_SIZE=35\nSPLIT_MODE=long-first\nALLOWED_ORIGINS=http://a.test, http://b.test\nSCHEDULER_CACHE_TTL=bogus\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("ENFORCE_PART_TIME_CAP", "true")
	t.Cleanup(func() {
		for _, key := range []string{"SECTION_MAX_SIZE", "SPLIT_MODE", "ALLOWED_ORIGINS", "SCHEDULER_CACHE_TTL"} {
			os.Unsetenv(key) //nolint:errcheck
		}
	})

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 35, cfg.Engine.SectionMax)
	assert.Equal(t, "long-first", cfg.Engine.SplitMode)
	assert.True(t, cfg.Engine.EnforcePartTimeCap)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.Scheduler.CacheTTL)
}
