package config

import (
	"os"
	"path/filepath"
	"testing"

	"lakecircle/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"SYNC"}, cfg.Actions)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 30, cfg.AWS.TimeoutSeconds)
	assert.Equal(t, "amazon.nova-lite-v1:0", cfg.AWS.SummaryModel)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 60, cfg.Server.PlanCacheSeconds)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("LCC_ENDPOINT", "s3://lifecycle/prod")
	t.Setenv("LCC_ACTIONS", "DRYRUN, SYNC")
	t.Setenv("LCC_AWS_ACCOUNT", "123456789012")
	t.Setenv("LCC_AWS_REGION", "eu-west-1")
	t.Setenv("LCC_AWS_USE_PATH_STYLE", "true")
	t.Setenv("LCC_APP_LEVEL", "debug")
	t.Setenv("LCC_SERVER_PLAN_CACHE_SECONDS", "5")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "s3://lifecycle/prod", cfg.Endpoint)
	assert.Equal(t, []string{"DRYRUN", "SYNC"}, cfg.Actions)
	assert.Equal(t, "123456789012", cfg.AWS.Account)
	assert.Equal(t, "eu-west-1", cfg.AWS.Region)
	assert.True(t, cfg.AWS.UsePathStyle)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Server.PlanCacheSeconds)

	kinds, err := cfg.Kinds()
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Kind{reconcile.KindDryRun, reconcile.KindSync}, kinds)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LCC_LOG_FORMAT=console\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("LCC_LOG_FORMAT") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := &Config{Endpoint: "s3://lifecycle/prod", Actions: []string{"SYNC"}}
		c.AWS.Account = "123456789012"
		c.AWS.Region = "eu-west-1"
		return c
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("ListsEveryMissingKey", func(t *testing.T) {
		err := (&Config{Actions: []string{"SYNC"}}).Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"LCC_ENDPOINT", "LCC_AWS_ACCOUNT", "LCC_AWS_REGION"}, verr.Missing)
	})

	t.Run("BadEndpoint", func(t *testing.T) {
		c := valid()
		c.Endpoint = "https://lifecycle/prod"
		var verr *ValidationError
		require.ErrorAs(t, c.Validate(), &verr)
		assert.Len(t, verr.Invalid, 1)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		c := valid()
		c.Actions = []string{"SYNC", "SUMMARISE", "ARCHIVE"}
		var verr *ValidationError
		require.ErrorAs(t, c.Validate(), &verr)
		assert.Len(t, verr.Invalid, 1)
		assert.Contains(t, verr.Error(), "ARCHIVE")
	})

	t.Run("NoActions", func(t *testing.T) {
		c := valid()
		c.Actions = nil
		var verr *ValidationError
		require.ErrorAs(t, c.Validate(), &verr)
		assert.Equal(t, []string{"LCC_ACTIONS"}, verr.Missing)
	})
}
