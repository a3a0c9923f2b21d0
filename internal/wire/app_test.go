package wire

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/viralscript/internal/config"
	"github.com/mithrel/viralscript/pkg/api"
)

func newTestApp(t *testing.T, set map[string]any) *App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	v := viper.New()
	v.Set("data_dir", t.TempDir())
	v.Set("credential.backend", "db")
	for k, val := range set {
		v.Set(k, val)
	}
	require.NoError(t, config.Load(context.Background(), v))
	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestBuildAppDBBackend(t *testing.T) {
	app := newTestApp(t, map[string]any{"credential.env_vars": []string{"VS_TEST_UNSET_KEY"}})
	assert.Equal(t, "db", app.Backend)
	assert.False(t, app.Creds.Has())

	require.NoError(t, app.Creds.Save("0123456789abcdefghijKLMN"))
	assert.True(t, app.Creds.Has())

	_, err := os.Stat(filepath.Join(app.Cfg.GetString("data_dir"), "viralscript.db"))
	require.NoError(t, err)
	_, err = os.Stat(app.Cfg.GetString("log.file"))
	require.NoError(t, err)
}

func TestThemePersistence(t *testing.T) {
	app := newTestApp(t, map[string]any{"theme": "light"})
	ctx := context.Background()
	assert.Equal(t, api.ThemeLight, app.Theme(ctx))

	require.NoError(t, app.SaveTheme(ctx, api.ThemeDark))
	assert.Equal(t, api.ThemeDark, app.Theme(ctx))
}

func TestEnvCredentialIsUsed(t *testing.T) {
	t.Setenv("VS_TEST_KEY", "env-key-0123456789abcdef")
	app := newTestApp(t, map[string]any{"credential.env_vars": []string{"VS_TEST_KEY"}})
	key, origin, ok := app.Creds.Resolve()
	require.True(t, ok)
	assert.Equal(t, "env-key-0123456789abcdef", key)
	assert.Equal(t, "environment", origin.String())
}

func TestUnknownProvider(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v := viper.New()
	v.Set("data_dir", t.TempDir())
	v.Set("provider", "nope")
	v.Set("credential.backend", "db")
	require.NoError(t, config.Load(context.Background(), v))
	_, err := BuildApp(context.Background(), v)
	require.Error(t, err)
}
