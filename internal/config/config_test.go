package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_defaults(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	c, err := New(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Nil(err)

	assert.Equal(8123, c.Server.Port)
	assert.Equal("web/static", c.Server.StaticDir)
	assert.Equal(Duration(12*time.Hour), c.Session.Lifetime)
	assert.Contains(c.Server.PublicPaths, "/login")
	assert.False(c.Live)
}

func Test_yamlOverrides(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
server:
  port: 9999
session:
  lifetime: 1h30m
`), 0o600)
	require.Nil(err)

	c, err := New(path)
	require.Nil(err)

	assert.Equal(9999, c.Server.Port)
	assert.Equal(Duration(90*time.Minute), c.Session.Lifetime)
	// untouched sections keep defaults
	assert.Equal("web/tmpl", c.Site.TemplateDir)
}

func Test_badDuration(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("session:\n  lifetime: soon\n"), 0o600)
	require.Nil(err)

	_, err = New(path)
	require.Error(err)
}

func Test_env(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	t.Setenv(EnvSecret, "s3cret")
	t.Setenv(EnvLive, "true")

	c, err := New(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Nil(err)

	assert.Equal("s3cret", c.Secret)
	assert.True(c.Live)
}

func Test_env_badLive(t *testing.T) {
	require := require.New(t)

	t.Setenv(EnvLive, "not-a-bool")

	_, err := New(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(err)
}
