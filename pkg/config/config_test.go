package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/predatorx7/thoth/pkg/fingerprint"
)

func TestNew_Positional(t *testing.T) {
	env := &fingerprint.Static{UserAgentValue: "UA/1.0"}
	cfg := New("https://collect.example/log", "myapp", env, true)

	assert.Equal(t, "https://collect.example/log", cfg.Endpoint)
	assert.Equal(t, "myapp", cfg.AppName)
	assert.Same(t, env, cfg.Client)
	assert.True(t, cfg.MirrorToConsole)
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Ready())
}

func TestNew_NilStaticClient(t *testing.T) {
	cfg := New("http://c", "myapp", (*fingerprint.Static)(nil), false)

	assert.Nil(t, cfg.Client)
	assert.False(t, cfg.Ready())
	assert.ErrorIs(t, cfg.Validate(), ErrIncomplete)
}

func TestFromOptions_Defaults(t *testing.T) {
	cfg := FromOptions(Options{})

	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, "", cfg.AppName)
	assert.Nil(t, cfg.Client)
	assert.False(t, cfg.MirrorToConsole)
	assert.False(t, cfg.Ready())
}

func TestFromOptions_NamedFields(t *testing.T) {
	env := &fingerprint.Static{UserAgentValue: "UA/1.0"}
	cfg := FromOptions(Options{Server: "http://c", App: "a", Client: env, ToConsole: true})

	assert.Equal(t, "http://c", cfg.Endpoint)
	assert.Equal(t, "a", cfg.AppName)
	assert.Same(t, env, cfg.Client)
	assert.True(t, cfg.MirrorToConsole)
}

func TestValidate(t *testing.T) {
	env := &fingerprint.Static{}

	tests := []struct {
		name string
		cfg  *Config
		msg  string
	}{
		{"nil", nil, "no configuration"},
		{"endpoint", New("", "app", env, false), "endpoint is empty"},
		{"app", New("http://c", "", env, false), "app name is empty"},
		{"client", New("http://c", "app", nil, false), "client environment is missing"},
		{"nil static client", &Config{Endpoint: "http://c", AppName: "app", Client: (*fingerprint.Static)(nil)}, "client environment is missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, ErrIncomplete, errors.Cause(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thoth.yaml")
	content := `server: https://collect.example/log
app: myapp
toConsole: true
client:
  userAgent: UA/1.0
  platform: Linux x86_64
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	o, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://collect.example/log", o.Server)
	assert.Equal(t, "myapp", o.App)
	assert.True(t, o.ToConsole)
	require.NotNil(t, o.Client)
	assert.Equal(t, "UA/1.0", o.Client.UserAgent())
	assert.Equal(t, "Linux x86_64", o.Client.Platform())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvServer, "http://env")
	t.Setenv(EnvApp, "")
	t.Setenv(EnvToConsole, "true")

	o, err := FromEnv(Options{Server: "http://file", App: "fileapp"})
	require.NoError(t, err)
	assert.Equal(t, "http://env", o.Server)
	assert.Equal(t, "fileapp", o.App)
	assert.True(t, o.ToConsole)

	t.Setenv(EnvToConsole, "maybe")
	_, err = FromEnv(Options{})
	assert.Error(t, err)
}

func TestAddFlags(t *testing.T) {
	o := Options{Server: "http://env", App: "envapp"}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)

	require.NoError(t, fs.Parse([]string{"--app", "flagapp", "--to-console"}))
	assert.Equal(t, "http://env", o.Server)
	assert.Equal(t, "flagapp", o.App)
	assert.True(t, o.ToConsole)
}
