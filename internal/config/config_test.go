package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "feedback-hub", cfg.App.Name)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, "feedback.events", cfg.RabbitMQ.EventQueue)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
[app]
port = 9090

[database]
driver = "sqlite"

[sqlite]
path = "/tmp/feedback.db"

[redis]
enabled = false
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SQLITE_PATH", "/var/lib/feedback.db")
	t.Setenv("RABBITMQ_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/var/lib/feedback.db", cfg.SQLite.Path)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.RabbitMQ.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("APP_PORT", "not-a-number")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "[app\nport = "))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config file failed")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: `unsupported database driver "postgres"`,
		},
		{
			name:    "empty secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = " " },
			wantErr: "jwt secret is empty",
		},
		{
			name:    "placeholder secret outside dev",
			mutate:  func(c *Config) { c.App.Env = "prod" },
			wantErr: `jwt secret must be changed in env "prod"`,
		},
		{
			name:   "placeholder secret in test",
			mutate: func(c *Config) { c.App.Env = EnvTest },
		},
		{
			name: "real secret outside dev",
			mutate: func(c *Config) {
				c.App.Env = "prod"
				c.Auth.JWTSecret = "a-real-secret"
			},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.App.Port = 70000 },
			wantErr: "invalid app port 70000",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Database.Driver = DriverSQLite
				c.SQLite.Path = ""
			},
			wantErr: "sqlite path is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.MySQL.User = "feedback"
	cfg.MySQL.Password = "secret"

	assert.Equal(t,
		"feedback:secret@tcp(127.0.0.1:3306)/feedback_hub?parseTime=true&loc=UTC&charset=utf8mb4",
		cfg.MySQLDSN(),
	)
}
