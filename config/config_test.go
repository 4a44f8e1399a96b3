package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TODO_CONFIG", "PORT", "DB_FILE", "PUBLIC_DIR", "ALLOW_ORIGINS",
	"LOG_LEVEL", "LOG_FORMAT", "API_TOKEN_HASH", "BODY_LIMIT",
}

// clearEnv blanks every key Load reads; blank values are treated as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	wd, _ := os.Getwd()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, filepath.Join(wd, "db.json"), cfg.DBFile)
	assert.Equal(t, filepath.Join(wd, "public"), cfg.PublicDir)
	assert.Equal(t, []string{"*"}, cfg.Origins())
	assert.Equal(t, DefaultBodyLimit, cfg.BodyLimit)
	assert.Empty(t, cfg.APITokenHash)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("PORT", "8081")
	t.Setenv("DB_FILE", filepath.Join(dir, "data", "todos.json"))
	t.Setenv("ALLOW_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("BODY_LIMIT", "1024")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, filepath.Join(dir, "data", "todos.json"), cfg.DBFile)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
	assert.Equal(t, 1024, cfg.BodyLimit)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "todo.yaml")
	require.NoError(t, os.WriteFile(file, []byte("port: \"4000\"\nlog_level: debug\nallow_origins: http://yaml.test\n"), 0644))
	t.Setenv("TODO_CONFIG", file)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, []string{"http://yaml.test"}, cfg.Origins())
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_FORMAT=console\n"), 0644))
	// godotenv never overrides a variable that is set, even to blank.
	os.Unsetenv("LOG_FORMAT")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "PORT", "http"},
		{"bad body limit", "BODY_LIMIT", "lots"},
		{"zero body limit", "BODY_LIMIT", "0"},
		{"missing config file", "TODO_CONFIG", "/nonexistent/todo.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}
