package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvFileDefaults(t *testing.T) {
	cfg, err := FromEnvFile("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 60*time.Second, cfg.Game.RoundDuration)
	assert.Equal(t, 10, cfg.Game.PlaylistSize)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "poster/", cfg.S3.Prefix)
}

func TestFromEnvFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "HTTP_PORT=9999\nGAME_ROUND_DURATION=90s\nCORS_ORIGINS=http://a.test,http://b.test\nAPI_KEY=tmdb-key\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		for _, k := range []string{"HTTP_PORT", "GAME_ROUND_DURATION", "CORS_ORIGINS", "API_KEY"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := FromEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.HTTP.Port)
	assert.Equal(t, 90*time.Second, cfg.Game.RoundDuration)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "tmdb-key", cfg.TMDB.APIKey)
}

func TestFromEnvFileMissing(t *testing.T) {
	_, err := FromEnvFile(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	p := Postgres{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", p.DSN())
}
