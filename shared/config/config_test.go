package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, StorageMemory, cfg.Public.Storage)
	assert.Equal(t, int64(10_000_000), cfg.MaxAttachmentBytes())
	assert.Equal(t, 4000, cfg.Public.MaxMessageLength)
}

func TestMustLoad(t *testing.T) {
	dir := writeConfig(t,
		"storage: postgres\nmax_attachment_size: 2 MiB\nfeed_capacity: 10\nmembership_cache_ttl: 5\n",
		"jwt_key: 'k'\npg:\n  host: db\n  port: 5432\n  user: u\n  password: p\n  dbname: huddle\n")

	cfg := MustLoad(dir)

	assert.Equal(t, StoragePostgres, cfg.Public.Storage)
	assert.Equal(t, int64(2<<20), cfg.MaxAttachmentBytes())
	assert.Equal(t, 10, cfg.Public.FeedCapacity)
	assert.Equal(t, "db", cfg.Private.Pg.Host)
	assert.Equal(t, "k", cfg.JwtKey())
	// untouched fields keep defaults
	assert.Equal(t, 4000, cfg.Public.MaxMessageLength)
}

func TestMustLoad_EnvOverridesSecrets(t *testing.T) {
	dir := writeConfig(t, "storage: memory\n", "jwt_key: 'from-yaml'\n")
	t.Setenv("HUDDLE_JWT_KEY", "from-env")

	cfg := MustLoad(dir)
	assert.Equal(t, "from-env", cfg.JwtKey())
}

func TestMustLoad_DotEnv(t *testing.T) {
	dir := writeConfig(t, "storage: memory\n", "jwt_key: 'from-yaml'\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HUDDLE_PG_PASSWORD=secret\n"), 0o600))
	t.Setenv("HUDDLE_PG_PASSWORD", "")
	os.Unsetenv("HUDDLE_PG_PASSWORD")

	cfg := MustLoad(dir)
	assert.Equal(t, "secret", cfg.Private.Pg.Password)
}

func TestMustLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		public  string
		private string
	}{
		{"missing jwt key", "storage: memory\n", "jwt_key: ''\n"},
		{"unknown storage", "storage: mongo\n", "jwt_key: 'k'\n"},
		{"bad size", "max_attachment_size: lots\n", "jwt_key: 'k'\n"},
		{"redis feed without url", "feed: redis\n", "jwt_key: 'k'\n"},
		{"s3 without bucket", "blob: s3\n", "jwt_key: 'k'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, tt.public, tt.private)
			t.Setenv("HUDDLE_JWT_KEY", "")
			t.Setenv("HUDDLE_REDIS_URL", "")
			assert.Panics(t, func() { MustLoad(dir) })
		})
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}
