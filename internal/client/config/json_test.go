package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	full := filepath.Join(dir, "full.json")
	require.NoError(t, os.WriteFile(full, []byte(`{"server_url":"http://x:1","request_timeout":"2s"}`), 0o600))
	partial := filepath.Join(dir, "partial.json")
	require.NoError(t, os.WriteFile(partial, []byte(`{"request_timeout":"4s"}`), 0o600))
	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o600))

	t.Run("full file", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", full}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)
		assert.Equal(t, "http://x:1", cfg.ServerURL)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		os.Args = []string{"cmd", "-config", partial}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)
		assert.Equal(t, "http://127.0.0.1:3000", cfg.ServerURL)
		assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	})

	t.Run("no flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"cmd"}
		cfg := &Config{ServerURL: "keep"}
		parseJson(cfg)
		assert.Equal(t, "keep", cfg.ServerURL)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", filepath.Join(dir, "nope.json")}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("malformed file panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", broken}
		assert.Panics(t, func() { parseJson(&Config{}) })
	})
}
