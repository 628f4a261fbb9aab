package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Defaults(t *testing.T) {
	c, err := Get("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, 500*time.Millisecond, c.ConnectDelay)
	assert.Equal(t, 2*time.Second, c.ApproveDelay)
	assert.Equal(t, 3*time.Second, c.MigrateDelay)
	assert.Equal(t, "0x71C...9A21", c.Address)
	assert.True(t, decimal.RequireFromString("15420.50").Equal(c.LegacyBalance))
	assert.True(t, c.NativeBalance.IsZero())
	assert.Len(t, c.Providers, 6)
	assert.Empty(t, c.JournalDir)
}

func TestGet_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.yaml")
	data := []byte(`
listen: 127.0.0.1:9000
connect_delay: 0s
approve_delay: 100ms
migrate_delay: 1m
address: "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"
legacy_balance: "1000.25"
native_balance: "12"
journal: true
providers:
  - name: MetaMask
    description: Browser extension
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	c, err := Get(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", c.ListenAddr)
	assert.Equal(t, time.Duration(0), c.ConnectDelay)
	assert.Equal(t, 100*time.Millisecond, c.ApproveDelay)
	assert.Equal(t, time.Minute, c.MigrateDelay)
	assert.True(t, decimal.RequireFromString("1000.25").Equal(c.LegacyBalance))
	assert.True(t, decimal.NewFromInt(12).Equal(c.NativeBalance))
	require.Len(t, c.Providers, 1)
	assert.Equal(t, "Browser extension", c.Providers[0].Description)
	assert.Equal(t, "./wal/migrations", c.JournalDir)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad legacy", yaml: `legacy_balance: "lots"`},
		{name: "negative native", yaml: `native_balance: "-1"`},
		{name: "negative delay", yaml: `approve_delay: -1s`},
		{name: "nameless provider", yaml: "providers:\n  - description: nothing"},
		{name: "not yaml", yaml: "listen: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_JournalDirWins(t *testing.T) {
	c, err := Parse([]byte("journal: true\njournal_dir: /tmp/journal\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/journal", c.JournalDir)
}
