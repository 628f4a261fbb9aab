// Package config loads portal settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aiachain/migrator/internal/domain"
)

const (
	defaultListenAddr    = ":8080"
	defaultConnectDelay  = 500 * time.Millisecond
	defaultApproveDelay  = 2 * time.Second
	defaultMigrateDelay  = 3 * time.Second
	defaultDemoAddress   = "0x71C...9A21"
	defaultLegacyBalance = "15420.50"
	defaultNativeBalance = "0"
	defaultJournalDir    = "./wal/migrations"
)

// Config is the parsed portal configuration.
type Config struct {
	ListenAddr    string
	ConnectDelay  time.Duration
	ApproveDelay  time.Duration
	MigrateDelay  time.Duration
	Address       string
	LegacyBalance decimal.Decimal
	NativeBalance decimal.Decimal
	Providers     []domain.WalletProvider
	// JournalDir enables the migration journal when non-empty.
	JournalDir string
	Debug      bool
}

// ConfigTmp is the YAML shape of Config. Balances are strings so they are
// parsed as exact decimals.
type ConfigTmp struct {
	ListenAddr    string                  `yaml:"listen,omitempty"`
	ConnectDelay  *time.Duration          `yaml:"connect_delay,omitempty"`
	ApproveDelay  *time.Duration          `yaml:"approve_delay,omitempty"`
	MigrateDelay  *time.Duration          `yaml:"migrate_delay,omitempty"`
	Address       string                  `yaml:"address,omitempty"`
	LegacyBalance string                  `yaml:"legacy_balance,omitempty"`
	NativeBalance string                  `yaml:"native_balance,omitempty"`
	Providers     []domain.WalletProvider `yaml:"providers,omitempty"`
	Journal       bool                    `yaml:"journal,omitempty"`
	JournalDir    string                  `yaml:"journal_dir,omitempty"`
	Debug         bool                    `yaml:"debug,omitempty"`
}

// Default returns the settings of the demo portal.
func Default() Config {
	return Config{
		ListenAddr:    defaultListenAddr,
		ConnectDelay:  defaultConnectDelay,
		ApproveDelay:  defaultApproveDelay,
		MigrateDelay:  defaultMigrateDelay,
		Address:       defaultDemoAddress,
		LegacyBalance: decimal.RequireFromString(defaultLegacyBalance),
		NativeBalance: decimal.RequireFromString(defaultNativeBalance),
		Providers:     domain.DefaultProviders(),
	}
}

// Get loads path, or returns the defaults when path is empty.
func Get(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(f)
}

// Parse decodes YAML and fills in defaults for missing fields.
func Parse(data []byte) (Config, error) {
	var tmp ConfigTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, fmt.Errorf("decode yaml config: %w", err)
	}

	c := Default()
	if tmp.ListenAddr != "" {
		c.ListenAddr = tmp.ListenAddr
	}
	if tmp.Address != "" {
		c.Address = tmp.Address
	}
	c.Debug = tmp.Debug

	delays := []struct {
		name string
		src  *time.Duration
		dst  *time.Duration
	}{
		{"connect_delay", tmp.ConnectDelay, &c.ConnectDelay},
		{"approve_delay", tmp.ApproveDelay, &c.ApproveDelay},
		{"migrate_delay", tmp.MigrateDelay, &c.MigrateDelay},
	}
	for _, d := range delays {
		if d.src == nil {
			continue
		}
		if *d.src < 0 {
			return Config{}, fmt.Errorf("incorrect '%s' param in yaml config (must not be negative): %s", d.name, d.src.String())
		}
		*d.dst = *d.src
	}

	if tmp.LegacyBalance != "" {
		legacy, err := parseBalance(tmp.LegacyBalance)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'legacy_balance' param in yaml config (must be a non-negative decimal), error: %w", err)
		}
		c.LegacyBalance = legacy
	}
	if tmp.NativeBalance != "" {
		native, err := parseBalance(tmp.NativeBalance)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'native_balance' param in yaml config (must be a non-negative decimal), error: %w", err)
		}
		c.NativeBalance = native
	}

	if len(tmp.Providers) > 0 {
		for i, p := range tmp.Providers {
			if p.Name == "" {
				return Config{}, fmt.Errorf("incorrect 'providers' param in yaml config: provider #%d has no name", i+1)
			}
		}
		c.Providers = tmp.Providers
	}

	switch {
	case tmp.JournalDir != "":
		c.JournalDir = tmp.JournalDir
	case tmp.Journal:
		c.JournalDir = defaultJournalDir
	}

	return c, nil
}

func parseBalance(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative balance %s", d.String())
	}
	return d, nil
}
