// Package wallet connects and disconnects the simulated wallet.
package wallet

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/internal/clock"
	"github.com/aiachain/migrator/internal/domain"
)

// DefaultConnectDelay is how long the simulated wallet handshake takes.
const DefaultConnectDelay = 500 * time.Millisecond

// DemoAccount is what every simulated wallet connects to.
type DemoAccount struct {
	Address string
	Legacy  decimal.Decimal
	Native  decimal.Decimal
}

// DefaultDemoAccount returns the account shown when config does not override it.
func DefaultDemoAccount() DemoAccount {
	return DemoAccount{
		Address: "0x71C...9A21",
		Legacy:  decimal.RequireFromString("15420.50"),
		Native:  decimal.Zero,
	}
}

// Notifier is told when the session changes.
type Notifier interface {
	Notify()
}

// Connector owns the connect and disconnect actions of a session.
type Connector struct {
	session   *domain.WalletSession
	clock     clock.Clock
	providers []domain.WalletProvider
	account   DemoAccount
	delay     time.Duration
	notifier  Notifier
	logger    *zap.Logger
}

// NewConnector creates a connector for session.
func NewConnector(session *domain.WalletSession, clk clock.Clock, providers []domain.WalletProvider,
	account DemoAccount, delay time.Duration, logger *zap.Logger) (*Connector, error) {
	if session == nil {
		return nil, errors.New("wallet session is required")
	}
	if len(providers) == 0 {
		providers = domain.DefaultProviders()
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Connector{
		session:   session,
		clock:     clk,
		providers: providers,
		account:   account,
		delay:     delay,
		logger:    logger,
	}, nil
}

// SetNotifier registers n to be told about session changes.
func (c *Connector) SetNotifier(n Notifier) {
	c.notifier = n
}

// Providers returns the wallets the user can choose from.
func (c *Connector) Providers() []domain.WalletProvider {
	out := make([]domain.WalletProvider, len(c.providers))
	copy(out, c.providers)
	return out
}

// Connect waits out the handshake delay and connects the demo account
// through the named provider. Reconnecting reloads the demo balances.
func (c *Connector) Connect(ctx context.Context, providerName string) (domain.WalletState, error) {
	provider, err := domain.FindProvider(c.providers, providerName)
	if err != nil {
		return domain.WalletState{}, err
	}

	c.logger.Info("connecting wallet", zap.String("provider", provider.Name))

	if err := c.clock.Sleep(ctx, c.delay); err != nil {
		return domain.WalletState{}, errors.Wrapf(err, "connect %s", provider.Name)
	}

	c.session.Connect(provider.Name, domain.NormalizeAddress(c.account.Address), c.account.Legacy, c.account.Native)
	c.notify()

	state := c.session.State()
	c.logger.Info("wallet connected",
		zap.String("provider", state.Provider),
		zap.String("address", state.Address),
		zap.String("legacy", state.Legacy.String()),
		zap.String("native", state.Native.String()))

	return state, nil
}

// Disconnect resets the session.
func (c *Connector) Disconnect() {
	c.session.Disconnect()
	c.notify()
	c.logger.Info("wallet disconnected")
}

func (c *Connector) notify() {
	if c.notifier != nil {
		c.notifier.Notify()
	}
}
