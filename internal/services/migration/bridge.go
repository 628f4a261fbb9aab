package migration

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/internal/clock"
	"github.com/aiachain/migrator/internal/domain"
)

const (
	// DefaultApproveDelay is how long the simulated token approval takes.
	DefaultApproveDelay = 2 * time.Second
	// DefaultMigrateDelay is how long the simulated bridge transaction takes.
	DefaultMigrateDelay = 3 * time.Second
)

// Bridge performs the two on-chain steps of a migration.
type Bridge interface {
	// Approve lets the bridge contract spend amount of legacy tokens.
	Approve(ctx context.Context, amount decimal.Decimal) error
	// Migrate burns amount of legacy tokens and credits the native balance.
	Migrate(ctx context.Context, session *domain.WalletSession, amount decimal.Decimal) error
}

// SimulatedBridge stands in for the bridge contract: each step is a fixed
// delay followed by an in-memory balance update.
type SimulatedBridge struct {
	clock        clock.Clock
	approveDelay time.Duration
	migrateDelay time.Duration
	logger       *zap.Logger
}

// NewSimulatedBridge creates a bridge whose steps take the given delays.
func NewSimulatedBridge(clk clock.Clock, approveDelay, migrateDelay time.Duration, logger *zap.Logger) *SimulatedBridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &SimulatedBridge{
		clock:        clk,
		approveDelay: approveDelay,
		migrateDelay: migrateDelay,
		logger:       logger,
	}
}

// Approve waits out the approval delay.
func (b *SimulatedBridge) Approve(ctx context.Context, amount decimal.Decimal) error {
	b.logger.Debug("simulate approve", zap.String("amount", amount.String()), zap.Duration("delay", b.approveDelay))
	if err := b.clock.Sleep(ctx, b.approveDelay); err != nil {
		return errors.Wrap(err, "approve")
	}
	return nil
}

// Migrate waits out the transaction delay, then moves the balance.
func (b *SimulatedBridge) Migrate(ctx context.Context, session *domain.WalletSession, amount decimal.Decimal) error {
	b.logger.Debug("simulate migrate", zap.String("amount", amount.String()), zap.Duration("delay", b.migrateDelay))
	if err := b.clock.Sleep(ctx, b.migrateDelay); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return errors.Wrap(session.Migrate(amount), "apply migration")
}
