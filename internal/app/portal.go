// Package app wires the migration portal together from config.
package app

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/config"
	"github.com/aiachain/migrator/internal/clock"
	"github.com/aiachain/migrator/internal/domain"
	"github.com/aiachain/migrator/internal/events"
	"github.com/aiachain/migrator/internal/services/migration"
	"github.com/aiachain/migrator/internal/services/wallet"
	"github.com/aiachain/migrator/internal/storage/journal"
)

// Portal is one wallet session with everything that acts on it.
type Portal struct {
	Session   *domain.WalletSession
	Workflow  *migration.Workflow
	Connector *wallet.Connector
	Events    *events.Broadcaster
	// Journal is nil when the journal is disabled.
	Journal *journal.WALStore

	logger *zap.Logger
}

// Option configures New.
type Option func(*options)

type options struct {
	clock  clock.Clock
	bridge migration.Bridge
}

// WithClock replaces the real clock.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithBridge replaces the simulated bridge.
func WithBridge(b migration.Bridge) Option {
	return func(o *options) {
		o.bridge = b
	}
}

// New builds a portal from cfg.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*Portal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bridge == nil {
		o.bridge = migration.NewSimulatedBridge(o.clock, cfg.ApproveDelay, cfg.MigrateDelay, logger.Named("bridge"))
	}

	p := &Portal{
		Session: domain.NewWalletSession(),
		Events:  events.NewBroadcaster(0),
		logger:  logger,
	}

	wfOpts := []migration.Option{migration.WithPublisher(p.Events)}
	if cfg.JournalDir != "" {
		j, err := journal.NewWALStore(cfg.JournalDir)
		if err != nil {
			return nil, errors.Wrap(err, "open migration journal")
		}
		p.Journal = j
		wfOpts = append(wfOpts, migration.WithJournal(j))
		logger.Info("migration journal enabled", zap.String("dir", cfg.JournalDir))
	}

	wf, err := migration.NewWorkflow(p.Session, o.bridge, o.clock, logger.Named("workflow"), wfOpts...)
	if err != nil {
		p.closeJournal()
		return nil, errors.Wrap(err, "create migration workflow")
	}
	p.Workflow = wf

	account := wallet.DemoAccount{
		Address: cfg.Address,
		Legacy:  cfg.LegacyBalance,
		Native:  cfg.NativeBalance,
	}
	conn, err := wallet.NewConnector(p.Session, o.clock, cfg.Providers, account, cfg.ConnectDelay, logger.Named("wallet"))
	if err != nil {
		p.closeJournal()
		return nil, errors.Wrap(err, "create wallet connector")
	}
	conn.SetNotifier(wf)
	p.Connector = conn

	return p, nil
}

// History returns journaled migrations, oldest first. It is empty when the
// journal is disabled.
func (p *Portal) History() ([]domain.MigrationRecord, error) {
	if p.Journal == nil {
		return []domain.MigrationRecord{}, nil
	}
	return p.Journal.Records()
}

// Close releases the journal.
func (p *Portal) Close() error {
	return p.closeJournal()
}

func (p *Portal) closeJournal() error {
	if p.Journal == nil {
		return nil
	}
	err := p.Journal.Close()
	p.Journal = nil
	if err != nil {
		p.logger.Warn("failed to close migration journal", zap.Error(err))
	}
	return err
}
