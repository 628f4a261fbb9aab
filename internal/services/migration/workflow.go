// Package migration drives a legacy to native token migration through
// approve and migrate steps.
package migration

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/internal/clock"
	"github.com/aiachain/migrator/internal/domain"
	"github.com/aiachain/migrator/pkg/retrier"
)

// Journal records migration attempts.
type Journal interface {
	Prepare(amount decimal.Decimal, wallet domain.WalletState, at time.Time) (*domain.MigrationRecord, error)
	MarkDone(record *domain.MigrationRecord, at time.Time) error
	MarkFailed(record *domain.MigrationRecord, cause error, at time.Time) error
}

// Publisher receives a snapshot after every state change.
type Publisher interface {
	Publish(s domain.Snapshot)
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithJournal records every attempt in j.
func WithJournal(j Journal) Option {
	return func(w *Workflow) {
		w.journal = j
	}
}

// WithPublisher pushes snapshots to p.
func WithPublisher(p Publisher) Option {
	return func(w *Workflow) {
		w.publisher = p
	}
}

// WithRetrier overrides the retrier used for journal writes.
func WithRetrier(r *retrier.Retrier) Option {
	return func(w *Workflow) {
		w.retrier = r
	}
}

// Workflow owns the migration form: the amount being typed, the current
// status and the message shown to the user.
//
// Status moves Idle -> Approving -> Migrating -> Success|Error. Validation
// failures only set the message. Editing the amount in Success or Error
// returns to Idle.
type Workflow struct {
	mu      sync.Mutex
	session *domain.WalletSession
	bridge  Bridge
	clock   clock.Clock
	logger  *zap.Logger

	journal   Journal
	publisher Publisher
	retrier   *retrier.Retrier

	status domain.MigrationStatus
	amount string
	errMsg string
}

// NewWorkflow creates an idle workflow over session.
func NewWorkflow(session *domain.WalletSession, bridge Bridge, clk clock.Clock, logger *zap.Logger, opts ...Option) (*Workflow, error) {
	if session == nil {
		return nil, errors.New("wallet session is required")
	}
	if bridge == nil {
		return nil, errors.New("bridge is required")
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Workflow{
		session: session,
		bridge:  bridge,
		clock:   clk,
		logger:  logger,
		status:  domain.StatusIdle,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.retrier == nil {
		w.retrier = retrier.New(retrier.WithClock(clk))
	}

	return w, nil
}

// SetAmount replaces the amount field. Input that is not a plain decimal
// number is ignored and false is returned.
func (w *Workflow) SetAmount(input string) bool {
	if !domain.IsAmountInput(input) {
		return false
	}

	w.mu.Lock()
	w.setAmountLocked(input)
	w.mu.Unlock()

	w.Notify()
	return true
}

// Max fills the amount field with the whole legacy balance.
func (w *Workflow) Max() string {
	amount := w.session.LegacyBalance().String()

	w.mu.Lock()
	w.setAmountLocked(amount)
	w.mu.Unlock()

	w.Notify()
	return amount
}

func (w *Workflow) setAmountLocked(input string) {
	if input == w.amount {
		return
	}
	w.amount = input
	if w.status.IsTerminal() {
		w.status = domain.StatusIdle
		w.errMsg = ""
	}
}

// Amount returns the amount field.
func (w *Workflow) Amount() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.amount
}

// Status returns the workflow status.
func (w *Workflow) Status() domain.MigrationStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// ErrorMessage returns the message shown under the form, if any.
func (w *Workflow) ErrorMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}

// Snapshot returns the current read model.
func (w *Workflow) Snapshot() domain.Snapshot {
	w.mu.Lock()
	amount, status, errMsg := w.amount, w.status, w.errMsg
	w.mu.Unlock()

	return domain.NewSnapshot(w.clock.Now(), w.session.State(), amount, status, errMsg)
}

// Notify publishes the current snapshot.
func (w *Workflow) Notify() {
	if w.publisher == nil {
		return
	}
	w.publisher.Publish(w.Snapshot())
}

// Submit runs a migration of the current amount and waits for it to finish.
func (w *Workflow) Submit(ctx context.Context) error {
	done, err := w.Start(ctx)
	if err != nil {
		return err
	}
	return <-done
}

// Start validates the amount and, when valid, moves to Approving and runs
// the remaining steps in the background. The returned channel receives the
// outcome once and is then closed.
//
// ErrNotConnected and ErrBusy leave the workflow untouched. ErrInvalidAmount
// and ErrInsufficientFunds set the message without changing the status.
func (w *Workflow) Start(ctx context.Context) (<-chan error, error) {
	w.mu.Lock()

	if !w.session.IsConnected() {
		w.mu.Unlock()
		return nil, domain.ErrNotConnected
	}
	if w.status.IsBusy() {
		w.mu.Unlock()
		return nil, domain.ErrBusy
	}

	req, err := domain.NewMigrationRequest(w.amount, w.session.LegacyBalance())
	if err != nil {
		w.errMsg = domain.UserMessage(err)
		w.mu.Unlock()

		w.logger.Info("migration rejected", zap.String("amount", w.amount), zap.Error(err))
		w.Notify()
		return nil, err
	}

	w.errMsg = ""
	w.status = domain.StatusApproving
	w.mu.Unlock()

	w.logger.Info("migration started", zap.String("amount", req.Amount.String()))
	w.Notify()

	record := w.prepareRecord(ctx, req)

	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- w.run(ctx, req, record)
	}()

	return done, nil
}

func (w *Workflow) run(ctx context.Context, req domain.MigrationRequest, record *domain.MigrationRecord) error {
	if err := w.bridge.Approve(ctx, req.Amount); err != nil {
		return w.fail(ctx, record, err)
	}

	w.setStatus(domain.StatusMigrating)
	w.logger.Info("migration approved", zap.String("amount", req.Amount.String()))

	if err := w.bridge.Migrate(ctx, w.session, req.Amount); err != nil {
		return w.fail(ctx, record, err)
	}

	w.mu.Lock()
	w.status = domain.StatusSuccess
	w.amount = ""
	w.mu.Unlock()

	w.logger.Info("migration completed",
		zap.String("amount", req.Amount.String()),
		zap.String("legacy", w.session.LegacyBalance().String()),
		zap.String("native", w.session.NativeBalance().String()))
	w.Notify()

	w.journalWrite(context.WithoutCancel(ctx), "mark migration done", func() error {
		return w.journal.MarkDone(record, w.clock.Now())
	}, record)

	return nil
}

func (w *Workflow) fail(ctx context.Context, record *domain.MigrationRecord, cause error) error {
	w.mu.Lock()
	w.status = domain.StatusError
	w.errMsg = domain.UserMessage(domain.ErrTransaction)
	w.mu.Unlock()

	w.logger.Error("migration failed", zap.Error(cause))
	w.Notify()

	w.journalWrite(context.WithoutCancel(ctx), "mark migration failed", func() error {
		return w.journal.MarkFailed(record, cause, w.clock.Now())
	}, record)

	return errors.Wrap(domain.ErrTransaction, cause.Error())
}

func (w *Workflow) setStatus(status domain.MigrationStatus) {
	w.mu.Lock()
	w.status = status
	w.mu.Unlock()
	w.Notify()
}

func (w *Workflow) prepareRecord(ctx context.Context, req domain.MigrationRequest) *domain.MigrationRecord {
	if w.journal == nil {
		return nil
	}

	record, err := retrier.DoWithData(w.retrier, ctx, func(ctx context.Context) (*domain.MigrationRecord, error) {
		return w.journal.Prepare(req.Amount, w.session.State(), w.clock.Now())
	})
	if err != nil {
		w.logger.Warn("failed to journal migration", zap.Error(err))
		return nil
	}
	return record
}

// journalWrite is best effort: a journal failure never changes the outcome
// of the migration.
func (w *Workflow) journalWrite(ctx context.Context, op string, fn func() error, record *domain.MigrationRecord) {
	if w.journal == nil || record == nil {
		return
	}
	err := w.retrier.Do(ctx, func(ctx context.Context) error {
		return fn()
	})
	if err != nil {
		w.logger.Warn("failed to "+op, zap.String("id", record.ID), zap.Error(err))
	}
}
