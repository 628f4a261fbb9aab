// Package journal records migration attempts in a write-ahead log.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/gowal"

	"github.com/aiachain/migrator/internal/domain"
)

const (
	defaultJournalDir    = "./wal/migrations"
	journalSegmentLimit  = 1000
	journalMaxSegments   = 100
	migrationKeyPrefix   = "migration_"
	journalDirPermission = 0o755
)

// WALStore persists migration records. Every status change appends a new
// entry; readers keep the last entry per record ID.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore opens (or creates) the journal under dir.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = defaultJournalDir
	}
	if err := os.MkdirAll(dir, journalDirPermission); err != nil {
		return nil, errors.Wrapf(err, "create journal dir %s", dir)
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "migration_",
		SegmentThreshold: journalSegmentLimit,
		MaxSegments:      journalMaxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init migration journal WAL")
	}

	return &WALStore{wal: wal}, nil
}

// Prepare writes a pending record for a migration that is about to start.
func (s *WALStore) Prepare(amount decimal.Decimal, wallet domain.WalletState, at time.Time) (*domain.MigrationRecord, error) {
	record := &domain.MigrationRecord{
		ID:        uuid.New().String(),
		Status:    domain.RecordPending,
		Amount:    amount,
		Address:   wallet.Address,
		Provider:  wallet.Provider,
		CreatedAt: at,
		UpdatedAt: at,
	}

	if err := s.save(record); err != nil {
		return nil, err
	}
	return record, nil
}

// MarkDone records that the migration completed.
func (s *WALStore) MarkDone(record *domain.MigrationRecord, at time.Time) error {
	if record == nil {
		return nil
	}
	record.Status = domain.RecordDone
	record.Error = ""
	record.UpdatedAt = at
	return s.save(record)
}

// MarkFailed records that the migration failed with cause.
func (s *WALStore) MarkFailed(record *domain.MigrationRecord, cause error, at time.Time) error {
	if record == nil {
		return nil
	}
	record.Status = domain.RecordFailed
	record.Error = ""
	if cause != nil {
		record.Error = cause.Error()
	}
	record.UpdatedAt = at
	return s.save(record)
}

// Records returns the latest state of every journaled migration, oldest first.
func (s *WALStore) Records() ([]domain.MigrationRecord, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("migration journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var order []string
	latest := make(map[string]domain.MigrationRecord)
	for msg := range s.wal.Iterator() {
		if !strings.HasPrefix(msg.Key, migrationKeyPrefix) {
			continue
		}
		var record domain.MigrationRecord
		if err := json.Unmarshal(msg.Value, &record); err != nil {
			return nil, errors.Wrapf(err, "decode migration record %s", msg.Key)
		}
		if _, seen := latest[record.ID]; !seen {
			order = append(order, record.ID)
		}
		latest[record.ID] = record
	}

	records := make([]domain.MigrationRecord, 0, len(order))
	for _, id := range order {
		records = append(records, latest[id])
	}
	return records, nil
}

// CurrentIndex returns the latest WAL index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("migration journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}

func (s *WALStore) save(record *domain.MigrationRecord) error {
	if s == nil || s.wal == nil {
		return errors.New("migration journal is not initialized")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal migration record")
	}

	key := fmt.Sprintf("%s%s", migrationKeyPrefix, record.ID)

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return errors.Wrapf(s.wal.Write(nextIndex, key, payload), "write migration record %s", record.ID)
}
