package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus is the lifecycle of a journaled migration attempt.
type RecordStatus string

const (
	RecordPending RecordStatus = "pending"
	RecordDone    RecordStatus = "done"
	RecordFailed  RecordStatus = "failed"
)

// MigrationRecord is one migration attempt as written to the journal.
type MigrationRecord struct {
	ID        string          `json:"id"`
	Status    RecordStatus    `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Address   string          `json:"address"`
	Provider  string          `json:"provider"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Error     string          `json:"error,omitempty"`
}
