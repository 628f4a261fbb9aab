// Package domain defines the core data structures of the migration portal.
package domain

// MigrationStatus is the state of the migration workflow.
type MigrationStatus string

const (
	// StatusIdle nothing in flight.
	StatusIdle MigrationStatus = "idle"
	// StatusApproving legacy tokens are being approved for the bridge.
	StatusApproving MigrationStatus = "approving"
	// StatusMigrating the bridge transaction is pending.
	StatusMigrating MigrationStatus = "migrating"
	// StatusSuccess the last migration completed.
	StatusSuccess MigrationStatus = "success"
	// StatusError the last migration failed.
	StatusError MigrationStatus = "error"
)

// String returns the string representation.
func (s MigrationStatus) String() string {
	return string(s)
}

// IsValid checks if the MigrationStatus value is valid.
func (s MigrationStatus) IsValid() bool {
	switch s {
	case StatusIdle, StatusApproving, StatusMigrating, StatusSuccess, StatusError:
		return true
	}
	return false
}

// IsBusy reports whether a migration is in flight.
func (s MigrationStatus) IsBusy() bool {
	return s == StatusApproving || s == StatusMigrating
}

// IsTerminal reports whether the status is the outcome of a finished attempt.
// Editing the amount in a terminal status resets the workflow to idle.
func (s MigrationStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError
}
