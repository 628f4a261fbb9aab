package domain

import "time"

const (
	labelConnect   = "Connect Wallet"
	labelApproving = "Approving..."
	labelMigrating = "Migrating..."
	labelMigrate   = "Migrate"
)

// Snapshot is the read model rendered by the web and terminal front ends.
// Balances are strings so decimals survive JSON untouched.
type Snapshot struct {
	Timestamp    time.Time       `json:"ts"`
	Connected    bool            `json:"connected"`
	Address      string          `json:"address,omitempty"`
	ShortAddress string          `json:"short_address,omitempty"`
	Provider     string          `json:"provider,omitempty"`
	Legacy       string          `json:"legacy"`
	Native       string          `json:"native"`
	Amount       string          `json:"amount"`
	Receive      string          `json:"receive"`
	Status       MigrationStatus `json:"status"`
	Error        string          `json:"error,omitempty"`
	Busy         bool            `json:"busy"`
	Action       string          `json:"action"`
	Disabled     bool            `json:"disabled"`
}

// NewSnapshot builds the read model from the wallet and workflow state.
func NewSnapshot(ts time.Time, wallet WalletState, amount string, status MigrationStatus, errMsg string) Snapshot {
	var address, short string
	if wallet.Connected {
		address = wallet.Address
		short = ShortAddress(wallet.Address)
	}

	return Snapshot{
		Timestamp:    ts,
		Connected:    wallet.Connected,
		Address:      address,
		ShortAddress: short,
		Provider:     wallet.Provider,
		Legacy:       wallet.Legacy.StringFixed(2),
		Native:       wallet.Native.StringFixed(2),
		Amount:       amount,
		// 1:1 rate
		Receive:  amount,
		Status:   status,
		Error:    errMsg,
		Busy:     status.IsBusy(),
		Action:   ActionLabel(wallet.Connected, status),
		Disabled: status == StatusSuccess && amount == "",
	}
}

// ActionLabel is the text of the primary button.
func ActionLabel(connected bool, status MigrationStatus) string {
	switch {
	case !connected:
		return labelConnect
	case status == StatusApproving:
		return labelApproving
	case status == StatusMigrating:
		return labelMigrating
	default:
		return labelMigrate
	}
}
