package domain

import "github.com/pkg/errors"

var (
	// ErrInvalidAmount amount is empty, not a number or not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds amount exceeds the legacy balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrTransaction the simulated approve or migrate step failed.
	ErrTransaction = errors.New("transaction error")
	// ErrNotConnected no wallet is connected.
	ErrNotConnected = errors.New("wallet is not connected")
	// ErrBusy a migration is already in flight.
	ErrBusy = errors.New("migration already in progress")
	// ErrUnknownProvider the requested wallet provider is not supported.
	ErrUnknownProvider = errors.New("unknown wallet provider")
)

var userMessages = []struct {
	err error
	msg string
}{
	{ErrInvalidAmount, "Enter a valid amount"},
	{ErrInsufficientFunds, "Insufficient funds"},
	{ErrTransaction, "Transaction error. Please try again."},
	{ErrNotConnected, "Connect your wallet first"},
	{ErrBusy, "Migration in progress"},
	{ErrUnknownProvider, "Unsupported wallet"},
}

// UserMessage maps err to the text shown next to the migrate button.
// Unknown errors fall back to the generic transaction message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Transaction error. Please try again."
}
