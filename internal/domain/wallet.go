package domain

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// WalletState is a copy of the session fields at one point in time.
type WalletState struct {
	Connected bool
	Address   string
	Provider  string
	Legacy    decimal.Decimal
	Native    decimal.Decimal
}

// WalletSession holds the simulated wallet connection and its two balances.
// All mutation goes through its methods; the zero value is a disconnected session.
type WalletSession struct {
	mu        sync.RWMutex
	connected bool
	address   string
	provider  string
	legacy    decimal.Decimal
	native    decimal.Decimal
}

// NewWalletSession returns a disconnected session.
func NewWalletSession() *WalletSession {
	return &WalletSession{}
}

// Connect marks the session connected and loads the given balances.
func (s *WalletSession) Connect(provider, address string, legacy, native decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = true
	s.provider = provider
	s.address = address
	s.legacy = legacy
	s.native = native
}

// Disconnect resets the session to its disconnected defaults.
func (s *WalletSession) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connected = false
	s.provider = ""
	s.address = ""
	s.legacy = decimal.Zero
	s.native = decimal.Zero
}

// Migrate moves amount from the legacy balance to the native balance.
// Both balances change together or not at all.
func (s *WalletSession) Migrate(amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		return ErrNotConnected
	}
	if !amount.IsPositive() {
		return errors.Wrapf(ErrInvalidAmount, "amount must be positive, got %s", amount.String())
	}
	if amount.GreaterThan(s.legacy) {
		return errors.Wrapf(ErrInsufficientFunds, "have %s need %s", s.legacy.String(), amount.String())
	}

	s.legacy = s.legacy.Sub(amount)
	s.native = s.native.Add(amount)
	return nil
}

// State returns a copy of the session.
func (s *WalletSession) State() WalletState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return WalletState{
		Connected: s.connected,
		Address:   s.address,
		Provider:  s.provider,
		Legacy:    s.legacy,
		Native:    s.native,
	}
}

// IsConnected reports whether a wallet is connected.
func (s *WalletSession) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// LegacyBalance returns the balance on the source chain.
func (s *WalletSession) LegacyBalance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.legacy
}

// NativeBalance returns the balance on the destination chain.
func (s *WalletSession) NativeBalance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.native
}
