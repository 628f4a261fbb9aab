package domain

import (
	"strings"

	"github.com/pkg/errors"
)

// WalletProvider is a wallet the user can pick in the connect dialog.
type WalletProvider struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// DefaultProviders lists the wallets offered when config does not override them.
func DefaultProviders() []WalletProvider {
	return []WalletProvider{
		{Name: "MetaMask", Description: "Connect to your MetaMask Wallet"},
		{Name: "WalletConnect", Description: "Scan with WalletConnect to connect"},
		{Name: "Trust Wallet", Description: "Connect to your Trust Wallet"},
		{Name: "Coinbase Wallet", Description: "Connect to your Coinbase Wallet"},
		{Name: "Phantom", Description: "Connect using Phantom"},
		{Name: "OKX Wallet", Description: "Connect to OKX Wallet"},
	}
}

// FindProvider looks name up case-insensitively.
func FindProvider(providers []WalletProvider, name string) (WalletProvider, error) {
	name = strings.TrimSpace(name)
	for _, p := range providers {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return WalletProvider{}, errors.Wrapf(ErrUnknownProvider, "%q", name)
}
