package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// ShortAddress renders an account for the navbar: "0x71C...9A21".
// Full hex addresses are checksummed first; anything else is returned as is.
func ShortAddress(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	hex := common.HexToAddress(addr).Hex()
	return hex[:5] + "..." + hex[len(hex)-4:]
}

// NormalizeAddress returns the checksummed form of a hex address,
// leaving display-only placeholders untouched.
func NormalizeAddress(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	return common.HexToAddress(addr).Hex()
}
