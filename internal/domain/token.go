package domain

import "fmt"

// Token is one side of the migration.
type Token struct {
	// Symbol token ticker.
	Symbol string
	// Network chain the token lives on.
	Network string
}

// String returns the string representation.
func (t Token) String() string {
	return fmt.Sprintf("%s (%s)", t.Symbol, t.Network)
}

var (
	// LegacyToken the BEP-20 token being retired.
	LegacyToken = Token{Symbol: "AIA", Network: "BSC Network"}
	// NativeToken the token on the destination chain.
	NativeToken = Token{Symbol: "AIA", Network: "AIA Chain"}
)
