package domain

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// amountInputPattern is what the amount field accepts while typing:
// digits with at most one decimal point, possibly empty.
var amountInputPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// IsAmountInput reports whether s may be placed in the amount field.
func IsAmountInput(s string) bool {
	return amountInputPattern.MatchString(s)
}

// ParseAmount converts the amount field into a positive decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.Wrap(ErrInvalidAmount, "amount is empty")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "parse %q", s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "amount must be positive, got %s", amount.String())
	}

	return amount, nil
}

// MigrationRequest is a validated request to move amount from the legacy
// balance to the native one.
type MigrationRequest struct {
	Amount decimal.Decimal
}

// NewMigrationRequest validates input against the available legacy balance.
func NewMigrationRequest(input string, legacy decimal.Decimal) (MigrationRequest, error) {
	amount, err := ParseAmount(input)
	if err != nil {
		return MigrationRequest{}, err
	}
	if amount.GreaterThan(legacy) {
		return MigrationRequest{}, errors.Wrapf(ErrInsufficientFunds, "have %s need %s", legacy.String(), amount.String())
	}

	return MigrationRequest{Amount: amount}, nil
}
