package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aiachain/migrator/internal/domain"
)

func connectedWallet() domain.WalletState {
	return domain.WalletState{
		Connected: true,
		Address:   "0x71c7656ec7ab88b098defb751b7401b5f6d8976f",
		Provider:  "MetaMask",
		Legacy:    decimal.RequireFromString("15420.50"),
		Native:    decimal.Zero,
	}
}

func TestRenderCard(t *testing.T) {
	t.Run("disconnected", func(t *testing.T) {
		out := RenderCard(domain.NewSnapshot(time.Now(), domain.WalletState{}, "", domain.StatusIdle, ""))
		assert.Contains(t, out, "not connected")
		assert.Contains(t, out, "0.00")
	})

	t.Run("connected with amount", func(t *testing.T) {
		out := RenderCard(domain.NewSnapshot(time.Now(), connectedWallet(), "5000", domain.StatusIdle, ""))
		assert.Contains(t, out, "0x71C...976F")
		assert.Contains(t, out, "MetaMask")
		assert.Contains(t, out, "15420.50")
		assert.Contains(t, out, "5000")
		assert.Contains(t, out, "BSC Network")
		assert.Contains(t, out, "AIA Chain")
	})

	t.Run("error", func(t *testing.T) {
		out := RenderCard(domain.NewSnapshot(time.Now(), connectedWallet(), "0", domain.StatusIdle, "Enter a valid amount"))
		assert.Contains(t, out, "Enter a valid amount")
	})
}

func TestStatusLine(t *testing.T) {
	w := connectedWallet()
	tests := []struct {
		name   string
		status domain.MigrationStatus
		errMsg string
		want   string
	}{
		{name: "idle", status: domain.StatusIdle, want: ""},
		{name: "approving", status: domain.StatusApproving, want: "Approving..."},
		{name: "migrating", status: domain.StatusMigrating, want: "Migrating..."},
		{name: "success", status: domain.StatusSuccess, want: "Migration successful"},
		{name: "error", status: domain.StatusError, errMsg: "Transaction error. Please try again.", want: "Transaction error. Please try again."},
		{name: "idle with message", status: domain.StatusIdle, errMsg: "Insufficient funds", want: "Insufficient funds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := StatusLine(domain.NewSnapshot(time.Now(), w, "1", tt.status, tt.errMsg))
			if tt.want == "" {
				assert.Empty(t, line)
				return
			}
			assert.Contains(t, line, tt.want)
		})
	}
}

func TestRenderHistory(t *testing.T) {
	assert.Contains(t, RenderHistory(nil), "No migrations recorded.")

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := RenderHistory([]domain.MigrationRecord{
		{ID: "a", Status: domain.RecordDone, Amount: decimal.NewFromInt(5000), Address: "0x71c7656ec7ab88b098defb751b7401b5f6d8976f", Provider: "MetaMask", CreatedAt: at},
		{ID: "b", Status: domain.RecordFailed, Amount: decimal.RequireFromString("1.5"), Address: "0x71C...9A21", Provider: "Phantom", CreatedAt: at.Add(time.Minute), Error: "context canceled"},
	})

	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "0x71C...976F")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "context canceled")
	assert.Less(t, strings.Index(out, "Phantom"), strings.Index(out, "MetaMask"))
}

