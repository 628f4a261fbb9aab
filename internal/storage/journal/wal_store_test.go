package journal

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiachain/migrator/internal/domain"
)

func newTestStore(t *testing.T) (*WALStore, string) {
	dir := t.TempDir()
	store, err := NewWALStore(dir)
	require.NoError(t, err, "failed to open journal")
	return store, dir
}

var testWallet = domain.WalletState{
	Connected: true,
	Address:   "0x71C...9A21",
	Provider:  "MetaMask",
	Legacy:    decimal.RequireFromString("15420.50"),
}

func TestWALStore_Lifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	defer func() {
		assert.NoError(t, store.Close())
	}()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	done, err := store.Prepare(decimal.NewFromInt(5000), testWallet, at)
	require.NoError(t, err)
	require.NoError(t, store.MarkDone(done, at.Add(5*time.Second)))

	failed, err := store.Prepare(decimal.NewFromInt(10), testWallet, at.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, store.MarkFailed(failed, errors.New("bridge unavailable"), at.Add(time.Minute+2*time.Second)))

	pending, err := store.Prepare(decimal.NewFromInt(1), testWallet, at.Add(2*time.Minute))
	require.NoError(t, err)

	records, err := store.Records()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, done.ID, records[0].ID)
	assert.Equal(t, domain.RecordDone, records[0].Status)
	assert.True(t, decimal.NewFromInt(5000).Equal(records[0].Amount))
	assert.Equal(t, "MetaMask", records[0].Provider)

	assert.Equal(t, failed.ID, records[1].ID)
	assert.Equal(t, domain.RecordFailed, records[1].Status)
	assert.Equal(t, "bridge unavailable", records[1].Error)

	assert.Equal(t, pending.ID, records[2].ID)
	assert.Equal(t, domain.RecordPending, records[2].Status)

	assert.Equal(t, uint64(5), store.CurrentIndex())
}

func TestWALStore_Reopen(t *testing.T) {
	store, dir := newTestStore(t)

	record, err := store.Prepare(decimal.NewFromInt(42), testWallet, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.MarkDone(record, time.Now()))
	require.NoError(t, store.Close())

	reopened, err := NewWALStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
	assert.Equal(t, domain.RecordDone, records[0].Status)
}

func TestWALStore_MarkNil(t *testing.T) {
	store, _ := newTestStore(t)
	defer store.Close()

	assert.NoError(t, store.MarkDone(nil, time.Now()))
	assert.NoError(t, store.MarkFailed(nil, nil, time.Now()))
	assert.Equal(t, uint64(0), store.CurrentIndex())
}

func TestWALStore_Uninitialized(t *testing.T) {
	var store *WALStore

	_, err := store.Records()
	assert.Error(t, err)
	assert.Equal(t, uint64(0), store.CurrentIndex())
}
