package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReal_SleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReal_SleepShort(t *testing.T) {
	assert.NoError(t, New().Sleep(context.Background(), time.Millisecond))
}

func TestFake_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)

	done := make(chan error, 1)
	go func() {
		done <- f.Sleep(context.Background(), 2*time.Second)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, f.BlockUntil(ctx, 1))

	f.Advance(time.Second)
	select {
	case <-done:
		t.Fatal("sleeper woke before its deadline")
	default:
	}
	assert.Equal(t, 1, f.Sleepers())

	f.Advance(time.Second)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("sleeper did not wake")
	}

	assert.Equal(t, start.Add(2*time.Second), f.Now())
	assert.Equal(t, 0, f.Sleepers())
}

func TestFake_SleepCancelled(t *testing.T) {
	f := NewFake(time.Now())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- f.Sleep(ctx, time.Minute)
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, f.BlockUntil(waitCtx, 1))

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, 0, f.Sleepers())
}

func TestFake_ZeroDuration(t *testing.T) {
	f := NewFake(time.Now())
	assert.NoError(t, f.Sleep(context.Background(), 0))
}
