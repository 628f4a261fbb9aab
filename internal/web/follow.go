package web

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/aiachain/migrator/internal/domain"
)

// Follow reads snapshots from a portal stream and hands each one to fn.
// It returns nil when ctx is done.
func Follow(ctx context.Context, client *http.Client, url string, fn func(domain.Snapshot)) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "build stream request")
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "open stream")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("open stream: unexpected status %s", resp.Status)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read stream")
		}

		// heartbeats and event names carry no payload
		data, ok := strings.CutPrefix(strings.TrimRight(line, "\r\n"), "data: ")
		if !ok {
			continue
		}
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err != nil {
			return errors.Wrap(err, "decode snapshot")
		}
		fn(snap)
	}
}

// LoadStats counts what a load run observed.
type LoadStats struct {
	Connected   int64
	ConnectErrs int64
	StreamErrs  int64
	Events      int64
	Elapsed     time.Duration
}

// EventsPerSecond is the snapshot rate across all connections.
func (s LoadStats) EventsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Events) / s.Elapsed.Seconds()
}

// Load opens conns concurrent streams, spreading their start over ramp, and
// keeps them open until ctx is done. Progress is logged every 5s.
func Load(ctx context.Context, url string, conns int, ramp time.Duration, logger *zap.Logger) (LoadStats, error) {
	if conns <= 0 {
		return LoadStats{}, fmt.Errorf("invalid conns: %d", conns)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     conns + 100,
			MaxIdleConns:        conns + 100,
			MaxIdleConnsPerHost: conns + 100,
			DisableCompression:  true,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	var (
		connected   atomic.Int64
		connectErrs atomic.Int64
		streamErrs  atomic.Int64
		events      atomic.Int64
		wg          sync.WaitGroup
	)

	var interval time.Duration
	if ramp > 0 {
		interval = ramp / time.Duration(conns)
	}

	start := time.Now()
	snapshot := func() LoadStats {
		return LoadStats{
			Connected:   connected.Load(),
			ConnectErrs: connectErrs.Load(),
			StreamErrs:  streamErrs.Load(),
			Events:      events.Load(),
			Elapsed:     time.Since(start),
		}
	}

	go func() {
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s := snapshot()
				logger.Info("stream load",
					zap.Int64("connected", s.Connected),
					zap.Int64("connect_errs", s.ConnectErrs),
					zap.Int64("stream_errs", s.StreamErrs),
					zap.Int64("events", s.Events),
					zap.Duration("elapsed", s.Elapsed.Truncate(time.Second)))
			}
		}
	}()

	for i := 0; i < conns; i++ {
		if i > 0 && interval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(interval):
			}
		}
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			first := true
			err := Follow(ctx, client, url, func(domain.Snapshot) {
				if first {
					connected.Add(1)
					first = false
				}
				events.Add(1)
			})
			switch {
			case err == nil:
			case first:
				connectErrs.Add(1)
			default:
				streamErrs.Add(1)
			}
		}()
	}

	wg.Wait()
	return snapshot(), nil
}
