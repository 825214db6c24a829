package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"projectpulse/domain/sheet"
)

type stubSource struct {
	mu      sync.Mutex
	fetches int32
	table   sheet.Table
	err     error
	delay   time.Duration
}

func (s *stubSource) Fetch(ctx context.Context) (sheet.Table, error) {
	atomic.AddInt32(&s.fetches, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table, s.err
}

func (s *stubSource) Describe() string { return "stub" }

func (s *stubSource) fetchCount() int32 { return atomic.LoadInt32(&s.fetches) }

func TestEntryExpired(t *testing.T) {
	fetched := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := Entry{FetchedAt: fetched}
	ttl := 300 * time.Second

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"fresh", fetched.Add(10 * time.Second), false},
		{"just under ttl", fetched.Add(299 * time.Second), false},
		{"exactly ttl", fetched.Add(300 * time.Second), true},
		{"well past ttl", fetched.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expired, entry.Expired(tt.now, ttl))
		})
	}
}

func TestGetCachesWithinTTL(t *testing.T) {
	source := &stubSource{table: sheet.Table{Rows: []sheet.RawRow{sheet.NewRawRow([]string{"Type"})}}}
	c := New(source, 300*time.Second)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, source.fetchCount(), "second Get within TTL must not refetch")
	require.Equal(t, now, c.FetchedAt())

	// Advance the clock past the TTL.
	now = now.Add(301 * time.Second)
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, source.fetchCount(), "expired entry must refetch")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	source := &stubSource{}
	c := New(source, time.Hour)

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	c.Invalidate()
	require.True(t, c.FetchedAt().IsZero())

	_, err = c.Get(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, source.fetchCount())
}

func TestGetDoesNotCacheErrors(t *testing.T) {
	source := &stubSource{err: errors.New("upstream down")}
	c := New(source, time.Hour)

	_, err := c.Get(context.Background())
	require.Error(t, err)
	require.True(t, c.FetchedAt().IsZero(), "failed fetch must not populate the cache")

	source.mu.Lock()
	source.err = nil
	source.mu.Unlock()

	_, err = c.Get(context.Background())
	require.NoError(t, err)
}

func TestConcurrentGetsCollapseIntoOneFetch(t *testing.T) {
	source := &stubSource{delay: 50 * time.Millisecond}
	c := New(source, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background())
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, source.fetchCount(), "concurrent cold Gets must share one fetch")
}
