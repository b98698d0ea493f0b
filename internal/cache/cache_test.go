package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glpidashboard/internal/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemory_RoundTripAndExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	store := cache.NewMemory(clock)
	ctx := context.Background()

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok, "never set")

	store.Set(ctx, "k", []byte("v"), 300*time.Second)

	got, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)

	clock.Advance(299 * time.Second)
	_, ok = store.Get(ctx, "k")
	assert.True(t, ok, "still inside ttl")

	clock.Advance(time.Second)
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok, "expired at storedAt+ttl")

	// expirada continua lá até o próximo Set
	assert.Equal(t, 1, store.Len())
	store.Set(ctx, "k", []byte("v2"), time.Minute)
	got, ok = store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), got)
	assert.Equal(t, 1, store.Len())
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	store := cache.NewMemory(nil)
	ctx := context.Background()

	value := []byte("abc")
	store.Set(ctx, "k", value, time.Minute)
	value[0] = 'x'

	got, _ := store.Get(ctx, "k")
	assert.Equal(t, "abc", string(got))
}

func TestMemory_Concurrent(t *testing.T) {
	store := cache.NewMemory(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := cache.Key("e", cache.P("i", string(rune('a'+i%5))))
			store.Set(ctx, key, []byte("v"), time.Minute)
			_, _ = store.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, store.Len())
}

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		params   []cache.Param
		expected string
	}{
		{
			name:     "Ranking with dates",
			endpoint: "ranking-tecnicos",
			params:   []cache.Param{cache.P("inicio", "2024-01-01"), cache.P("fim", "2024-01-31"), cache.P("limit", "20")},
			expected: "ranking-tecnicos|inicio=2024-01-01|fim=2024-01-31|limit=20",
		},
		{
			name:     "Empty values kept",
			endpoint: "status-niveis",
			params:   []cache.Param{cache.P("inicio", ""), cache.P("fim", "")},
			expected: "status-niveis|inicio=|fim=",
		},
		{
			name:     "Separators escaped",
			endpoint: "metrics-gerais",
			params:   []cache.Param{cache.P("status", "1,2|x=y")},
			expected: "metrics-gerais|status=1%2C2%7Cx%3Dy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cache.Key(tt.endpoint, tt.params...))
		})
	}

	assert.NotEqual(t,
		cache.Key("e", cache.P("a", "1|b=2")),
		cache.Key("e", cache.P("a", "1"), cache.P("b", "2")),
	)
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFetch(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	c := cache.New(cache.NewMemory(clock), cache.Options{TTL: time.Minute}, nil)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (payload, error) {
		calls++
		return payload{Name: "N1", Count: calls}, nil
	}

	v, hit, err := cache.Fetch(ctx, c, "k", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, payload{Name: "N1", Count: 1}, v)

	v, hit, err = cache.Fetch(ctx, c, "k", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, v.Count)

	clock.Advance(time.Minute)
	v, hit, err = cache.Fetch(ctx, c, "k", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, v.Count)
}

func TestFetch_ErrorsAreNotStored(t *testing.T) {
	store := cache.NewMemory(nil)
	c := cache.New(store, cache.Options{}, nil)
	boom := errors.New("boom")

	_, _, err := cache.Fetch(context.Background(), c, "k", func(context.Context) ([]string, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 300*time.Second, c.TTL())
}

func TestFetch_SingleFlight(t *testing.T) {
	c := cache.New(cache.NewMemory(nil), cache.Options{TTL: time.Minute, SingleFlight: true}, nil)

	var calls atomic.Int32
	release := make(chan struct{})
	compute := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := cache.Fetch(context.Background(), c, "same", compute)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// deixa todas as goroutines chegarem ao Do
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []int{42, 42, 42, 42, 42}, results)
}

func TestFetch_SingleFlightSurvivesLeaderCancel(t *testing.T) {
	c := cache.New(cache.NewMemory(nil), cache.Options{TTL: time.Minute, SingleFlight: true, ComputeTimeout: 5 * time.Second}, nil)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	compute := func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 42, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err := cache.Fetch(leaderCtx, c, "same", compute)
		leaderErr <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	follower := make(chan result, 1)
	go func() {
		v, _, err := cache.Fetch(context.Background(), c, "same", compute)
		follower <- result{v, err}
	}()

	// deixa o segundo chamador entrar no mesmo voo
	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	got := <-follower
	require.NoError(t, got.err)
	assert.Equal(t, 42, got.v)
	assert.Equal(t, int32(1), calls.Load())

	v, hit, err := cache.Fetch(context.Background(), c, "same", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, v)
}

type fakeRedis struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failGet bool
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return goredis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func TestRedisStore(t *testing.T) {
	client := &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
	store := cache.NewRedis(client, nil)
	ctx := context.Background()

	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)

	store.Set(ctx, "k", []byte(`{"a":1}`), 5*time.Minute)
	got, ok := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got))
	assert.Equal(t, 5*time.Minute, client.ttls["k"])

	client.failGet = true
	_, ok = store.Get(ctx, "k")
	assert.False(t, ok, "backend errors read as miss")
}
