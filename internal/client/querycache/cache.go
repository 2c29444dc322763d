package querycache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/lostfound/internal/logging"
)

const (
	KeyItemList  = "barang-list"
	KeyGuardList = "satpam-list"
)

const (
	DefaultStaleTime  = 5 * time.Minute
	DefaultRetries    = 1
	DefaultRetryDelay = time.Second
)

var ErrTypeMismatch = errors.New("cached value has unexpected type")

// Fetcher loads the value of a key from the backend.
type Fetcher func(ctx context.Context) (any, error)

type Option func(*Cache)

func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

// WithRetries sets how many times a failed fetch is repeated.
func WithRetries(n uint64) Option {
	return func(c *Cache) { c.retries = n }
}

func WithRetryDelay(d time.Duration) Option {
	return func(c *Cache) {
		if d <= 0 {
			d = time.Nanosecond
		}
		c.retryDelay = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.log = l }
}

type queryConfig struct {
	staleTime time.Duration
}

// QueryOption overrides cache defaults for one Query call.
type QueryOption func(*queryConfig)

func StaleTime(d time.Duration) QueryOption {
	return func(q *queryConfig) { q.staleTime = d }
}

type entry struct {
	status    Status
	value     any
	hasValue  bool
	err       error
	fetchedAt time.Time
	stale     bool
	gen       uint64
	flights   int
}

func (e *entry) fresh(now time.Time, staleTime time.Duration) bool {
	return e.hasValue && !e.stale && e.status == StatusSuccess && now.Sub(e.fetchedAt) < staleTime
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group

	staleTime  time.Duration
	retries    uint64
	retryDelay time.Duration
	now        func() time.Time
	log        logging.Logger
}

func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*entry),
		staleTime:  DefaultStaleTime,
		retries:    DefaultRetries,
		retryDelay: DefaultRetryDelay,
		now:        time.Now,
		log:        logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) entryLocked(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// Query returns the cached value of key while it is fresh, otherwise it
// fetches it. Only one fetch per key runs at a time; callers arriving
// meanwhile receive its result.
func (c *Cache) Query(ctx context.Context, key string, fetch Fetcher, opts ...QueryOption) (any, error) {
	cfg := queryConfig{staleTime: c.staleTime}
	for _, o := range opts {
		o(&cfg)
	}

	// A follower whose leader was cancelled joins or starts the next flight.
	const maxJoins = 3
	for attempt := 0; ; attempt++ {
		c.mu.Lock()
		if e := c.entryLocked(key); e.fresh(c.now(), cfg.staleTime) {
			v := e.value
			c.mu.Unlock()
			c.log.Debug(ctx, "cache hit", "key", key)
			return v, nil
		}
		c.mu.Unlock()

		v, err, shared := c.group.Do(key, func() (any, error) {
			// A flight may have settled between the check above and Do.
			c.mu.Lock()
			cur := c.entryLocked(key)
			if cur.fresh(c.now(), cfg.staleTime) {
				v := cur.value
				c.mu.Unlock()
				return v, nil
			}
			c.mu.Unlock()
			return c.fetch(ctx, key, cur, fetch)
		})
		if err != nil && shared && isCanceled(err) && ctx.Err() == nil && attempt < maxJoins {
			continue
		}
		return v, err
	}
}

func (c *Cache) fetch(ctx context.Context, key string, e *entry, fetch Fetcher) (any, error) {
	c.mu.Lock()
	gen := e.gen
	e.flights++
	e.status = StatusPending
	c.mu.Unlock()

	c.log.Debug(ctx, "cache fetch", "key", key)

	var value any
	attempt := 0
	backoff := retry.WithMaxRetries(c.retries, retry.NewConstant(c.retryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		v, err := fetch(ctx)
		if err == nil {
			value = v
			return nil
		}
		if isCanceled(err) || ctx.Err() != nil {
			return err
		}
		c.log.Warn(ctx, "cache fetch failed", "key", key, "attempt", attempt, "error", err)
		return retry.RetryableError(err)
	})

	c.settle(key, e, gen, value, err)

	if err != nil {
		return nil, fmt.Errorf("query %s: %w", key, err)
	}
	return value, nil
}

// settle records the outcome of a flight started at generation gen. A
// flight that an Invalidate overtook never makes the entry fresh.
func (c *Cache) settle(key string, e *entry, gen uint64, value any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.flights--
	if c.entries[key] != e {
		// Removed or reset while in flight.
		return
	}

	current := e.gen == gen
	switch {
	case err == nil:
		if current || !e.hasValue {
			e.value = value
			e.hasValue = true
			e.err = nil
			e.fetchedAt = c.now()
			e.stale = !current
		}
	case isCanceled(err):
	default:
		if current {
			e.err = err
		}
	}

	e.status = e.settledStatus()
	if e.flights > 0 {
		e.status = StatusPending
	}
}

func (e *entry) settledStatus() Status {
	switch {
	case e.err != nil:
		return StatusError
	case e.hasValue:
		return StatusSuccess
	default:
		return StatusIdle
	}
}

// Invalidate marks key stale. The next Query fetches even inside the
// freshness window and does not join a fetch that started earlier.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.stale = true
		e.gen++
	}
	c.group.Forget(key)
}

// Remove drops key entirely.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	c.group.Forget(key)
}

// Reset drops every entry, e.g. on logout.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		c.group.Forget(key)
	}
	c.entries = make(map[string]*entry)
}

// State returns a snapshot of key for rendering loading and error views.
func (c *Cache) State(key string) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return State{Key: key, Status: StatusIdle}
	}
	return State{
		Key:       key,
		Status:    e.status,
		Value:     e.value,
		HasValue:  e.hasValue,
		Err:       e.err,
		FetchedAt: e.fetchedAt,
		Stale:     e.stale || !e.hasValue || c.now().Sub(e.fetchedAt) >= c.staleTime,
	}
}

// Get is Query with a typed fetcher and result.
func Get[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error), opts ...QueryOption) (T, error) {
	var zero T
	v, err := c.Query(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, opts...)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, key, v)
	}
	return t, nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
