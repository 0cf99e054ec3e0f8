// Package query is the in-memory query cache shared by every feed of one
// application session, plus the infinite (paginated) query built on it.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Client owns cached query results for one session. Create it once at
// startup and Close it on exit.
type Client struct {
	session string
	entries *lru.Cache[string, any]
	flight  singleflight.Group
	seq     atomic.Int64
	log     *slog.Logger

	// ctx bounds shared loads; it ends with Close.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a cache holding at most size entries.
func NewClient(size int, logger *slog.Logger) (*Client, error) {
	entries, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("creating query cache: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	session := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		session: session,
		entries: entries,
		log:     logger.With("session", session),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Session identifies this cache instance in logs.
func (c *Client) Session() string {
	return c.session
}

// Logger returns the session-scoped logger.
func (c *Client) Logger() *slog.Logger {
	return c.log
}

// Close drops every cached entry and cancels shared loads still running.
func (c *Client) Close() {
	c.cancel()
	c.entries.Purge()
	c.log.Debug("query cache closed")
}

// Remove drops one key.
func (c *Client) Remove(key string) {
	c.entries.Remove(key)
}

// Len reports the number of cached keys.
func (c *Client) Len() int {
	return c.entries.Len()
}

// nextSeq numbers requests uniquely across every query of the session.
func (c *Client) nextSeq() int {
	return int(c.seq.Add(1))
}

// Do runs fn for key unless a call for the same key is already in flight,
// in which case it waits for and shares that call's result.
//
// The shared call keeps ctx's values but not its cancellation: a caller
// that gives up returns ctx.Err() on its own while the load carries on for
// any other caller. The load is cancelled only by Close.
func (c *Client) Do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, bool, error) {
	ch := c.flight.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		defer cancel()
		stop := context.AfterFunc(c.ctx, cancel)
		defer stop()
		return fn(loadCtx)
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.log.Debug("query joined in-flight load", "key", key)
		}
		return res.Val, res.Shared, res.Err
	}
}

// Get returns the cached value for key when it holds a V.
func Get[V any](c *Client, key string) (V, bool) {
	var zero V
	raw, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores v under key.
func Set[V any](c *Client, key string, v V) {
	c.entries.Add(key, v)
}

// Patch replaces the value under key with fn(old). The new value is stored
// in one step, so readers never observe a partial update. It reports false
// when key holds no V.
func Patch[V any](c *Client, key string, fn func(V) V) bool {
	old, ok := Get[V](c, key)
	if !ok {
		return false
	}
	c.entries.Add(key, fn(old))
	return true
}
