package query

import (
	"context"
	"fmt"
	"slices"
)

// State is the lifecycle of an infinite query.
type State int

const (
	// Pending means no page has been requested yet.
	Pending State = iota
	Idle
	FetchingNext
	Exhausted
	Errored
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Idle:
		return "idle"
	case FetchingNext:
		return "fetching"
	case Exhausted:
		return "exhausted"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Pages is the accumulated sequence of an infinite query, in fetch order.
type Pages[P any] struct {
	Pages  []P
	Params []int
}

// PageFunc loads the page for param.
type PageFunc[P any] func(ctx context.Context, param int) (P, error)

// NextParamFunc derives the next page param from the last page and every
// page fetched so far. ok=false means there is no next page.
type NextParamFunc[P any] func(last P, all []P) (next int, ok bool)

// Request identifies one page load started by Begin. Seq is unique within
// the Client, so a request from a closed screen never matches one from a
// screen reopened on the same key.
type Request struct {
	Key   string
	Param int
	Seq   int
}

// Infinite is the cursor manager for one paginated feed. It is driven from
// a single event loop: Begin and Resolve must not be called concurrently.
// Only Fetch runs off-loop.
type Infinite[P any] struct {
	client    *Client
	key       string
	initial   int
	nextParam NextParamFunc[P]
	state     State
	err       error
	inflight  *Request
}

// NewInfinite creates an infinite query stored in client under key. Pages
// already cached under key (e.g. when a screen is reopened) are reused.
func NewInfinite[P any](client *Client, key string, initialParam int, next NextParamFunc[P]) *Infinite[P] {
	q := &Infinite[P]{
		client:    client,
		key:       key,
		initial:   initialParam,
		nextParam: next,
	}
	if data, ok := Get[Pages[P]](client, key); ok && len(data.Pages) > 0 {
		q.state = Idle
		if !q.HasNext() {
			q.state = Exhausted
		}
	}
	return q
}

// Key is the cache key of this query.
func (q *Infinite[P]) Key() string { return q.key }

// State reports the current lifecycle state.
func (q *Infinite[P]) State() State { return q.state }

// Err is the error of the last failed load while Errored.
func (q *Infinite[P]) Err() error { return q.err }

// Fetching reports whether a load is in flight.
func (q *Infinite[P]) Fetching() bool { return q.inflight != nil }

// Data returns the cached sequence.
func (q *Infinite[P]) Data() Pages[P] {
	data, _ := Get[Pages[P]](q.client, q.key)
	return data
}

// HasNext reports whether another page can be requested. Before the first
// page it is always true.
func (q *Infinite[P]) HasNext() bool {
	_, ok := q.nextRequestParam()
	return ok
}

func (q *Infinite[P]) nextRequestParam() (int, bool) {
	data := q.Data()
	if len(data.Pages) == 0 {
		return q.initial, true
	}
	return q.nextParam(data.Pages[len(data.Pages)-1], data.Pages)
}

// Begin starts the next load when one is allowed. It is a no-op while a
// load is in flight, after the last page, and after a failure, so callers
// may invoke it on every visibility re-evaluation.
func (q *Infinite[P]) Begin() (Request, bool) {
	switch q.state {
	case FetchingNext, Exhausted, Errored:
		return Request{}, false
	}
	param, ok := q.nextRequestParam()
	if !ok {
		q.state = Exhausted
		return Request{}, false
	}
	if slices.Contains(q.Data().Params, param) {
		q.client.log.Warn("next page param already loaded", "key", q.key, "param", param)
		q.state = Exhausted
		return Request{}, false
	}
	req := Request{Key: q.key, Param: param, Seq: q.client.nextSeq()}
	q.inflight = &req
	q.state = FetchingNext
	q.client.log.Debug("query fetch started", "key", q.key, "param", param)
	return req, true
}

// Fetch executes load for req, sharing any in-flight load of the same key.
// Safe to call from a goroutine.
func (q *Infinite[P]) Fetch(ctx context.Context, req Request, load PageFunc[P]) (P, error) {
	var zero P
	v, _, err := q.client.Do(ctx, fmt.Sprintf("%s#%d", req.Key, req.Param), func(ctx context.Context) (any, error) {
		return load(ctx, req.Param)
	})
	if err != nil {
		return zero, err
	}
	page, ok := v.(P)
	if !ok {
		return zero, fmt.Errorf("query %s: unexpected page type %T", req.Key, v)
	}
	return page, nil
}

// Resolve applies the outcome of req. Stale requests (superseded by Reset
// or another Begin) are ignored and reported as false.
func (q *Infinite[P]) Resolve(req Request, page P, err error) bool {
	if q.inflight == nil || req != *q.inflight {
		q.client.log.Debug("query dropped stale result", "key", req.Key, "param", req.Param, "seq", req.Seq)
		return false
	}
	q.inflight = nil

	if err != nil {
		q.state = Errored
		q.err = err
		q.client.log.Error("query fetch failed", "key", q.key, "param", req.Param, "err", err)
		return true
	}

	data := q.Data()
	if slices.Contains(data.Params, req.Param) {
		q.state = Idle
		return false
	}
	next := Pages[P]{
		Pages:  append(slices.Clip(data.Pages), page),
		Params: append(slices.Clip(data.Params), req.Param),
	}
	Set(q.client, q.key, next)

	q.err = nil
	if _, ok := q.nextParam(page, next.Pages); ok {
		q.state = Idle
	} else {
		q.state = Exhausted
	}
	q.client.log.Debug("query page appended", "key", q.key, "param", req.Param, "pages", len(next.Pages), "state", q.state)
	return true
}

// Patch rewrites the cached pages in one step.
func (q *Infinite[P]) Patch(fn func(pages []P) []P) bool {
	return Patch(q.client, q.key, func(data Pages[P]) Pages[P] {
		return Pages[P]{Pages: fn(data.Pages), Params: data.Params}
	})
}

// Reset drops the cached pages and any in-flight request, returning the
// query to Pending.
func (q *Infinite[P]) Reset() {
	q.client.Remove(q.key)
	q.inflight = nil
	q.err = nil
	q.state = Pending
}
