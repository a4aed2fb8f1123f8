package storage

import (
	"context"
	"reflect"
	"sync"

	"golang.org/x/exp/slog"

	"gamelib/internal/utils/observable"
)

// hub keeps the live queries of one store up to date. Refreshes run one at a
// time, so snapshots are published in the order the writes committed.
type hub struct {
	mu      sync.Mutex
	queries map[*liveQuery]struct{}
	done    chan struct{}
	closed  bool
	log     *slog.Logger
}

type liveQuery struct {
	refresh func()
	close   func()
}

func newHub(log *slog.Logger) *hub {
	return &hub{
		queries: make(map[*liveQuery]struct{}),
		done:    make(chan struct{}),
		log:     log,
	}
}

// notify reloads every live query. Call it after each committed write.
func (h *hub) notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for q := range h.queries {
		q.refresh()
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
	for q := range h.queries {
		q.close()
	}
	h.queries = nil
}

func (h *hub) remove(q *liveQuery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.queries[q]; ok {
		delete(h.queries, q)
		q.close()
	}
}

// watch registers a live query backed by load. The initial snapshot is taken
// while holding the refresh lock, so no write can slip between the snapshot and
// the registration.
func watch[T any](ctx context.Context, h *hub, name string, load func(context.Context) (T, error)) (observable.Observable[T], error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrClosed
	}

	initial, err := load(ctx)
	if err != nil {
		return nil, err
	}

	v := observable.New(initial)
	q := &liveQuery{close: v.Close}
	q.refresh = func() {
		val, err := load(context.Background())
		if err != nil {
			h.log.Error("failed to refresh live query", "query", name, "error", err)
			return
		}
		v.SetIfChanged(val, func(a, b T) bool {
			return reflect.DeepEqual(a, b)
		})
	}
	h.queries[q] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			h.remove(q)
		case <-h.done:
		}
	}()

	return v, nil
}
