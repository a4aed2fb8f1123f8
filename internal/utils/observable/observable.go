// Package observable provides a last-value replay publish/subscribe primitive.
//
// A Value holds the latest published value. A new subscriber immediately
// receives that value and then every subsequent one, in publish order, until it
// unsubscribes or the Value is closed. Publishing never blocks on slow
// subscribers: every subscription buffers undelivered values on its own.
package observable

import "sync"

// Observable is the read side of a Value.
type Observable[T any] interface {
	// Value returns the most recently published value.
	Value() T
	// Subscribe returns a subscription that first yields the current value.
	Subscribe() *Subscription[T]
}

// Value is a last-value replay channel.
type Value[T any] struct {
	mu     sync.Mutex
	val    T
	subs   map[*Subscription[T]]struct{}
	closed bool
}

// New creates a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{
		val:  initial,
		subs: make(map[*Subscription[T]]struct{}),
	}
}

// Value returns the most recently published value.
func (v *Value[T]) Value() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.val
}

// Set publishes val to every subscriber. Set on a closed Value is a no-op.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.val = val
	for sub := range v.subs {
		sub.push(val)
	}
}

// SetIfChanged publishes val only when equal reports it differs from the
// current value. It returns whether val was published.
func (v *Value[T]) SetIfChanged(val T, equal func(a, b T) bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed || equal(v.val, val) {
		return false
	}
	v.val = val
	for sub := range v.subs {
		sub.push(val)
	}
	return true
}

// Update atomically replaces the value with fn(current) and publishes it.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.val = fn(v.val)
	for sub := range v.subs {
		sub.push(v.val)
	}
}

// Subscribe registers a new subscriber. The current value is queued first.
// Subscribing to a closed Value yields the last value and then a closed channel.
func (v *Value[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		c:      make(chan T),
		wake:   make(chan struct{}, 1),
		stop:   make(chan struct{}),
		parent: v,
	}

	v.mu.Lock()
	sub.push(v.val)
	if v.closed {
		sub.end()
	} else {
		v.subs[sub] = struct{}{}
	}
	v.mu.Unlock()

	go sub.run()
	return sub
}

// Close ends all subscriptions once their buffered values are delivered.
func (v *Value[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	for sub := range v.subs {
		sub.end()
	}
	v.subs = nil
}

// Closed reports whether Close was called.
func (v *Value[T]) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *Value[T]) remove(sub *Subscription[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.subs, sub)
}

// Subscription delivers published values on C in order.
type Subscription[T any] struct {
	c      chan T
	mu     sync.Mutex
	queue  []T
	ended  bool
	wake   chan struct{}
	stop   chan struct{}
	once   sync.Once
	parent *Value[T]
}

// C returns the delivery channel. It is closed after Unsubscribe, or after the
// parent Value is closed and all buffered values were received.
func (s *Subscription[T]) C() <-chan T {
	return s.c
}

// Unsubscribe stops delivery immediately. Buffered values are dropped.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(func() {
		s.parent.remove(s)
		close(s.stop)
	})
}

func (s *Subscription[T]) push(val T) {
	s.mu.Lock()
	s.queue = append(s.queue, val)
	s.mu.Unlock()
	s.signal()
}

func (s *Subscription[T]) end() {
	s.mu.Lock()
	s.ended = true
	s.mu.Unlock()
	s.signal()
}

func (s *Subscription[T]) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription[T]) run() {
	defer close(s.c)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			ended := s.ended
			s.mu.Unlock()
			if ended {
				return
			}
			select {
			case <-s.wake:
				continue
			case <-s.stop:
				return
			}
		}

		var zero T
		next := s.queue[0]
		s.queue[0] = zero
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.c <- next:
		case <-s.stop:
			return
		}
	}
}
