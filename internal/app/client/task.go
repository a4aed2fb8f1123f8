package client

import "context"

// Task is the future of an operation started by a Session.
type Task[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newTask[T any]() *Task[T] {
	return &Task[T]{done: make(chan struct{})}
}

func failedTask[T any](err error) *Task[T] {
	t := newTask[T]()
	t.finish(*new(T), err)
	return t
}

func (t *Task[T]) finish(val T, err error) {
	t.val, t.err = val, err
	close(t.done)
}

// Done is closed when the operation has finished.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Err returns the operation's error, or nil while it is still running.
func (t *Task[T]) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the operation finishes or ctx is done. Giving up on the
// wait does not cancel the operation.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.val, t.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
