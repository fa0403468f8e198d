package device

import "sync"

// Future is the result of an operation enqueued on a Context.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// resolve publishes v. Only the first call has an effect.
func (f *Future[T]) resolve(v T) {
	f.once.Do(func() {
		f.value = v
		close(f.done)
	})
}

// abandon releases waiters with the zero value, used when the operation panicked.
func (f *Future[T]) abandon() {
	var zero T
	f.resolve(zero)
}

// Wait blocks until the value is available. If the operation failed, Wait
// returns the zero value and the owning context reports the error on Synchronize.
func (f *Future[T]) Wait() T {
	<-f.done
	return f.value
}

// Done is closed once Wait would not block.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
