package device

import (
	"sync"

	"github.com/akmonengine/geokernel/logging"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Stream is an asynchronous Context. Enqueueing returns at once and a single
// goroutine runs the queued operations in order.
type Stream struct {
	dev *Device

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	pending int
	closed  bool
	err     error
}

// NewStream starts a stream on the device. Call Close to release it.
func (d *Device) NewStream() *Stream {
	s := &Stream{dev: d}
	s.cond = sync.NewCond(&s.mu)
	go s.run()

	return s
}

func (s *Stream) Device() *Device {
	return s.dev
}

func (s *Stream) enqueue(op func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		panic("device: enqueue on closed stream")
	}
	s.queue = append(s.queue, op)
	s.pending++
	s.cond.Broadcast()
}

// Synchronize waits for the queue to drain. The returned error combines every
// kernel failure since the previous Synchronize.
func (s *Stream) Synchronize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.pending > 0 {
		s.cond.Wait()
	}
	err := s.err
	s.err = nil
	return err
}

// Close drains the stream and stops its goroutine.
func (s *Stream) Close() error {
	err := s.Synchronize()

	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	return err
}

func (s *Stream) run() {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		op := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		err := s.exec(op)

		s.mu.Lock()
		s.err = multierr.Append(s.err, err)
		s.pending--
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

func (s *Stream) exec(op func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("operation panicked on stream of %s: %v", s.dev.Name(), r)
			logging.Logger().Errorw("stream operation failed", "device", s.dev.Name(), "error", err)
		}
	}()
	op()

	return nil
}
