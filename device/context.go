package device

// Context is an execution queue for device operations.
//
// Operations enqueued on the same Context run in enqueue order. Operations on
// different contexts are unordered unless the caller synchronizes them.
type Context interface {
	Device() *Device
	// Synchronize blocks until every operation enqueued so far has run and
	// returns the errors they raised.
	Synchronize() error

	enqueue(op func())
}

// syncContext runs every operation immediately on the caller's goroutine.
type syncContext struct {
	dev *Device
}

func (c syncContext) Device() *Device {
	return c.dev
}

func (c syncContext) Synchronize() error {
	return nil
}

func (c syncContext) enqueue(op func()) {
	op()
}
