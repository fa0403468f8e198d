package device

import (
	"slices"
)

// Element lists the fixed size numeric types a Buffer can hold.
type Element interface {
	~float32 | ~int32 |
		~[2]float32 | ~[3]float32 | ~[4]float32 |
		~[2]int32 | ~[3]int32
}

// Buffer is a dynamically sized array owned by a device. Its elements are
// read and written by kernels; the host only sees copies.
type Buffer[T Element] struct {
	dev  *Device
	data []T
}

// NewBuffer allocates size zero valued elements on dev, or on the default
// device when dev is nil.
func NewBuffer[T Element](dev *Device, size int) (*Buffer[T], error) {
	if dev == nil {
		dev = DefaultDevice()
	}
	if err := dev.checkAlloc(size); err != nil {
		return nil, err
	}
	return &Buffer[T]{dev: dev, data: make([]T, size)}, nil
}

// FromHost allocates a buffer holding a copy of host.
func FromHost[T Element](dev *Device, host []T) (*Buffer[T], error) {
	b, err := NewBuffer[T](dev, len(host))
	if err != nil {
		return nil, err
	}
	copy(b.data, host)
	return b, nil
}

func (b *Buffer[T]) Device() *Device {
	return b.dev
}

// Len returns the number of elements.
func (b *Buffer[T]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

func (b *Buffer[T]) IsEmpty() bool {
	return b.Len() == 0
}

// Resize grows or shrinks the buffer to n elements. New elements are zero.
func (b *Buffer[T]) Resize(n int) error {
	if err := b.dev.checkAlloc(n); err != nil {
		return err
	}
	b.resize(n)
	return nil
}

func (b *Buffer[T]) resize(n int) {
	if n <= len(b.data) {
		clear(b.data[n:])
		b.data = b.data[:n]
		return
	}
	b.data = slices.Grow(b.data, n-len(b.data))[:n]
}

// Clear drops every element.
func (b *Buffer[T]) Clear() {
	clear(b.data)
	b.data = b.data[:0]
}

// CopyToHost returns a host copy of the elements.
func (b *Buffer[T]) CopyToHost() []T {
	if b == nil {
		return nil
	}
	return slices.Clone(b.data)
}

// CopyFromHost replaces the contents with host, resizing as needed.
func (b *Buffer[T]) CopyFromHost(host []T) error {
	if err := b.Resize(len(host)); err != nil {
		return err
	}
	copy(b.data, host)
	return nil
}

// Clone is a device to device copy.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return &Buffer[T]{dev: b.dev, data: slices.Clone(b.data)}
}
