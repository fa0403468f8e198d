// Package device models the accelerator the geometry kernels run on.
//
// A Device is a bounded pool of goroutines. Buffers hold element data that is
// only read or written by kernels launched through a Context, which is either
// synchronous (Device.Sync) or an asynchronous in-order Stream.
package device

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"
)

const (
	DEFAULT_WORKERS        = 1
	DEFAULT_MIN_CHUNK_SIZE = 4096
)

var (
	// ErrInvalidArgument reports a checked precondition violation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfMemory reports an allocation beyond the device element limit.
	ErrOutOfMemory = errors.New("device out of memory")
)

// Config describes a device.
type Config struct {
	Name string
	// Workers bounds the number of goroutines a single kernel uses.
	Workers int
	// MinChunkSize is the smallest number of elements handed to one worker.
	MinChunkSize int
	// MaxElements caps the size of any buffer allocated on the device, 0 means unlimited.
	MaxElements int
}

// DefaultConfig uses one worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Name:         "cpu",
		Workers:      runtime.GOMAXPROCS(0),
		MinChunkSize: DEFAULT_MIN_CHUNK_SIZE,
	}
}

type Device struct {
	cfg     Config
	metrics *Metrics
}

// Option configures a Device.
type Option func(*Device)

// WithMetrics records kernel launches into m.
func WithMetrics(m *Metrics) Option {
	return func(d *Device) {
		d.metrics = m
	}
}

func NewDevice(cfg Config, opts ...Option) *Device {
	cfg.Workers = max(DEFAULT_WORKERS, cfg.Workers)
	cfg.MinChunkSize = max(1, cfg.MinChunkSize)
	cfg.MaxElements = max(0, cfg.MaxElements)
	if cfg.Name == "" {
		cfg.Name = "cpu"
	}

	d := &Device{cfg: cfg}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) Config() Config {
	return d.cfg
}

func (d *Device) Name() string {
	return d.cfg.Name
}

func (d *Device) String() string {
	return fmt.Sprintf("%s/%d", d.cfg.Name, d.cfg.Workers)
}

// Sync returns the synchronous context of the device: every operation runs
// on the calling goroutine and returns once the device work is done.
func (d *Device) Sync() Context {
	return syncContext{dev: d}
}

var defaultDevice atomic.Pointer[Device]

func init() {
	defaultDevice.Store(NewDevice(DefaultConfig()))
}

// DefaultDevice returns the device used when none is given.
func DefaultDevice() *Device {
	return defaultDevice.Load()
}

// SetDefault replaces the default device. A nil device restores DefaultConfig.
func SetDefault(d *Device) {
	if d == nil {
		d = NewDevice(DefaultConfig())
	}
	defaultDevice.Store(d)
}

// Default returns the implicit synchronous context on the default device.
func Default() Context {
	return DefaultDevice().Sync()
}

func (d *Device) checkAlloc(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "negative buffer size %d", n)
	}
	if d.cfg.MaxElements > 0 && n > d.cfg.MaxElements {
		return errors.Wrapf(ErrOutOfMemory, "%d elements requested on %s, limit is %d", n, d.cfg.Name, d.cfg.MaxElements)
	}
	return nil
}
