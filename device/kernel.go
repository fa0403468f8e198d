package device

import (
	"github.com/akmonengine/geokernel/logging"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Kernel kinds reported to Metrics.
const (
	KindForEach = "foreach"
	KindMap     = "map"
	KindFill    = "fill"
	KindReduce  = "reduce"
)

// chunkCount splits n elements between the workers, never handing a worker
// less than MinChunkSize elements.
func (d *Device) chunkCount(n int) int {
	if n <= 0 {
		return 0
	}
	byWork := (n + d.cfg.MinChunkSize - 1) / d.cfg.MinChunkSize
	return max(1, min(d.cfg.Workers, byWork))
}

// launch runs kernel over [0, n) split in contiguous chunks, one goroutine per
// chunk, and waits for all of them. A panic in any chunk is re-raised on the
// calling goroutine.
func (d *Device) launch(kind string, n int, kernel func(chunk, start, end int)) {
	chunks := d.chunkCount(n)
	if chunks == 0 {
		return
	}
	d.metrics.observe(d.cfg.Name, kind, n)
	logging.Logger().Debugw("kernel launch", "device", d.cfg.Name, "kind", kind, "elements", n, "chunks", chunks)

	if chunks == 1 {
		kernel(0, 0, n)
		return
	}

	chunkSize := (n + chunks - 1) / chunks
	var g errgroup.Group
	g.SetLimit(d.cfg.Workers)
	for chunk := 0; chunk < chunks; chunk++ {
		start, end := chunk*chunkSize, min((chunk+1)*chunkSize, n)
		if start >= end {
			break
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("%s kernel chunk [%d, %d): %v", kind, start, end, r)
				}
			}()
			kernel(chunk, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}

// ForEach enqueues kernel over the index range [0, n).
func ForEach(ctx Context, n int, kernel func(start, end int)) {
	dev := ctx.Device()
	ctx.enqueue(func() {
		dev.launch(KindForEach, n, func(_, start, end int) {
			kernel(start, end)
		})
	})
}

// Transform replaces every element v of buf with fn(v).
func Transform[T Element](ctx Context, buf *Buffer[T], fn func(T) T) {
	TransformLazy(ctx, buf, func() func(T) T { return fn })
}

// TransformLazy is Transform with the element function built when the
// operation runs rather than when it is enqueued. build may therefore Wait on
// futures of operations enqueued earlier on the same context.
func TransformLazy[T Element](ctx Context, buf *Buffer[T], build func() func(T) T) {
	dev := ctx.Device()
	ctx.enqueue(func() {
		fn := build()
		data := buf.data
		dev.launch(KindMap, len(data), func(_, start, end int) {
			for i := start; i < end; i++ {
				data[i] = fn(data[i])
			}
		})
	})
}

// TransformIndexed replaces every element of buf with fn(i, v).
func TransformIndexed[T Element](ctx Context, buf *Buffer[T], fn func(i int, v T) T) {
	dev := ctx.Device()
	ctx.enqueue(func() {
		data := buf.data
		dev.launch(KindMap, len(data), func(_, start, end int) {
			for i := start; i < end; i++ {
				data[i] = fn(i, data[i])
			}
		})
	})
}

// Map writes fn(v) for every element v of src into dst, resizing dst to the
// length of src when the operation runs.
func Map[T, U Element](ctx Context, src *Buffer[T], dst *Buffer[U], fn func(T) U) error {
	if err := dst.dev.checkAlloc(src.Len()); err != nil {
		return err
	}
	dev := ctx.Device()
	ctx.enqueue(func() {
		in := src.data
		dst.resize(len(in))
		out := dst.data
		dev.launch(KindMap, len(in), func(_, start, end int) {
			for i := start; i < end; i++ {
				out[i] = fn(in[i])
			}
		})
	})
	return nil
}

// HostFunc enqueues fn to run on the host in order with the device work of ctx.
func HostFunc(ctx Context, fn func()) {
	ctx.enqueue(fn)
}

// Fill sets every element of buf to v.
func Fill[T Element](ctx Context, buf *Buffer[T], v T) {
	dev := ctx.Device()
	ctx.enqueue(func() {
		data := buf.data
		dev.launch(KindFill, len(data), func(_, start, end int) {
			for i := start; i < end; i++ {
				data[i] = v
			}
		})
	})
}

// ResizeAndFill resizes buf to n elements and sets all of them to v. The size
// is validated when enqueueing, so allocation errors are returned directly,
// while the resize itself runs in order with the other operations of ctx.
func ResizeAndFill[T Element](ctx Context, buf *Buffer[T], n int, v T) error {
	if err := buf.dev.checkAlloc(n); err != nil {
		return err
	}
	dev := ctx.Device()
	ctx.enqueue(func() {
		buf.resize(n)
		data := buf.data
		dev.launch(KindFill, len(data), func(_, start, end int) {
			for i := start; i < end; i++ {
				data[i] = v
			}
		})
	})
	return nil
}

// Reduce folds buf into a single value. Each chunk folds its elements with
// mapFn and combine starting from identity, then the partial results are
// combined pairwise. combine must be associative and commutative.
func Reduce[T Element, A any](ctx Context, buf *Buffer[T], identity A, mapFn func(T) A, combine func(A, A) A) *Future[A] {
	return ReduceFinal(ctx, buf, identity, mapFn, combine, func(a A) A { return a })
}

// ReduceFinal is Reduce followed by final applied to the folded value.
func ReduceFinal[T Element, A, R any](ctx Context, buf *Buffer[T], identity A, mapFn func(T) A, combine func(A, A) A, final func(A) R) *Future[R] {
	dev := ctx.Device()
	f := newFuture[R]()
	ctx.enqueue(func() {
		defer f.abandon()

		data := buf.data
		partials := make([]A, dev.chunkCount(len(data)))
		for i := range partials {
			partials[i] = identity
		}
		dev.launch(KindReduce, len(data), func(chunk, start, end int) {
			acc := identity
			for i := start; i < end; i++ {
				acc = combine(acc, mapFn(data[i]))
			}
			partials[chunk] = acc
		})
		f.resolve(final(combineTree(partials, identity, combine)))
	})
	return f
}

// combineTree combines the values pairwise level by level.
func combineTree[A any](values []A, identity A, combine func(A, A) A) A {
	if len(values) == 0 {
		return identity
	}
	for len(values) > 1 {
		half := len(values) / 2
		for i := 0; i < half; i++ {
			values[i] = combine(values[2*i], values[2*i+1])
		}
		if len(values)%2 == 1 {
			values[half] = values[len(values)-1]
			half++
		}
		values = values[:half]
	}
	return values[0]
}
