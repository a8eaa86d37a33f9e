// Package pool recycles graphics elements between draws.
package pool

// Pool manages reusable values. Unlike sync.Pool it never drops values, so
// a redraw that checks out the same number of elements allocates nothing.
//
// Usage:
//
//	p := pool.New(stage.Path, pool.ResetElement[graphics.Path])
//	path := p.Checkout()
//	defer p.Release(path)
type Pool[T any] struct {
	create      func() T
	reset       func(T)
	free        []T
	outstanding int
}

// New creates a pool. reset runs on every released value and is mandatory:
// a recycled value must never carry state from its previous user.
func New[T any](create func() T, reset func(T)) *Pool[T] {
	if create == nil || reset == nil {
		panic("pool: create and reset are required")
	}
	return &Pool[T]{create: create, reset: reset}
}

// Checkout returns a free value, creating one when none is left.
func (p *Pool[T]) Checkout() T {
	p.outstanding++
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
		return v
	}
	return p.create()
}

// Release resets v and makes it available again.
func (p *Pool[T]) Release(v T) {
	p.reset(v)
	if p.outstanding > 0 {
		p.outstanding--
	}
	p.free = append(p.free, v)
}

// Free is the number of values waiting for reuse.
func (p *Pool[T]) Free() int { return len(p.free) }

// Outstanding is the number of checked out values.
func (p *Pool[T]) Outstanding() int { return p.outstanding }

// Warmup pre-allocates count values.
func (p *Pool[T]) Warmup(count int) {
	for i := 0; i < count; i++ {
		v := p.create()
		p.reset(v)
		p.free = append(p.free, v)
	}
}

// Drain hands every free value to fn and empties the pool.
func (p *Pool[T]) Drain(fn func(T)) {
	for _, v := range p.free {
		if fn != nil {
			fn(v)
		}
	}
	clear(p.free)
	p.free = p.free[:0]
}
