// Package pool recycles template-keyed instances so the segment ring does not
// allocate items on every repopulation.
package pool

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownTemplate is returned when acquiring a template with no registered factory
var ErrUnknownTemplate = errors.New("pool: unknown template")

// Instance is anything that can report the template it was built from
type Instance interface {
	Template() string
}

// Resetter is implemented by instances that clear state on release
type Resetter interface {
	Reset()
}

// Factory builds a fresh instance for a template
type Factory[T Instance] func(template string) T

// Stats counts instances per template
type Stats struct {
	Created  int
	Acquired int
	Free     int
}

// Pool hands out instances keyed by template identifier
// Released instances go back to their template's free list
type Pool[T Instance] struct {
	mu        sync.Mutex
	factories map[string]Factory[T]
	free      map[string][]T
	stats     map[string]*Stats
}

func New[T Instance]() *Pool[T] {
	return &Pool[T]{
		factories: make(map[string]Factory[T]),
		free:      make(map[string][]T),
		stats:     make(map[string]*Stats),
	}
}

// Register binds a factory to a template, replacing any previous one
func (p *Pool[T]) Register(template string, f Factory[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factories[template] = f
	if p.stats[template] == nil {
		p.stats[template] = &Stats{}
	}
}

// Prewarm creates n free instances of a template
func (p *Pool[T]) Prewarm(template string, n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, ok := p.factories[template]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}
	st := p.stats[template]
	for i := 0; i < n; i++ {
		p.free[template] = append(p.free[template], f(template))
		st.Created++
		st.Free++
	}
	return nil
}

// Acquire returns a free instance or builds a new one
func (p *Pool[T]) Acquire(template string) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero T
	f, ok := p.factories[template]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownTemplate, template)
	}
	st := p.stats[template]

	list := p.free[template]
	if n := len(list); n > 0 {
		inst := list[n-1]
		list[n-1] = zero
		p.free[template] = list[:n-1]
		st.Free--
		st.Acquired++
		return inst, nil
	}

	st.Created++
	st.Acquired++
	return f(template), nil
}

// Release returns an instance to its template's free list
// Instances of unregistered templates are dropped
func (p *Pool[T]) Release(inst T) {
	if r, ok := any(inst).(Resetter); ok {
		r.Reset()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	template := inst.Template()
	st, ok := p.stats[template]
	if !ok {
		return
	}
	p.free[template] = append(p.free[template], inst)
	st.Free++
	st.Acquired--
}

// Stats returns a copy of the counters for a template
func (p *Pool[T]) Stats(template string) Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	if st, ok := p.stats[template]; ok {
		return *st
	}
	return Stats{}
}

// Templates lists registered template identifiers
func (p *Pool[T]) Templates() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.factories))
	for k := range p.factories {
		out = append(out, k)
	}
	return out
}
