// Package refresh keeps one current snapshot per data source. Every refresh
// takes a new generation and only the newest generation may publish, so a
// slow older read can never overwrite a newer one.
package refresh

import "sync"

type Source[T any] struct {
	mu        sync.Mutex
	issued    uint64
	published uint64
	closed    bool
	value     T
	err       error
	has       bool
}

// Ticket identifies one refresh. Pass it back to Publish with the result.
type Ticket struct {
	gen uint64
}

func (s *Source[T]) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return Ticket{gen: s.issued}
}

// Publish stores the result of the refresh identified by t. It reports false
// when a newer refresh was begun or the source is closed; the result is
// dropped in that case.
func (s *Source[T]) Publish(t Ticket, value T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || t.gen != s.issued || t.gen <= s.published {
		return false
	}
	s.published = t.gen
	s.value, s.err, s.has = value, err, true
	return true
}

// Current returns the last published value. ok is false until something was
// published.
func (s *Source[T]) Current() (value T, err error, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.err, s.has
}

// Stale reports whether t has been superseded.
func (s *Source[T]) Stale(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed || t.gen != s.issued
}

// Close drops every in-flight and later result.
func (s *Source[T]) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
