package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator produces deterministic identifiers for tests. The identifiers
// are UUID shaped so they survive format validation in the services, while
// remaining readable and sequential.
type IDGenerator struct {
	mu      sync.Mutex
	counter uint64
}

// NewIDGenerator constructs a generator starting at one.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return SequentialID(g.counter)
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}

// SetCounter overrides the internal counter, enabling deterministic resets.
func (g *IDGenerator) SetCounter(counter uint64) {
	g.mu.Lock()
	g.counter = counter
	g.mu.Unlock()
}

// SequentialID renders a counter value as a canonical UUID string.
func SequentialID(n uint64) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}
