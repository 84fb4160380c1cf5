package repository

import (
	"fmt"
	"sync/atomic"
	"time"
)

// IDGenerator issues ids of the form id_{unixMillis}_{counter}. Ids are unique within one
// process only.
type IDGenerator struct {
	counter atomic.Uint64
	now     func() time.Time
}

// NewIDGenerator creates a generator backed by the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// NewID returns the next id.
func (g *IDGenerator) NewID() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("id_%d_%d", g.now().UnixMilli(), n)
}
