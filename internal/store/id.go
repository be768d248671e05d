package store

import (
	"strconv"
	"sync/atomic"

	"github.com/segmentio/ksuid"
)

// IDGenerator returns a new, unique record id.
type IDGenerator func() string

// NewKSUID generates K-sortable globally unique ids.
func NewKSUID() string {
	return ksuid.New().String()
}

// NewSequence returns a generator yielding prefix+"1", prefix+"2", ...
// It is safe for concurrent use.
func NewSequence(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return prefix + strconv.FormatUint(n.Add(1), 10)
	}
}
