package deedmarket

import (
	"time"
)

// Clock is the monotonic chain clock used for rental and auction expiry math.
// Readings are unix seconds and non-decreasing across the operation sequence.
type Clock interface {
	Now() int64
}

type chainClock struct{}

func NewChainClock() Clock {
	return chainClock{}
}

func (chainClock) Now() int64 {
	return time.Now().Unix()
}
