package logging

import (
	"log/slog"
	"sync"
)

// ErrorSampler reduces log noise when an upstream keeps failing.
// The first occurrence of a key is logged, then every Nth one.
type ErrorSampler struct {
	mu       sync.Mutex
	counts   map[string]int
	interval int
}

// NewErrorSampler creates a sampler that logs every interval-th occurrence.
func NewErrorSampler(interval int) *ErrorSampler {
	if interval < 1 {
		interval = 10
	}
	return &ErrorSampler{
		counts:   make(map[string]int),
		interval: interval,
	}
}

// ShouldLog records an occurrence of key and reports whether it should be logged.
func (s *ErrorSampler) ShouldLog(key string) bool {
	ok, _ := s.record(key)
	return ok
}

// record increments key and returns the decision together with the count it was based on.
func (s *ErrorSampler) record(key string) (bool, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[key]++
	count := s.counts[key]
	return count == 1 || count%s.interval == 0, count
}

// Error logs msg at error level when the sampler lets key through.
// The running occurrence count is attached as "occurrences".
func (s *ErrorSampler) Error(key, msg string, args ...any) {
	ok, count := s.record(key)
	if !ok {
		return
	}
	args = append(args, "occurrences", count)
	slog.Error(msg, args...)
}

// Count returns how many times key has been recorded.
func (s *ErrorSampler) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Reset forgets key, typically after the upstream recovers.
func (s *ErrorSampler) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
}
