package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorSampler(t *testing.T) {
	sampler := NewErrorSampler(10)

	assert.True(t, sampler.ShouldLog("serpapi"), "first occurrence should be logged")
	for i := 2; i <= 9; i++ {
		assert.False(t, sampler.ShouldLog("serpapi"), "occurrence %d should be sampled out", i)
	}
	assert.True(t, sampler.ShouldLog("serpapi"), "10th occurrence should be logged")
	assert.Equal(t, 10, sampler.Count("serpapi"))

	sampler.Reset("serpapi")
	assert.Equal(t, 0, sampler.Count("serpapi"))
	assert.True(t, sampler.ShouldLog("serpapi"), "first occurrence after reset should be logged")
}

func TestErrorSamplerIndependentKeys(t *testing.T) {
	sampler := NewErrorSampler(5)

	sampler.ShouldLog("restcountries")
	sampler.Error("serpapi", "search failed")

	assert.Equal(t, 1, sampler.Count("restcountries"))
	assert.Equal(t, 1, sampler.Count("serpapi"))
}

func TestErrorSamplerDefaultInterval(t *testing.T) {
	sampler := NewErrorSampler(0)
	assert.Equal(t, 10, sampler.interval)
}

func TestErrorSamplerReportsOccurrences(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	sampler := NewErrorSampler(3)
	for i := 0; i < 6; i++ {
		sampler.Error("serpapi", "search failed")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var occurrences []float64
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "search failed", entry["msg"])
		occurrences = append(occurrences, entry["occurrences"].(float64))
	}
	assert.Equal(t, []float64{1, 3, 6}, occurrences)
}

func TestErrorSamplerConcurrentOccurrencesMatchDecision(t *testing.T) {
	sampler := NewErrorSampler(4)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		logged []int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, count := sampler.record("serpapi"); ok {
				mu.Lock()
				logged = append(logged, count)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, logged, 11)
	for _, count := range logged {
		assert.True(t, count == 1 || count%4 == 0, "logged count %d does not match the sampling rule", count)
	}
}
