package resample

import (
	"math"
	"sync"
)

// sincTableSize is the resolution of each cached sinc table. 1024 entries
// with linear interpolation keeps the lookup error well below the μ-law
// quantization floor.
const sincTableSize = 1024

// sincTable holds precomputed sin(x)/x values over [0, windowSize·π].
// Tables are immutable after construction and shared across invocations.
type sincTable struct {
	windowSize int
	values     []float64
}

var (
	sincTableCache = make(map[int]*sincTable)
	sincCacheMu    sync.RWMutex
)

// getSincTable returns the cached sinc table for a window size, building it
// on first use.
func getSincTable(windowSize int) *sincTable {
	sincCacheMu.RLock()
	table, ok := sincTableCache[windowSize]
	sincCacheMu.RUnlock()
	if ok {
		return table
	}

	sincCacheMu.Lock()
	defer sincCacheMu.Unlock()

	// Another goroutine may have built it while we waited for the lock.
	if table, ok = sincTableCache[windowSize]; ok {
		return table
	}

	table = &sincTable{
		windowSize: windowSize,
		values:     make([]float64, sincTableSize),
	}

	limit := float64(windowSize) * math.Pi
	for i := range table.values {
		x := float64(i) / float64(sincTableSize-1) * limit
		if x == 0 {
			table.values[i] = 1.0
		} else {
			table.values[i] = math.Sin(x) / x
		}
	}

	sincTableCache[windowSize] = table
	return table
}

// lookup returns the linearly interpolated sinc value at x.
// Values beyond the table range are zero.
func (t *sincTable) lookup(x float64) float64 {
	x = math.Abs(x)
	limit := float64(t.windowSize) * math.Pi
	if x >= limit {
		return 0
	}

	idx := x * float64(sincTableSize-1) / limit
	i := int(idx)
	if i >= sincTableSize-1 {
		return t.values[sincTableSize-1]
	}

	frac := idx - float64(i)
	return t.values[i]*(1-frac) + t.values[i+1]*frac
}
