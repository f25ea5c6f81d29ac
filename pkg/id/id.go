package id

import (
	"strconv"
	"sync"
	"time"
)

// seqBits is the number of sequence bits packed below the millisecond
// timestamp. 2^20 identifiers per millisecond before the generator has to
// wait for the clock to advance.
const seqBits = 20

const maxSeq = 1<<seqBits - 1

// Generator produces monotonically increasing identifiers per process.
type Generator struct {
	mu       sync.Mutex
	lastMs   int64
	sequence uint64
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

var defaultGenerator = NewGenerator()

// Next returns an identifier from the shared process-wide generator.
func Next() string { return defaultGenerator.Next() }

// NowMs returns current time in milliseconds since Unix epoch.
var NowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new identifier. If the clock goes backwards, it uses lastMs
// and increments the sequence. If the sequence overflows within the same
// millisecond, it busy-waits for the next ms.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := NowMs()
	if ms < g.lastMs {
		ms = g.lastMs
	}

	if ms == g.lastMs {
		if g.sequence == maxSeq {
			// wait until next ms to avoid overflow
			for {
				ms = NowMs()
				if ms > g.lastMs {
					break
				}
				time.Sleep(time.Millisecond / 8)
			}
			g.sequence = 0
		} else {
			g.sequence++
		}
	} else {
		g.sequence = 0
	}

	g.lastMs = ms
	return format(ms, g.sequence)
}

func format(ms int64, seq uint64) string {
	return strconv.FormatUint(uint64(ms)<<seqBits|seq, 36)
}
