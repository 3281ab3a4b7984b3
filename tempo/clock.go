// Package tempo converts the absolute ticks of a merged event list
// into wall clock offsets.
package tempo

import (
	"math"
	"math/bits"
	"time"

	"github.com/pshvedko/smf/midi"
)

// DefaultTempo is 120 BPM in microseconds per quarter note.
const DefaultTempo = 500000

// Clock must see events in list order. Tempo events retime every tick
// after them.
type Clock struct {
	division uint16
	tempo    uint32
	tick     uint32
	elapsed  time.Duration
}

func New(division uint16) *Clock {
	return &Clock{division: division, tempo: DefaultTempo}
}

// SMPTE reports whether the division counts ticks per frame instead of
// ticks per quarter note.
func (c *Clock) SMPTE() bool {
	return c.division&0x8000 != 0
}

func (c *Clock) Tempo() uint32 {
	return c.tempo
}

func (c *Clock) BPM() float64 {
	return 60000000 / float64(c.tempo)
}

// At returns the offset of e from the start of the song.
func (c *Clock) At(e *midi.Event) time.Duration {
	if e.Time > c.tick {
		c.elapsed = add(c.elapsed, c.span(e.Time-c.tick))
		c.tick = e.Time
	}
	if t := e.Tempo(); t != 0 {
		c.tempo = t
	}
	return c.elapsed
}

func (c *Clock) span(ticks uint32) time.Duration {
	if c.SMPTE() {
		fps := -int(int8(c.division >> 8))
		tpf := int(c.division & 0xFF)
		if fps <= 0 || tpf == 0 {
			return 0
		}
		return scale(uint64(ticks), uint64(time.Second), uint64(fps*tpf))
	}
	if c.division == 0 {
		return 0
	}
	return scale(uint64(ticks)*uint64(c.tempo), uint64(time.Microsecond), uint64(c.division))
}

// scale returns a*b/d nanoseconds, saturated at the longest duration.
func scale(a, b, d uint64) time.Duration {
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, d)
	if q > math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(q)
}

func add(a, b time.Duration) time.Duration {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Duration returns the offset of the last event of l.
func Duration(division uint16, l *midi.List) (d time.Duration) {
	c := New(division)
	for e := l.Front(); e != nil; e = e.Next() {
		d = c.At(e)
	}
	return
}
