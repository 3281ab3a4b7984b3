package tempo

import (
	"math"
	"testing"
	"time"

	"github.com/pshvedko/smf/midi"
)

func events(e ...*midi.Event) *midi.List {
	l := &midi.List{}
	for _, x := range e {
		l.Push(x)
	}
	return l
}

func tempo(at, us uint32) *midi.Event {
	return &midi.Event{Time: at, Status: midi.StatusMeta, Data: [2]byte{midi.Tempo}, Extra: []byte{byte(us >> 16), byte(us >> 8), byte(us)}}
}

func note(at uint32) *midi.Event {
	return &midi.Event{Time: at, Status: 0x90, Data: [2]byte{60, 100}}
}

func TestClockDefaultTempo(t *testing.T) {
	c := New(96)
	if c.Tempo() != DefaultTempo || c.BPM() != 120 || c.SMPTE() {
		t.Fatalf("tempo %d, bpm %v", c.Tempo(), c.BPM())
	}
	if d := c.At(note(0)); d != 0 {
		t.Errorf("at 0 = %v", d)
	}
	if d := c.At(note(96)); d != 500*time.Millisecond {
		t.Errorf("at 96 = %v", d)
	}
	if d := c.At(note(96)); d != 500*time.Millisecond {
		t.Errorf("repeated 96 = %v", d)
	}
	if d := c.At(note(480)); d != 2500*time.Millisecond {
		t.Errorf("at 480 = %v", d)
	}
}

func TestClockTempoChange(t *testing.T) {
	c := New(480)
	cases := []struct {
		event *midi.Event
		at    time.Duration
	}{
		{tempo(0, 1000000), 0},
		{note(480), time.Second},
		{tempo(960, 250000), 2 * time.Second},
		{note(1440), 2250 * time.Millisecond},
		{note(1680), 2375 * time.Millisecond},
	}
	for i, tc := range cases {
		if d := c.At(tc.event); d != tc.at {
			t.Errorf("event %d at %v, want %v", i, d, tc.at)
		}
	}
	if c.Tempo() != 250000 || c.BPM() != 240 {
		t.Errorf("tempo %d, bpm %v", c.Tempo(), c.BPM())
	}
}

func TestClockSMPTE(t *testing.T) {
	// 25 frames per second, 40 ticks per frame
	c := New(uint16(0xE7)<<8 | 40)
	if !c.SMPTE() {
		t.Fatal("not smpte")
	}
	c.At(tempo(0, 1000000))
	if d := c.At(note(1000)); d != time.Second {
		t.Errorf("at 1000 = %v", d)
	}
}

func TestClockZeroDivision(t *testing.T) {
	if d := New(0).At(note(100)); d != 0 {
		t.Errorf("at 100 = %v", d)
	}
}

func TestDuration(t *testing.T) {
	l := events(tempo(0, 500000), note(0), note(192), tempo(192, 1000000), note(288))
	if d := Duration(96, l); d != 2*time.Second {
		t.Errorf("duration = %v", d)
	}
	if d := Duration(96, &midi.List{}); d != 0 {
		t.Errorf("empty duration = %v", d)
	}
}

func TestClockNoDrift(t *testing.T) {
	c := New(96)
	var d time.Duration
	for i := uint32(0); i <= 96; i++ {
		d = c.At(tempo(i, 500001))
	}
	// 96 ticks of 5208343.75ns, each truncated to the nanosecond
	if d != 500000928 {
		t.Errorf("at 96 = %d", d)
	}
}

func TestClockSaturates(t *testing.T) {
	c := New(1)
	c.At(tempo(0, 0xFFFFFF))
	if d := c.At(note(0xFFFFFFFF)); d != math.MaxInt64 {
		t.Errorf("long span = %v", d)
	}
	c = New(96)
	c.At(tempo(0, 0xFFFFFF))
	c.At(note(0xFFFFFFF0))
	c.At(tempo(0xFFFFFFF0, 0xFFFFFF))
	if d := c.At(note(0xFFFFFFFF)); d < 0 {
		t.Errorf("elapsed wrapped to %v", d)
	}
}
