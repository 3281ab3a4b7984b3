package midi

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

type want struct {
	time   uint32
	status byte
	a, b   byte
	extra  []byte
}

func check(t *testing.T, l *List, w []want) {
	t.Helper()
	if l.Len() != len(w) {
		t.Fatalf("len = %d, want %d: %v", l.Len(), len(w), l.Events())
	}
	for i, e := range l.Events() {
		if e.Time != w[i].time || e.Status != w[i].status || e.Data != [2]byte{w[i].a, w[i].b} {
			t.Errorf("event %d = %v, want %+v", i, e, w[i])
		}
		if !bytes.Equal(e.Extra, w[i].extra) || (e.Extra == nil) != (w[i].extra == nil) {
			t.Errorf("event %d extra = % X, want % X", i, e.Extra, w[i].extra)
		}
	}
}

func TestDecodeRunningStatus(t *testing.T) {
	l, err := DecodeTrack([]byte{0x00, 0x90, 0x40, 0x7F, 0x00, 0x41, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, []want{
		{0, 0x90, 0x40, 0x7F, nil},
		{0, 0x90, 0x41, 0x00, nil},
	})
}

func TestDecodeChannelEvents(t *testing.T) {
	l, err := DecodeTrack([]byte{
		0x00, 0xC3, 0x05, // program change
		0x10, 0xB3, 0x07, 0x64, // volume
		0x10, 0xE3, 0x00, 0x40, // pitch bend centre
		0x08, 0xD3, 0x22, // channel pressure
		0x08, 0x23, // running channel pressure
		0x00, 0xA3, 0x3C, 0x10, // polyphonic pressure
		0x81, 0x00, 0x83, 0x3C, 0x00, // note off after a two byte delta
	})
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, []want{
		{0x00, 0xC3, 0x05, 0x00, nil},
		{0x10, 0xB3, 0x07, 0x64, nil},
		{0x20, 0xE3, 0x00, 0x40, nil},
		{0x28, 0xD3, 0x22, 0x00, nil},
		{0x30, 0xD3, 0x23, 0x00, nil},
		{0x30, 0xA3, 0x3C, 0x10, nil},
		{0xB0, 0x83, 0x3C, 0x00, nil},
	})
}

func TestDecodeTempo(t *testing.T) {
	l, err := DecodeTrack([]byte{0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20})
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, []want{
		{0, 0xFF, 0x51, 0x00, []byte{0x07, 0xA1, 0x20}},
	})
	if e := l.Front(); e.Tempo() != 500000 || e.BPM() != 120 {
		t.Errorf("tempo = %d, bpm = %v", e.Tempo(), e.BPM())
	}
}

func TestDecodeSysEx(t *testing.T) {
	l, err := DecodeTrack([]byte{
		0x00, 0xF0, 0x05, 0x7E, 0x7F, 0x09, 0x01, 0xF7,
		0x05, 0xF7, 0x02, 0x43, 0xF7,
		0x00, 0xFF, 0x7F, 0x00,
	})
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, []want{
		{0, 0xF0, 0x00, 0x00, []byte{0x7E, 0x7F, 0x09, 0x01, 0xF7}},
		{5, 0xF7, 0x00, 0x00, []byte{0x43, 0xF7}},
		{5, 0xFF, 0x7F, 0x00, nil},
	})
	if !l.Front().IsSysEx() || l.Back().IsSysEx() {
		t.Error("sysex classification")
	}
}

func TestDecodeEndOfTrack(t *testing.T) {
	l, err := DecodeTrack([]byte{
		0x00, 0x90, 0x40, 0x7F,
		0x60, 0xFF, 0x2F, 0x00,
		0x00, 0x90, 0x41, 0x7F, // after the end, never read
		0x81, // garbage
	})
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, []want{
		{0x00, 0x90, 0x40, 0x7F, nil},
		{0x60, 0xFF, 0x2F, 0x00, nil},
	})
}

func TestDecodeWithoutEndOfTrack(t *testing.T) {
	l, err := DecodeTrack([]byte{0x00, 0x90, 0x40, 0x7F, 0x10, 0x40, 0x00})
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 2 || l.Back().Time != 0x10 {
		t.Errorf("events = %v", l.Events())
	}
}

func TestDecodeSkipsOrphanData(t *testing.T) {
	l, err := DecodeTrack([]byte{
		0x00, 0x40, // data byte before any status
		0x05, 0x90, 0x3C, 0x50,
		0x00, 0xFF, 0x2F, 0x00,
	})
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, []want{
		{0x05, 0x90, 0x3C, 0x50, nil},
		{0x05, 0xFF, 0x2F, 0x00, nil},
	})
}

func TestDecodeMasksDataBytes(t *testing.T) {
	l, err := DecodeTrack([]byte{0x00, 0x90, 0xC0, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	check(t, l, []want{{0, 0x90, 0x40, 0x7F, nil}})
}

func TestDecodeEmpty(t *testing.T) {
	l, err := DecodeTrack(nil)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != 0 || l.Front() != nil {
		t.Errorf("events = %v", l.Events())
	}
}

func TestDecodeTruncated(t *testing.T) {
	cases := map[string][]byte{
		"delta":        {0x00, 0x90, 0x40, 0x7F, 0x81},
		"status":       {0x00, 0x90, 0x40, 0x7F, 0x00},
		"first data":   {0x00, 0x90},
		"second data":  {0x00, 0x90, 0x40},
		"meta type":    {0x00, 0xFF},
		"meta length":  {0x00, 0xFF, 0x51},
		"meta payload": {0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1},
		"sysex":        {0x00, 0xF0, 0x05, 0x01},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			l, err := DecodeTrack(b)
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("got %v", err)
			}
			if l != nil {
				t.Errorf("partial list returned: %v", l.Events())
			}
		})
	}
}

func TestDecodeTimeNonDecreasing(t *testing.T) {
	var b []byte
	n := 0
	for i := uint32(0); i < 200; i++ {
		b = AppendVLQ(b, i*i%977)
		b = append(b, 0x90|byte(i%16), byte(i%128), byte(i*7%128))
		n++
	}
	b = append(b, 0x00, 0xFF, 0x2F, 0x00)
	l, err := DecodeTrack(b)
	if err != nil {
		t.Fatal(err)
	}
	if l.Len() != n+1 {
		t.Fatalf("len = %d, want %d", l.Len(), n+1)
	}
	var last uint32
	for e := l.Front(); e != nil; e = e.Next() {
		if e.Time < last {
			t.Fatalf("time went back from %d to %d", last, e.Time)
		}
		last = e.Time
	}
}
