package midi

import (
	"github.com/pkg/errors"
)

// DecodeTrack turns one track body into a chronological event list.
// Running status is honoured for channel events; a data byte with no
// usable status before it is skipped. Decoding stops at the end of
// track meta event or at the end of the data, whichever comes first.
func DecodeTrack(data []byte) (*List, error) {
	l := &List{}
	err := decodeTrack(NewCursor(data), l)
	if err != nil {
		l.Dispose()
		return nil, err
	}
	return l, nil
}

func decodeTrack(c *Cursor, l *List) (err error) {
	var at, delta uint32
	var status, last, channel, a, b byte
	for c.Len() > 0 {
		delta, err = c.ReadVLQ()
		if err != nil {
			return errors.Wrapf(err, "delta at %d", c.Pos())
		}
		at += delta
		status, err = c.ReadByte()
		if err != nil {
			return errors.Wrapf(err, "status at %d", c.Pos())
		}
		if status>>4 == Meta {
			var e *Event
			e, err = readMeta(c, at, status)
			if err != nil {
				return
			}
			l.Push(e)
			if e.IsMeta() && e.Note() == EndOfTrack {
				return
			}
			continue
		}
		a = status
		if a&0x80 != 0 {
			channel = a & 0x0F
			last = a >> 4
			a, err = c.ReadByte()
			if err != nil {
				return errors.Wrapf(err, "data at %d", c.Pos())
			}
			a &= 0x7F
		}
		switch last {
		case NoteOff, NoteOn, Polyphonic, Control, PitchBend:
			b, err = c.ReadByte()
			if err != nil {
				return errors.Wrapf(err, "data at %d", c.Pos())
			}
			l.Push(&Event{Time: at, Status: last<<4 | channel, Data: [2]byte{a, b & 0x7F}})
		case Program, Channel:
			l.Push(&Event{Time: at, Status: last<<4 | channel, Data: [2]byte{a}})
		}
	}
	return
}

func readMeta(c *Cursor, at uint32, status byte) (e *Event, err error) {
	e = &Event{Time: at, Status: status}
	if status == StatusMeta {
		e.Data[0], err = c.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(err, "meta type at %d", c.Pos())
		}
	}
	var n uint32
	n, err = c.ReadVLQ()
	if err != nil {
		return nil, errors.Wrapf(err, "meta length at %d", c.Pos())
	}
	var b []byte
	b, err = c.ReadBytes(n)
	if err != nil {
		return nil, errors.Wrapf(err, "meta payload at %d", c.Pos())
	}
	if n > 0 {
		e.Extra = append([]byte(nil), b...)
	}
	return
}
