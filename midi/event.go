package midi

import (
	"bytes"
	"fmt"

	gm "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Event is one node of an event list. Time is the absolute tick within
// the track the event came from. For channel events Status holds type
// and channel, for meta events it is 0xFF and Data[0] is the meta type,
// for system exclusive events it is the raw 0xF0/0xF7 byte with a zero
// meta type. Extra is the variable length payload of meta and system
// exclusive events, nil when the declared length is zero.
type Event struct {
	Time   uint32
	Status byte
	Data   [2]byte
	Extra  []byte
	next   *Event
}

const (
	NoteOff byte = 0x8 | iota
	NoteOn
	Polyphonic
	Control
	Program
	Channel
	PitchBend
	Meta
)

const (
	Sequence = 0x00 + iota
	Text
	Copyright
	Name
	Instrument
	Lyric
	Marker
	CuePoint
	ProgramName
	DeviceName
	ChannelPrefix = 0x20
	PortNumber    = 0x21
	EndOfTrack    = 0x2F
	Tempo         = 0x51
	SMPTEOffset   = 0x54
	TimeSignature = 0x58
	KeySignature  = 0x59
	Sequencer     = 0x7F
)

const (
	StatusMeta   = 0xFF
	StatusSysEx  = 0xF0
	StatusEscape = 0xF7
)

var (
	TypeName = map[byte]string{
		NoteOff:    "NoteOff",
		NoteOn:     "NoteOn",
		Polyphonic: "Polyphonic",
		Control:    "Control",
		Program:    "Program",
		Channel:    "Channel",
		PitchBend:  "PitchBend",
		Meta:       "#",
	}
	EventName = map[byte]string{
		Sequence:      "Sequence",
		Text:          "Text",
		Copyright:     "Copyright",
		Name:          "Name",
		Instrument:    "Instrument",
		Lyric:         "Lyric",
		Marker:        "Marker",
		CuePoint:      "CuePoint",
		ProgramName:   "ProgramName",
		DeviceName:    "DeviceName",
		ChannelPrefix: "ChannelPrefix",
		PortNumber:    "PortNumber",
		EndOfTrack:    "EndOfTrack",
		Tempo:         "Tempo",
		SMPTEOffset:   "SMPTEOffset",
		TimeSignature: "TimeSignature",
		KeySignature:  "KeySignature",
		Sequencer:     "Sequencer",
	}
	ControlName = map[byte]string{
		0:   "Bank Select",
		1:   "Modulation Wheel",
		2:   "Breath Controller",
		4:   "Foot Controller",
		5:   "Portamento Time",
		6:   "Data Entry",
		7:   "Channel Volume",
		8:   "Balance",
		10:  "Pan",
		11:  "Expression Controller",
		64:  "Sustain On/Off",
		65:  "Portamento On/Off",
		66:  "Sostenuto On/Off",
		67:  "Soft Pedal On/Off",
		91:  "Reverb Depth",
		93:  "Chorus Depth",
		98:  "NRPN LSB",
		99:  "NRPN MSB",
		100: "RPN LSB",
		101: "RPN MSB",
		120: "All Sound Off",
		121: "Reset All Controllers",
		123: "All Notes Off",
	}
	NoteName = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
)

func (e *Event) Next() *Event {
	return e.next
}

func (e *Event) Type() byte {
	return e.Status >> 4
}

func (e *Event) Chan() byte {
	return e.Status & 0x0F
}

func (e *Event) Note() byte {
	return e.Data[0]
}

func (e *Event) Value() byte {
	return e.Data[1]
}

func (e *Event) IsMeta() bool {
	return e.Status == StatusMeta
}

func (e *Event) IsSysEx() bool {
	return e.Type() == Meta && !e.IsMeta()
}

// IsNoteOff also reports a note on with zero velocity.
func (e *Event) IsNoteOff() bool {
	switch e.Type() {
	case NoteOff:
		return true
	case NoteOn:
		return e.Value() == 0
	}
	return false
}

// Octave follows the convention where middle C (60) is C3.
func (e *Event) Octave() int {
	return int(e.Note())/12 - 2
}

func (e *Event) Key() byte {
	return e.Note() % 12
}

func (e *Event) NoteName() string {
	return NoteName[e.Key()] + fmt.Sprint(e.Octave())
}

func (e *Event) TypeName() string {
	if v, ok := TypeName[e.Type()]; ok {
		return v
	}
	return fmt.Sprintf("Type0x%x", e.Type())
}

func (e *Event) EventName() string {
	if v, ok := EventName[e.Note()]; ok {
		return v
	}
	return fmt.Sprintf("Event0x%x", e.Note())
}

func (e *Event) Control() string {
	if v, ok := ControlName[e.Note()]; ok {
		return v
	}
	return fmt.Sprintf("Control0x%x", e.Note())
}

// Tempo returns microseconds per quarter note, or 0 if e is not a
// well formed tempo event.
func (e *Event) Tempo() uint32 {
	if !e.IsMeta() || e.Note() != Tempo || len(e.Extra) != 3 {
		return 0
	}
	return uint32(e.Extra[0])<<16 | uint32(e.Extra[1])<<8 | uint32(e.Extra[2])
}

func (e *Event) BPM() float64 {
	t := e.Tempo()
	if t == 0 {
		return 0
	}
	return 60000000 / float64(t)
}

func (e *Event) Text() []byte {
	return bytes.TrimSpace(e.Extra)
}

// Pack lays a channel event out as a short message word: status in
// the low byte followed by both data bytes.
func (e *Event) Pack() uint32 {
	return uint32(e.Status) | uint32(e.Data[0])<<8 | uint32(e.Data[1])<<16
}

// Message returns the wire bytes of a channel event, nil otherwise.
func (e *Event) Message() gm.Message {
	switch e.Type() {
	case NoteOff, NoteOn, Polyphonic, Control, PitchBend:
		return gm.Message{e.Status, e.Data[0], e.Data[1]}
	case Program, Channel:
		return gm.Message{e.Status, e.Data[0]}
	}
	return nil
}

// MetaMessage returns a meta or system exclusive event the way it is
// stored in a file, nil for channel events.
func (e *Event) MetaMessage() smf.Message {
	if e.Type() != Meta {
		return nil
	}
	b := []byte{e.Status}
	if e.IsMeta() {
		b = append(b, e.Note())
	}
	b = AppendVLQ(b, uint32(len(e.Extra)))
	return append(b, e.Extra...)
}

func (e *Event) String() string {
	s := fmt.Sprintf("%d 0x%02X %s", e.Time, e.Status, e.TypeName())
	switch e.Type() {
	case NoteOn, NoteOff:
		s += fmt.Sprintf(" %02d %s", e.Chan(), e.NoteName())
		if e.Value() > 0 {
			s += fmt.Sprintf(":%v", e.Value())
		}
	case Polyphonic:
		s += fmt.Sprintf(" %02d %s %v", e.Chan(), e.NoteName(), e.Value())
	case Control:
		s += fmt.Sprintf(" %02d %v %v", e.Chan(), e.Control(), e.Value())
	case Program, Channel:
		s += fmt.Sprintf(" %02d %v", e.Chan(), e.Note())
	case PitchBend:
		s += fmt.Sprintf(" %02d %d", e.Chan(), int(e.Value())<<7|int(e.Note())-0x2000)
	case Meta:
		if !e.IsMeta() {
			s += fmt.Sprintf(" SysEx %d", len(e.Extra))
			break
		}
		s += fmt.Sprintf(" %s", e.EventName())
		switch e.Note() {
		case Text, Copyright, Name, Instrument, Lyric, Marker, CuePoint, ProgramName, DeviceName:
			s += fmt.Sprintf(" <%s>", e.Text())
		case Tempo:
			s += fmt.Sprintf(" %d", e.Tempo())
		case EndOfTrack:
		default:
			s += fmt.Sprintf(" %v", e.Extra)
		}
	}
	return "{" + s + "}"
}
