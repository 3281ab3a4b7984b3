// Package midi reads Standard MIDI Files, format 0 and 1, optionally
// wrapped in RIFF, into a single time ordered list of events. It does
// not interpret tempo or play anything.
package midi

import (
	"io"

	"github.com/pkg/errors"
)

// Parse reads a whole file from r and returns its division together
// with the merged events of all tracks. On error no list is returned.
func Parse(r io.Reader) (uint16, *List, error) {
	f, err := Load(r)
	if err != nil {
		return 0, nil, err
	}
	l, err := f.Decode()
	if err != nil {
		return 0, nil, err
	}
	return f.Division, l, nil
}

// Decode decodes every raw track and merges the results. Raw track
// data is dropped as soon as its track is decoded.
func (f *File) Decode() (*List, error) {
	tracks := make([]*List, len(f.Tracks))
	for i := range f.Tracks {
		l, err := DecodeTrack(f.Tracks[i].Data)
		if err != nil {
			for _, t := range tracks[:i] {
				t.Dispose()
			}
			return nil, errors.Wrapf(err, "track %d", i)
		}
		f.Tracks[i].Data = nil
		tracks[i] = l
	}
	return Merge(tracks), nil
}

type Song struct {
	Division uint16
	Events   *List
}

// Read parses r into s and closes r.
func (s *Song) Read(r io.ReadCloser) (err error) {
	defer func() {
		_ = r.Close()
	}()
	s.Division, s.Events, err = Parse(r)
	return
}

func (s *Song) Dispose() int {
	n := s.Events.Dispose()
	s.Events = nil
	return n
}
