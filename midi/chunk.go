package midi

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	magicRIFF = 0x52494646 // RIFF
	magicMThd = 0x4D546864 // MThd
	riffSkip  = 16
)

var (
	ErrNotSMF     = errors.New("not a standard midi file")
	ErrHeaderSize = errors.New("header size not 6")
	ErrFormat     = errors.New("format not supported")
)

type Header struct {
	Format    uint16
	NumTracks uint16
	Division  uint16
}

// RawTrack is the undecoded body of one track chunk.
type RawTrack struct {
	ID   [4]byte
	Data []byte
}

type File struct {
	Header
	Tracks []RawTrack
}

type Reader struct {
	io.Reader
}

func (r Reader) read(v interface{}) error {
	err := binary.Read(r, binary.BigEndian, v)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.WithStack(ErrTruncated)
	}
	return err
}

func (r Reader) ReadU16() (u uint16, err error) {
	err = r.read(&u)
	return
}

func (r Reader) ReadU32() (u uint32, err error) {
	err = r.read(&u)
	return
}

// ReadN reads exactly n bytes. The buffer grows while reading so a
// forged chunk length cannot force a large allocation up front.
func (r Reader) ReadN(n uint32) ([]byte, error) {
	var b bytes.Buffer
	m, err := io.CopyN(&b, r, int64(n))
	if err == io.EOF {
		return nil, errors.Wrapf(ErrTruncated, "read %d of %d bytes", m, n)
	} else if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Load validates the container and slices out every track chunk
// without interpreting it. Nothing is returned on failure.
func Load(r io.Reader) (*File, error) {
	f := &File{}
	err := f.load(Reader{r})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load(r Reader) (err error) {
	var id uint32
	id, err = r.ReadU32()
	if err != nil {
		return errors.Wrap(err, "magic")
	}
	if id == magicRIFF {
		_, err = io.CopyN(io.Discard, r, riffSkip)
		if err == io.EOF {
			return errors.Wrap(ErrTruncated, "riff")
		} else if err != nil {
			return
		}
		id, err = r.ReadU32()
		if err != nil {
			return errors.Wrap(err, "magic")
		}
	}
	if id != magicMThd {
		return errors.Wrapf(ErrNotSMF, "magic %08X", id)
	}
	var size uint32
	size, err = r.ReadU32()
	if err != nil {
		return errors.Wrap(err, "header size")
	} else if size != 6 {
		return errors.Wrapf(ErrHeaderSize, "was %d", size)
	}
	f.Format, err = r.ReadU16()
	if err != nil {
		return errors.Wrap(err, "format")
	} else if f.Format != 0 && f.Format != 1 {
		return errors.Wrapf(ErrFormat, "format %d", f.Format)
	}
	f.NumTracks, err = r.ReadU16()
	if err != nil {
		return errors.Wrap(err, "track count")
	}
	f.Division, err = r.ReadU16()
	if err != nil {
		return errors.Wrap(err, "division")
	}
	f.Tracks = make([]RawTrack, 0, f.NumTracks)
	for i := 0; i < int(f.NumTracks); i++ {
		var t RawTrack
		err = t.load(r)
		if err != nil {
			f.Tracks = nil
			return errors.Wrapf(err, "track %d", i)
		}
		f.Tracks = append(f.Tracks, t)
	}
	return
}

// The chunk ID is kept but not checked against MTrk.
func (t *RawTrack) load(r Reader) (err error) {
	var id, size uint32
	id, err = r.ReadU32()
	if err != nil {
		return
	}
	binary.BigEndian.PutUint32(t.ID[:], id)
	size, err = r.ReadU32()
	if err != nil {
		return
	}
	t.Data, err = r.ReadN(size)
	return
}
