package midi

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

var (
	ErrTruncated = errors.New("unexpected end of data")
	ErrVLQ       = errors.New("variable length quantity too long")
)

// Cursor reads a track buffer front to back. Every read checks the
// remaining length first and fails with ErrTruncated instead of
// running past the end.
type Cursor struct {
	data []byte
	pos  int
}

func NewCursor(b []byte) *Cursor {
	return &Cursor{data: b}
}

func (c *Cursor) Len() int {
	return len(c.data) - c.pos
}

func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) ReadByte() (b byte, err error) {
	if c.Len() < 1 {
		return 0, errors.WithStack(ErrTruncated)
	}
	b = c.data[c.pos]
	c.pos++
	return
}

func (c *Cursor) ReadU16() (u uint16, err error) {
	if c.Len() < 2 {
		return 0, errors.WithStack(ErrTruncated)
	}
	u = binary.BigEndian.Uint16(c.data[c.pos:])
	c.pos += 2
	return
}

func (c *Cursor) ReadU32() (u uint32, err error) {
	if c.Len() < 4 {
		return 0, errors.WithStack(ErrTruncated)
	}
	u = binary.BigEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return
}

// ReadVLQ decodes at most 4 bytes, the longest quantity an SMF allows.
func (c *Cursor) ReadVLQ() (u uint32, err error) {
	var b byte
	for i := 0; i < 4; i++ {
		b, err = c.ReadByte()
		if err != nil {
			return
		}
		u |= uint32(b & 0x7F)
		if b < 0x80 {
			return
		}
		u <<= 7
	}
	return 0, errors.WithStack(ErrVLQ)
}

// ReadBytes returns the next n bytes without copying them.
func (c *Cursor) ReadBytes(n uint32) (b []byte, err error) {
	if uint64(c.Len()) < uint64(n) {
		return nil, errors.Wrapf(ErrTruncated, "need %d bytes, have %d", n, c.Len())
	}
	b = c.data[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return
}

// AppendVLQ appends u in variable length encoding. Values above
// 0x0FFFFFFF do not fit in 4 bytes and are truncated to 28 bits.
func AppendVLQ(b []byte, u uint32) []byte {
	u &= 0x0FFFFFFF
	var buf [4]byte
	i := len(buf) - 1
	buf[i] = byte(u & 0x7F)
	for u >>= 7; u > 0; u >>= 7 {
		i--
		buf[i] = byte(u&0x7F) | 0x80
	}
	return append(b, buf[i:]...)
}
