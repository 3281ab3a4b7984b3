// Package roll draws a merged event list as a piano roll: an 88 key
// keyboard along the bottom edge with time running upwards.
package roll

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/pshvedko/smf/midi"
)

const (
	lowest = 21 // A0
	keys   = 88
)

var palette = [16]color.Color{
	color.RGBA{0xE6, 0x19, 0x4B, 0xFF},
	color.RGBA{0x3C, 0xB4, 0x4B, 0xFF},
	color.RGBA{0x43, 0x63, 0xD8, 0xFF},
	color.RGBA{0xF5, 0x82, 0x31, 0xFF},
	color.RGBA{0x91, 0x1E, 0xB4, 0xFF},
	color.RGBA{0x42, 0xD4, 0xF4, 0xFF},
	color.RGBA{0xF0, 0x32, 0xE6, 0xFF},
	color.RGBA{0xBF, 0xEF, 0x45, 0xFF},
	color.RGBA{0x46, 0x99, 0x90, 0xFF},
	color.RGBA{0x80, 0x80, 0x80, 0xFF}, // drums
	color.RGBA{0x9A, 0x63, 0x24, 0xFF},
	color.RGBA{0x80, 0x00, 0x00, 0xFF},
	color.RGBA{0xAA, 0xFF, 0xC3, 0xFF},
	color.RGBA{0x80, 0x80, 0x00, 0xFF},
	color.RGBA{0x00, 0x00, 0x75, 0xFF},
	color.RGBA{0xFF, 0xD8, 0xB1, 0xFF},
}

type draw struct {
	*gg.Context
}

type board [9][12]key

func (k *board) Key(n byte) key {
	if n < lowest || n >= lowest+keys {
		return nil
	}
	return k[n/12-1][n%12]
}

func (k *board) Update(e *midi.Event) {
	if e.Type() != midi.NoteOn && e.Type() != midi.NoteOff {
		return
	}
	p := k.Key(e.Note())
	if p == nil {
		return
	}
	if e.IsNoteOff() {
		p.Off(e.Time)
	} else {
		p.On(e.Time, e.Chan(), e.Value())
	}
}

// Close ends every bar still sounding at t.
func (k *board) Close(t uint32) {
	for o := range k {
		for _, p := range k[o] {
			if p != nil {
				p.Off(t)
			}
		}
	}
}

type Roll struct {
	draw
	rgba *image.RGBA
	key  board
	top  int
	end  uint32
}

func New(w, h int) *Roll {
	r := &Roll{}
	r.rgba = image.NewRGBA(image.Rectangle{
		Max: image.Point{
			X: w,
			Y: h,
		},
	})
	r.Context = gg.NewContextForRGBA(r.rgba)
	r.layout(w, h)
	return r
}

func (r *Roll) layout(w, h int) {
	hook := image.Point{X: w % 52 / 2, Y: h / 20 * 18}
	size := image.Point{X: w / 52, Y: h / 20}
	r.top = hook.Y
	r.key = board{}
	for i := 0; i < keys; i++ {
		o := (i + 9) / 12
		n := (i + 9) % 12
		var white bool
		r.key[o][n], white = octave[n](hook, size)
		if white {
			hook.X += size.X
		}
	}
}

// Y maps a tick to a row above the keyboard.
func (r *Roll) Y(t uint32) float64 {
	if r.end == 0 {
		return float64(r.top)
	}
	return float64(r.top) - float64(t)*float64(r.top)/float64(r.end)
}

// Render draws l from scratch and returns the image with the number of
// note bars on it. The list is only read.
func (r *Roll) Render(l *midi.List) (image.Image, int) {
	r.layout(r.Width(), r.Height())
	r.end = 0
	if e := l.Back(); e != nil {
		r.end = e.Time
	}
	for e := l.Front(); e != nil; e = e.Next() {
		r.key.Update(e)
	}
	r.key.Close(r.end)
	r.SetRGBA(1, 1, 1, 1)
	r.Clear()
	n := 0
	for _, white := range []bool{true, false} {
		for o := range r.key {
			for _, k := range r.key[o] {
				if _, ok := k.(*keyWhite); k != nil && ok == white {
					n += k.Draw(r)
				}
			}
		}
	}
	return r.rgba, n
}

func (r *Roll) SavePNG(path string) error {
	return gg.SavePNG(path, r.rgba)
}
