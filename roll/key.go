package roll

import (
	"image"
)

type mode byte

const (
	Off mode = iota
	On
)

var octave = [12]func(image.Point, image.Point) (key, bool){
	newWhite,
	newBlack,
	newWhite,
	newBlack,
	newWhite,
	newWhite,
	newBlack,
	newWhite,
	newBlack,
	newWhite,
	newBlack,
	newWhite,
}

type key interface {
	On(uint32, byte, byte)
	Off(uint32)
	Draw(*Roll) int
}

type note struct {
	b, e uint32
	c    byte
	v    byte
}

// keyGeneric keeps Min as the top left corner and Max as the size.
type keyGeneric struct {
	mode
	rectangle image.Rectangle
	trace     []note
}

func (k *keyGeneric) On(t uint32, c, v byte) {
	if k.mode == On {
		return
	}
	k.mode = On
	k.trace = append(k.trace, note{b: t, c: c, v: v})
}

func (k *keyGeneric) Off(t uint32) {
	if k.mode == Off {
		return
	}
	k.mode = Off
	k.trace[len(k.trace)-1].e = t
}

func (k *keyGeneric) X() float64 {
	return float64(k.rectangle.Min.X)
}

func (k *keyGeneric) Y() float64 {
	return float64(k.rectangle.Min.Y)
}

func (k *keyGeneric) W() float64 {
	return float64(k.rectangle.Max.X)
}

func (k *keyGeneric) H() float64 {
	return float64(k.rectangle.Max.Y)
}

// Trace draws the bars of the key above the keyboard, wider for
// louder notes.
func (k *keyGeneric) Trace(r *Roll) int {
	for _, n := range k.trace {
		w := k.W() * float64(n.v+1) / 128
		y0, y1 := r.Y(n.b), r.Y(n.e)
		r.SetColor(palette[n.c%16])
		r.DrawRectangle(k.X()+(k.W()-w)/2, y1, w, y0-y1)
		r.Fill()
	}
	return len(k.trace)
}

type keyWhite struct {
	keyGeneric
}

func (k *keyWhite) Draw(r *Roll) int {
	n := k.Trace(r)
	r.SetRGBA(0, 0, 0, 1)
	r.SetLineWidth(1)
	r.DrawRectangle(k.X(), k.Y(), k.W(), k.H())
	r.Stroke()
	return n
}

func newWhite(h, s image.Point) (key, bool) {
	return &keyWhite{
		keyGeneric{
			rectangle: image.Rectangle{
				Min: h,
				Max: s,
			},
		},
	}, true
}

type keyBlack struct {
	keyGeneric
}

func (k *keyBlack) Draw(r *Roll) int {
	n := k.Trace(r)
	r.SetRGBA(0, 0, 0, 1)
	r.SetLineWidth(1)
	r.DrawRectangle(k.X(), k.Y(), k.W(), k.H())
	r.Fill()
	return n
}

func newBlack(h, s image.Point) (key, bool) {
	s = s.Div(5).Mul(4)
	s.X /= 4
	s.X *= 4
	s.Y /= 8
	s.Y *= 8
	return &keyBlack{
		keyGeneric{
			rectangle: image.Rectangle{
				Min: h.Sub(image.Point{X: s.X / 2}),
				Max: s,
			},
		},
	}, false
}
