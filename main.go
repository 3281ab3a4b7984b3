package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sort"

	"github.com/pshvedko/smf/midi"
	"github.com/pshvedko/smf/roll"
	"github.com/pshvedko/smf/tempo"
)

func main() {
	var v, s bool
	var p string
	var w, h int
	flag.BoolVar(&v, "verbose", false, "log every event with its time")
	flag.BoolVar(&s, "summary", false, "print per channel statistics")
	flag.StringVar(&p, "png", "", "render a piano roll into this file")
	flag.IntVar(&w, "width", 800, "piano roll width")
	flag.IntVar(&h, "height", 600, "piano roll height")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file or url>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	f, err := open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	m := &midi.Song{}
	err = m.Read(f)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Dispose()
	fmt.Printf("Division: %d\n", m.Division)
	fmt.Printf("Events: %d\n", m.Events.Len())
	fmt.Printf("Duration: %v\n", tempo.Duration(m.Division, m.Events))
	if v {
		c := tempo.New(m.Division)
		for e := m.Events.Front(); e != nil; e = e.Next() {
			log.Println(c.At(e), e)
		}
	}
	if s {
		summary(os.Stdout, m.Events)
	}
	if p != "" {
		r := roll.New(w, h)
		_, n := r.Render(m.Events)
		err = r.SavePNG(p)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Piano roll: %s (%d notes)\n", p, n)
	}
}

func open(file string) (io.ReadCloser, error) {
	u, err := url.Parse(file)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "file", "":
		return os.Open(u.Path)
	case "http", "https":
		r, err := http.Get(file)
		if err != nil {
			return nil, err
		}
		if r.StatusCode != http.StatusOK {
			_ = r.Body.Close()
			return nil, fmt.Errorf("%s: %s", file, r.Status)
		}
		return r.Body, nil
	}
	return nil, fmt.Errorf("scheme %q not supported", u.Scheme)
}

type stats struct {
	notes, controls, programs, bends int
	program                          uint8
}

func summary(w io.Writer, l *midi.List) {
	channels := map[uint8]*stats{}
	var meta, sysex int
	for e := l.Front(); e != nil; e = e.Next() {
		if e.IsMeta() {
			meta++
			continue
		} else if e.IsSysEx() {
			sysex++
			continue
		}
		msg := e.Message()
		var ch, key, val uint8
		if !msg.GetChannel(&ch) {
			continue
		}
		c := channels[ch]
		if c == nil {
			c = &stats{}
			channels[ch] = c
		}
		var rel int16
		var abs uint16
		switch {
		case msg.GetNoteStart(&ch, &key, &val):
			c.notes++
		case msg.GetControlChange(&ch, &key, &val):
			c.controls++
		case msg.GetProgramChange(&ch, &val):
			c.programs++
			c.program = val
		case msg.GetPitchBend(&ch, &rel, &abs):
			c.bends++
		}
	}
	fmt.Fprintf(w, "Meta events: %d\n", meta)
	fmt.Fprintf(w, "SysEx events: %d\n", sysex)
	order := make([]int, 0, len(channels))
	for ch := range channels {
		order = append(order, int(ch))
	}
	sort.Ints(order)
	for _, ch := range order {
		c := channels[uint8(ch)]
		fmt.Fprintf(w, "Channel %d: notes %d, controls %d, programs %d (last %d), pitch bends %d\n",
			ch, c.notes, c.controls, c.programs, c.program, c.bends)
	}
}
