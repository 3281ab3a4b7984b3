package midi

import (
	"container/heap"
)

type head struct {
	event *Event
	track int
}

// heads holds at most one entry per track, so (time, track) is a
// strict order and the merge is deterministic.
type heads []head

func (h heads) Len() int { return len(h) }

func (h heads) Less(i, j int) bool {
	if h[i].event.Time != h[j].event.Time {
		return h[i].event.Time < h[j].event.Time
	}
	return h[i].track < h[j].track
}

func (h heads) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *heads) Push(x interface{}) { *h = append(*h, x.(head)) }

func (h *heads) Pop() interface{} {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// Merge moves the nodes of every track list into one list ordered by
// time. Events at the same time keep track order, lowest index first.
// The track lists are left empty.
func Merge(tracks []*List) *List {
	out := &List{}
	h := make(heads, 0, len(tracks))
	for i, t := range tracks {
		if e := t.Front(); e != nil {
			h = append(h, head{event: e, track: i})
		}
	}
	heap.Init(&h)
	for h.Len() > 0 {
		i := h[0].track
		out.Push(tracks[i].Pop())
		if e := tracks[i].Front(); e != nil {
			h[0].event = e
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}
	return out
}
