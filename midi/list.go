package midi

// List is a singly linked sequence of events that owns its nodes.
// Nodes move between lists, they are never shared or copied.
type List struct {
	head *Event
	tail *Event
	size int
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return l.size
}

func (l *List) Front() *Event {
	if l == nil {
		return nil
	}
	return l.head
}

func (l *List) Back() *Event {
	if l == nil {
		return nil
	}
	return l.tail
}

// Push appends e, which must not belong to another list.
func (l *List) Push(e *Event) {
	e.next = nil
	if l.tail == nil {
		l.head = e
	} else {
		l.tail.next = e
	}
	l.tail = e
	l.size++
}

// Pop unlinks and returns the first event, nil when the list is empty.
func (l *List) Pop() *Event {
	e := l.head
	if e == nil {
		return nil
	}
	l.head = e.next
	if l.head == nil {
		l.tail = nil
	}
	e.next = nil
	l.size--
	return e
}

// Events returns the nodes in order. The list keeps ownership.
func (l *List) Events() []*Event {
	s := make([]*Event, 0, l.Len())
	for e := l.Front(); e != nil; e = e.next {
		s = append(s, e)
	}
	return s
}

// Dispose releases every node and payload and leaves l empty. It
// returns the number of nodes released.
func (l *List) Dispose() (n int) {
	if l == nil {
		return
	}
	for e := l.head; e != nil; n++ {
		next := e.next
		e.next = nil
		e.Extra = nil
		e = next
	}
	l.head, l.tail, l.size = nil, nil, 0
	return
}

func Dispose(l *List) int {
	return l.Dispose()
}
