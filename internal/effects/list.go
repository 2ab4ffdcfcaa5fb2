package effects

// List is the append log of effects owned by one engine pass.
//
// Records live in an arena and are addressed by stable handles; display
// order is tracked separately so that insertion at an arbitrary position
// never invalidates a handle held elsewhere (e.g. by a call frame).
// Effects are never removed once appended.
type List struct {
	arena []Effect
	order []int
}

// NewList returns an empty effect list.
func NewList() *List {
	return &List{}
}

// Len returns the number of effects in the list.
func (l *List) Len() int {
	return len(l.order)
}

// Append adds e at the end of the list and returns its handle.
func (l *List) Append(e Effect) int {
	h := len(l.arena)
	l.arena = append(l.arena, e)
	l.order = append(l.order, h)
	return h
}

// InsertBefore adds e immediately before the effect identified by handle
// and returns the new effect's handle. If the handle is unknown, e is
// appended instead.
func (l *List) InsertBefore(handle int, e Effect) int {
	return l.insert(handle, e, 0)
}

// InsertAfter adds e immediately after the effect identified by handle and
// returns the new effect's handle. If the handle is unknown, e is appended.
func (l *List) InsertAfter(handle int, e Effect) int {
	return l.insert(handle, e, 1)
}

func (l *List) insert(handle int, e Effect, offset int) int {
	pos := -1
	for i, h := range l.order {
		if h == handle {
			pos = i + offset
			break
		}
	}
	if pos < 0 {
		return l.Append(e)
	}
	h := len(l.arena)
	l.arena = append(l.arena, e)
	l.order = append(l.order, 0)
	copy(l.order[pos+1:], l.order[pos:])
	l.order[pos] = h
	return h
}

// Get returns the effect with the given handle for in-place patching.
// Patching mutates the already-appended record; it never re-derives it.
func (l *List) Get(handle int) *Effect {
	return &l.arena[handle]
}

// FindFirst returns the handle of the first effect, in display order, for
// which pred returns true, or -1 if there is none.
func (l *List) FindFirst(pred func(*Effect) bool) int {
	for _, h := range l.order {
		if pred(&l.arena[h]) {
			return h
		}
	}
	return -1
}

// FindLast returns the handle of the last matching effect, or -1.
func (l *List) FindLast(pred func(*Effect) bool) int {
	for i := len(l.order) - 1; i >= 0; i-- {
		h := l.order[i]
		if pred(&l.arena[h]) {
			return h
		}
	}
	return -1
}

// FindAll returns the handles of all matching effects in display order.
func (l *List) FindAll(pred func(*Effect) bool) []int {
	var out []int
	for _, h := range l.order {
		if pred(&l.arena[h]) {
			out = append(out, h)
		}
	}
	return out
}

// Effects returns the effects in display order.
func (l *List) Effects() []Effect {
	out := make([]Effect, len(l.order))
	for i, h := range l.order {
		out[i] = l.arena[h]
	}
	return out
}
