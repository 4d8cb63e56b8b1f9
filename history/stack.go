package history

// stack is a bounded LIFO of snapshots backed by a ring buffer. Pushing
// onto a full stack drops the oldest entry in O(1).
type stack struct {
	items []SceneSnapshot
	head  int // index of the oldest entry
	n     int
}

func newStack(capacity int) *stack {
	return &stack{items: make([]SceneSnapshot, capacity)}
}

func (s *stack) count() int { return s.n }

func (s *stack) capacity() int { return len(s.items) }

// push appends snap at the top. It reports whether the oldest entry was
// evicted to make room.
func (s *stack) push(snap SceneSnapshot) bool {
	if len(s.items) == 0 {
		return false
	}
	if s.n == len(s.items) {
		s.items[s.head] = snap
		s.head = (s.head + 1) % len(s.items)
		return true
	}
	s.items[(s.head+s.n)%len(s.items)] = snap
	s.n++
	return false
}

// pop removes and returns the top entry.
func (s *stack) pop() (SceneSnapshot, bool) {
	if s.n == 0 {
		return SceneSnapshot{}, false
	}
	i := (s.head + s.n - 1) % len(s.items)
	snap := s.items[i]
	s.items[i] = SceneSnapshot{}
	s.n--
	return snap, true
}

// at returns the entry at depth i from the oldest (0) to the newest.
func (s *stack) at(i int) SceneSnapshot {
	return s.items[(s.head+i)%len(s.items)]
}

func (s *stack) clear() {
	clear(s.items)
	s.head = 0
	s.n = 0
}
