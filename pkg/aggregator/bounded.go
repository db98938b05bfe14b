package aggregator

// BoundedList is an ordered list of distinct strings that stops growing at a cap.
// The first push past the cap appends a sentinel; later pushes are ignored.
type BoundedList struct {
	limit     int
	sentinel  string
	items     []string
	truncated bool
}

// NewBoundedList creates a list holding at most limit real entries.
func NewBoundedList(limit int, sentinel string) *BoundedList {
	return &BoundedList{limit: limit, sentinel: sentinel}
}

// Push appends s unless it is already present or the list is full.
// It returns true if s was stored.
func (l *BoundedList) Push(s string) bool {
	if l.truncated {
		return false
	}
	for _, item := range l.items {
		if item == s {
			return false
		}
	}
	if len(l.items) >= l.limit {
		l.items = append(l.items, l.sentinel)
		l.truncated = true
		return false
	}
	l.items = append(l.items, s)
	return true
}

// Items returns a copy of the entries, including the sentinel if present.
func (l *BoundedList) Items() []string {
	return append([]string{}, l.items...)
}

// Truncated reports whether the sentinel has been appended.
func (l *BoundedList) Truncated() bool {
	return l.truncated
}

// Len returns the number of entries including the sentinel.
func (l *BoundedList) Len() int {
	return len(l.items)
}
