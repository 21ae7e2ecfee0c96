package viewer

import (
	"fmt"
	"strings"
)

// Direction is the reading order of a deck.
type Direction int

const (
	// RTL is right-to-left reading (manga style). It is the default.
	RTL Direction = iota
	// LTR is left-to-right reading (western style).
	LTR
)

func (d Direction) String() string {
	if d == LTR {
		return "ltr"
	}
	return "rtl"
}

// ParseDirection parses "rtl" or "ltr". The empty string yields RTL.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rtl":
		return RTL, nil
	case "ltr":
		return LTR, nil
	default:
		return RTL, fmt.Errorf("unknown direction %q (want rtl or ltr)", s)
	}
}

// Page is an opaque page content supplied by the caller: usually a string
// image reference, or anything the host knows how to draw. A nil Page in a
// Sequence is the spread padding placeholder.
type Page any

// Sequence is the render order derived from the caller's pages.
type Sequence struct {
	slots []Page
	total int // len(caller pages)
	dir   Direction
	pad   bool // true if slots[0] is the padding placeholder
}

// BuildSequence derives the render order. RTL decks render as given. LTR
// decks are reversed and, in double view, front-padded with one nil slot
// when the reversed length is odd so that spreads pair the same pages in
// both directions. The input slice is never modified.
func BuildSequence(pages []Page, dir Direction, single bool) Sequence {
	n := len(pages)
	seq := Sequence{total: n, dir: dir}
	if dir == RTL {
		seq.slots = make([]Page, n)
		copy(seq.slots, pages)
		return seq
	}

	seq.pad = !single && n%2 == 1
	size := n
	if seq.pad {
		size++
	}
	seq.slots = make([]Page, 0, size)
	if seq.pad {
		seq.slots = append(seq.slots, nil)
	}
	for i := n - 1; i >= 0; i-- {
		seq.slots = append(seq.slots, pages[i])
	}
	return seq
}

// Len returns the number of slots including any padding.
func (s Sequence) Len() int {
	return len(s.slots)
}

// Total returns the number of caller pages.
func (s Sequence) Total() int {
	return s.total
}

// Padded reports whether the first slot is the placeholder.
func (s Sequence) Padded() bool {
	return s.pad
}

// Direction returns the direction the sequence was built for.
func (s Sequence) Direction() Direction {
	return s.dir
}

// At returns the slot content, or nil when i is out of range or the pad.
func (s Sequence) At(i int) Page {
	if i < 0 || i >= len(s.slots) {
		return nil
	}
	return s.slots[i]
}

// Slots returns a copy of the render order.
func (s Sequence) Slots() []Page {
	out := make([]Page, len(s.slots))
	copy(out, s.slots)
	return out
}

// Logical maps a slot index to the caller's page index. It returns -1 for
// the pad and for out-of-range indices.
func (s Sequence) Logical(i int) int {
	if i < 0 || i >= len(s.slots) {
		return -1
	}
	if s.dir == RTL {
		return i
	}
	if s.pad {
		if i == 0 {
			return -1
		}
		i--
	}
	return s.total - 1 - i
}

// IndexOf maps a caller page index back to its slot index, or -1.
func (s Sequence) IndexOf(logical int) int {
	if logical < 0 || logical >= s.total {
		return -1
	}
	if s.dir == RTL {
		return logical
	}
	i := s.total - 1 - logical
	if s.pad {
		i++
	}
	return i
}

// sameShape reports whether two sequences index the same pages identically.
func (s Sequence) sameShape(o Sequence) bool {
	return s.dir == o.dir && s.pad == o.pad && s.total == o.total
}
