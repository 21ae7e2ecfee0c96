package viewer

// Inputs are the independent axes a host can change.
type Inputs struct {
	Pages          []Page
	Direction      Direction
	Viewport       Size
	SwitchingRatio float64
	Fullscreen     bool
}

// State is everything derived from Inputs plus the cursor and the
// expansion flag. It is only ever replaced, never patched in place, by
// Reconcile.
type State struct {
	Sequence   Sequence
	SingleView bool
	Cursor     int
	Expansion  bool
	Fullscreen bool

	// SavedExpansion holds the pre-full-screen expansion value while
	// HasSavedExpansion is set.
	SavedExpansion    bool
	HasSavedExpansion bool
}

// CanGoNext reports whether the cursor can advance.
func (s State) CanGoNext() bool {
	return CanGoNext(s.Cursor, s.Sequence.Len(), s.SingleView)
}

// CanGoPrev reports whether the cursor can retreat.
func (s State) CanGoPrev() bool {
	return s.Sequence.Len() > 0 && CanGoPrev(s.Cursor)
}

// visibleLogical returns the caller page shown at the cursor. In double view
// the pad slot is skipped in favour of its partner.
func (s State) visibleLogical() int {
	l := s.Sequence.Logical(s.Cursor)
	if l < 0 && !s.SingleView {
		l = s.Sequence.Logical(s.Cursor + 1)
	}
	return l
}

// Reconcile derives the next consistent state from the previous one and the
// current inputs. Rules are applied in a fixed order: view mode, full-screen
// expansion, sequence rebuild, cursor re-expression.
func Reconcile(prev State, in Inputs) State {
	next := prev
	next.SingleView = SingleView(in.Viewport, in.SwitchingRatio)

	if in.Fullscreen {
		if !next.HasSavedExpansion {
			next.SavedExpansion = next.Expansion
			next.HasSavedExpansion = true
		}
		next.Expansion = true
	} else if next.HasSavedExpansion {
		next.Expansion = next.SavedExpansion
		next.SavedExpansion = false
		next.HasSavedExpansion = false
	}
	next.Fullscreen = in.Fullscreen

	next.Sequence = BuildSequence(in.Pages, in.Direction, next.SingleView)

	cursor := prev.Cursor
	if prev.Sequence.Len() > 0 && !prev.Sequence.sameShape(next.Sequence) {
		if logical := prev.visibleLogical(); logical >= 0 {
			if idx := next.Sequence.IndexOf(logical); idx >= 0 {
				cursor = idx
			}
		}
	}
	next.Cursor = Clamp(cursor, next.Sequence.Len(), next.SingleView)
	return next
}
