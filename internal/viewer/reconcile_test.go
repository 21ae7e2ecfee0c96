package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	portrait  = Size{Width: 800, Height: 1000}
	landscape = Size{Width: 1600, Height: 800}
)

func reconcileFrom(cursor int, in Inputs) State {
	return Reconcile(State{Cursor: cursor}, in)
}

// shown returns the caller pages visible at the state's cursor.
func shown(s State) []Page {
	var out []Page
	n := 1
	if !s.SingleView {
		n = 2
	}
	for i := 0; i < n; i++ {
		if p := s.Sequence.At(s.Cursor + i); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func TestReconcileIntoDoubleRoundsDown(t *testing.T) {
	in := Inputs{Pages: deck(7), Direction: RTL, Viewport: portrait, SwitchingRatio: 1}
	s := reconcileFrom(3, in)
	assert.True(t, s.SingleView)
	assert.Equal(t, 3, s.Cursor)

	in.Viewport = landscape
	s = Reconcile(s, in)
	assert.False(t, s.SingleView)
	assert.Equal(t, 2, s.Cursor)

	in.Viewport = portrait
	s = Reconcile(s, in)
	assert.Equal(t, 2, s.Cursor, "entering single view keeps the index")
}

func TestReconcileLTRPadShiftKeepsPage(t *testing.T) {
	in := Inputs{Pages: deck(7), Direction: LTR, Viewport: portrait, SwitchingRatio: 1}
	s := reconcileFrom(2, in) // [p6 p5 p4 ...] -> p4
	assert.Equal(t, []Page{"p4"}, shown(s))

	in.Viewport = landscape
	s = Reconcile(s, in) // [nil p6 p5 p4 p3 ...]; p4 sits at 3, spread starts at 2
	assert.Equal(t, 2, s.Cursor)
	assert.Contains(t, shown(s), Page("p4"))

	in.Viewport = portrait
	s = Reconcile(s, in)
	assert.Equal(t, []Page{"p5"}, shown(s), "single view shows the spread's first slot")
}

func TestReconcileLTRPadSlotMapsToPartner(t *testing.T) {
	in := Inputs{Pages: deck(7), Direction: LTR, Viewport: landscape, SwitchingRatio: 1}
	s := reconcileFrom(0, in)
	assert.Equal(t, []Page{"p6"}, shown(s))

	in.Viewport = portrait
	s = Reconcile(s, in)
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, []Page{"p6"}, shown(s))
}

func TestReconcileDirectionFlipPreservesSpread(t *testing.T) {
	for _, n := range []int{6, 7} {
		for _, size := range []Size{portrait, landscape} {
			in := Inputs{Pages: deck(n), Direction: RTL, Viewport: size, SwitchingRatio: 1}
			for cursor := 0; cursor < n; cursor++ {
				s := reconcileFrom(cursor, in)
				before := shown(s)

				flipped := in
				flipped.Direction = LTR
				s = Reconcile(s, flipped)
				assert.ElementsMatch(t, before, shown(s), "n=%d size=%v cursor=%d", n, size, cursor)

				s = Reconcile(s, in)
				assert.ElementsMatch(t, before, shown(s), "n=%d size=%v cursor=%d back", n, size, cursor)
			}
		}
	}
}

func TestReconcileFullscreenRoundTrip(t *testing.T) {
	for _, start := range []bool{true, false} {
		in := Inputs{Pages: deck(3), Viewport: landscape}
		s := Reconcile(State{Expansion: start}, in)

		in.Fullscreen = true
		s = Reconcile(s, in)
		assert.True(t, s.Expansion)
		assert.True(t, s.HasSavedExpansion)

		// A repeated enter must not overwrite the saved value.
		s = Reconcile(s, in)
		assert.Equal(t, start, s.SavedExpansion)

		in.Fullscreen = false
		s = Reconcile(s, in)
		assert.Equal(t, start, s.Expansion)
		assert.False(t, s.HasSavedExpansion)

		s = Reconcile(s, in)
		assert.Equal(t, start, s.Expansion, "repeated exit is a no-op")
	}
}

func TestReconcileEmptyDeck(t *testing.T) {
	s := reconcileFrom(4, Inputs{Viewport: landscape})
	assert.Equal(t, 0, s.Cursor)
	assert.False(t, s.CanGoNext())
	assert.False(t, s.CanGoPrev())
}

func TestReconcilePagesShrink(t *testing.T) {
	in := Inputs{Pages: deck(7), Viewport: portrait}
	s := reconcileFrom(6, in)
	in.Pages = deck(3)
	s = Reconcile(s, in)
	assert.Equal(t, 2, s.Cursor)
}
