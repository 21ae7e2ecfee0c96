package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deck(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = pageName(i)
	}
	return pages
}

func pageName(i int) string {
	return "p" + string(rune('0'+i))
}

func TestBuildSequenceRTLIsIdentity(t *testing.T) {
	for n := 0; n <= 9; n++ {
		for _, single := range []bool{true, false} {
			pages := deck(n)
			seq := BuildSequence(pages, RTL, single)
			assert.Equal(t, pages, seq.Slots(), "n=%d single=%t", n, single)
			assert.False(t, seq.Padded())
		}
	}
}

func TestBuildSequenceLTRDoubleIsEven(t *testing.T) {
	for n := 1; n <= 9; n++ {
		seq := BuildSequence(deck(n), LTR, false)
		assert.Equal(t, 0, seq.Len()%2, "n=%d", n)
		if n%2 == 1 {
			assert.Nil(t, seq.At(0), "n=%d", n)
			assert.True(t, seq.Padded())
		}
	}
}

func TestBuildSequenceLTR(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		single bool
		want   []Page
	}{
		{"odd double padded", 7, false, []Page{nil, "p6", "p5", "p4", "p3", "p2", "p1", "p0"}},
		{"odd single unpadded", 7, true, []Page{"p6", "p5", "p4", "p3", "p2", "p1", "p0"}},
		{"even double unpadded", 4, false, []Page{"p3", "p2", "p1", "p0"}},
		{"empty", 0, false, []Page{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := BuildSequence(deck(tt.n), LTR, tt.single)
			assert.Equal(t, tt.want, seq.Slots())
		})
	}
}

func TestBuildSequenceDoesNotMutateInput(t *testing.T) {
	pages := deck(5)
	before := append([]Page(nil), pages...)
	_ = BuildSequence(pages, LTR, false)
	assert.Equal(t, before, pages)
}

func TestSequenceLogicalRoundTrip(t *testing.T) {
	for _, dir := range []Direction{RTL, LTR} {
		for _, single := range []bool{true, false} {
			seq := BuildSequence(deck(7), dir, single)
			for logical := 0; logical < 7; logical++ {
				idx := seq.IndexOf(logical)
				require.GreaterOrEqual(t, idx, 0)
				assert.Equal(t, pageName(logical), seq.At(idx))
				assert.Equal(t, logical, seq.Logical(idx))
			}
			assert.Equal(t, -1, seq.IndexOf(7))
			assert.Equal(t, -1, seq.Logical(-1))
		}
	}
	padded := BuildSequence(deck(7), LTR, false)
	assert.Equal(t, -1, padded.Logical(0))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("LTR")
	require.NoError(t, err)
	assert.Equal(t, LTR, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, RTL, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
}
