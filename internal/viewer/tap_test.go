package viewer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTapDetector(t *testing.T) {
	t0 := time.Unix(50, 0)
	tests := []struct {
		name   string
		dt     time.Duration
		dx     float64
		paired bool
	}{
		{"quick and close", 100 * time.Millisecond, 10, true},
		{"at the window edge", DoubleTapWindow, 0, false},
		{"too slow", 500 * time.Millisecond, 0, false},
		{"too far", 50 * time.Millisecond, 40, false},
		{"clock went backwards", -10 * time.Millisecond, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewTapDetector()
			assert.False(t, d.Observe(100, 100, t0))
			assert.Equal(t, tt.paired, d.Observe(100+tt.dx, 100, t0.Add(tt.dt)))
		})
	}
}

func TestTapDetectorClearsAfterPair(t *testing.T) {
	d := NewTapDetector()
	t0 := time.Unix(0, 0)
	d.Observe(0, 0, t0)
	assert.True(t, d.Observe(0, 0, t0.Add(10*time.Millisecond)))
	assert.False(t, d.Observe(0, 0, t0.Add(20*time.Millisecond)), "a third tap starts over")
	assert.True(t, d.Observe(0, 0, t0.Add(30*time.Millisecond)))

	d.Reset()
	assert.False(t, d.Observe(0, 0, t0.Add(40*time.Millisecond)))
}
