package viewer

// DefaultSwitchingRatio is used when the caller supplies no ratio or a
// non-positive one.
const DefaultSwitchingRatio = 1.0

// Size is the available drawing area of the hosting surface.
type Size struct {
	Width  float64
	Height float64
}

// Measured reports whether the host has produced a usable measurement yet.
func (s Size) Measured() bool {
	return s.Width > 0 && s.Height > 0
}

// SingleView reports whether only one page slot fits, based on the aspect
// ratio threshold. An unmeasured size never divides and reports double view.
func SingleView(s Size, switchingRatio float64) bool {
	if switchingRatio <= 0 {
		switchingRatio = DefaultSwitchingRatio
	}
	return s.Height > s.Width*switchingRatio
}
