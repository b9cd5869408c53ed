package viewport

import "math"

// Zoom bounds. The legacy range caps zoom at 10.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 50.0
	LegacyMaxZoom  = 10.0
)

// State owns the mutable view settings. Every setter that changes a value
// bumps Revision so callers can tell previously emitted geometry is stale.
type State struct {
	zoom     float64
	center   Point
	clamp    bool
	minZoom  float64
	maxZoom  float64
	revision uint64
}

// NewState returns the default view with the given zoom range. An invalid
// range falls back to DefaultMinZoom..DefaultMaxZoom.
func NewState(minZoom, maxZoom float64) *State {
	if !(minZoom > 0) || !(maxZoom >= minZoom) || math.IsInf(maxZoom, 0) {
		minZoom, maxZoom = DefaultMinZoom, DefaultMaxZoom
	}
	v := DefaultView()
	return &State{
		zoom:    clamp(v.Zoom, minZoom, maxZoom),
		center:  v.Center,
		clamp:   v.Clamp,
		minZoom: minZoom,
		maxZoom: maxZoom,
	}
}

// View returns a snapshot of the current settings.
func (s *State) View() View {
	return View{Zoom: s.zoom, Center: s.center, Clamp: s.clamp}
}

func (s *State) Zoom() float64    { return s.zoom }
func (s *State) Center() Point    { return s.center }
func (s *State) Clamp() bool      { return s.clamp }
func (s *State) Revision() uint64 { return s.revision }

// ZoomRange returns the inclusive zoom bounds.
func (s *State) ZoomRange() (min, max float64) { return s.minZoom, s.maxZoom }

// SetZoom bounds z to the zoom range and reports whether the zoom changed.
func (s *State) SetZoom(z float64) bool {
	if math.IsNaN(z) {
		return false
	}
	z = clamp(z, s.minZoom, s.maxZoom)
	if fuzzyEqual(s.zoom, z) {
		return false
	}
	s.zoom = z
	s.revision++
	return true
}

// ZoomBy multiplies the zoom by factor.
func (s *State) ZoomBy(factor float64) bool {
	return s.SetZoom(s.zoom * factor)
}

// SetCenter moves the normalized center, bounded to [0,1] on each axis.
func (s *State) SetCenter(p Point) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	p = Point{X: clamp(p.X, 0, 1), Y: clamp(p.Y, 0, 1)}
	if p == s.center {
		return false
	}
	s.center = p
	s.revision++
	return true
}

// Pan shifts the center by (dx, dy) screen fractions; the shift is divided by
// the zoom so one step covers the same screen distance at every zoom.
func (s *State) Pan(dx, dy float64) bool {
	return s.SetCenter(Point{X: s.center.X + dx/s.zoom, Y: s.center.Y + dy/s.zoom})
}

func (s *State) SetClamp(on bool) bool {
	if s.clamp == on {
		return false
	}
	s.clamp = on
	s.revision++
	return true
}

// Reset restores zoom 1 and the centered view. The clamp setting is kept.
func (s *State) Reset() bool {
	z := s.SetZoom(DefaultView().Zoom)
	c := s.SetCenter(DefaultView().Center)
	return z || c
}

func fuzzyEqual(a, b float64) bool {
	return math.Abs(a-b)*1e12 <= math.Min(math.Abs(a), math.Abs(b))
}
