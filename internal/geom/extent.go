package geom

// Observer receives every decoded vertex.
type Observer interface {
	Observe(v Vertex)
}

// ExtentTracker accumulates the bounding extent of every vertex it observes.
// It only ever widens and has no reset; one tracker is shared by all files
// loaded in a session. The zero value is an empty tracker.
type ExtentTracker struct {
	ext      Extent
	observed int
}

func NewExtentTracker() *ExtentTracker {
	return &ExtentTracker{ext: EmptyExtent()}
}

// Observe widens the extent to include v.
func (t *ExtentTracker) Observe(v Vertex) {
	if t.observed == 0 {
		t.ext = EmptyExtent()
	}
	t.ext = t.ext.Extend(v)
	t.observed++
}

// Current returns a snapshot of the extent. It is Empty until the first
// vertex has been observed.
func (t *ExtentTracker) Current() Extent {
	if t.observed == 0 {
		return EmptyExtent()
	}
	return t.ext
}

// Observed returns how many vertices have been fed to the tracker.
func (t *ExtentTracker) Observed() int { return t.observed }
