// Package scene ties the loaded geometry, the shared extent, the layer store
// and the view state together, and produces the draw buffers for a canvas.
package scene

import (
	"image/color"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"shpmap/internal/emit"
	"shpmap/internal/geom"
	"shpmap/internal/layer"
	"shpmap/internal/viewport"
)

// Names of the two fixed layers. Neither is ever in the layer store.
const (
	BaseLayer   = "base"
	LndareLayer = "LNDARE"
)

var (
	BaseColor   = color.RGBA{R: 200, G: 200, B: 255, A: 255}
	LndareColor = color.RGBA{R: 139, G: 69, B: 19, A: 255}
)

// Scene is everything needed to draw the map. It is owned by one goroutine;
// Render takes a snapshot of the view and extent for the whole pass.
type Scene struct {
	Extent *geom.ExtentTracker
	Base   geom.PolygonSet
	Lndare geom.PolygonSet
	Layers *layer.Store
	View   *viewport.State
	Files  []File

	palette       *layer.Palette
	lndareVisible bool
	rev           uint64
}

// New returns an empty scene with the default view.
func New() *Scene {
	return &Scene{
		Extent:        geom.NewExtentTracker(),
		Layers:        layer.NewStore(),
		View:          viewport.NewState(viewport.DefaultMinZoom, viewport.DefaultMaxZoom),
		palette:       layer.NewPalette(1),
		lndareVisible: true,
	}
}

// AddLayer registers geometry that did not come from a load directory. Its
// vertices widen the shared extent and it gets the next palette color.
func (s *Scene) AddLayer(name string, polys geom.PolygonSet, points geom.PointSet) (layer.ID, bool) {
	id, ok := s.Layers.Register(name, polys, points, s.palette.Next())
	if !ok {
		return 0, false
	}
	observeAll(s.Extent, polys, points)
	s.rev++
	return id, true
}

func observeAll(obs geom.Observer, polys geom.PolygonSet, points geom.PointSet) {
	for _, p := range polys {
		for _, r := range p.Rings {
			for _, v := range r {
				obs.Observe(v)
			}
		}
	}
	for _, v := range points {
		obs.Observe(v)
	}
}

func (s *Scene) LndareVisible() bool { return s.lndareVisible }

// SetLndareVisible reports whether the visibility changed.
func (s *Scene) SetLndareVisible(visible bool) bool {
	if s.lndareVisible == visible {
		return false
	}
	s.lndareVisible = visible
	s.rev++
	return true
}

// ToggleLayer flips the selection of name and reports whether it is now
// selected.
func (s *Scene) ToggleLayer(name string) bool {
	s.rev++
	return s.Layers.Toggle(name)
}

// SetSelectedLayers replaces the layer selection.
func (s *Scene) SetSelectedLayers(names []string) {
	s.Layers.SetSelected(names)
	s.rev++
}

// Revision changes whenever anything that affects Render changes.
func (s *Scene) Revision() uint64 {
	return s.rev + s.View.Revision()
}

// Frame snapshots the extent and view for a width×height canvas.
func (s *Scene) Frame(width, height float64) emit.Frame {
	return emit.Frame{
		Extent: s.Extent.Current(),
		View:   s.View.View(),
		Width:  width,
		Height: height,
	}
}

// Render emits the buffers to draw, back to front: the base polygons, LNDARE
// when visible, then each selected layer's polygons followed by its points.
// It has no side effects; calling it again without changes gives equal output.
func (s *Scene) Render(width, height float64) []emit.Buffer {
	f := s.Frame(width, height)
	out := []emit.Buffer{emit.Lines(f, BaseLayer, BaseColor, s.Base)}
	if s.lndareVisible {
		out = append(out, emit.Lines(f, LndareLayer, LndareColor, s.Lndare))
	}
	for _, l := range s.Layers.Resolve() {
		out = append(out,
			emit.Lines(f, l.Name, l.Color, l.Polygons),
			emit.Points(f, l.Name, l.Color, l.Points),
		)
	}
	return out
}

// Stats summarizes the scene for the inspect view.
type Stats struct {
	Extent         geom.Extent
	Vertices       int // vertices observed by the extent
	View           viewport.View
	Files          int
	FailedFiles    int
	BasePolygons   int
	BaseVertices   int
	LndarePolygons int
	Layers         int
	Selected       int
	LayerPolygons  int
	LayerPoints    int
}

func (s *Scene) Stats() Stats {
	st := Stats{
		Extent:         s.Extent.Current(),
		Vertices:       s.Extent.Observed(),
		View:           s.View.View(),
		Files:          len(s.Files),
		BasePolygons:   len(s.Base),
		BaseVertices:   s.Base.Vertices(),
		LndarePolygons: len(s.Lndare),
		Layers:         s.Layers.Len(),
		Selected:       len(s.Layers.Resolve()),
	}
	for _, f := range s.Files {
		if f.Err != nil {
			st.FailedFiles++
		}
	}
	for _, l := range s.Layers.Layers() {
		st.LayerPolygons += len(l.Polygons)
		st.LayerPoints += len(l.Points)
	}
	return st
}

// FeatureCollection exports the base, LNDARE and layer geometry as GeoJSON.
// With selectedOnly set, only the selected layers are included, and LNDARE
// only when visible.
func (s *Scene) FeatureCollection(selectedOnly bool) *geojson.FeatureCollection {
	fc := s.Layers.FeatureCollection(selectedOnly)
	fixed := geojson.NewFeatureCollection()
	geom.AppendFeatures(fixed, BaseLayer, s.Base, nil)
	if !selectedOnly || s.lndareVisible {
		geom.AppendFeatures(fixed, LndareLayer, s.Lndare, nil)
	}
	fixed.Features = append(fixed.Features, fc.Features...)
	return fixed
}

// WriteGeoJSON writes FeatureCollection(selectedOnly) to w.
func (s *Scene) WriteGeoJSON(w io.Writer, selectedOnly bool) error {
	data, err := s.FeatureCollection(selectedOnly).MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
