// Package layer keeps the named, independently selectable geometry layers.
package layer

import (
	"image/color"
	"slices"

	geojson "github.com/paulmach/go.geojson"

	"shpmap/internal/geom"
)

// ID identifies a registered layer. IDs are dense and stable for the life
// of the store; re-registering a name keeps its ID.
type ID int

// Layer is one registered source of geometry with its display color.
type Layer struct {
	ID       ID
	Name     string
	Polygons geom.PolygonSet
	Points   geom.PointSet
	Color    color.RGBA
}

// Empty reports whether the layer has neither polygons nor points.
func (l Layer) Empty() bool {
	return len(l.Polygons) == 0 && len(l.Points) == 0
}

// Store maps layer names to their geometry and tracks which are selected.
// Selection is by name and is not checked against the registered layers;
// unknown names simply resolve to nothing.
type Store struct {
	layers   []Layer
	byName   map[string]ID
	selected []string
}

func NewStore() *Store {
	return &Store{byName: make(map[string]ID)}
}

// Register adds a layer, or replaces the one with the same name in place.
// Layers without any geometry are dropped and ok is false.
func (s *Store) Register(name string, polys geom.PolygonSet, points geom.PointSet, c color.RGBA) (id ID, ok bool) {
	l := Layer{Name: name, Polygons: polys, Points: points, Color: c}
	if l.Empty() {
		return 0, false
	}
	if id, exists := s.byName[name]; exists {
		l.ID = id
		s.layers[id] = l
		return id, true
	}
	l.ID = ID(len(s.layers))
	s.layers = append(s.layers, l)
	s.byName[name] = l.ID
	return l.ID, true
}

func (s *Store) Len() int { return len(s.layers) }

// Lookup returns the ID registered under name.
func (s *Store) Lookup(name string) (ID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

func (s *Store) Get(id ID) (Layer, bool) {
	if id < 0 || int(id) >= len(s.layers) {
		return Layer{}, false
	}
	return s.layers[id], true
}

// Available lists registered layer names in registration order.
func (s *Store) Available() []string {
	names := make([]string, len(s.layers))
	for i, l := range s.layers {
		names[i] = l.Name
	}
	return names
}

// Layers returns every registered layer in registration order.
func (s *Store) Layers() []Layer {
	return slices.Clone(s.layers)
}

// Toggle removes name from the selection if present, otherwise appends it.
// It reports whether name is selected afterwards.
func (s *Store) Toggle(name string) bool {
	if s.IsSelected(name) {
		s.selected = slices.DeleteFunc(s.selected, func(n string) bool { return n == name })
		return false
	}
	s.selected = append(s.selected, name)
	return true
}

// SetSelected replaces the selection. Duplicate names are kept once.
func (s *Store) SetSelected(names []string) {
	s.selected = s.selected[:0]
	for _, n := range names {
		if !slices.Contains(s.selected, n) {
			s.selected = append(s.selected, n)
		}
	}
}

// Selected returns the selected names in selection order.
func (s *Store) Selected() []string {
	return slices.Clone(s.selected)
}

func (s *Store) IsSelected(name string) bool {
	return slices.Contains(s.selected, name)
}

// Resolve returns the selected layers that exist, in selection order.
func (s *Store) Resolve() []Layer {
	var out []Layer
	for _, n := range s.selected {
		if id, ok := s.byName[n]; ok {
			out = append(out, s.layers[id])
		}
	}
	return out
}

// FeatureCollection exports registered layers as GeoJSON, either all of
// them or only the resolved selection.
func (s *Store) FeatureCollection(selectedOnly bool) *geojson.FeatureCollection {
	layers := s.layers
	if selectedOnly {
		layers = s.Resolve()
	}
	fc := geojson.NewFeatureCollection()
	for _, l := range layers {
		geom.AppendFeatures(fc, l.Name, l.Polygons, l.Points)
	}
	return fc
}
