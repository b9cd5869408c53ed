package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"shpmap/internal/geom"
	"shpmap/internal/layer"
)

type layerItem struct {
	name     string
	selected bool
	desc     string
}

func (l layerItem) Title() string {
	mark := "[ ]"
	if l.selected {
		mark = "[x]"
	}
	return mark + " " + l.name
}
func (l layerItem) Description() string { return l.desc }
func (l layerItem) FilterValue() string { return l.name }

// refreshLayers rebuilds the sidebar items from the layer store, keeping the
// cursor where it was.
func (m *Model) refreshLayers() {
	idx := m.l.Index()
	layers := m.scene.Layers.Layers()
	items := make([]list.Item, 0, len(layers))
	for _, l := range layers {
		items = append(items, layerItem{
			name:     l.Name,
			selected: m.scene.Layers.IsSelected(l.Name),
			desc:     fmt.Sprintf("%s  poly=%d pts=%d", layer.Hex(l.Color), len(l.Polygons), len(l.Points)),
		})
	}
	m.l.SetItems(items)
	if idx < len(items) {
		m.l.Select(idx)
	}
	if m.showAttrs {
		m.refreshLayerTable()
	}
}

// toggleHighlighted flips the selection of the layer under the sidebar cursor.
func (m *Model) toggleHighlighted() {
	it, ok := m.l.SelectedItem().(layerItem)
	if !ok {
		m.status = "no layer highlighted"
		return
	}
	if m.scene.ToggleLayer(it.name) {
		m.status = "layer on: " + it.name
	} else {
		m.status = "layer off: " + it.name
	}
	m.refreshLayers()
}

// toggleAll selects every layer, or clears the selection when all are
// already selected.
func (m *Model) toggleAll() {
	names := m.scene.Layers.Available()
	all := len(names) > 0
	for _, n := range names {
		if !m.scene.Layers.IsSelected(n) {
			all = false
			break
		}
	}
	if all {
		m.scene.SetSelectedLayers(nil)
		m.status = "layers: none"
	} else {
		m.scene.SetSelectedLayers(names)
		m.status = fmt.Sprintf("layers: all %d", len(names))
	}
	m.refreshLayers()
}

// addPasted turns pasted GeoJSON into a new, selected layer.
func (m *Model) addPasted(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		m.status = "paste: empty"
		return
	}
	polys, points, err := geom.LoadGeoJSON([]byte(text))
	if err != nil {
		m.status = "geojson error: " + err.Error()
		return
	}
	m.pasted++
	name := fmt.Sprintf("pasted-%d", m.pasted)
	if _, ok := m.scene.AddLayer(name, polys, points); !ok {
		m.status = "paste: no geometry"
		return
	}
	m.scene.ToggleLayer(name)
	m.refreshLayers()
	m.status = fmt.Sprintf("added %s  counts: poly=%d pts=%d", name, len(polys), len(points))
}
