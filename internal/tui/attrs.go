package tui

import (
	"fmt"
	"path/filepath"

	table "github.com/charmbracelet/bubbles/table"

	"shpmap/internal/layer"
	"shpmap/internal/scene"
)

// refreshLayerTable rebuilds the table rows from the scene: the fixed base
// and LNDARE layers first, then every registered layer.
func (m *Model) refreshLayerTable() {
	cols, rows := m.buildLayerRows()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no layers to show"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := max(len(c)+2, 8)
		if w > maxColW {
			w = maxColW
		}
		tcols = append(tcols, table.Column{Title: c, Width: w})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

func (m *Model) buildLayerRows() ([]string, [][]string) {
	cols := []string{"layer", "shown", "color", "polygons", "rings", "points", "source"}
	s := m.scene

	sources := map[string]string{}
	for _, f := range s.Files {
		if f.Layer != "" {
			sources[f.Layer] = filepath.Base(f.Path)
		}
	}

	rows := [][]string{
		{scene.BaseLayer, "yes", layer.Hex(scene.BaseColor), fmt.Sprintf("%d", len(s.Base)), fmt.Sprintf("%d", s.Base.Rings()), "0", "base dir"},
		{scene.LndareLayer, yesNo(s.LndareVisible()), layer.Hex(scene.LndareColor), fmt.Sprintf("%d", len(s.Lndare)), fmt.Sprintf("%d", s.Lndare.Rings()), "0", sources[scene.LndareLayer]},
	}
	for _, l := range s.Layers.Layers() {
		rows = append(rows, []string{
			l.Name,
			yesNo(s.Layers.IsSelected(l.Name)),
			layer.Hex(l.Color),
			fmt.Sprintf("%d", len(l.Polygons)),
			fmt.Sprintf("%d", l.Polygons.Rings()),
			fmt.Sprintf("%d", len(l.Points)),
			sources[l.Name],
		})
	}
	return cols, rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
