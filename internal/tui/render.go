package tui

import (
	"fmt"
	"strings"

	"shpmap/internal/emit"
	"shpmap/internal/geom"
	"shpmap/internal/viewport"
)

// canvasSize is the emission canvas for a w×h cell map: one unit per braille
// micro-pixel, with the far edge landing on the last pixel.
func canvasSize(w, h int) (float64, float64) {
	return float64(w*2 - 1), float64(h*4 - 1)
}

// buffers returns the scene's draw buffers for a w×h cell map, re-emitting
// only when the scene or the map size changed.
func (m Model) buffers(w, h int) []emit.Buffer {
	rev := m.scene.Revision()
	if c := m.frame; c.ok && c.rev == rev && c.w == w && c.h == h {
		return c.bufs
	}
	cw, ch := canvasSize(w, h)
	bufs := m.scene.Render(cw, ch)
	*m.frame = frameCache{rev: rev, w: w, h: h, bufs: bufs, ok: true}
	return bufs
}

// cellToWorld converts a map cell back to world coordinates through the
// inverse view transform.
func (m Model) cellToWorld(cx, cy, w, h int) (geom.Vertex, bool) {
	if w <= 1 || h <= 1 {
		return geom.Vertex{}, false
	}
	cw, ch := canvasSize(w, h)
	p := viewport.Point{X: float64(cx*2) + 0.5, Y: float64(cy*4) + 1.5}
	return viewport.Unproject(p, m.scene.Extent.Current(), m.scene.View.View(), cw, ch)
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)

	// Buffers come back to front, so later layers overwrite cell colors.
	for _, b := range m.buffers(w, h) {
		br.setColor(b.Color)
		switch b.Mode {
		case emit.ModeLines:
			for _, s := range b.Segments() {
				br.drawLineMicro(micro(s.A.X), micro(s.A.Y), micro(s.B.X), micro(s.B.Y))
			}
		case emit.ModePoints:
			for _, v := range b.Vertices {
				br.setPixel(micro(v.X), micro(v.Y))
			}
		}
	}

	lines := br.toStyledLines()

	// Hover highlight: draw an orange circle at the nearest vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < h && cx >= 0 && cx < w {
			lines[cy] = m.highlightCell(br, cx, cy)
		}
	}
	return strings.Join(lines, "\n")
}

// highlightCell re-renders row cy with cell cx replaced by the hover marker.
func (m Model) highlightCell(br *brailleBuf, cx, cy int) string {
	return br.styledRange(cy, 0, cx) + hoverStyle.Render("◯") + br.styledRange(cy, cx+1, br.w)
}

// nearestVertex finds the emitted vertex closest to a micro-pixel position.
func (m Model) nearestVertex(mx, my, w, h int) (int, int, bool) {
	best := -1
	bx, by := mx, my
	for _, b := range m.buffers(w, h) {
		for _, v := range b.Vertices {
			vx, vy := micro(v.X), micro(v.Y)
			dx, dy := vx-mx, vy-my
			d := dx*dx + dy*dy
			if best < 0 || d < best {
				best = d
				bx, by = vx, vy
			}
		}
	}
	return bx, by, best >= 0
}

// inspectText summarizes the scene for the inspect popup.
func (m Model) inspectText() string {
	st := m.scene.Stats()
	ext := "empty"
	if !st.Extent.Empty() {
		ext = fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", st.Extent.MinX, st.Extent.MinY, st.Extent.MaxX, st.Extent.MaxY)
	}
	meta := []string{
		fmt.Sprintf("extent: %s from %d vertices", ext, st.Vertices),
		fmt.Sprintf("view: zoom=%.2f center=(%.3f, %.3f) clamp=%v", st.View.Zoom, st.View.Center.X, st.View.Center.Y, st.View.Clamp),
		fmt.Sprintf("base: %d polygons, %d vertices", st.BasePolygons, st.BaseVertices),
		fmt.Sprintf("LNDARE: %d polygons, shown=%v", st.LndarePolygons, m.scene.LndareVisible()),
		fmt.Sprintf("layers: %d (%d selected)", st.Layers, st.Selected),
		fmt.Sprintf("layer geometry: %d polygons, %d points", st.LayerPolygons, st.LayerPoints),
		fmt.Sprintf("files: %d (%d failed)", st.Files, st.FailedFiles),
	}
	if m.hovering {
		if v, ok := m.cellToWorld(m.hoverCellX, m.hoverCellY, m.mapW, m.mapH); ok {
			meta = append(meta, fmt.Sprintf("cursor: x=%.6f y=%.6f", v.X, v.Y))
		}
	}
	return strings.Join(meta, "\n")
}
