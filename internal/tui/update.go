package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// layout returns the map area's origin and size in cells. It must match View.
func (m Model) layout() (originX, originY, w, h int) {
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)

	w = max(10, contentWidth-sw-1)
	h = contentHeight
	originX = sw
	if m.showSidebar {
		originX++
	}
	return originX, headerHeight, w, h
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, _, m.mapW, m.mapH = m.layout()
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.mapH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				m.status = "view mode"
				return m, nil
			case "enter":
				m.addPasted(m.ta.Value())
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.scene.View.ZoomBy(zoomStep) {
				m.status = fmt.Sprintf("zoom: %.2fx", m.scene.View.Zoom())
			} else {
				m.status = "zoom: at limit"
			}
		case "-", "_":
			if m.scene.View.ZoomBy(1 / zoomStep) {
				m.status = fmt.Sprintf("zoom: %.2fx", m.scene.View.Zoom())
			} else {
				m.status = "zoom: at limit"
			}
		case "up":
			m.scene.View.Pan(0, panStep)
		case "down":
			m.scene.View.Pan(0, -panStep)
		case "left":
			m.scene.View.Pan(-panStep, 0)
		case "right":
			m.scene.View.Pan(panStep, 0)
		case "r":
			m.scene.View.Reset()
			m.status = "view reset"
		case "c":
			m.scene.View.SetClamp(!m.scene.View.Clamp())
			m.status = fmt.Sprintf("clamp: %v", m.scene.View.Clamp())
		case "n":
			m.scene.SetLndareVisible(!m.scene.LndareVisible())
			m.status = fmt.Sprintf("LNDARE: %v", m.scene.LndareVisible())
			if m.showAttrs {
				m.refreshLayerTable()
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			_, _, m.mapW, m.mapH = m.layout()
			if m.showSidebar {
				m.refreshLayers()
				m.l.SetSize(sidebarWidth-2, m.mapH-2)
			}
		case "enter", " ":
			if m.showSidebar {
				m.toggleHighlighted()
			}
		case "l":
			m.toggleAll()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshLayerTable()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				m.status = "view mode"
			} else {
				m.inspectPopup = m.inspectText()
				m.status = "inspect popup"
			}
		case "esc":
			m.inspectPopup = ""
		}
	case tea.MouseMsg:
		ox, oy, w, h := m.layout()
		cx, cy := msg.X, msg.Y
		if cx >= ox && cx < ox+w && cy >= oy && cy < oy+h {
			m.hovering = true
			m.hoverCellX = cx - ox
			m.hoverCellY = cy - oy
			if v, ok := m.cellToWorld(m.hoverCellX, m.hoverCellY, w, h); ok {
				m.hoverHasGeo = true
				m.hoverX, m.hoverY = v.X, v.Y
			} else {
				m.hoverHasGeo = false
			}
			m.hoverMicX, m.hoverMicY, _ = m.nearestVertex(m.hoverCellX*2, m.hoverCellY*4, w, h)
		} else {
			m.hovering = false
			m.hoverHasGeo = false
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}
