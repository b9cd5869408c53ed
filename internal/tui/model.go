package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"shpmap/internal/emit"
	"shpmap/internal/scene"
)

const (
	sidebarWidth = 28
	panStep      = 0.05
	zoomStep     = 1.2
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	scene *scene.Scene
	frame *frameCache

	// Layer sidebar
	l list.Model

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model
	pasted    int

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverX      float64
	hoverY      float64

	// layer table
	showAttrs bool
	tbl       table.Model
}

// frameCache holds the buffers emitted for one scene revision and map size,
// so redraws without a visible change do not re-project every vertex.
type frameCache struct {
	rev  uint64
	w, h int
	bufs []emit.Buffer
	ok   bool
}

// New builds the viewer around an already loaded scene.
func New(s *scene.Scene) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "shpmap ready",
		scene:       s,
		frame:       &frameCache{},
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Layers"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a GeoJSON FeatureCollection here. Press Enter to add it as a layer; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// layer table setup
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshLayers()
	if s.Layers.Len() == 0 {
		m.status = "no layers loaded"
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }
