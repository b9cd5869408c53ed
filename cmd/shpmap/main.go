package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shpmap/internal/config"
	"shpmap/internal/logging"
	"shpmap/internal/raster"
	"shpmap/internal/scene"
	"shpmap/internal/tui"
)

func main() {
	var (
		pngPath     = flag.String("png", "", "Render a PNG snapshot to this file (- for stdout) and exit")
		geojsonPath = flag.String("geojson", "", "Write the loaded geometry as GeoJSON to this file (- for stdout) and exit")
		selected    = flag.String("layers", "", "Comma-separated layers to select at start")
		allLayers   = flag.Bool("all", false, "Select every layer at start")
		onlyShown   = flag.Bool("shown", false, "GeoJSON: write only what is drawn (selected layers, LNDARE when visible)")
		width       = flag.Int("width", 0, "PNG width (default SHPMAP_CANVAS_WIDTH)")
		height      = flag.Int("height", 0, "PNG height (default SHPMAP_CANVAS_HEIGHT)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [basemap_dir [layer_dir]]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Terminal viewer for shapefile base maps and layers.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s basemap_shp mygeodata                  # Start the viewer\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -all -png map.png basemap_shp mygeodata\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -geojson - basemap_shp                  # Dump GeoJSON to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -png - basemap_shp > map.png\n", os.Args[0])
	}
	flag.Parse()

	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}
	if flag.NArg() > 0 {
		cfg.BaseDir = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		cfg.LayerDir = flag.Arg(1)
	}
	if *width > 0 {
		cfg.CanvasWidth = *width
	}
	if *height > 0 {
		cfg.CanvasHeight = *height
	}

	batch := *pngPath != "" || *geojsonPath != ""
	closeLog, err := setupLogging(cfg, batch)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()
	cfg.Log()

	s := scene.Load(scene.OptionsFromConfig(cfg))
	switch {
	case *allLayers:
		s.SetSelectedLayers(s.Layers.Available())
	case *selected != "":
		s.SetSelectedLayers(strings.Split(*selected, ","))
	}

	if batch {
		if err := runBatch(os.Stdout, s, cfg, *pngPath, *geojsonPath, *onlyShown); err != nil {
			log.Fatal(err)
		}
		return
	}

	p := tea.NewProgram(tui.New(s), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// setupLogging installs the process logger. Batch runs log to stderr; the
// viewer owns the terminal, so it only logs when a log file is configured.
func setupLogging(cfg *config.Config, batch bool) (func(), error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	var w io.Writer
	closer := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case batch:
		w = os.Stderr
	default:
		return closer, nil
	}
	logging.SetLogger(logging.NewTextLogger(w, level))
	return closer, nil
}

// runBatch writes the requested snapshot and export. A path of "-" writes
// to stdout; only one output may use it.
func runBatch(stdout io.Writer, s *scene.Scene, cfg *config.Config, pngPath, geojsonPath string, onlyShown bool) error {
	if pngPath == "-" && geojsonPath == "-" {
		return fmt.Errorf("only one of -png and -geojson can write to stdout")
	}
	if pngPath != "" {
		bufs := s.Render(float64(cfg.CanvasWidth), float64(cfg.CanvasHeight))
		var err error
		if pngPath == "-" {
			err = raster.EncodePNG(stdout, bufs, cfg.CanvasWidth, cfg.CanvasHeight, raster.DefaultOptions())
		} else {
			err = raster.WritePNG(pngPath, bufs, cfg.CanvasWidth, cfg.CanvasHeight, raster.DefaultOptions())
		}
		if err != nil {
			return err
		}
		logging.Logger().Info("wrote snapshot", "path", pngPath, "buffers", len(bufs))
	}
	if geojsonPath != "" {
		w := stdout
		if geojsonPath != "-" {
			f, err := os.Create(geojsonPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", geojsonPath, err)
			}
			defer f.Close()
			w = f
		}
		if err := s.WriteGeoJSON(w, onlyShown); err != nil {
			return fmt.Errorf("failed to write geojson: %w", err)
		}
		logging.Logger().Info("wrote geojson", "path", geojsonPath)
	}
	return nil
}
