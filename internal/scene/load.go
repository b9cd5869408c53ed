package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"shpmap/internal/config"
	"shpmap/internal/geom"
	"shpmap/internal/layer"
	"shpmap/internal/logging"
	"shpmap/internal/shp"
	"shpmap/internal/viewport"
)

// LndareFile is the land-area file looked up in the base directory.
const LndareFile = "LNDARE.shp"

// Role says which part of the scene a file was loaded into.
type Role string

const (
	RoleBase   Role = "base"
	RoleLndare Role = "lndare"
	RoleLayer  Role = "layer"
)

// File records the outcome of loading one source file.
type File struct {
	Path     string
	Role     Role
	Layer    string
	Polygons int
	Points   int
	Skipped  int
	Err      error
}

// Options controls Load.
type Options struct {
	BaseDir       string
	LayerDir      string
	Decode        shp.Options
	MinZoom       float64
	MaxZoom       float64
	Clamp         bool
	LndareVisible bool
	ColorSeed     int64
}

// OptionsFromConfig maps the process configuration onto load options.
func OptionsFromConfig(cfg *config.Config) Options {
	lo, hi := cfg.ZoomRange()
	return Options{
		BaseDir:       cfg.BaseDir,
		LayerDir:      cfg.LayerDir,
		Decode:        shp.Options{SplitParts: cfg.SplitParts},
		MinZoom:       lo,
		MaxZoom:       hi,
		Clamp:         cfg.Clamp,
		LndareVisible: cfg.LndareVisible,
		ColorSeed:     cfg.ColorSeed,
	}
}

// Load reads the base directory, LNDARE and the layer directory into a new
// scene. All files share one extent. Loading is best effort: a missing
// directory or a file that cannot be read or decoded is logged and skipped,
// and whatever was decoded before a decode error is kept.
func Load(opts Options) *Scene {
	log := logging.Logger()

	s := New()
	s.palette = layer.NewPalette(opts.ColorSeed)
	s.View = viewport.NewState(opts.MinZoom, opts.MaxZoom)
	s.View.SetClamp(opts.Clamp)
	s.lndareVisible = opts.LndareVisible

	if opts.BaseDir != "" {
		names := listDir(opts.BaseDir, ".shp")
		lndare := findLndare(names)
		for _, name := range names {
			if name == lndare {
				continue
			}
			if strings.EqualFold(name, LndareFile) {
				log.Warn("loading LNDARE variant as base", "path", filepath.Join(opts.BaseDir, name), "lndare", lndare)
			}
			res := s.loadShapefile(filepath.Join(opts.BaseDir, name), RoleBase, "", opts.Decode)
			s.Base = append(s.Base, res.Polygons...)
		}
		if lndare != "" {
			res := s.loadShapefile(filepath.Join(opts.BaseDir, lndare), RoleLndare, LndareLayer, opts.Decode)
			s.Lndare = res.Polygons
		} else {
			log.Debug("no LNDARE file", "dir", opts.BaseDir)
		}
	}

	if opts.LayerDir != "" {
		for _, name := range listDir(opts.LayerDir, ".shp", ".geojson") {
			path := filepath.Join(opts.LayerDir, name)
			layerName := layerNameOf(name)

			var polys geom.PolygonSet
			var points geom.PointSet
			if strings.EqualFold(filepath.Ext(name), ".geojson") {
				polys, points = s.loadGeoJSON(path, layerName)
			} else {
				res := s.loadShapefile(path, RoleLayer, layerName, opts.Decode)
				polys, points = res.Polygons, res.Points
			}

			if _, ok := s.Layers.Register(layerName, polys, points, s.palette.Next()); !ok {
				log.Debug("skipping empty layer", "layer", layerName, "path", path)
			}
		}
	}

	st := s.Stats()
	log.Info("scene loaded",
		"files", st.Files,
		"failed", st.FailedFiles,
		"base_polygons", st.BasePolygons,
		"lndare_polygons", st.LndarePolygons,
		"layers", st.Layers,
		"vertices", st.Vertices,
		"extent", fmt.Sprintf("%g,%g,%g,%g", st.Extent.MinX, st.Extent.MinY, st.Extent.MaxX, st.Extent.MaxY),
	)
	return s
}

func (s *Scene) loadShapefile(path string, role Role, layerName string, opts shp.Options) shp.Result {
	log := logging.Logger()

	res, err := shp.DecodeFile(path, s.Extent, opts)
	s.Files = append(s.Files, File{
		Path:     path,
		Role:     role,
		Layer:    layerName,
		Polygons: len(res.Polygons),
		Points:   len(res.Points),
		Skipped:  res.Skipped,
		Err:      err,
	})
	if err != nil {
		log.Warn("failed to load shapefile", "path", path, "err", err, "kept_polygons", len(res.Polygons), "kept_points", len(res.Points))
		return res
	}
	log.Debug("loaded shapefile",
		"path", path,
		"polygons", len(res.Polygons),
		"points", len(res.Points),
		"skipped", res.Skipped,
	)
	return res
}

func (s *Scene) loadGeoJSON(path, layerName string) (geom.PolygonSet, geom.PointSet) {
	log := logging.Logger()

	f := File{Path: path, Role: RoleLayer, Layer: layerName}
	defer func() { s.Files = append(s.Files, f) }()

	data, err := os.ReadFile(path)
	if err != nil {
		f.Err = fmt.Errorf("failed to open geojson: %w", err)
		log.Warn("failed to load geojson", "path", path, "err", err)
		return nil, nil
	}
	polys, points, err := geom.LoadGeoJSON(data)
	if err != nil {
		f.Err = fmt.Errorf("%s: %w", path, err)
		log.Warn("failed to load geojson", "path", path, "err", err)
		return nil, nil
	}
	observeAll(s.Extent, polys, points)
	f.Polygons, f.Points = len(polys), len(points)
	log.Debug("loaded geojson", "path", path, "polygons", len(polys), "points", len(points))
	return polys, points
}

// findLndare picks the LNDARE file from a base directory listing: the exact
// name when present, otherwise the first case-insensitive match.
func findLndare(names []string) string {
	if slices.Contains(names, LndareFile) {
		return LndareFile
	}
	for _, name := range names {
		if strings.EqualFold(name, LndareFile) {
			return name
		}
	}
	return ""
}

// layerNameOf names a layer after its file, up to the first dot, so
// roads.v2.shp is "roads". Dot files keep everything but the extension.
func layerNameOf(file string) string {
	if base, _, _ := strings.Cut(file, "."); base != "" {
		return base
	}
	return strings.TrimSuffix(file, filepath.Ext(file))
}

// listDir returns the regular files in dir whose extension matches one of
// exts (case-insensitive), sorted by name. A missing or unreadable directory
// yields nothing.
func listDir(dir string, exts ...string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Logger().Warn("cannot read directory", "dir", dir, "err", err)
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, want := range exts {
			if strings.EqualFold(ext, want) {
				names = append(names, e.Name())
				break
			}
		}
	}
	return names
}
