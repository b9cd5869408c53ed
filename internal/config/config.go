package config

import (
	"shpmap/internal/logging"
	"shpmap/internal/viewport"

	"github.com/kelseyhightower/envconfig"
)

// Config is the configuration for the viewer and batch outputs
type Config struct {
	BaseDir       string  `envconfig:"SHPMAP_BASE_DIR"`
	LayerDir      string  `envconfig:"SHPMAP_LAYER_DIR"`
	ZoomMin       float64 `envconfig:"SHPMAP_ZOOM_MIN"`
	ZoomMax       float64 `envconfig:"SHPMAP_ZOOM_MAX"`
	LegacyZoom    bool    `envconfig:"SHPMAP_LEGACY_ZOOM"`
	Clamp         bool    `envconfig:"SHPMAP_CLAMP"`
	SplitParts    bool    `envconfig:"SHPMAP_SPLIT_PARTS"`
	LndareVisible bool    `envconfig:"SHPMAP_LNDARE_VISIBLE"`
	ColorSeed     int64   `envconfig:"SHPMAP_COLOR_SEED"`
	LogLevel      string  `envconfig:"SHPMAP_LOG_LEVEL"`
	LogFile       string  `envconfig:"SHPMAP_LOG_FILE"`
	CanvasWidth   int     `envconfig:"SHPMAP_CANVAS_WIDTH"`
	CanvasHeight  int     `envconfig:"SHPMAP_CANVAS_HEIGHT"`
}

var cfg *Config

// Get configures the application and returns the configuration
func Get() (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		BaseDir:       "basemap_shp",
		LayerDir:      "mygeodata",
		ZoomMin:       viewport.DefaultMinZoom,
		ZoomMax:       viewport.DefaultMaxZoom,
		Clamp:         true,
		LndareVisible: true,
		ColorSeed:     1,
		LogLevel:      "info",
		CanvasWidth:   1024,
		CanvasHeight:  768,
	}

	return cfg, envconfig.Process("", cfg)
}

// ZoomRange returns the effective zoom bounds. LegacyZoom caps the upper
// bound at viewport.LegacyMaxZoom.
func (cfg *Config) ZoomRange() (min, max float64) {
	min, max = cfg.ZoomMin, cfg.ZoomMax
	if cfg.LegacyZoom && max > viewport.LegacyMaxZoom {
		max = viewport.LegacyMaxZoom
	}
	return min, max
}

// Log writes all config properties at debug level
func (cfg *Config) Log() {
	logging.Logger().Debug("Configuration",
		"BaseDir", cfg.BaseDir,
		"LayerDir", cfg.LayerDir,
		"ZoomMin", cfg.ZoomMin,
		"ZoomMax", cfg.ZoomMax,
		"LegacyZoom", cfg.LegacyZoom,
		"Clamp", cfg.Clamp,
		"SplitParts", cfg.SplitParts,
		"LndareVisible", cfg.LndareVisible,
		"ColorSeed", cfg.ColorSeed,
		"LogLevel", cfg.LogLevel,
		"LogFile", cfg.LogFile,
		"CanvasWidth", cfg.CanvasWidth,
		"CanvasHeight", cfg.CanvasHeight,
	)
}
