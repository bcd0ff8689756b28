package config

import "time"

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Guard      GuardConfig      `yaml:"guard"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Limits     LimitsConfig     `yaml:"limits"`
	Processing ProcessingConfig `yaml:"processing"`
	Palette    PaletteConfig    `yaml:"palette"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Raster     RasterConfig     `yaml:"raster"`
}

type ServerConfig struct {
	IP            string `yaml:"ip"`
	Port          int    `yaml:"port"`
	MaxConcurrent int64  `yaml:"max_concurrent"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// GuardConfig holds the fixed CDN host allowlist. Hosts are exact names,
// never IPs and never patterns.
type GuardConfig struct {
	AllowedHosts []string `yaml:"allowed_hosts"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type LimitsConfig struct {
	MaxFileSize int64 `yaml:"max_file_size"`
	MaxWidth    int   `yaml:"max_width"`
	MaxHeight   int   `yaml:"max_height"`
	MaxPixels   int64 `yaml:"max_pixels"`
}

type ProcessingConfig struct {
	MaxDimension int `yaml:"max_dimension"`
}

type PaletteConfig struct {
	MaxColors int `yaml:"max_colors"`
}

type CatalogConfig struct {
	Path             string `yaml:"path"`
	ExcludedCategory string `yaml:"excluded_category"`
}

type RasterConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}
