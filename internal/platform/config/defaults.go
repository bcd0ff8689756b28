package config

import "time"

// Default returns the built-in configuration. File and environment values
// override it field by field.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			IP:            "0.0.0.0",
			Port:          8080,
			MaxConcurrent: 8,
		},
		Log: LogConfig{
			Level: "info",
		},
		Guard: GuardConfig{
			AllowedHosts: []string{
				"cdn.discordapp.com",
				"media.discordapp.net",
			},
		},
		Fetch: FetchConfig{
			Timeout:   10 * time.Second,
			UserAgent: "dyelens/1.0",
		},
		Limits: LimitsConfig{
			MaxFileSize: 10 * 1024 * 1024,
			MaxWidth:    4096,
			MaxHeight:   4096,
			MaxPixels:   16_000_000,
		},
		Processing: ProcessingConfig{
			MaxDimension: 256,
		},
		Palette: PaletteConfig{
			MaxColors: 5,
		},
		Catalog: CatalogConfig{
			Path:             "configs/dyes.yaml",
			ExcludedCategory: "Pearlescent",
		},
		Raster: RasterConfig{
			Timeout: 5 * time.Second,
		},
	}
}
