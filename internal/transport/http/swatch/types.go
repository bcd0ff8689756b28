package swatch

// MatchRequest asks for the dyes closest to the colors of one image.
type MatchRequest struct {
	URL   string `json:"url" binding:"required"`
	Count int    `json:"count"`
}

// ExtractedColor is one palette color in all three notations.
type ExtractedColor struct {
	Hex string `json:"hex"`
	RGB string `json:"rgb"`
	HSV string `json:"hsv"`
}

// MatchResult is one palette color resolved to a catalog dye.
type MatchResult struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Hex       string         `json:"hex"`
	Distance  float64        `json:"distance"`
	Band      string         `json:"band"`
	Dominance float64        `json:"dominance"`
	Extracted ExtractedColor `json:"extracted"`
}

// MatchResponse carries the rendered card plus the structured results.
type MatchResponse struct {
	ImagePNG    string        `json:"image_png"`
	Summary     string        `json:"summary"`
	Matches     []MatchResult `json:"matches"`
	Format      string        `json:"format"`
	SourceBytes int           `json:"source_bytes"`
}

// CompareRequest asks for a side-by-side card of catalog dyes.
type CompareRequest struct {
	DyeIDs []string `json:"dye_ids" binding:"required"`
}

// PairResult is one pairwise row of a comparison.
type PairResult struct {
	A            string  `json:"a"`
	B            string  `json:"b"`
	Distance     float64 `json:"distance"`
	Contrast     float64 `json:"contrast"`
	ContrastBand string  `json:"contrast_band"`
}

// CompareResponse carries the rendered card plus the pairwise numbers.
type CompareResponse struct {
	ImagePNG      string       `json:"image_png"`
	Summary       string       `json:"summary"`
	Pairs         []PairResult `json:"pairs"`
	MostSimilar   [2]string    `json:"most_similar"`
	MostDifferent [2]string    `json:"most_different"`
}

// StatusResponse reports service readiness and active limits.
type StatusResponse struct {
	Status       string   `json:"status"`
	CatalogSize  int      `json:"catalog_size"`
	MaxFileSize  int64    `json:"max_file_size"`
	MaxColors    int      `json:"max_colors"`
	AllowedHosts []string `json:"allowed_hosts"`
}
