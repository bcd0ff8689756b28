// Package swatch exposes the color-matching pipeline over HTTP: one
// endpoint turns an image link into a dye-match card, another compares
// catalog dyes directly.
package swatch

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"dyelens/internal/domain/catalog"
	domaincolor "dyelens/internal/domain/color"
	"dyelens/internal/domain/eventbus"
	"dyelens/internal/domain/image"
	"dyelens/internal/domain/palette"
	"dyelens/internal/domain/raster"
	"dyelens/internal/domain/scene"
	"dyelens/internal/platform/config"
	"dyelens/internal/platform/errors"
	"dyelens/internal/platform/logging"
	httptransport "dyelens/internal/transport/http"
)

// Runner is the slice of the image pipeline this service needs.
type Runner interface {
	Run(ctx context.Context, rawURL string) (*image.Result, error)
}

// Matcher resolves extracted palettes to catalog entries.
type Matcher interface {
	MatchPalette(colors []palette.Color) ([]catalog.PaletteMatch, error)
}

// Catalog is the read side of the dye catalog the endpoints consult.
type Catalog interface {
	ByID(id string) (catalog.Entry, bool)
	Len() int
}

// Service wires the domain pipeline to gin handlers.
type Service struct {
	cfg        *config.Config
	logger     *logging.Logger
	pipeline   Runner
	extractor  palette.Extractor
	matcher    Matcher
	catalog    Catalog
	composer   *scene.Composer
	rasterizer raster.Rasterizer
	bus        *eventbus.Bus
	sem        *semaphore.Weighted
}

type Dependencies struct {
	Config     *config.Config
	Logger     *logging.Logger
	Pipeline   Runner
	Extractor  palette.Extractor
	Matcher    Matcher
	Catalog    Catalog
	Rasterizer raster.Rasterizer
	Bus        *eventbus.Bus
}

func NewService(deps Dependencies) (*Service, error) {
	const op = "swatch.new"

	if deps.Config == nil || deps.Logger == nil {
		return nil, errors.New(errors.KindConfig, op, "config and logger are required")
	}
	if deps.Pipeline == nil || deps.Extractor == nil || deps.Matcher == nil {
		return nil, errors.New(errors.KindConfig, op, "pipeline, extractor and matcher are required")
	}
	if deps.Catalog == nil || deps.Rasterizer == nil {
		return nil, errors.New(errors.KindConfig, op, "catalog and rasterizer are required")
	}

	maxConcurrent := deps.Config.Server.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}

	return &Service{
		cfg:        deps.Config,
		logger:     deps.Logger,
		pipeline:   deps.Pipeline,
		extractor:  deps.Extractor,
		matcher:    deps.Matcher,
		catalog:    deps.Catalog,
		composer:   scene.NewComposer(),
		rasterizer: deps.Rasterizer,
		bus:        deps.Bus,
		sem:        semaphore.NewWeighted(int64(maxConcurrent)),
	}, nil
}

// Register mounts the swatch routes on the API group.
func (s *Service) Register(router *gin.RouterGroup) {
	router.GET("/swatch", s.handleStatus)
	router.POST("/swatch/match", s.handleMatch)
	router.POST("/swatch/compare", s.handleCompare)
}

func (s *Service) handleStatus(c *gin.Context) {
	httptransport.RespondSuccess(c, 200, StatusResponse{
		Status:       "ready",
		CatalogSize:  s.catalog.Len(),
		MaxFileSize:  s.cfg.Limits.MaxFileSize,
		MaxColors:    s.cfg.Palette.MaxColors,
		AllowedHosts: s.cfg.Guard.AllowedHosts,
	}, "")
}

func (s *Service) handleMatch(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c, 400, "Send a JSON body with an image url.", nil)
		return
	}

	if !s.sem.TryAcquire(1) {
		httptransport.RespondDomainError(c, errors.New(errors.KindTransport,
			"swatch.match", "all match slots are busy"))
		return
	}
	defer s.sem.Release(1)

	start := time.Now()
	ctx := c.Request.Context()

	result, err := s.pipeline.Run(ctx, req.URL)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	count := req.Count
	if count == 0 {
		count = s.cfg.Palette.MaxColors
	}
	colors, err := s.extractor.Extract(result.Image, palette.ClampCount(count))
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	matches, err := s.matcher.MatchPalette(colors)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	card := s.composer.ComposeMatches(matches)
	pngBytes, err := s.rasterizer.Rasterize(ctx, card)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	if s.bus != nil {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Entry.Name
		}
		s.bus.PublishMatchCompleted(eventbus.MatchCompleted{
			URL:      req.URL,
			Colors:   names,
			Duration: time.Since(start),
		})
	}

	httptransport.RespondSuccess(c, 200, MatchResponse{
		ImagePNG:    base64.StdEncoding.EncodeToString(pngBytes),
		Summary:     scene.Summary(matches),
		Matches:     matchResults(matches),
		Format:      string(result.Format),
		SourceBytes: result.Bytes,
	}, "")
}

func (s *Service) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httptransport.RespondError(c, 400, "Send a JSON body with dye ids to compare.", nil)
		return
	}
	if len(req.DyeIDs) < scene.MinComparisonDyes || len(req.DyeIDs) > scene.MaxComparisonDyes {
		httptransport.RespondError(c, 400, "Pick between two and four dyes to compare.", nil)
		return
	}

	entries := make([]catalog.Entry, 0, len(req.DyeIDs))
	for _, id := range req.DyeIDs {
		entry, ok := s.catalog.ByID(id)
		if !ok {
			httptransport.RespondError(c, 404, "Unknown dye id: "+id, nil)
			return
		}
		entries = append(entries, entry)
	}

	cmp := scene.NewComparison(entries)
	card := s.composer.ComposeComparison(cmp)
	pngBytes, err := s.rasterizer.Rasterize(c.Request.Context(), card)
	if err != nil {
		httptransport.RespondDomainError(c, err)
		return
	}

	httptransport.RespondSuccess(c, 200, CompareResponse{
		ImagePNG:      base64.StdEncoding.EncodeToString(pngBytes),
		Summary:       scene.ComparisonSummary(cmp),
		Pairs:         pairResults(cmp),
		MostSimilar:   pairNames(cmp, cmp.MostSimilar),
		MostDifferent: pairNames(cmp, cmp.MostDifferent),
	}, "")
}

func matchResults(matches []catalog.PaletteMatch) []MatchResult {
	out := make([]MatchResult, len(matches))
	for i, m := range matches {
		out[i] = MatchResult{
			ID:        m.Entry.ID,
			Name:      m.Entry.Name,
			Category:  m.Entry.Category,
			Hex:       m.Entry.Hex,
			Distance:  m.Distance,
			Band:      string(domaincolor.DistanceBand(m.Distance)),
			Dominance: m.Dominance,
			Extracted: ExtractedColor{
				Hex: m.Extracted.Hex(),
				RGB: m.Extracted.String(),
				HSV: m.Extracted.HSV().String(),
			},
		}
	}
	return out
}

func pairResults(cmp *scene.Comparison) []PairResult {
	var out []PairResult
	for i := 0; i < len(cmp.Dyes); i++ {
		for j := i + 1; j < len(cmp.Dyes); j++ {
			out = append(out, PairResult{
				A:            cmp.Dyes[i].ID,
				B:            cmp.Dyes[j].ID,
				Distance:     cmp.Distance[i][j],
				Contrast:     cmp.Contrast[i][j],
				ContrastBand: string(domaincolor.ContrastBandOf(cmp.Contrast[i][j])),
			})
		}
	}
	return out
}

func pairNames(cmp *scene.Comparison, pair [2]int) [2]string {
	return [2]string{cmp.Dyes[pair[0]].Name, cmp.Dyes[pair[1]].Name}
}
