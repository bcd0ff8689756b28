package raster

import (
	"bytes"
	"context"
	"fmt"
	goimage "image"
	"image/png"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"dyelens/internal/domain/scene"
	"dyelens/internal/platform/errors"
	"dyelens/internal/platform/logging"
)

// SVGRasterizer renders the scene's SVG serialization to PNG in-process.
type SVGRasterizer struct {
	timeout time.Duration
	logger  *logging.Logger
}

func NewSVGRasterizer(timeout time.Duration, logger *logging.Logger) *SVGRasterizer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SVGRasterizer{
		timeout: timeout,
		logger:  logger,
	}
}

// Rasterize renders under the configured budget. The render runs in its own
// goroutine so a hung renderer cannot outlive the caller's deadline.
func (r *SVGRasterizer) Rasterize(ctx context.Context, s *scene.Scene) ([]byte, error) {
	const op = "rasterize"

	if s == nil || s.Width <= 0 || s.Height <= 0 {
		return nil, errors.New(errors.KindRasterize, op, "scene has no canvas")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type outcome struct {
		data []byte
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		data, err := r.render(s)
		done <- outcome{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(errors.KindRasterize, op, "rasterization timed out", ctx.Err())
	case out := <-done:
		if out.err != nil {
			return nil, errors.Wrap(errors.KindRasterize, op, "rasterization failed", out.err)
		}
		return out.data, nil
	}
}

func (r *SVGRasterizer) render(s *scene.Scene) (data []byte, err error) {
	// The SVG renderer panics on some malformed documents; turn that into
	// an error so one bad scene cannot take the process down.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("renderer panic: %v", rec)
		}
	}()

	// The renderer has no text support; unknown elements are skipped so a
	// scene with labels still produces its shapes.
	icon, err := oksvg.ReadIconStream(bytes.NewReader(s.SVG()), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse scene svg: %w", err)
	}

	icon.SetTarget(0, 0, float64(s.Width), float64(s.Height))
	rgba := goimage.NewRGBA(goimage.Rect(0, 0, s.Width, s.Height))
	scanner := rasterx.NewScannerGV(s.Width, s.Height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(s.Width, s.Height, scanner), 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
