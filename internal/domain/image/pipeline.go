package image

import (
	"context"
	"time"

	"dyelens/internal/domain/eventbus"
	"dyelens/internal/platform/errors"
	"dyelens/internal/platform/logging"
)

// Pipeline runs the full ingestion flow for one untrusted URL: guard,
// bounded fetch, magic-byte sniff, size and dimension checks, then
// decode/resize into a plain pixel buffer. Everything it touches is
// request-scoped; a Pipeline value holds no per-request state and is safe
// for concurrent use.
type Pipeline struct {
	validator URLValidator
	fetcher   *Fetcher
	processor *Processor
	limits    Limits
	maxDim    int
	bus       *eventbus.Bus
	logger    *logging.Logger
}

// Result is the pipeline's output for downstream color extraction.
type Result struct {
	Image  *Processed
	Format Format
	Bytes  int
}

type PipelineOptions struct {
	Validator    URLValidator
	Fetcher      *Fetcher
	Processor    *Processor
	Limits       Limits
	MaxDimension int
	Bus          *eventbus.Bus
	Logger       *logging.Logger
}

func NewPipeline(opts PipelineOptions) (*Pipeline, error) {
	if opts.Validator == nil || opts.Fetcher == nil || opts.Processor == nil {
		return nil, errors.New(errors.KindConfig, "pipeline.new", "validator, fetcher and processor are required")
	}
	maxDim := opts.MaxDimension
	if maxDim <= 0 {
		maxDim = DefaultMaxDimension
	}
	return &Pipeline{
		validator: opts.Validator,
		fetcher:   opts.Fetcher,
		processor: opts.Processor,
		limits:    opts.Limits,
		maxDim:    maxDim,
		bus:       opts.Bus,
		logger:    opts.Logger,
	}, nil
}

// Run processes one raw URL end to end.
func (p *Pipeline) Run(ctx context.Context, rawURL string) (*Result, error) {
	start := time.Now()

	result, err := p.run(ctx, rawURL)
	if err != nil {
		p.logger.Warn("image pipeline rejected %q: %v", rawURL, err)
		if p.bus != nil {
			p.bus.PublishImageRejected(eventbus.ImageRejected{
				URL:    rawURL,
				Kind:   string(errors.KindOf(err)),
				Reason: err.Error(),
			})
		}
		return nil, err
	}

	p.logger.Debug("image pipeline accepted %q: format=%s %dx%d in %s",
		rawURL, result.Format, result.Image.Width, result.Image.Height, time.Since(start))
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, rawURL string) (*Result, error) {
	validated, err := p.validator.Validate(rawURL)
	if err != nil {
		return nil, err
	}

	fetched, err := p.fetcher.Fetch(ctx, validated)
	if err != nil {
		return nil, err
	}

	if err := p.limits.CheckSize(int64(len(fetched.Bytes))); err != nil {
		return nil, err
	}

	format := Sniff(fetched.Bytes)
	if format == FormatUnknown {
		return nil, errors.New(errors.KindUnsupportedFormat, "sniff",
			"unsupported image format; PNG, JPEG, GIF, WebP and BMP are accepted")
	}

	width, height, err := p.processor.Dimensions(fetched.Bytes)
	if err != nil {
		return nil, err
	}
	if err := p.limits.CheckDimensions(width, height); err != nil {
		return nil, err
	}

	processed, err := p.processor.Process(fetched.Bytes, ProcessOptions{MaxDimension: p.maxDim})
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:  processed,
		Format: format,
		Bytes:  len(fetched.Bytes),
	}, nil
}
