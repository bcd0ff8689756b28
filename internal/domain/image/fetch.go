package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dyelens/internal/platform/config"
	platformerrors "dyelens/internal/platform/errors"
	"dyelens/internal/platform/logging"
)

// Fetcher downloads a guarded URL with a wall-clock bound. Redirects are
// never followed automatically: a 3xx target is re-validated and followed
// for at most one extra hop. No retries; retrying is a caller policy.
type Fetcher struct {
	client    *http.Client
	validator URLValidator
	maxBytes  int64
	timeout   time.Duration
	userAgent string
	logger    *logging.Logger
}

func NewFetcher(validator URLValidator, fetchCfg config.FetchConfig, maxBytes int64, logger *logging.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		validator: validator,
		maxBytes:  maxBytes,
		timeout:   fetchCfg.Timeout,
		userAgent: fetchCfg.UserAgent,
		logger:    logger,
	}
}

// Fetch downloads the validated URL and returns its bytes. The declared
// Content-Length is checked before the body is read, and the actual length
// is checked again afterwards, since headers can lie or be absent.
func (f *Fetcher) Fetch(ctx context.Context, target ValidatedURL) (*Fetched, error) {
	const op = "fetch"

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.get(ctx, target.URL)
	if err != nil {
		return nil, f.classify(op, err)
	}

	if isRedirect(resp.StatusCode) {
		location := resp.Header.Get("Location")
		drain(resp)

		if location == "" {
			return nil, platformerrors.Wrap(platformerrors.KindFetchFailed, op,
				"redirect without location", &platformerrors.StatusError{Code: resp.StatusCode})
		}

		redirected, err := f.validator.Validate(location)
		if err != nil {
			return nil, platformerrors.New(platformerrors.KindUnsafeRedirect, op,
				"redirect target failed URL validation")
		}

		f.logger.Debug("following validated redirect to %s", redirected.URL)

		resp, err = f.get(ctx, redirected.URL)
		if err != nil {
			return nil, f.classify(op, err)
		}
		if isRedirect(resp.StatusCode) {
			// One hop only; a redirect chain is treated as a failure.
			drain(resp)
			return nil, platformerrors.Wrap(platformerrors.KindFetchFailed, op,
				"redirect chain not followed", &platformerrors.StatusError{Code: resp.StatusCode})
		}
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, platformerrors.Wrap(platformerrors.KindFetchFailed, op,
			"unexpected response status", &platformerrors.StatusError{Code: resp.StatusCode})
	}

	if resp.ContentLength > 0 && resp.ContentLength > f.maxBytes {
		return nil, platformerrors.Wrap(platformerrors.KindTooLarge, op, "declared size over limit",
			&platformerrors.LimitError{
				Limit:  platformerrors.LimitBytes,
				Detail: sizeDetail(resp.ContentLength, f.maxBytes),
			})
	}

	limited := &io.LimitedReader{R: resp.Body, N: f.maxBytes + 1}
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, f.classify(op, err)
	}
	if limited.N <= 0 {
		return nil, platformerrors.Wrap(platformerrors.KindTooLarge, op, "response body over limit",
			&platformerrors.LimitError{
				Limit:  platformerrors.LimitBytes,
				Detail: sizeDetail(int64(len(body)), f.maxBytes),
			})
	}

	return &Fetched{Bytes: body, DeclaredLength: resp.ContentLength}, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	return f.client.Do(req)
}

// classify surfaces timeouts distinctly from other transport failures so a
// caller can say "try again" rather than "fix your input".
func (f *Fetcher) classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return platformerrors.Wrap(platformerrors.KindFetchTimeout, op, "image download timed out", err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return platformerrors.Wrap(platformerrors.KindFetchTimeout, op, "image download timed out", err)
	}
	return platformerrors.Wrap(platformerrors.KindFetchFailed, op, "image download failed", err)
}

func isRedirect(status int) bool {
	return status >= 300 && status < 400
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	resp.Body.Close()
}

func sizeDetail(actual, max int64) string {
	return fmt.Sprintf("image is %.2f MiB (maximum %.2f MiB)",
		float64(actual)/(1024*1024), float64(max)/(1024*1024))
}
