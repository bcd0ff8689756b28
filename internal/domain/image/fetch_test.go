package image

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dyelens/internal/platform/config"
	"dyelens/internal/platform/errors"
	platformtest "dyelens/internal/platform/testing"
)

// allowAllValidator lets tests point the fetcher at httptest servers, whose
// loopback addresses the production guard would reject.
type allowAllValidator struct {
	rejectContaining string
}

func (v *allowAllValidator) Validate(raw string) (ValidatedURL, error) {
	if v.rejectContaining != "" && strings.Contains(raw, v.rejectContaining) {
		return ValidatedURL{}, errors.New(errors.KindInvalidURL, "validate", "host is not allowlisted")
	}
	return ValidatedURL{URL: raw}, nil
}

func testFetcher(t *testing.T, validator URLValidator, maxBytes int64, timeout time.Duration) *Fetcher {
	t.Helper()
	return NewFetcher(validator, config.FetchConfig{
		Timeout:   timeout,
		UserAgent: "dyelens-test/1.0",
	}, maxBytes, platformtest.SetupTestLogger(t))
}

func TestFetcher_Fetch(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 2048)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "dyelens-test/1.0" {
			t.Errorf("request user agent = %q", ua)
		}
		w.Write(payload)
	}))
	defer srv.Close()

	f := testFetcher(t, &allowAllValidator{}, 10*1024, 5*time.Second)
	fetched, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !bytes.Equal(fetched.Bytes, payload) {
		t.Errorf("fetched %d bytes, expected %d", len(fetched.Bytes), len(payload))
	}
	if fetched.DeclaredLength != int64(len(payload)) {
		t.Errorf("declared length = %d", fetched.DeclaredLength)
	}
}

func TestFetcher_Fetch_DeclaredSizeOverLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1048576")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := testFetcher(t, &allowAllValidator{}, 1024, 5*time.Second)
	_, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if !errors.IsKind(err, errors.KindTooLarge) {
		t.Fatalf("kind = %v, expected too_large (err: %v)", errors.KindOf(err), err)
	}
	if limit, _ := errors.LimitOf(err); limit != errors.LimitBytes {
		t.Errorf("limit = %v, expected bytes", limit)
	}
}

func TestFetcher_Fetch_ActualSizeOverLimit(t *testing.T) {
	// Chunked response with no Content-Length; the limit must still hold.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		chunk := bytes.Repeat([]byte{0xCD}, 512)
		for i := 0; i < 8; i++ {
			w.Write(chunk)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	f := testFetcher(t, &allowAllValidator{}, 1024, 5*time.Second)
	_, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if !errors.IsKind(err, errors.KindTooLarge) {
		t.Fatalf("kind = %v, expected too_large (err: %v)", errors.KindOf(err), err)
	}
}

func TestFetcher_Fetch_ExactlyAtLimit(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11}, 1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	f := testFetcher(t, &allowAllValidator{}, 1024, 5*time.Second)
	fetched, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if err != nil {
		t.Fatalf("payload exactly at the limit should pass: %v", err)
	}
	if len(fetched.Bytes) != 1024 {
		t.Errorf("fetched %d bytes", len(fetched.Bytes))
	}
}

func TestFetcher_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := testFetcher(t, &allowAllValidator{}, 1024, 5*time.Second)
	_, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if !errors.IsKind(err, errors.KindFetchFailed) {
		t.Fatalf("kind = %v, expected fetch_failed (err: %v)", errors.KindOf(err), err)
	}
	if status, ok := errors.StatusOf(err); !ok || status != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", status)
	}
}

func TestFetcher_Fetch_FollowsOneValidatedRedirect(t *testing.T) {
	payload := []byte("final body")
	var finalURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, finalURL, http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	finalURL = srv.URL + "/final"

	f := testFetcher(t, &allowAllValidator{}, 1024, 5*time.Second)
	fetched, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL + "/start"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if !bytes.Equal(fetched.Bytes, payload) {
		t.Errorf("fetched %q", fetched.Bytes)
	}
}

func TestFetcher_Fetch_RejectsUnsafeRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://evil.example.com/grab", http.StatusMovedPermanently)
	}))
	defer srv.Close()

	f := testFetcher(t, &allowAllValidator{rejectContaining: "evil.example.com"}, 1024, 5*time.Second)
	_, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if !errors.IsKind(err, errors.KindUnsafeRedirect) {
		t.Fatalf("kind = %v, expected unsafe_redirect (err: %v)", errors.KindOf(err), err)
	}
}

func TestFetcher_Fetch_RejectsRedirectChain(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Redirect(w, r, fmt.Sprintf("/hop%d", hits), http.StatusFound)
	}))
	defer srv.Close()

	f := testFetcher(t, &allowAllValidator{}, 1024, 5*time.Second)
	_, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if !errors.IsKind(err, errors.KindFetchFailed) {
		t.Fatalf("kind = %v, expected fetch_failed (err: %v)", errors.KindOf(err), err)
	}
	if hits != 2 {
		t.Errorf("server was hit %d times, expected exactly 2", hits)
	}
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	f := testFetcher(t, &allowAllValidator{}, 1024, 50*time.Millisecond)
	_, err := f.Fetch(context.Background(), ValidatedURL{URL: srv.URL})
	if !errors.IsKind(err, errors.KindFetchTimeout) {
		t.Fatalf("kind = %v, expected fetch_timeout (err: %v)", errors.KindOf(err), err)
	}
}
