package image

import (
	"net"
	"net/url"
	"strings"

	"dyelens/internal/platform/errors"
)

// URLValidator validates an externally supplied URL before any network
// access. Guard is the production implementation; the fetcher re-runs
// redirect targets through the same interface.
type URLValidator interface {
	Validate(raw string) (ValidatedURL, error)
}

// Guard rejects anything that is not an https URL pointing at one of a
// fixed set of trusted CDN hostnames.
type Guard struct {
	allowed map[string]struct{}
}

// Hostnames that must never be fetched even if someone were to allowlist
// them. Checked on top of the allowlist as defense in depth.
var blockedHosts = map[string]struct{}{
	"localhost":                  {},
	"metadata":                   {},
	"metadata.google.internal":   {},
	"metadata.azure.com":         {},
	"instance-data":              {},
	"instance-data.ec2.internal": {},
}

var blockedSuffixes = []string{".localhost", ".local", ".internal", ".lan", ".home.arpa"}

func NewGuard(allowedHosts []string) *Guard {
	allowed := make(map[string]struct{}, len(allowedHosts))
	for _, h := range allowedHosts {
		allowed[strings.ToLower(h)] = struct{}{}
	}
	return &Guard{allowed: allowed}
}

// Validate checks the raw URL and returns its canonical re-serialized form,
// so downstream consumers never re-parse attacker-controlled input.
func (g *Guard) Validate(raw string) (ValidatedURL, error) {
	const op = "guard.validate"

	if strings.TrimSpace(raw) == "" {
		return ValidatedURL{}, errors.New(errors.KindInvalidURL, op, "image URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ValidatedURL{}, errors.Wrap(errors.KindInvalidURL, op, "image URL is not parseable", err)
	}

	if u.Scheme != "https" {
		return ValidatedURL{}, errors.New(errors.KindInvalidURL, op, "only https URLs are allowed")
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ValidatedURL{}, errors.New(errors.KindInvalidURL, op, "image URL has no host")
	}

	// The allowlist only ever contains names; a literal address is itself
	// suspicious regardless of what it resolves to.
	if net.ParseIP(host) != nil {
		return ValidatedURL{}, errors.New(errors.KindInvalidURL, op, "IP-literal hosts are not allowed")
	}

	if _, blocked := blockedHosts[host]; blocked {
		return ValidatedURL{}, errors.New(errors.KindInvalidURL, op, "host is a blocked internal name")
	}
	for _, suffix := range blockedSuffixes {
		if strings.HasSuffix(host, suffix) {
			return ValidatedURL{}, errors.New(errors.KindInvalidURL, op, "host is a blocked internal name")
		}
	}

	if _, ok := g.allowed[host]; !ok {
		return ValidatedURL{}, errors.New(errors.KindInvalidURL, op, "host is not on the image CDN allowlist")
	}

	return ValidatedURL{URL: u.String()}, nil
}
