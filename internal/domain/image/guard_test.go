package image

import (
	"strings"
	"testing"

	"dyelens/internal/platform/errors"
)

func testGuard() *Guard {
	return NewGuard([]string{"cdn.discordapp.com", "media.discordapp.net"})
}

func TestGuard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"allowlisted host", "https://cdn.discordapp.com/attachments/1/2/swatch.png", false},
		{"second allowlisted host", "https://media.discordapp.net/attachments/1/2/x.webp", false},
		{"host case is normalized", "https://CDN.DiscordApp.com/x.png", false},
		{"wrong scheme", "http://cdn.discordapp.com/x.png", true},
		{"no scheme", "cdn.discordapp.com/x.png", true},
		{"not allowlisted", "https://evil.example.com/x.png", true},
		{"metadata endpoint ip", "https://169.254.169.254/x.png", true},
		{"ipv4 literal", "https://127.0.0.1/x.png", true},
		{"ipv6 literal", "https://[::1]/x.png", true},
		{"metadata hostname", "https://metadata.google.internal/x.png", true},
		{"localhost", "https://localhost/x.png", true},
		{"internal suffix", "https://cdn.discordapp.com.internal/x.png", true},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"not a url", "not a url", true},
	}

	g := testGuard()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validated, err := g.Validate(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Validate(%q) should fail", tt.url)
				}
				if !errors.IsKind(err, errors.KindInvalidURL) {
					t.Errorf("Validate(%q) kind = %v, expected invalid_url", tt.url, errors.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) error: %v", tt.url, err)
			}
			if validated.URL == "" {
				t.Error("validated URL is empty")
			}
			if !strings.HasPrefix(validated.URL, "https://") {
				t.Errorf("validated URL %q is not canonical https", validated.URL)
			}
		})
	}
}

func TestGuard_ReturnsCanonicalForm(t *testing.T) {
	g := testGuard()
	validated, err := g.Validate("https://cdn.discordapp.com/a%20b/x.png?size=256")
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	// The canonical form comes from re-serializing the parsed URL, not from
	// echoing the raw input.
	if validated.URL != "https://cdn.discordapp.com/a%20b/x.png?size=256" {
		t.Errorf("canonical URL = %q", validated.URL)
	}
}
