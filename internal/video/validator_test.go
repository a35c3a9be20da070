package video

import "testing"

func TestIsValidSource(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"youtube short link", "https://youtu.be/dQw4w9WgXcQ", true},
		{"youtube no scheme", "youtube.com/watch?v=abc", true},
		{"youtube uppercase", "HTTPS://WWW.YOUTUBE.COM/watch?v=abc", true},
		{"instagram", "https://www.instagram.com/reel/xyz/", true},
		{"instagram short domain", "https://instagr.am/p/xyz/", true},
		{"tiktok", "https://www.tiktok.com/@user/video/123", true},
		{"twitter", "https://twitter.com/user/status/123", true},
		{"x.com", "https://x.com/user/status/123", true},
		{"vimeo rejected", "https://vimeo.com/123456", false},
		{"plain text", "not a url at all", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidSource(tt.url); got != tt.valid {
				t.Errorf("IsValidSource(%q) = %v, want %v", tt.url, got, tt.valid)
			}
		})
	}
}
