package video

import "regexp"

// Platforms yt-dlp is allowed to fetch from. Anything else is rejected
// before any network action.
var sourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(https?://)?(www\.)?(youtube\.com|youtu\.be)`),
	regexp.MustCompile(`(?i)(https?://)?(www\.)?(instagram\.com|instagr\.am)`),
	regexp.MustCompile(`(?i)(https?://)?(www\.)?(tiktok\.com)`),
	regexp.MustCompile(`(?i)(https?://)?(www\.)?(twitter\.com|x\.com)`),
}

func IsValidSource(url string) bool {
	for _, pattern := range sourcePatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}
