package video

import "time"

const downloadUserAgent = "Mozilla/5.0 (compatible; ThePlugApp/1.0)"

// Strategy is one configuration variant tried against a URL. Strategies
// are attempted strictly in order; the first one that produces a playable
// file wins.
type Strategy struct {
	Name          string
	Format        string
	UserAgent     string
	SocketTimeout int
	Retries       int
	NoCookies     bool
	IgnoreErrors  bool
}

// DefaultStrategies returns the fallback ladder. Cloud deployments get a
// single conservative attempt; elsewhere the default configuration is
// followed by the legacy format codes and a cookie-less last resort.
func DefaultStrategies(cloud bool) []Strategy {
	base := Strategy{
		Name:          "default",
		Format:        "best[ext=mp4]/best",
		UserAgent:     downloadUserAgent,
		SocketTimeout: 30,
		Retries:       3,
	}

	if cloud {
		base.Format = "best[filesize<50M]/worst"
		base.SocketTimeout = 20
		base.Retries = 1
		return []Strategy{base}
	}

	legacy := base
	legacy.Name = "legacy-formats"
	legacy.Format = "18/22/37/38"

	noCookies := base
	noCookies.Name = "no-cookies"
	noCookies.NoCookies = true
	noCookies.IgnoreErrors = true

	return []Strategy{base, legacy, noCookies}
}

// retryDelay grows with the attempt number and is capped at 30 seconds.
func retryDelay(attempt int) time.Duration {
	d := time.Duration(5*attempt) * time.Second
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}
