package video

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// ytdlpRunner shells out to yt-dlp, which owns format negotiation and
// platform quirks.
type ytdlpRunner struct{}

func (ytdlpRunner) Fetch(ctx context.Context, url, dest string, s Strategy) error {
	args := []string{
		"-f", s.Format,
		"-o", dest,
		"--force-overwrites",
		"--no-playlist",
		"--no-check-certificates",
		"--socket-timeout", strconv.Itoa(s.SocketTimeout),
		"--retries", strconv.Itoa(s.Retries),
		"--fragment-retries", strconv.Itoa(s.Retries),
		"--extractor-retries", strconv.Itoa(s.Retries),
	}
	if s.UserAgent != "" {
		args = append(args, "--user-agent", s.UserAgent)
	}
	if s.NoCookies {
		args = append(args, "--no-cookies-from-browser")
	}
	if s.IgnoreErrors {
		args = append(args, "--ignore-errors")
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yt-dlp: %w, stderr: %s", err, stderr.String())
	}
	return nil
}

func (ytdlpRunner) Probe(ctx context.Context, url string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"--dump-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		url)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp: %w, stderr: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}
