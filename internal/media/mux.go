package media

import (
	"fmt"
	"regexp"
	"strings"
)

// Mux playback IDs are alphanumeric and typically 40-50 characters.
// References outside that shape are dropped rather than turned into
// URLs that would 404 on the player.
var playbackIDRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

const (
	minPlaybackIDLen = 30
	maxPlaybackIDLen = 60
)

// PlaybackURL converts a video reference into a playable HLS URL.
// Full URLs pass through untouched; bare playback IDs become
// stream.mux.com manifests; anything else yields "".
func PlaybackURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	if isPlaybackID(ref) {
		return fmt.Sprintf("https://stream.mux.com/%s.m3u8", ref)
	}
	return ""
}

// ThumbnailURL returns the poster image for a bare playback ID, or ""
// when the reference is a URL or malformed.
func ThumbnailURL(ref string) string {
	if isPlaybackID(ref) {
		return fmt.Sprintf("https://image.mux.com/%s/thumbnail.jpg", ref)
	}
	return ""
}

func isPlaybackID(ref string) bool {
	if len(ref) < minPlaybackIDLen || len(ref) > maxPlaybackIDLen {
		return false
	}
	if strings.HasPrefix(ref, "http") {
		return false
	}
	return playbackIDRe.MatchString(ref)
}
