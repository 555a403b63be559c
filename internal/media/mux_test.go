package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validPlaybackID = "a1B2c3D4e5F6g7H8i9J0k1L2m3N4o5P6q7R8s9T0"

func TestPlaybackURL_BareID(t *testing.T) {
	url := PlaybackURL(validPlaybackID)
	assert.Equal(t, "https://stream.mux.com/"+validPlaybackID+".m3u8", url)
}

func TestPlaybackURL_FullURLPassesThrough(t *testing.T) {
	src := "https://commondatastorage.googleapis.com/sample/video.mp4"
	assert.Equal(t, src, PlaybackURL(src))
}

func TestPlaybackURL_Empty(t *testing.T) {
	assert.Equal(t, "", PlaybackURL(""))
}

func TestPlaybackURL_MalformedDropped(t *testing.T) {
	assert.Equal(t, "", PlaybackURL("short"))
	assert.Equal(t, "", PlaybackURL(strings.Repeat("x", 61)))
	assert.Equal(t, "", PlaybackURL(strings.Repeat("a", 35)+"!@#"))
}

func TestThumbnailURL(t *testing.T) {
	assert.Equal(t, "https://image.mux.com/"+validPlaybackID+"/thumbnail.jpg", ThumbnailURL(validPlaybackID))
	assert.Equal(t, "", ThumbnailURL("https://example.com/video.mp4"))
	assert.Equal(t, "", ThumbnailURL(""))
}
