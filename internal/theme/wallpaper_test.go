package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallpaper(t *testing.T) {
	for _, w := range []Wallpaper{
		Gradient(AnimatedGradient),
		Expression("linear-gradient(45deg, #6a11cb 0%, #2575fc 100%)"),
		Video(DefaultVideoURL),
		Special(OrbitingPlanets),
	} {
		got, err := ParseWallpaper(w.Encode())
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	_, err := ParseWallpaper("video")
	assert.Error(t, err)
	_, err = ParseWallpaper("https://example.com/a.mp4")
	assert.Error(t, err, "untagged urls are not valid encoded values")
	_, err = ParseWallpaper("video:")
	assert.Error(t, err)
}

func TestGradientOptionsFollowMode(t *testing.T) {
	light := GradientOptions(Light)
	dark := GradientOptions(Dark)
	require.Len(t, light, len(lightGradients)+2)
	assert.Equal(t, Gradient(AnimatedGradient), light[0].Wallpaper)
	assert.Equal(t, Special(OrbitingPlanets), light[len(light)-1].Wallpaper)
	assert.NotEqual(t, light[1], dark[1])
	assert.Len(t, VideoOptions(), len(videoWallpapers))
}
