package battleroyale

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidPNG(t *testing.T, c color.RGBA, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestKeyOutBlack(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{A: 0xFF})
	src.SetRGBA(1, 0, color.RGBA{R: 0xFF, A: 0xFF})

	out := keyOutBlack(src)
	assert.Zero(t, out.RGBAAt(0, 0).A, "pure black becomes transparent")
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, out.RGBAAt(1, 0))
}

func TestFallbackScene(t *testing.T) {
	scene := fallbackScene(rand.New(rand.NewSource(1)))
	assert.Equal(t, sceneW, scene.Bounds().Dx())
	assert.Equal(t, sceneH, scene.Bounds().Dy())
	assert.NotEqual(t, scene.At(0, 0), scene.At(0, sceneH-1), "the scene is a gradient, not a flat fill")
}

func TestBackgroundPrefersDirOverScene(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arena.png"),
		solidPNG(t, color.RGBA{G: 0xFF, A: 0xFF}, 900, 450), 0o644))

	r := NewRenderer(dir, time.Second)
	bg := r.background(rand.New(rand.NewSource(1)))
	assert.Equal(t, 900, bg.Bounds().Dx(), "the bundled background is used when present")

	empty := NewRenderer(t.TempDir(), time.Second)
	assert.Equal(t, sceneW, empty.background(rand.New(rand.NewSource(1))).Bounds().Dx(),
		"an empty dir falls back to the generated scene")
}

func TestRenderCompositesAvatarsAndSwords(t *testing.T) {
	red := solidPNG(t, color.RGBA{R: 0xFF, A: 0xFF}, 64, 64)
	white := solidPNG(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, 32, 32)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/swords.png" {
			_, _ = w.Write(white)
			return
		}
		_, _ = w.Write(red)
	}))
	defer srv.Close()

	r := NewRenderer(t.TempDir(), time.Second)
	r.swords = srv.URL + "/swords.png"

	left := Player{ID: "1", Name: "Left", AvatarURL: srv.URL + "/left.png"}
	right := Player{ID: "2", Name: "Right", AvatarURL: srv.URL + "/right.png"}
	raw, err := r.Render(context.Background(), rand.New(rand.NewSource(1)), left, right)
	require.NoError(t, err)

	out, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, sceneW, out.Bounds().Dx())
	assert.Equal(t, sceneH, out.Bounds().Dy())

	toRGBA := func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(out.At(x, y)).(color.RGBA)
	}
	leftPixel := toRGBA(avatarInset+avatarSize/2, sceneH/2-avatarSize/4)
	assert.Equal(t, uint8(0xFF), leftPixel.R, "left avatar lands in its box")
	assert.Zero(t, leftPixel.G)

	rightPixel := toRGBA(sceneW-avatarInset-avatarSize/2, sceneH/2-avatarSize/4)
	assert.Equal(t, uint8(0xFF), rightPixel.R, "right avatar lands in its box")

	center := toRGBA(sceneW/2, sceneH/2)
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, center, "swords overlay covers the center")
}

func TestRenderFailsWithoutAvatars(t *testing.T) {
	r := NewRenderer(t.TempDir(), time.Second)
	_, err := r.Render(context.Background(), rand.New(rand.NewSource(1)), Player{ID: "1"}, Player{ID: "2"})
	assert.Error(t, err)
}

func TestFetchCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	r := NewRenderer(t.TempDir(), time.Second)
	for i := 0; i < 3; i++ {
		raw, err := r.fetch(context.Background(), srv.URL+"/x")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(raw))
	}
	assert.Equal(t, int32(1), hits.Load(), "repeat fetches come from the cache")
}
