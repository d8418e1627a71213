package battleroyale

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"seina-bot/internal/config"
	"seina-bot/pkg/util"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

// swordsURL is the crossed swords emoji composited over every round image.
const swordsURL = "https://cdn.discordapp.com/emojis/1123588896136106074.webp"

const (
	avatarSize  = 400
	avatarInset = 30
	swordsSize  = 300

	sceneW = 1200
	sceneH = 500

	maxFetchBytes = 8 << 20
	cacheCap      = 256
)

// Renderer composites round images: a background, both avatars and the
// swords overlay. Fetched bytes are cached by URL so a long game hits the
// CDN once per avatar.
type Renderer struct {
	client *http.Client
	dir    string
	swords string

	mu    sync.Mutex
	cache map[string][]byte
}

func NewRenderer(backgroundsDir string, timeout time.Duration) *Renderer {
	return &Renderer{
		client: &http.Client{Timeout: timeout},
		dir:    backgroundsDir,
		swords: swordsURL,
		cache:  make(map[string][]byte),
	}
}

var (
	rendererOnce sync.Once
	renderer     *Renderer
)

// sceneRenderer builds the shared renderer on first use, after config is
// loaded.
func sceneRenderer() *Renderer {
	rendererOnce.Do(func() {
		dir := "data/backgrounds"
		timeout := 10 * time.Second
		if cfg, err := config.Get(); err == nil {
			dir = cfg.BattleBackgroundsDir
			timeout = cfg.HTTPTimeout
		}
		renderer = NewRenderer(dir, timeout)
	})
	return renderer
}

// Render draws killer against killed over a random background and returns
// the encoded PNG.
func (r *Renderer) Render(ctx context.Context, rng *rand.Rand, left, right Player) ([]byte, error) {
	// Warm both avatar fetches in parallel. The paste below then hits the
	// cache; drawing stays sequential on the shared canvas.
	err := util.Parallel(ctx, []Player{left, right}, 2, func(ctx context.Context, p Player) error {
		if p.AvatarURL == "" {
			return fmt.Errorf("avatar %s: no avatar url", p.ID)
		}
		if _, err := r.fetch(ctx, p.AvatarURL); err != nil {
			return fmt.Errorf("avatar %s: %w", p.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bg := r.background(rng)
	b := bg.Bounds()
	w, h := b.Dx(), b.Dy()

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), bg, b.Min, draw.Src)

	leftBox := image.Rect(avatarInset, h/2-avatarSize/2, avatarInset+avatarSize, h/2+avatarSize/2)
	if err := r.pasteAvatar(ctx, canvas, left.AvatarURL, leftBox); err != nil {
		return nil, fmt.Errorf("avatar %s: %w", left.ID, err)
	}
	rightBox := image.Rect(w-avatarInset-avatarSize, h/2-avatarSize/2, w-avatarInset, h/2+avatarSize/2)
	if err := r.pasteAvatar(ctx, canvas, right.AvatarURL, rightBox); err != nil {
		return nil, fmt.Errorf("avatar %s: %w", right.ID, err)
	}
	r.pasteSwords(ctx, canvas, w, h)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode battle image: %w", err)
	}
	return buf.Bytes(), nil
}

// background picks a random decodable file from the backgrounds dir, falling
// back to a generated scene when none are usable.
func (r *Renderer) background(rng *rand.Rand) image.Image {
	files, err := os.ReadDir(r.dir)
	if err == nil {
		var names []string
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(f.Name())) {
			case ".png", ".jpg", ".jpeg", ".gif", ".webp":
				names = append(names, f.Name())
			}
		}
		for len(names) > 0 {
			i := rng.Intn(len(names))
			raw, err := os.ReadFile(filepath.Join(r.dir, names[i]))
			if err == nil {
				if img, _, err := image.Decode(bytes.NewReader(raw)); err == nil {
					return img
				}
			}
			names = append(names[:i], names[i+1:]...)
		}
	}
	return fallbackScene(rng)
}

// fallbackScene paints a gradient arena with scattered embers so games run
// without bundled backgrounds.
func fallbackScene(rng *rand.Rand) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, sceneW, sceneH))
	top := color.RGBA{R: 0x1E, G: 0x1B, B: 0x2E, A: 0xFF}
	bottom := color.RGBA{R: 0x6A, G: 0x2A, B: 0x23, A: 0xFF}
	for y := 0; y < sceneH; y++ {
		t := float64(y) / float64(sceneH-1)
		c := color.RGBA{
			R: uint8(float64(top.R) + t*(float64(bottom.R)-float64(top.R))),
			G: uint8(float64(top.G) + t*(float64(bottom.G)-float64(top.G))),
			B: uint8(float64(top.B) + t*(float64(bottom.B)-float64(top.B))),
			A: 0xFF,
		}
		for x := 0; x < sceneW; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	for i := 0; i < 80; i++ {
		img.SetRGBA(rng.Intn(sceneW), rng.Intn(sceneH), color.RGBA{R: 0xE8, G: 0x9B, B: 0x3C, A: 0xFF})
	}
	return img
}

func (r *Renderer) pasteAvatar(ctx context.Context, dst *image.RGBA, url string, box image.Rectangle) error {
	if url == "" {
		return fmt.Errorf("no avatar url")
	}
	raw, err := r.fetch(ctx, url)
	if err != nil {
		return err
	}
	avatar, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode avatar: %w", err)
	}
	draw.ApproxBiLinear.Scale(dst, box, avatar, avatar.Bounds(), draw.Over, nil)
	return nil
}

// pasteSwords overlays the crossed swords with their black backdrop keyed
// out. A failed fetch skips the overlay instead of failing the image.
func (r *Renderer) pasteSwords(ctx context.Context, dst *image.RGBA, w, h int) {
	raw, err := r.fetch(ctx, r.swords)
	if err != nil {
		log.Warn().Err(err).Msg("battleroyale: swords overlay skipped")
		return
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Warn().Err(err).Msg("battleroyale: swords overlay skipped")
		return
	}
	keyed := keyOutBlack(src)
	box := image.Rect(w/2-swordsSize/2, h/2-swordsSize/2, w/2+swordsSize/2, h/2+swordsSize/2)
	draw.ApproxBiLinear.Scale(dst, box, keyed, keyed.Bounds(), draw.Over, nil)
}

// keyOutBlack copies src with pure black pixels made transparent.
func keyOutBlack(src image.Image) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			if c.R == 0 && c.G == 0 && c.B == 0 {
				continue
			}
			out.SetRGBA(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return out
}

func (r *Renderer) fetch(ctx context.Context, url string) ([]byte, error) {
	r.mu.Lock()
	cached, ok := r.cache[url]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	r.mu.Lock()
	if len(r.cache) >= cacheCap {
		r.cache = make(map[string][]byte)
	}
	r.cache[url] = raw
	r.mu.Unlock()
	return raw, nil
}
