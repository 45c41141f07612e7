// Package preview renders gallery media as terminal half-block art.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/logging"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned for media that cannot be drawn, such as SVG.
var ErrUnsupported = errors.New("unsupported image format")

// upperHalf draws the top pixel as foreground and the bottom pixel as background.
const upperHalf = "▀"

// DefaultCacheSize is the number of decoded images a Loader keeps.
const DefaultCacheSize = 16

// Fetcher downloads media bytes.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (api.Response, error)
}

// DetectFormat returns jpeg, png, gif, webp, svg or "" from the leading bytes.
func DetectFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "gif"
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "webp"
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.Contains(head, []byte("<svg")) {
		return "svg"
	}
	return ""
}

// Decode decodes raster image bytes, honouring EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	switch DetectFormat(data) {
	case "", "svg":
		return nil, ErrUnsupported
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// Frame scales img to fit cols x rows terminal cells at the given zoom.
// Each cell holds two vertical pixels. Above 1x the image is scaled up and
// the centre is cropped to the frame; below 1x it shrinks inside the frame.
func Frame(img image.Image, cols, rows int, zoom float64) image.Image {
	if cols <= 0 || rows <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	if zoom <= 0 {
		zoom = 1
	}
	w, h := cols, rows*2
	src := img.Bounds()
	if src.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	scale := math.Min(float64(w)/float64(src.Dx()), float64(h)/float64(src.Dy())) * zoom
	sw := maxInt(1, int(math.Round(float64(src.Dx())*scale)))
	sh := maxInt(1, int(math.Round(float64(src.Dy())*scale)))
	scaled := image.Image(imaging.Resize(img, sw, sh, imaging.Lanczos))
	if sw > w || sh > h {
		scaled = imaging.CropCenter(scaled, minInt(sw, w), minInt(sh, h))
	}
	return scaled
}

// Render draws img as rows of half-block cells. An odd last pixel row is
// paired with the terminal background.
func Render(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hex(img.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hex(img.At(x, y+1)))
			}
			sb.WriteString(style.Render(upperHalf))
		}
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hex(c color.Color) lipgloss.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Loader fetches and decodes media, keeping the most recent images.
type Loader struct {
	fetcher Fetcher
	size    int

	mu     sync.Mutex
	images map[string]image.Image
	order  []string
}

// NewLoader creates a Loader keeping up to size images (DefaultCacheSize if <= 0).
func NewLoader(f Fetcher, size int) *Loader {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Loader{fetcher: f, size: size, images: make(map[string]image.Image)}
}

// Load returns the decoded image for ref.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	l.mu.Lock()
	if img, ok := l.images[ref]; ok {
		l.touch(ref)
		l.mu.Unlock()
		return img, nil
	}
	l.mu.Unlock()

	resp, err := l.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}
	img, err := Decode(resp.Body)
	if err != nil {
		logging.Debug("preview decode failed", "ref", ref, "content_type", resp.ContentType, "err", err)
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.images[ref]; !ok {
		l.order = append(l.order, ref)
	}
	l.images[ref] = img
	l.touch(ref)
	for len(l.order) > l.size {
		delete(l.images, l.order[0])
		l.order = l.order[1:]
	}
	return img, nil
}

// touch moves ref to the most recently used end. Callers hold mu.
func (l *Loader) touch(ref string) {
	for i, r := range l.order {
		if r == ref {
			l.order = append(append(l.order[:i:i], l.order[i+1:]...), ref)
			return
		}
	}
}

// Len returns the number of cached images.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.images)
}

// Draw loads ref and renders it into cols x rows cells at zoom.
func (l *Loader) Draw(ctx context.Context, ref string, cols, rows int, zoom float64) (string, error) {
	img, err := l.Load(ctx, ref)
	if err != nil {
		return "", err
	}
	return Render(Frame(img, cols, rows, zoom)), nil
}
