package ghost

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Capture queues a labeled capture of the next drawn frame. The PNG is
// written to CaptureDir when Draw finishes, named after the wall-clock time,
// the scene's current frame and the label.
func (s *Scene) Capture(label string) {
	s.captureQueue = append(s.captureQueue, label)
}

// PendingCaptures returns the number of queued captures.
func (s *Scene) PendingCaptures() int {
	return len(s.captureQueue)
}

// flushCaptures writes every queued capture of screen. Called at the end of
// Draw.
func (s *Scene) flushCaptures(screen *ebiten.Image) {
	if len(s.captureQueue) == 0 {
		return
	}
	defer func() { s.captureQueue = s.captureQueue[:0] }()

	if err := os.MkdirAll(s.CaptureDir, 0o755); err != nil {
		slog.Warn("ghost: capture", "dir", s.CaptureDir, "err", err)
		return
	}
	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.captureQueue {
		path := filepath.Join(s.CaptureDir, captureFileName(stamp, s.currentTime, label))
		if err := writePNG(path, img); err != nil {
			slog.Warn("ghost: capture", "path", path, "err", err)
		}
	}
}

// unpremultiply converts premultiplied RGBA pixels to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func captureFileName(stamp string, frame int, label string) string {
	return fmt.Sprintf("%s_f%04d_%s.png", stamp, frame, sanitizeLabel(label))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything else
// with '_'. Blank labels become "ghost".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "ghost"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
