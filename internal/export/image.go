package export

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Preview image formats. FormatNone disables previews.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
	FormatNone = "none"
)

// ValidImageFormat reports whether format names an image encoder or none.
func ValidImageFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatWebP, FormatTGA, FormatNone:
		return true
	}
	return false
}

// EncodeImage writes img to w as lossless WebP or TGA.
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("export: webp encode: %w", err)
		}
		return nil
	case FormatTGA:
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("export: tga encode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("export: unknown image format %q", format)
}

// WriteImage creates path (and its directory) and encodes img into it.
func WriteImage(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := EncodeImage(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeAnimation writes frames as a looping lossless WebP animation with
// frameMs milliseconds per frame.
func EncodeAnimation(w io.Writer, frames []image.Image, frameMs uint) error {
	if len(frames) == 0 {
		return fmt.Errorf("export: animation has no frames")
	}
	durations := make([]uint, len(frames))
	disposals := make([]uint, len(frames))
	for i := range durations {
		durations[i] = frameMs
	}
	ani := &nativewebp.Animation{
		Images:    frames,
		Durations: durations,
		Disposals: disposals,
	}
	if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
		return fmt.Errorf("export: webp animation: %w", err)
	}
	return nil
}

// WriteAnimation creates path (and its directory) and encodes the animation
// into it.
func WriteAnimation(path string, frames []image.Image, frameMs uint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := EncodeAnimation(f, frames, frameMs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
