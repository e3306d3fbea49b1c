//go:build !tinygo

package assets

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// LoadStrip decodes a PNG texture strip from disk.
func LoadStrip(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: load strip: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// SavePNG encodes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("assets: save: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("assets: encode %s: %w", path, err)
	}
	return f.Close()
}
