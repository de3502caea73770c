package loaders

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG encodes the quantized image to the given path. On error the
// partially written file is removed so a failed render leaves nothing
// behind.
func WritePNG(path string, img *image.RGBA) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		os.Remove(path)
		return fmt.Errorf("encode png: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}
