package preview

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gruppe-adler/ascraster/internal/imageio"
	"github.com/nfnt/resize"
)

// Path returns where the preview with the given height is stored for an
// image written to outPath. Formats without an image encoder fall back to png.
func Path(outPath string, size uint) string {
	ext := filepath.Ext(outPath)
	base := strings.TrimSuffix(outPath, ext)

	if _, err := imageio.EncoderFor(outPath); err != nil {
		ext = ".png"
	}

	return fmt.Sprintf("%s_%d%s", base, size, ext)
}

// Build writes downscaled copies of img with the given heights next to
// outPath and returns their paths. Sizes not smaller than the image are
// skipped.
func Build(outPath string, img image.Image, sizes []uint) ([]string, error) {
	b := img.Bounds()
	written := make([]string, 0, len(sizes))

	for _, size := range sizes {
		if size == 0 || int(size) >= b.Dy() {
			continue
		}

		factor := float64(size) / float64(b.Dy())
		w := uint(float64(b.Dx()) * factor)
		if w == 0 {
			w = 1
		}

		previewPath := Path(outPath, size)
		if err := imageio.Save(previewPath, resize.Resize(w, size, img, resize.MitchellNetravali)); err != nil {
			return written, err
		}
		written = append(written, previewPath)
	}

	return written, nil
}
