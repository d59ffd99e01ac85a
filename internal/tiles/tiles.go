// Package tiles cuts a rendered image into an xyz tile pyramid.
package tiles

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path"
	"runtime"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultSize is the edge length of a tile in pixels.
const DefaultSize = 256

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// CalcMaxLod calculates the LOD at which one tile covers at most size
// pixels of img along its longer edge.
func CalcMaxLod(img image.Image, size uint) uint8 {
	b := img.Bounds()
	w := math.Max(float64(b.Dx()), float64(b.Dy()))

	tilesPerRowCol := math.Ceil(w / float64(size))
	if tilesPerRowCol <= 1 {
		return 0
	}

	return uint8(math.Ceil(math.Log2(tilesPerRowCol)))
}

// BuildTileSet builds the size x size tiles for given LOD from img into
// outputDirectory/<lod>/<col>/<row>.png
func BuildTileSet(ctx context.Context, lod uint8, img image.Image, size uint, outputDirectory string) error {
	src, ok := img.(subImager)
	if !ok {
		return fmt.Errorf("cannot cut tiles from %T", img)
	}

	outputDirectory = path.Join(outputDirectory, fmt.Sprintf("%d", lod))
	tilesPerRowCol := 1 << lod

	// make col directories
	for col := 0; col < tilesPerRowCol; col++ {
		dirPath := path.Join(outputDirectory, fmt.Sprintf("%d", col))
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return err
		}
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))
	eg, tileCtx := errgroup.WithContext(ctx)

cut:
	for col := 0; col < tilesPerRowCol; col++ {
		for row := 0; row < tilesPerRowCol; row++ {
			// spread remaining pixels evenly over the tiles
			rect := image.Rect(
				col*width/tilesPerRowCol, row*height/tilesPerRowCol,
				(col+1)*width/tilesPerRowCol, (row+1)*height/tilesPerRowCol,
			).Add(b.Min)
			if rect.Empty() {
				continue
			}

			if tileCtx.Err() != nil || sem.Acquire(tileCtx, 1) != nil {
				break cut
			}

			tilePath := path.Join(outputDirectory, fmt.Sprintf("%d", col), fmt.Sprintf("%d.png", row))
			eg.Go(func() error {
				defer sem.Release(1)
				return createTile(src.SubImage(rect), size, tilePath)
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func createTile(subImg image.Image, size uint, tilePath string) error {
	img := resize.Resize(size, size, subImg, resize.MitchellNetravali)

	out, err := os.Create(tilePath)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", tilePath, err)
	}

	return out.Close()
}
