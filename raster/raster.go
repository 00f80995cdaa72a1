// Package raster adapts a boolean module matrix to a pixel raster. It knows
// nothing about symbol encoding; it only scales modules into squares and
// pads them with a quiet zone. (The core's BitMatrixToImage helper, by
// contrast, maps one module to one pixel with no padding.)
package raster

import (
	"image"
	"image/color"

	"github.com/qrcodec/qrcodec"
	"github.com/qrcodec/qrcodec/bitutil"
)

// MinModuleSize and MaxModuleSize bound the pixels-per-module scale factor.
// MinQuietZone and MaxQuietZone bound the white border width in pixels.
const (
	MinModuleSize = 1
	MaxModuleSize = 100
	MinQuietZone  = 0
	MaxQuietZone  = 400
)

// Render rasterizes a module matrix at moduleSize pixels per module, padded
// on all sides by quietZone pixels of white. The canonical recommendation is
// quietZone >= 4*moduleSize, but callers may pass less.
func Render(matrix *bitutil.BitMatrix, moduleSize, quietZone int) (*image.Gray, error) {
	if moduleSize < MinModuleSize || moduleSize > MaxModuleSize {
		return nil, qrcodec.ErrInvalidMatrixShape
	}
	if quietZone < MinQuietZone || quietZone > MaxQuietZone {
		return nil, qrcodec.ErrInvalidMatrixShape
	}
	if matrix == nil || matrix.Width() != matrix.Height() || matrix.Width() <= 0 {
		return nil, qrcodec.ErrInvalidMatrixShape
	}

	dim := matrix.Width()
	side := dim*moduleSize + 2*quietZone
	img := image.NewGray(image.Rect(0, 0, side, side))
	for p := range img.Pix {
		img.Pix[p] = 0xFF
	}

	for y := 0; y < dim; y++ {
		for x := 0; x < dim; x++ {
			if !matrix.Get(x, y) {
				continue
			}
			px0 := quietZone + x*moduleSize
			py0 := quietZone + y*moduleSize
			for py := py0; py < py0+moduleSize; py++ {
				for px := px0; px < px0+moduleSize; px++ {
					img.SetGray(px, py, color.Gray{Y: 0})
				}
			}
		}
	}
	return img, nil
}
