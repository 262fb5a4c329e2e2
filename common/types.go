// Package common contains plain types and helpers shared by every engine package.
package common

import "image"

// TextureStagingData holds RGBA pixel data pending GPU upload.
type TextureStagingData struct {
	// Pixels is tightly packed RGBA, 4 bytes per pixel, row-major.
	Pixels []byte
	Width  uint32
	Height uint32
}

// StageRGBA copies an RGBA image into staging data, repacking rows when the
// image stride differs from width*4 (sub-images).
//
// Parameters:
//   - img: the source image, nil yields empty staging data
//
// Returns:
//   - TextureStagingData: tightly packed pixels
func StageRGBA(img *image.RGBA) TextureStagingData {
	if img == nil {
		return TextureStagingData{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(out[y*w*4:(y+1)*w*4], src[:w*4])
	}
	return TextureStagingData{Pixels: out, Width: uint32(w), Height: uint32(h)}
}
