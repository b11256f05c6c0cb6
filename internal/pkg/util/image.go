package util

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const MaxImageWidth = 1200

// ResizeImage 宽度超过 maxWidth 时等比缩放，统一编码为 JPEG
func ResizeImage(r io.Reader, maxWidth int) (*bytes.Buffer, int, int, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image failed: %w", err)
	}

	var out image.Image = img
	if img.Bounds().Dx() > maxWidth {
		out = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	buf := &bytes.Buffer{}
	if err = imaging.Encode(buf, out, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, 0, 0, fmt.Errorf("encode image failed: %w", err)
	}
	return buf, out.Bounds().Dx(), out.Bounds().Dy(), nil
}
