package media

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const (
	maxThumbWidth = 640
	webpQuality   = 80
)

// ThumbnailWebP decodes a jpeg/png upload, scales it down to the catalog
// thumbnail width when needed and re-encodes it as webp.
func ThumbnailWebP(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxThumbWidth {
		h := bounds.Dy() * maxThumbWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, maxThumbWidth, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
