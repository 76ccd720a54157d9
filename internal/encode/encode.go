// Package encode validates a drawing surface and serializes it into the PNG
// data URL submitted for recognition.
package encode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// MinDataURLLength is the shortest data URL accepted for submission.
// Anything shorter cannot hold a real PNG.
const MinDataURLLength = 100

const dataURLPrefix = "data:image/png;base64,"

var (
	// ErrEmptySurface is returned when every pixel is fully transparent.
	ErrEmptySurface = errors.New("surface is empty")
	// ErrEncoding is returned when the encoded payload is implausibly small
	// or the encoder fails.
	ErrEncoding = errors.New("image data is invalid")
)

// IsNonEmpty reports whether any pixel of img has non-zero alpha.
func IsNonEmpty(img *image.RGBA) bool {
	if img == nil {
		return false
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0 {
				return true
			}
		}
	}
	return false
}

// Encoder serializes surfaces to PNG.
type Encoder struct {
	// MaxDimension, when positive, downscales images whose larger side
	// exceeds it before encoding. The aspect ratio is preserved.
	MaxDimension int
	// MinLength overrides MinDataURLLength when positive.
	MinLength int
}

// Encode returns the PNG bytes for img.
func (e Encoder) Encode(img image.Image) ([]byte, error) {
	img = e.scale(img)
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

// EncodeDataURL validates img and returns it as a PNG data URL.
func (e Encoder) EncodeDataURL(img *image.RGBA) (string, error) {
	if !IsNonEmpty(img) {
		return "", ErrEmptySurface
	}
	data, err := e.Encode(img)
	if err != nil {
		return "", err
	}
	url := DataURL(data)
	if min := e.minLength(); len(url) < min {
		return "", fmt.Errorf("%w: %d characters, need at least %d", ErrEncoding, len(url), min)
	}
	return url, nil
}

// DataURL wraps PNG bytes in a base64 data URL.
func DataURL(pngData []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(pngData)
}

// DecodeDataURL reverses DataURL.
func DecodeDataURL(url string) ([]byte, error) {
	if len(url) < len(dataURLPrefix) || url[:len(dataURLPrefix)] != dataURLPrefix {
		return nil, fmt.Errorf("%w: not a PNG data URL", ErrEncoding)
	}
	data, err := base64.StdEncoding.DecodeString(url[len(dataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return data, nil
}

func (e Encoder) minLength() int {
	if e.MinLength > 0 {
		return e.MinLength
	}
	return MinDataURLLength
}

func (e Encoder) scale(img image.Image) image.Image {
	if e.MaxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= e.MaxDimension && b.Dy() <= e.MaxDimension {
		return img
	}
	return resize.Thumbnail(uint(e.MaxDimension), uint(e.MaxDimension), img, resize.Bilinear)
}
