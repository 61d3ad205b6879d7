package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register webp decoder
)

var ErrUnsupportedImage = errors.New("unsupported image")

const photoJPEGQuality = 85

// PhotoService normalises uploaded profile photos into bounded JPEGs.
type PhotoService struct {
	maxPx int
}

func NewPhotoService(maxPx int) *PhotoService {
	if maxPx <= 0 {
		maxPx = 512
	}
	return &PhotoService{maxPx: maxPx}
}

// Normalize decodes any registered format, fits it inside maxPx x maxPx and re-encodes as JPEG.
func (s *PhotoService) Normalize(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedImage
		}
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxPx || bounds.Dy() > s.maxPx {
		img = imaging.Fit(img, s.maxPx, s.maxPx, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(photoJPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}
