package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoServiceFitsLargeImages(t *testing.T) {
	svc := NewPhotoService(64)

	out, err := svc.Normalize(bytes.NewReader(pngBytes(t, 256, 128)))
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestPhotoServiceKeepsSmallImages(t *testing.T) {
	svc := NewPhotoService(64)

	out, err := svc.Normalize(bytes.NewReader(pngBytes(t, 20, 10)))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
}

func TestPhotoServiceRejectsNonImages(t *testing.T) {
	_, err := NewPhotoService(64).Normalize(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
