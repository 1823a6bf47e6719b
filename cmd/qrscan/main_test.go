package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBlankPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "blank.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestDecodeImage_ReadsPNG(t *testing.T) {
	path := writeBlankPNG(t, 64, 64)
	img, err := decodeImage(path)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestToQRImage_FlattensToRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	qi := toQRImage(img)
	assert.Equal(t, 4, qi.Width)
	assert.Equal(t, 4, qi.Height)
	assert.Equal(t, 16, qi.RowStride)
	assert.Equal(t, byte(10), qi.Data[0])
	assert.Equal(t, byte(20), qi.Data[1])
	assert.Equal(t, byte(30), qi.Data[2])
}

func TestRunScan_ReportsNoSymbolsOnBlankImage(t *testing.T) {
	path := writeBlankPNG(t, 64, 64)
	err := runScan([]string{path})
	assert.NoError(t, err)
}

func TestRunScan_MissingArgument(t *testing.T) {
	err := runScan(nil)
	assert.Error(t, err)
}

func TestRunInfo_ReportsDimensions(t *testing.T) {
	path := writeBlankPNG(t, 32, 48)
	err := runInfo([]string{path})
	assert.NoError(t, err)
}
