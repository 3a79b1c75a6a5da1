package asset

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

// writeSheet writes a 4x2 sprite sheet, left half red, right half blue
func writeSheet(t *testing.T, dir string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(dir, "sheet.png"))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestParseKey(t *testing.T) {
	path, r, err := ParseKey("sprites.png")
	require.NoError(t, err)
	assert.Equal(t, "sprites.png", path)
	assert.Nil(t, r)

	path, r, err = ParseKey("sprites.png|16,0,16,8")
	require.NoError(t, err)
	assert.Equal(t, "sprites.png", path)
	assert.Equal(t, image.Rect(16, 0, 32, 8), *r)

	for _, bad := range []string{"a.png|1,2,3", "a.png|x,0,1,1", "a.png|0,0,0,4", "a.png|-1,0,2,2"} {
		_, _, err := ParseKey(bad)
		assert.ErrorIs(t, err, ErrBadRegion, bad)
	}
}

func TestCacheImageAndRegion(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir)
	c := NewCache(dir)

	img, err := c.Image("sheet.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())

	right, err := c.Image("sheet.png|2,0,2,2")
	require.NoError(t, err)
	assert.Equal(t, 2, right.Bounds().Dx())
	_, _, b, _ := right.At(right.Bounds().Min.X, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), b)

	again, err := c.Image("sheet.png|2,0,2,2")
	require.NoError(t, err)
	assert.Same(t, right, again)
	assert.Equal(t, 2, c.Len())
}

func TestCacheErrors(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir)
	c := NewCache(dir)

	_, err := c.Image("sheet.bmp")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = c.Image("missing.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = c.Image("sheet.png|3,0,2,2")
	assert.ErrorIs(t, err, ErrBadRegion)

	c.Close()
	_, err = c.Image("sheet.png")
	assert.ErrorIs(t, err, ErrClosed)
	assert.Zero(t, c.Len())
}
