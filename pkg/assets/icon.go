package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const iconSize = 128

var (
	iconOnce  sync.Once
	iconBytes []byte
	iconErr   error
)

// Icon returns the firm icon PNG served as the web favicon: the bundled
// assets/nelson_murdock.png when present, otherwise a generated dark
// "NM" square.
func Icon() ([]byte, error) {
	iconOnce.Do(func() {
		if data, err := os.ReadFile(filepath.Join("assets", "nelson_murdock.png")); err == nil {
			iconBytes = data
			return
		}
		iconBytes, iconErr = generateIcon(iconSize)
	})
	return iconBytes, iconErr
}

func generateIcon(size int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	background := color.RGBA{R: 25, G: 25, B: 25, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	const label = "NM"
	face := basicfont.Face7x13
	width := font.MeasureString(face, label).Ceil()
	metrics := face.Metrics()

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P((size-width)/2, (size+metrics.Ascent.Ceil()-metrics.Descent.Ceil())/2),
	}
	drawer.DrawString(label)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %w", err)
	}
	return buf.Bytes(), nil
}
