// Package preview decodes a selected source image and scales it down for
// display next to the file lists.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"github.com/spf13/afero"
	"golang.org/x/image/bmp"
)

// ErrNotImage is returned for files whose extension has no decoder.
var ErrNotImage = errors.New("preview: not an image")

const maxBytes = 64 << 20

// IsImage reports whether path has one of the decodable extensions.
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
		return true
	}
	return false
}

// Thumbnail decodes path and scales it so that its longest edge is at
// most edge pixels. Smaller images are returned at their own size.
func Thumbnail(fs afero.Fs, path string, edge int) (image.Image, error) {
	if !IsImage(path) {
		return nil, ErrNotImage
	}
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := decode(io.LimitReader(f, maxBytes), strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if _, paletted := img.(*image.Paletted); paletted {
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		img = rgba
	}

	w, h := fit(img.Bounds().Dx(), img.Bounds().Dy(), edge)
	if w == img.Bounds().Dx() && h == img.Bounds().Dy() {
		return img, nil
	}
	return resize.Resize(uint(w), uint(h), img, resize.Lanczos3), nil
}

func decode(r io.Reader, ext string) (image.Image, error) {
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".png":
		return png.Decode(r)
	case ".gif":
		return gif.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	}
	return nil, ErrNotImage
}

// fit scales w x h down to a longest edge of edge pixels, keeping the
// aspect ratio and never going below one pixel.
func fit(w, h, edge int) (int, int) {
	if edge <= 0 || (w <= edge && h <= edge) {
		return w, h
	}
	if w >= h {
		return edge, max(1, h*edge/w)
	}
	return max(1, w*edge/h), edge
}
