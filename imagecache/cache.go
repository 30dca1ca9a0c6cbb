// Package imagecache recolours grayscale alpha masks and caches the results per tint.
package imagecache

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/cespare/xxhash/v2"
	"github.com/dboslee/lru"
)

// Tint recolours a grayscale alpha mask. The mask's premultiplied gray value is
// the coverage; the result is c scaled by that coverage.
func Tint(mask image.Image, c color.NRGBA) *image.RGBA {
	return adjust.Apply(mask, func(px color.RGBA) color.RGBA {
		coverage := (uint32(px.R) + uint32(px.G) + uint32(px.B)) / 3
		a := coverage * uint32(c.A) / 0xFF
		return color.RGBA{
			R: uint8(uint32(c.R) * a / 0xFF),
			G: uint8(uint32(c.G) * a / 0xFF),
			B: uint8(uint32(c.B) * a / 0xFF),
			A: uint8(a),
		}
	})
}

// Fingerprint hashes a mask's bounds and pixels.
func Fingerprint(img image.Image) uint64 {
	d := xxhash.New()
	b := img.Bounds()

	var hdr [16]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(int32(b.Min.X)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(int32(b.Min.Y)))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(int32(b.Max.X)))
	binary.LittleEndian.PutUint32(hdr[12:], uint32(int32(b.Max.Y)))
	d.Write(hdr[:])

	switch m := img.(type) {
	case *image.Alpha:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := m.PixOffset(b.Min.X, y)
			d.Write(m.Pix[off : off+b.Dx()])
		}
	case *image.Gray:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := m.PixOffset(b.Min.X, y)
			d.Write(m.Pix[off : off+b.Dx()])
		}
	default:
		var px [8]byte
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, a := img.At(x, y).RGBA()
				binary.LittleEndian.PutUint16(px[0:], uint16(r))
				binary.LittleEndian.PutUint16(px[2:], uint16(g))
				binary.LittleEndian.PutUint16(px[4:], uint16(bl))
				binary.LittleEndian.PutUint16(px[6:], uint16(a))
				d.Write(px[:])
			}
		}
	}
	return d.Sum64()
}

// ImageCache holds tinted copies of masks for a single colour.
// It is not safe for concurrent use.
type ImageCache struct {
	color   color.NRGBA
	entries *lru.Cache[uint64, *image.RGBA]
	misses  int
	closed  bool
}

// New creates a cache for the given tint.
func New(c color.NRGBA) *ImageCache {
	return &ImageCache{
		color:   c,
		entries: lru.New[uint64, *image.RGBA](),
	}
}

// Color returns the tint this cache produces.
func (ic *ImageCache) Color() color.NRGBA {
	return ic.color
}

// Get returns the tinted version of mask, creating it on a miss.
// After Close the result is computed but no longer stored.
func (ic *ImageCache) Get(mask image.Image) *image.RGBA {
	if ic.closed {
		return Tint(mask, ic.color)
	}

	key := Fingerprint(mask)
	if img, ok := ic.entries.Get(key); ok {
		return img
	}

	ic.misses++
	img := Tint(mask, ic.color)
	ic.entries.Set(key, img)
	return img
}

// Misses returns how many lookups had to tint a mask.
func (ic *ImageCache) Misses() int {
	return ic.misses
}

// Close drops every cached bitmap.
func (ic *ImageCache) Close() {
	if ic.closed {
		return
	}
	ic.closed = true
	ic.entries = nil
}
