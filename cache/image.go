// Package cache holds decoded images in memory, keyed by the URL they were
// loaded from, under a count and byte-cost budget.
package cache

import "image"

// bytesPerPixel is the in-memory footprint of one decoded pixel (RGBA).
const bytesPerPixel = 4

// Image is a decoded image as held by the Store.
type Image struct {
	image.Image

	// Format is the decoder name ("jpeg", "png", "gif").
	Format string
	// EncodedSize is the size of the payload the image was decoded from.
	EncodedSize int
	// Cost is the decoded size in bytes, used for the store's byte budget.
	Cost int64
}

// DecodedCost is the store cost of a w by h image.
func DecodedCost(w, h int) int64 {
	return int64(w) * int64(h) * bytesPerPixel
}

// NewImage wraps a decoded image and computes its cost from its bounds.
func NewImage(img image.Image, format string, encodedSize int) *Image {
	var cost int64
	if img != nil {
		b := img.Bounds()
		cost = DecodedCost(b.Dx(), b.Dy())
	}
	return &Image{
		Image:       img,
		Format:      format,
		EncodedSize: encodedSize,
		Cost:        cost,
	}
}

// Width returns the decoded width in pixels.
func (i *Image) Width() int {
	if i == nil || i.Image == nil {
		return 0
	}
	return i.Bounds().Dx()
}

// Height returns the decoded height in pixels.
func (i *Image) Height() int {
	if i == nil || i.Image == nil {
		return 0
	}
	return i.Bounds().Dy()
}
