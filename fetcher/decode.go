package fetcher

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"fetchbites/cache"

	"github.com/cockroachdb/errors"
	"github.com/h2non/filetype"
)

var (
	// ErrEmptyPayload is wrapped by DecodeError when there is nothing to decode.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrImageTooLarge is wrapped by DecodeError when the declared dimensions
	// would cost more than the decoder's limit.
	ErrImageTooLarge = errors.New("image too large")
)

// Decoder turns fetched bytes into a cacheable image.
type Decoder interface {
	Decode(data []byte) (*cache.Image, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte) (*cache.Image, error)

func (f DecoderFunc) Decode(data []byte) (*cache.Image, error) {
	return f(data)
}

type imageDecoder struct {
	maxCost int64
}

// NewImageDecoder returns a decoder for the formats registered with the image
// package (gif, jpeg, png), limited to cache.DefaultCostLimit.
func NewImageDecoder() Decoder {
	return NewImageDecoderWithLimit(cache.DefaultCostLimit)
}

// NewImageDecoderWithLimit rejects images whose decoded cost would exceed
// maxCost before any pixels are allocated. A non-positive maxCost selects
// cache.DefaultCostLimit.
func NewImageDecoderWithLimit(maxCost int64) Decoder {
	if maxCost <= 0 {
		maxCost = cache.DefaultCostLimit
	}
	return imageDecoder{maxCost: maxCost}
}

func (d imageDecoder) Decode(data []byte) (*cache.Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Err: ErrEmptyPayload}
	}

	var kindName string
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		kindName = kind.Extension
	}
	if !filetype.IsImage(data) {
		return nil, &DecodeError{Kind: kindName, Err: errors.New("payload is not an image")}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Kind: kindName, Err: err}
	}
	if cost := cache.DecodedCost(cfg.Width, cfg.Height); cost > d.maxCost {
		return nil, &DecodeError{
			Kind: kindName,
			Err:  errors.Wrapf(ErrImageTooLarge, "%dx%d needs %d bytes, limit %d", cfg.Width, cfg.Height, cost, d.maxCost),
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Kind: kindName, Err: err}
	}

	return cache.NewImage(img, format, len(data)), nil
}
