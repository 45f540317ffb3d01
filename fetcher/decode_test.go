package fetcher

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"testing"

	"fetchbites/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageDecoderDecode(t *testing.T) {
	d := NewImageDecoder()

	t.Run("png", func(t *testing.T) {
		data := pngBytes(t, 4, 3)
		img, err := d.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, "png", img.Format)
		assert.Equal(t, 4, img.Width())
		assert.Equal(t, 3, img.Height())
		assert.Equal(t, int64(4*3*4), img.Cost)
		assert.Equal(t, len(data), img.EncodedSize)
	})

	tests := []struct {
		name     string
		data     []byte
		wantKind string
		wantErr  error
	}{
		{name: "empty", data: nil, wantErr: ErrEmptyPayload},
		{name: "text", data: []byte("<html>not an image</html>")},
		{name: "pdf", data: []byte("%PDF-1.4\n%...."), wantKind: "pdf"},
		{name: "truncated png", data: pngBytes(t, 4, 4)[:20], wantKind: "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := d.Decode(tt.data)
			assert.Nil(t, img)

			var decErr *DecodeError
			require.True(t, errors.As(err, &decErr), "got %v", err)
			assert.Equal(t, tt.wantKind, decErr.Kind)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestImageDecoderRejectsOversizedImages(t *testing.T) {
	data := pngBytes(t, 4, 4)

	_, err := NewImageDecoderWithLimit(4 * 4 * 4).Decode(data)
	require.NoError(t, err)

	img, err := NewImageDecoderWithLimit(4*4*4 - 1).Decode(data)
	assert.Nil(t, img)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr), "got %v", err)
	assert.Equal(t, "png", decErr.Kind)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestImageDecoderChecksDeclaredDimensions(t *testing.T) {
	// A valid header claiming 65535x65535 pixels followed by no pixel data.
	data := pngBytes(t, 1, 1)
	hdr := data[16:24]
	binary.BigEndian.PutUint32(hdr[0:4], 65535)
	binary.BigEndian.PutUint32(hdr[4:8], 65535)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	_, err := NewImageDecoder().Decode(data)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestDecoderFunc(t *testing.T) {
	called := false
	d := DecoderFunc(func(data []byte) (*cache.Image, error) {
		called = true
		return nil, nil
	})
	_, _ = d.Decode([]byte("x"))
	assert.True(t, called)
}
