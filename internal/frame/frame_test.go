package frame_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisvanner/doorscope/internal/frame"
)

func grayFrom(t *testing.T, width, height int, pix []uint8) *image.Gray {
	t.Helper()
	require.Len(t, pix, width*height)
	img := image.NewGray(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)
	return img
}

func TestEncode(t *testing.T) {
	cfg := frame.DefaultConfig()
	cfg.Width, cfg.Height = 2, 2

	img := grayFrom(t, 2, 2, []uint8{0, 128, 255, 64})
	assert.Equal(t, "I,0,128,255,64E", string(cfg.Encode(img)))
}

func TestEncodeSinglePixel(t *testing.T) {
	cfg := frame.DefaultConfig()
	cfg.Width, cfg.Height = 1, 1

	img := grayFrom(t, 1, 1, []uint8{7})
	assert.Equal(t, "I,7E", string(cfg.Encode(img)))
}

func TestAppendFrameRowMajor(t *testing.T) {
	cfg := frame.DefaultConfig()
	cfg.Width, cfg.Height = 3, 2

	// Rows must be emitted top to bottom, left to right.
	img := grayFrom(t, 3, 2, []uint8{1, 2, 3, 4, 5, 6})
	assert.Equal(t, "I,1,2,3,4,5,6E", string(cfg.AppendFrame(nil, img)))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*frame.Config)
		wantErr bool
	}{
		{name: "default", mutate: func(*frame.Config) {}},
		{name: "zero width", mutate: func(c *frame.Config) { c.Width = 0 }, wantErr: true},
		{name: "negative height", mutate: func(c *frame.Config) { c.Height = -1 }, wantErr: true},
		{name: "empty start marker", mutate: func(c *frame.Config) { c.StartMarker = nil }, wantErr: true},
		{name: "zero scan bound", mutate: func(c *frame.Config) { c.MaxStartScan = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := frame.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPattern(t *testing.T) {
	a := frame.Pattern(96, 96, 0)
	b := frame.Pattern(96, 96, 1)

	require.Equal(t, image.Rect(0, 0, 96, 96), a.Bounds())
	assert.NotEqual(t, a.Pix, b.Pix, "successive frames should differ")
}

func TestIsTransient(t *testing.T) {
	assert.True(t, frame.IsTransient(frame.ErrNoStartMarker))
	assert.True(t, frame.IsTransient(frame.ErrTimeout))
	assert.True(t, frame.IsTransient(frame.ErrSizeMismatch))
	assert.False(t, frame.IsTransient(assert.AnError))
	assert.False(t, frame.IsTransient(nil))
}
