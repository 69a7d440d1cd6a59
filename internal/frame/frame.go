// Package frame implements the ASCII wire format the firmware prints on its
// serial port: the literal bytes "I," followed by WIDTH*HEIGHT decimal pixel
// values (0-255) separated by commas, terminated by the literal byte 'E'.
// No length prefix, no checksum.
package frame

import (
	"fmt"
	"image"
	"strconv"
)

// Reference values from the firmware sketch.
const (
	DefaultWidth  = 96
	DefaultHeight = 96

	// DefaultMaxStartScan bounds how many bytes one decode attempt may
	// consume while hunting for the start marker, so a corrupted or
	// babbling stream cannot stall a call forever.
	DefaultMaxStartScan = 4096
)

// Config describes one frame layout on the wire. Dimensions and markers are
// fixed at startup; there are no ambient globals.
type Config struct {
	Width        int
	Height       int
	StartMarker  []byte
	EndMarker    byte
	MaxStartScan int
}

// DefaultConfig returns the layout used by the reference firmware.
func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		StartMarker:  []byte("I,"),
		EndMarker:    'E',
		MaxStartScan: DefaultMaxStartScan,
	}
}

// Validate reports a configuration that cannot describe a frame.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("frame: invalid dimensions %dx%d", c.Width, c.Height)
	}
	if len(c.StartMarker) == 0 {
		return fmt.Errorf("frame: empty start marker")
	}
	if c.MaxStartScan <= 0 {
		return fmt.Errorf("frame: max start scan must be positive")
	}
	return nil
}

// AppendFrame appends img encoded in the wire format to dst and returns the
// extended slice. Pixels are emitted row-major.
func (c Config) AppendFrame(dst []byte, img *image.Gray) []byte {
	dst = append(dst, c.StartMarker...)
	b := img.Bounds()
	first := true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !first {
				dst = append(dst, ',')
			}
			dst = strconv.AppendUint(dst, uint64(img.GrayAt(x, y).Y), 10)
			first = false
		}
	}
	return append(dst, c.EndMarker)
}

// Encode encodes img as one complete frame.
func (c Config) Encode(img *image.Gray) []byte {
	// "255," is the widest a pixel gets.
	return c.AppendFrame(make([]byte, 0, len(c.StartMarker)+4*c.Width*c.Height+1), img)
}

// Pattern returns a synthetic test image: a diagonal gradient scrolled by
// seq, so successive frames visibly move.
func Pattern(width, height, seq int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Pix[y*img.Stride+x] = uint8(x + y + seq*3)
		}
	}
	return img
}
