// Package transport provides the byte-stream sources the frame reader
// decodes from: a serial port for real hardware and synthetic sources for
// demo mode and tests.
package transport

import (
	"bytes"
	"errors"
)

// ErrReadTimeout reports that the source's read timeout elapsed before the
// requested delimiter appeared. The bytes read so far are still returned.
// This is an expected condition on a quiet stream, not a fault.
var ErrReadTimeout = errors.New("transport: read timeout")

// ErrTransport reports a fault in the underlying transport (device
// disconnected, I/O error). Callers should stop polling when they see it.
var ErrTransport = errors.New("transport: fault")

// Source is a byte stream that can be read up to a delimiter.
type Source interface {
	// ReadUntil reads until delim has been consumed, max bytes have been
	// consumed (max <= 0 means unbounded), or the read timeout elapses.
	// It returns everything consumed, including the delimiter when found.
	// The caller distinguishes the three outcomes by the returned error
	// and by whether the result ends with delim.
	ReadUntil(delim []byte, max int) ([]byte, error)

	Close() error
}

// readUntil consumes bytes from *buf, refilling it via fill, until delim is
// seen or max bytes were consumed. fill returns (nil, ErrReadTimeout) when
// the underlying read times out and a wrapped ErrTransport on I/O faults.
// Unconsumed bytes stay in *buf for the next call.
func readUntil(buf *[]byte, fill func() ([]byte, error), delim []byte, max int) ([]byte, error) {
	var out []byte
	for {
		for len(*buf) > 0 {
			out = append(out, (*buf)[0])
			*buf = (*buf)[1:]
			if bytes.HasSuffix(out, delim) {
				return out, nil
			}
			if max > 0 && len(out) >= max {
				return out, nil
			}
		}
		chunk, err := fill()
		if err != nil {
			return out, err
		}
		*buf = append(*buf, chunk...)
	}
}
