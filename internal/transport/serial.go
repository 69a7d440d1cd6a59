package transport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialConfig holds the parameters for opening a serial source.
type SerialConfig struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
}

// Serial is a Source backed by a serial port. It is owned exclusively by one
// reader: opened once at startup, closed once at shutdown.
type Serial struct {
	name  string
	port  serial.Port
	buf   []byte
	chunk []byte
}

// OpenSerial opens the port and arms its read timeout. A failure here is a
// transport fault (bad port name, permission denied, port already open).
func OpenSerial(cfg SerialConfig) (*Serial, error) {
	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrTransport, cfg.Port, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("%w: set read timeout on %s: %v", ErrTransport, cfg.Port, err)
	}
	return &Serial{
		name:  cfg.Port,
		port:  port,
		chunk: make([]byte, 256),
	}, nil
}

// ReadUntil implements Source. A zero-byte read from the port means the
// configured read timeout elapsed.
func (s *Serial) ReadUntil(delim []byte, max int) ([]byte, error) {
	return readUntil(&s.buf, s.fill, delim, max)
}

func (s *Serial) fill() ([]byte, error) {
	n, err := s.port.Read(s.chunk)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrTransport, s.name, err)
	}
	if n == 0 {
		return nil, ErrReadTimeout
	}
	return s.chunk[:n], nil
}

func (s *Serial) Close() error {
	return s.port.Close()
}
