package transport

import (
	"fmt"
	"io"
)

// Script is a Source that replays a fixed sequence of read results. Tests
// use it to simulate quiet lines, truncated frames and disconnects without
// real delays.
type Script struct {
	steps []ScriptStep
	buf   []byte
}

// ScriptStep is one scripted read outcome: Data when non-nil, otherwise a
// read timeout.
type ScriptStep struct {
	Data    []byte
	Timeout bool
}

// Bytes returns a step delivering data.
func Bytes(data string) ScriptStep { return ScriptStep{Data: []byte(data)} }

// Timeout returns a step simulating an elapsed read timeout.
func Timeout() ScriptStep { return ScriptStep{Timeout: true} }

// NewScript creates a scripted source. Once the steps are exhausted, further
// reads fail with a transport fault, as a disconnected device would.
func NewScript(steps ...ScriptStep) *Script {
	return &Script{steps: steps}
}

// ReadUntil implements Source.
func (s *Script) ReadUntil(delim []byte, max int) ([]byte, error) {
	return readUntil(&s.buf, s.fill, delim, max)
}

func (s *Script) fill() ([]byte, error) {
	if len(s.steps) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrTransport, io.EOF)
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	if step.Timeout {
		return nil, ErrReadTimeout
	}
	return step.Data, nil
}

func (s *Script) Close() error {
	return nil
}
