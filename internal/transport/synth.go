package transport

// Synth is an in-memory Source that produces an endless byte stream from a
// generator function, one payload per sequence number. It stands in for a
// real device in demo mode and in pipeline tests; it never times out.
type Synth struct {
	gen func(seq int) []byte
	buf []byte
	seq int
}

// NewSynth creates a synthetic source. gen is called with an increasing
// sequence number whenever more bytes are needed.
func NewSynth(gen func(seq int) []byte) *Synth {
	return &Synth{gen: gen}
}

// ReadUntil implements Source.
func (s *Synth) ReadUntil(delim []byte, max int) ([]byte, error) {
	return readUntil(&s.buf, s.fill, delim, max)
}

func (s *Synth) fill() ([]byte, error) {
	chunk := s.gen(s.seq)
	s.seq++
	return chunk, nil
}

func (s *Synth) Close() error {
	return nil
}
