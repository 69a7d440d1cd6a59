package frame

import (
	"bytes"
	"errors"
	"image"
	"strconv"
	"sync"

	"github.com/krisvanner/doorscope/internal/transport"
)

// Stats counts decode outcomes since the reader was created. TokensDropped
// counts pixel tokens that were silently discarded as malformed; a non-zero
// value on an otherwise healthy feed usually means line noise or a baud
// mismatch.
type Stats struct {
	Frames         uint64 `json:"frames"`
	NoStartMarker  uint64 `json:"no_start_marker"`
	Timeouts       uint64 `json:"timeouts"`
	SizeMismatches uint64 `json:"size_mismatches"`
	TokensDropped  uint64 `json:"tokens_dropped"`
}

// Reader decodes frames from a byte-stream source. Each call to Next is
// independent: no decode state is carried across calls, so the reader
// resynchronizes from scratch by hunting for the next start marker.
//
// Next must be called from a single goroutine; Stats may be read from any.
type Reader struct {
	src transport.Source
	cfg Config

	mu    sync.Mutex
	stats Stats
}

// NewReader creates a reader over src.
func NewReader(src transport.Source, cfg Config) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Reader{src: src, cfg: cfg}, nil
}

// Next decodes the next frame. It returns one of the package's transient
// errors when no frame could be produced this call, or the source's error
// verbatim on a transport fault.
func (r *Reader) Next() (*image.Gray, error) {
	header, err := r.src.ReadUntil(r.cfg.StartMarker, r.cfg.MaxStartScan)
	if err != nil && !errors.Is(err, transport.ErrReadTimeout) {
		return nil, err
	}
	if !bytes.HasSuffix(header, r.cfg.StartMarker) {
		r.bump(func(s *Stats) { s.NoStartMarker++ })
		return nil, ErrNoStartMarker
	}

	end := []byte{r.cfg.EndMarker}
	body, err := r.src.ReadUntil(end, r.bodyLimit())
	if err != nil {
		if errors.Is(err, transport.ErrReadTimeout) {
			r.bump(func(s *Stats) { s.Timeouts++ })
			return nil, ErrTimeout
		}
		return nil, err
	}
	body = bytes.TrimSuffix(body, end)

	pix, dropped := parsePixels(body, r.cfg.Width*r.cfg.Height)
	if dropped > 0 {
		r.bump(func(s *Stats) { s.TokensDropped += uint64(dropped) })
	}
	if len(pix) != r.cfg.Width*r.cfg.Height {
		r.bump(func(s *Stats) { s.SizeMismatches++ })
		return nil, ErrSizeMismatch
	}

	img := image.NewGray(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
	copy(img.Pix, pix)
	r.bump(func(s *Stats) { s.Frames++ })
	return img, nil
}

// Stats returns a snapshot of the decode counters.
func (r *Reader) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *Reader) bump(f func(*Stats)) {
	r.mu.Lock()
	f(&r.stats)
	r.mu.Unlock()
}

// bodyLimit bounds how many bytes one frame body may span. The widest valid
// body is 4 bytes per pixel ("255,"); anything past a small multiple of that
// is garbage and will be rejected by the size check anyway.
func (r *Reader) bodyLimit() int {
	return 6*r.cfg.Width*r.cfg.Height + 64
}

// parsePixels splits body on commas and parses each non-empty,
// space-trimmed token as a decimal value in [0, 255]. Malformed tokens are
// dropped, not fatal: the firmware occasionally interleaves stray characters
// and the frame-size check catches the damage. dropped reports how many
// tokens were discarded.
func parsePixels(body []byte, want int) (pix []uint8, dropped int) {
	pix = make([]uint8, 0, want)
	for _, tok := range bytes.Split(body, []byte{','}) {
		tok = bytes.TrimSpace(tok)
		if len(tok) == 0 {
			continue
		}
		v, err := strconv.ParseUint(string(tok), 10, 8)
		if err != nil {
			dropped++
			continue
		}
		pix = append(pix, uint8(v))
	}
	return pix, dropped
}
