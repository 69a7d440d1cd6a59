// Package viewer drives the decode loop: poll the frame reader, fan decoded
// images out to the sinks, sleep briefly, repeat.
package viewer

import (
	"context"
	"image"
	"time"

	"github.com/krisvanner/doorscope/internal/frame"
	"github.com/krisvanner/doorscope/internal/log"
)

// Decoder yields the next decoded frame or an error.
type Decoder interface {
	Next() (*image.Gray, error)
}

// Sink consumes decoded frames. SetFrame is called from the loop goroutine.
type Sink interface {
	SetFrame(img *image.Gray)
}

// Loop polls a Decoder and pushes frames to Sinks.
type Loop struct {
	Decoder  Decoder
	Sinks    []Sink
	Interval time.Duration

	// Sleep is called between polls; tests inject a fake. Nil means
	// time.Sleep.
	Sleep func(time.Duration)
}

// Run polls until ctx is cancelled or the decoder reports a non-transient
// error. Transient outcomes (quiet line, timeout, corrupt frame) are logged
// at debug level and polling continues.
func (l *Loop) Run(ctx context.Context) error {
	sleep := l.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		img, err := l.Decoder.Next()
		switch {
		case err == nil:
			for _, s := range l.Sinks {
				s.SetFrame(img)
			}
		case frame.IsTransient(err):
			log.Debug("no frame", "reason", err)
		default:
			return err
		}

		sleep(l.Interval)
	}
}
