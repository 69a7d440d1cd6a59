package display

import (
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// Window renders the live grayscale feed using Ebitengine.
type Window struct {
	mu          sync.Mutex
	frame       *image.Gray
	rgba        []byte
	ebitenImage *ebiten.Image

	title   string
	screenW int
	screenH int

	closing atomic.Bool
}

// NewWindow creates a window sized for a width x height feed. The tiny
// sensor frames are scaled up so the initial window is comfortably visible.
func NewWindow(width, height int) *Window {
	scale := 1
	for (width*scale) < 480 && (height*scale) < 480 {
		scale++
	}
	return &Window{
		title:   fmt.Sprintf("Live Grayscale Feed (%dx%d)", width, height),
		screenW: width * scale,
		screenH: height * scale,
	}
}

// SetFrame updates the displayed frame (called from the decode goroutine).
func (w *Window) SetFrame(img *image.Gray) {
	w.mu.Lock()
	w.frame = img
	w.mu.Unlock()
}

// RequestClose makes the window close on its next update. Called when the
// decode loop dies so the process does not linger on a dead feed.
func (w *Window) RequestClose() {
	w.closing.Store(true)
}

// Run starts the Ebitengine game loop. Must be called from the main
// goroutine.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.screenW, w.screenH)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(w)
}

// --- ebiten.Game interface ---

func (w *Window) Update() error {
	if w.closing.Load() {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	frame := w.frame
	w.mu.Unlock()

	if frame == nil {
		return
	}

	fw, fh := frame.Bounds().Dx(), frame.Bounds().Dy()
	if w.ebitenImage == nil ||
		w.ebitenImage.Bounds().Dx() != fw ||
		w.ebitenImage.Bounds().Dy() != fh {
		w.ebitenImage = ebiten.NewImage(fw, fh)
		w.rgba = make([]byte, 4*fw*fh)
	}

	// Expand gray samples to RGBA for WritePixels.
	for y := 0; y < fh; y++ {
		row := frame.Pix[y*frame.Stride : y*frame.Stride+fw]
		for x, v := range row {
			i := 4 * (y*fw + x)
			w.rgba[i] = v
			w.rgba[i+1] = v
			w.rgba[i+2] = v
			w.rgba[i+3] = 0xff
		}
	}
	w.ebitenImage.WritePixels(w.rgba)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, offsetX, offsetY := aspectFitTransform(float64(sw), float64(sh), float64(fw), float64(fh))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(w.ebitenImage, op)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// aspectFitTransform returns scale and offsets to fit frame into view with letterboxing.
func aspectFitTransform(viewW, viewH, frameW, frameH float64) (scale, offsetX, offsetY float64) {
	scale = math.Min(viewW/frameW, viewH/frameH)
	offsetX = (viewW - frameW*scale) / 2
	offsetY = (viewH - frameH*scale) / 2
	return
}
