package render

import (
	"sync"

	"github.com/matzehuels/eqsteps/pkg/layout"
)

// Scene is everything a surface needs to draw one tick.
type Scene struct {
	// Frames holds one resolved frame per visible content item, in
	// content order, with final color and opacity.
	Frames []layout.Frame
	Width  float64
	Height float64
	// Progress is the progress line position in [0, 1].
	Progress float64
	Caption  string
	Step     int
	Steps    int
}

// Surface is a drawing target driven by a controller.
type Surface interface {
	Resize(width, height float64)
	Redraw(s Scene)
}

// Buffer is a surface that stores the last scene it was asked to draw.
// It is safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	scene   Scene
	width   float64
	height  float64
	redraws int
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Resize(width, height float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
}

func (b *Buffer) Redraw(s Scene) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s.Frames = append([]layout.Frame(nil), s.Frames...)
	b.scene = s
	b.redraws++
}

// Scene returns the last drawn scene.
func (b *Buffer) Scene() Scene {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scene
}

// Size returns the last size set by Resize.
func (b *Buffer) Size() (width, height float64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.width, b.height
}

// Redraws returns how many times Redraw was called.
func (b *Buffer) Redraws() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.redraws
}

// Multi fans surface calls out to several surfaces.
type Multi []Surface

func (m Multi) Resize(width, height float64) {
	for _, s := range m {
		s.Resize(width, height)
	}
}

func (m Multi) Redraw(s Scene) {
	for _, surf := range m {
		surf.Redraw(s)
	}
}
