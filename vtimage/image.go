// Package vtimage implements the image pool (spec.md §3 "Images"): a
// process-wide table of immutable rasterized images placed into the grid
// via Sixel (and, per spec.md §1, "future iTerm/Kitty" — this pool's
// shape does not assume Sixel-only). Grounded on
// original_source/src/vtbackend/Image.h's ImagePool/RasterizedImage split,
// reimplemented idiomatically: the pool owns pixel data, cells only ever
// hold a cell.ImageFragmentRef handle.
package vtimage

import (
	"fmt"
	"sync"

	"github.com/christianparpart/libterminal/coord"
)

// MaxImageSize bounds decoded image dimensions; larger images are
// rejected per the §7 "Image too large" disposition.
const MaxImageSize = 16384 * 16384

// RasterizedImage is one decoded, immutable image: RGBA pixels plus the
// grid-cell footprint it occupies when placed.
type RasterizedImage struct {
	handle   uint32
	Pixels   []byte // tightly packed RGBA
	Size     coord.ImageSize
	CellSize coord.PageSize // footprint in grid cells once placed
}

// Handle returns the pool handle referencing this image.
func (r *RasterizedImage) Handle() uint32 { return r.handle }

// Pool is the process-wide store of rasterized images. It is internally
// synchronized (spec.md §5 "Shared-resource policy": "The image pool is
// internally synchronized") because a future rasterizer/decoder could run
// on its own goroutine independent of the terminal mutex.
type Pool struct {
	mu     sync.Mutex
	nextID uint32
	images map[uint32]*RasterizedImage
	refs   map[uint32]int
}

// NewPool returns an empty image pool.
func NewPool() *Pool {
	return &Pool{images: make(map[uint32]*RasterizedImage), refs: make(map[uint32]int)}
}

// Insert rasterizes pixels (already decoded RGBA) into a pooled image and
// returns its handle with a reference count of zero; callers must call
// Retain for each cell that ends up referencing it.
func (p *Pool) Insert(pixels []byte, size coord.ImageSize, cellSize coord.PageSize) (*RasterizedImage, error) {
	if size.Width*size.Height > MaxImageSize || size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("vtimage: image %dx%d exceeds maximum size", size.Width, size.Height)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	img := &RasterizedImage{handle: p.nextID, Pixels: pixels, Size: size, CellSize: cellSize}
	p.images[img.handle] = img
	return img, nil
}

// Retain increments the reference count of the image identified by
// handle, called once per cell that starts referencing it.
func (p *Pool) Retain(handle uint32) {
	if handle == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs[handle]++
}

// Release decrements the reference count, freeing the image's pixel data
// once no cell references it anymore (spec.md §3 lifecycle: "a
// RasterizedImage lives until the last referencing cell is overwritten").
func (p *Pool) Release(handle uint32) {
	if handle == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refs[handle]--
	if p.refs[handle] <= 0 {
		delete(p.refs, handle)
		delete(p.images, handle)
	}
}

// Lookup returns the image registered under handle.
func (p *Pool) Lookup(handle uint32) (*RasterizedImage, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	img, ok := p.images[handle]
	return img, ok
}

// Len reports the number of live images, exposed for eviction tests.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.images)
}
