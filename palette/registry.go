// Package palette manages terminal color pairs. A pair is a (foreground,
// background) combination addressed by a small integer ID from a bounded
// table, the only form of color addressing the adapter uses. The registry
// owns pair enumeration and lookup; it performs no terminal I/O itself.
package palette

import (
	"sync"

	"github.com/dshills/edterm/core"
)

// PairID addresses one enumerated (foreground, background) combination.
// ID 0 is the terminal's default pair and is never enumerated.
type PairID int

// Capabilities describes the color capacity a terminal reports.
type Capabilities struct {
	// Colors is the number of simultaneous display colors. Zero means the
	// terminal has no color support at all.
	Colors int

	// Pairs is the number of simultaneous color pairs, including the
	// default pair 0.
	Pairs int
}

// Registry enumerates and resolves color pairs for one terminal. A single
// shared instance normally serves the whole process, but tests and embedders
// may construct and inject their own.
//
// Apart from the guarded Init, methods assume the caller serializes access,
// matching the adapter's single-threaded model.
type Registry struct {
	mu         sync.Mutex
	inited     bool
	colors     int
	pairs      int
	enumerated int
}

// New returns an uninitialized registry. Resolve degrades to the default
// pair until Init runs.
func New() *Registry {
	return &Registry{}
}

var defaultRegistry = New()

// Default returns the process-wide shared registry.
func Default() *Registry {
	return defaultRegistry
}

// Init enumerates every (foreground, background) combination over the
// reported color count, assigning pair IDs by back*colors+fore+1, stopping
// at the reported pair capacity. The first call wins; repeated calls are
// no-ops regardless of their capabilities, so pair IDs never change for the
// life of the process.
func (r *Registry) Init(caps Capabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inited {
		return
	}
	r.inited = true
	r.colors = caps.Colors
	r.pairs = caps.Pairs

	// IDs run consecutively from 1 to colors*colors, so the capacity clip
	// reduces to arithmetic.
	r.enumerated = min(r.colors*r.colors, max(r.pairs-1, 0))
}

// Initialized reports whether Init has run.
func (r *Registry) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inited
}

// Monochrome reports whether the terminal has no color support. In that
// mode no pair is ever requested and rendering is attribute-only.
func (r *Registry) Monochrome() bool {
	return r.colors == 0
}

// BrightCapable reports whether the bright color variants are addressable.
func (r *Registry) BrightCapable() bool {
	return r.colors >= 16
}

// Enumerated returns the number of pairs registered at Init, after capacity
// clipping.
func (r *Registry) Enumerated() int {
	return r.enumerated
}

func pairFor(fore, back, colors int) PairID {
	return PairID(back*colors + fore + 1)
}

// colorIndex matches a color against the canonical palette by identity.
// Unrecognized colors fall back to white, and bright variants degrade to
// their base color when the terminal cannot address them.
func (r *Registry) colorIndex(c core.Color) int {
	idx, ok := c.TermIndex()
	if !ok {
		idx = 7 // white
	}
	if idx >= 8 && r.colors < 16 {
		idx -= 8
	}
	if r.colors > 0 {
		idx %= r.colors
	}
	return idx
}

// Resolve returns the pair ID for a foreground/background combination.
// It is total: unrecognized colors match white, combinations beyond the
// enumerated capacity and all monochrome or pre-Init requests degrade to
// the default pair.
func (r *Registry) Resolve(fore, back core.Color) PairID {
	if !r.inited || r.Monochrome() {
		return 0
	}
	id := pairFor(r.colorIndex(fore), r.colorIndex(back), r.colors)
	if int(id) >= r.pairs {
		return 0
	}
	return id
}

// Content is the inverse of Resolve: the colors an enumerated pair renders
// with. The default pair and anything outside the enumerated range degrade
// to white on black.
func (r *Registry) Content(id PairID) (fore, back core.Color) {
	if !r.inited || r.Monochrome() || id <= 0 || int(id) >= r.pairs {
		return core.ColorWhite, core.ColorBlack
	}
	n := int(id) - 1
	return indexColor(n % r.colors), indexColor(n / r.colors)
}

func indexColor(idx int) core.Color {
	if idx >= 0 && idx < len(core.TermColors) {
		return core.TermColors[idx]
	}
	return core.ColorWhite
}
