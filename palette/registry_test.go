package palette

import (
	"testing"

	"github.com/dshills/edterm/core"
)

func fullCaps() Capabilities {
	// 16 colors, room for every combination (max ID 15*16+15+1 = 256).
	return Capabilities{Colors: 16, Pairs: 257}
}

func TestInitIdempotent(t *testing.T) {
	r := New()
	r.Init(fullCaps())

	if !r.Initialized() {
		t.Fatal("registry should be initialized")
	}

	first := r.Resolve(core.ColorRed, core.ColorGreen)
	wantEnum := r.Enumerated()

	// A second Init, even with different capabilities, is a no-op.
	r.Init(Capabilities{Colors: 8, Pairs: 64})

	if got := r.Resolve(core.ColorRed, core.ColorGreen); got != first {
		t.Errorf("pair ID changed after re-init: %d != %d", got, first)
	}
	if r.Enumerated() != wantEnum {
		t.Errorf("enumeration count changed after re-init: %d != %d", r.Enumerated(), wantEnum)
	}
}

func TestResolveDeterministic(t *testing.T) {
	a := New()
	a.Init(fullCaps())
	b := New()
	b.Init(fullCaps())

	for _, fore := range core.TermColors {
		for _, back := range core.TermColors {
			if a.Resolve(fore, back) != b.Resolve(fore, back) {
				t.Fatalf("Resolve(%v, %v) differs across identically initialized registries", fore, back)
			}
		}
	}

	if a.Enumerated() != 256 {
		t.Errorf("expected 256 enumerated pairs, got %d", a.Enumerated())
	}
}

func TestResolveFormula(t *testing.T) {
	r := New()
	r.Init(fullCaps())

	tests := []struct {
		name string
		fore core.Color
		back core.Color
		want PairID
	}{
		{"white on black", core.ColorWhite, core.ColorBlack, 8},
		{"black on black", core.ColorBlack, core.ColorBlack, 1},
		{"red on green", core.ColorRed, core.ColorGreen, 2*16 + 1 + 1},
		{"bright white on blue", core.ColorBrightWhite, core.ColorBlue, 4*16 + 15 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.fore, tt.back); got != tt.want {
				t.Errorf("Resolve = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveUnknownColorFallsBackToWhite(t *testing.T) {
	r := New()
	r.Init(fullCaps())

	odd := core.ColorFromRGB(1, 2, 3)
	if r.Resolve(odd, core.ColorBlack) != r.Resolve(core.ColorWhite, core.ColorBlack) {
		t.Error("unknown foreground should resolve as white")
	}
	if r.Resolve(core.ColorBlack, odd) != r.Resolve(core.ColorBlack, core.ColorWhite) {
		t.Error("unknown background should resolve as white")
	}
}

func TestResolveBrightDegrade(t *testing.T) {
	r := New()
	r.Init(Capabilities{Colors: 8, Pairs: 65})

	if r.BrightCapable() {
		t.Error("8-color terminal should not be bright capable")
	}
	got := r.Resolve(core.ColorBrightRed, core.ColorBlack)
	want := r.Resolve(core.ColorRed, core.ColorBlack)
	if got != want {
		t.Errorf("bright red should degrade to red: %d != %d", got, want)
	}
}

func TestResolvePairCapacity(t *testing.T) {
	r := New()
	r.Init(Capabilities{Colors: 16, Pairs: 10})

	// ID 8 fits under the capacity of 10.
	if got := r.Resolve(core.ColorWhite, core.ColorBlack); got != 8 {
		t.Errorf("white on black = %d, want 8", got)
	}
	// ID 17 does not; degrade to the default pair.
	if got := r.Resolve(core.ColorBlack, core.ColorRed); got != 0 {
		t.Errorf("over-capacity pair = %d, want 0", got)
	}
	if r.Enumerated() != 9 {
		t.Errorf("enumerated = %d, want 9", r.Enumerated())
	}
}

func TestMonochrome(t *testing.T) {
	r := New()
	r.Init(Capabilities{Colors: 0, Pairs: 0})

	if !r.Monochrome() {
		t.Fatal("zero colors should mean monochrome")
	}
	if got := r.Resolve(core.ColorWhite, core.ColorBlack); got != 0 {
		t.Errorf("monochrome Resolve = %d, want 0", got)
	}
	if r.Enumerated() != 0 {
		t.Errorf("monochrome should enumerate nothing, got %d", r.Enumerated())
	}
}

func TestResolveBeforeInit(t *testing.T) {
	r := New()
	if got := r.Resolve(core.ColorWhite, core.ColorBlack); got != 0 {
		t.Errorf("pre-init Resolve = %d, want 0", got)
	}
}

func TestContent(t *testing.T) {
	r := New()
	r.Init(fullCaps())

	id := r.Resolve(core.ColorYellow, core.ColorBlue)
	fore, back := r.Content(id)
	if !fore.Equals(core.ColorYellow) || !back.Equals(core.ColorBlue) {
		t.Errorf("Content(%d) = (%v, %v), want (yellow, blue)", id, fore, back)
	}

	// Default pair and out-of-range IDs degrade to white on black.
	for _, id := range []PairID{0, -1, 257, 9999} {
		fore, back := r.Content(id)
		if !fore.Equals(core.ColorWhite) || !back.Equals(core.ColorBlack) {
			t.Errorf("Content(%d) = (%v, %v), want (white, black)", id, fore, back)
		}
	}
}

func TestDefaultRegistryShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same registry")
	}
}
